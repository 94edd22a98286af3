package tools

import (
	"fmt"
	"os"
	"strings"

	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc"
	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc/instructions"
	"github.com/Manu343726/sparcmc/pkg/utils"
	"github.com/spf13/cobra"
)

var supportedModules = map[string]func() string{
	"mc": func() string { return mc.Descriptor.DocString() },
	"mc.instructions": func() string {
		return strings.Join(utils.Map(instructions.Instructions.AllInstructions(), func(instr *instructions.InstructionDescriptor) string {
			return instr.Documentation(0)
		}), "\n\n")
	},
}

var docsCmd = &cobra.Command{
	Use:   "docs module",
	Short: "Show sparcmc documentation",
	Long: `Dumps the documentation of the specified sparcmc module to stdout, or to a
file given with --output.

Supported modules:
` + strings.Join(utils.Map(utils.SortedKeys(supportedModules), func(module string) string { return "  " + module }), "\n"),
	Args:      cobra.MatchAll(cobra.OnlyValidArgs, cobra.ExactArgs(1)),
	ValidArgs: utils.SortedKeys(supportedModules),
	Run: func(cmd *cobra.Command, args []string) {
		doc := supportedModules[args[0]]()

		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile == "" {
			fmt.Println(doc)
			return
		}

		if err := os.WriteFile(outputFile, []byte(doc+"\n"), 0o644); err != nil {
			fmt.Fprintln(os.Stderr, "Error writing documentation:", err)
			os.Exit(1)
		}
	},
}

func init() {
	ToolsCmd.AddCommand(docsCmd)
	docsCmd.Flags().StringP("output", "o", "", "Output file. If not specified, the documentation is dumped to stdout.")
}
