package mc

import (
	"fmt"
	"os"

	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc/fixups"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var fixupsCmd = &cobra.Command{
	Use:   "fixups",
	Short: "List the fixup kinds the emitter can request",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		format, err := outputFormat()
		if err != nil {
			fail(1, "%v", err)
		}

		infos := make([]fixups.KindInfo, 0, fixups.NumTargetKinds)
		for _, kind := range fixups.AllKinds() {
			info, err := fixups.Info(kind)
			if err != nil {
				fail(1, "%v", err)
			}

			infos = append(infos, info)
		}

		if format == "yaml" {
			document, err := yaml.Marshal(infos)
			if err != nil {
				fail(4, "%v", err)
			}
			os.Stdout.Write(document)
			return
		}

		writer := table.NewWriter()
		writer.AppendHeader(table.Row{"Kind", "Position", "Bits", "PC relative"})

		for _, info := range infos {
			writer.AppendRow(table.Row{info.Name, info.Position, info.Bits, info.PCRelative})
		}

		fmt.Println(writer.Render())
	},
}

func init() {
	McCmd.AddCommand(fixupsCmd)
}
