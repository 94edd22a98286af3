package mc

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc/asm"
	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc/emitter"
	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc/listing"
	"github.com/spf13/cobra"
)

var (
	encodeExpressions []string
	encodeOutput      string
	encodeConcurrent  bool
)

var encodeCmd = &cobra.Command{
	Use:   "encode [file]",
	Short: "Encode SPARC assembly into machine code",
	Long: `Encodes a SPARC assembly file (one instruction per line, '!' comments) and
prints the emitted words and fixups.

Instructions are written with their operands in encoding order, for example:

  SETHI %o0, %hi(msg)
  ORri  %o0, %o0, %lo(msg)
  CALL  printf
  BPR   .LBB0_2, rnz, %o1

Reads stdin if no file nor -e instructions are given.

Example:
  sparcmc mc encode program.s --format table
  sparcmc mc encode -e "ADDri %g1, %g2, 5" -e "CALL foo" --pic`,
	Args: cobra.MaximumNArgs(1),
	Run:  runEncode,
}

func init() {
	McCmd.AddCommand(encodeCmd)
	encodeCmd.Flags().StringArrayVarP(&encodeExpressions, "expression", "e", nil, "Instruction to encode (can be repeated)")
	encodeCmd.Flags().StringVarP(&encodeOutput, "output", "o", "", "Write the raw machine code stream to this file")
	encodeCmd.Flags().BoolVar(&encodeConcurrent, "concurrent", false, "Encode instructions concurrently")
}

func readSource(args []string) (string, error) {
	if len(encodeExpressions) > 0 {
		return strings.Join(encodeExpressions, "\n"), nil
	}

	if len(args) > 0 {
		source, err := os.ReadFile(args[0])
		return string(source), err
	}

	source, err := io.ReadAll(os.Stdin)
	return string(source), err
}

func printText(out io.Writer, l *listing.Listing) {
	for _, entry := range l.Entries {
		offsetColor.Fprintf(out, "%04x: ", entry.Offset)
		wordColor.Fprintf(out, "%v", entry.Bytes)
		fmt.Fprintf(out, "    %v\n", entry.Instruction)

		for _, fixup := range entry.Fixups {
			fixupColor.Fprintf(out, "      fixup %v(%v) @%v\n", fixup.Kind, fixup.Expression, fixup.Offset)
		}
	}

	commentColor.Fprintf(out, "! %v instructions, %v fixups\n", len(l.Entries), l.TotalFixups())
}

func fail(code int, format string, args ...any) {
	errorColor.Fprintf(os.Stderr, "Error: ")
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(code)
}

// Parses and encodes a program with the configured emitter, returning the
// machine code stream and its listing
func encodeSource(source string) ([]byte, *listing.Listing, error) {
	codeEmitter, features, err := newEmitter()
	if err != nil {
		return nil, nil, err
	}

	program, err := asm.ParseProgram(source)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing program: %w", err)
	}

	encode := codeEmitter.EncodeInstructions
	if encodeConcurrent {
		encode = codeEmitter.EncodeInstructionsConcurrently
	}

	stream, streamFixups, err := encode(program, features)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding program: %w", err)
	}

	result, err := listing.New(program, stream, streamFixups, codeEmitter.Config().ByteOrder)
	if err != nil {
		return nil, nil, err
	}

	slog.Info("program encoded",
		"instructions", len(program),
		"fixups", len(streamFixups),
		"emitted", emitter.InstructionsEmitted())

	return stream, result, nil
}

func writeListing(out io.Writer, l *listing.Listing, format string) error {
	switch format {
	case "table":
		_, err := fmt.Fprintln(out, l.Table())
		return err
	case "tree":
		_, err := fmt.Fprint(out, l.Tree())
		return err
	case "yaml":
		document, err := l.YAML()
		if err != nil {
			return err
		}
		_, err = out.Write(document)
		return err
	}

	printText(out, l)
	return nil
}

func runEncode(cmd *cobra.Command, args []string) {
	format, err := outputFormat()
	if err != nil {
		fail(1, "%v", err)
	}

	source, err := readSource(args)
	if err != nil {
		fail(1, "reading source: %v", err)
	}

	stream, result, err := encodeSource(source)
	if err != nil {
		fail(2, "%v", err)
	}

	if encodeOutput != "" {
		if err := os.WriteFile(encodeOutput, stream, 0o644); err != nil {
			fail(3, "writing output: %v", err)
		}
	}

	if err := writeListing(os.Stdout, result, format); err != nil {
		fail(3, "%v", err)
	}
}
