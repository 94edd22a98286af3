package mc

import (
	"fmt"
	"os"
	"strconv"

	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc/compact"
	"github.com/Manu343726/sparcmc/pkg/utils"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type compactCodec struct {
	name   string
	encode func(int64) (uint32, error)
	decode func(uint32) int64
	values func() []int64
}

type compactEntry struct {
	Value   int64  `yaml:"value"`
	Code    string `yaml:"code,omitempty"`
	Decoded *int64 `yaml:"decoded,omitempty"`
	Error   string `yaml:"error,omitempty"`
}

var imm5Codec = compactCodec{"imm5", compact.EncodeImm5, compact.DecodeImm5, compact.Imm5Values}
var simm5Codec = compactCodec{"simm5", compact.EncodeSImm5, compact.DecodeSImm5, compact.SImm5Values}

func newCompactCmd(codec compactCodec, short string) *cobra.Command {
	return &cobra.Command{
		Use:   codec.name + " [value...]",
		Short: short,
		Long: short + `.

Prints the 5 bit code of each given value, or the code of every representable
value if none is given.`,
		Run: func(cmd *cobra.Command, args []string) {
			runCompact(codec, args)
		},
	}
}

func init() {
	McCmd.AddCommand(
		newCompactCmd(imm5Codec, "Encode unsigned compact immediates (MULC5)"),
		newCompactCmd(simm5Codec, "Encode signed compact immediates (ADDC5)"),
	)
}

func compactEntries(codec compactCodec, args []string) ([]compactEntry, error) {
	values := codec.values()

	if len(args) > 0 {
		values = make([]int64, 0, len(args))

		for _, arg := range args {
			value, err := strconv.ParseInt(arg, 0, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid value '%v': %w", arg, err)
			}

			values = append(values, value)
		}
	}

	return utils.Map(values, func(value int64) compactEntry {
		code, err := codec.encode(value)
		if err != nil {
			return compactEntry{Value: value, Error: err.Error()}
		}

		decoded := codec.decode(code)
		return compactEntry{
			Value:   value,
			Code:    "0b" + utils.FormatUintBinary(uint64(code), compact.CodeBits),
			Decoded: &decoded,
		}
	}), nil
}

func runCompact(codec compactCodec, args []string) {
	format, err := outputFormat()
	if err != nil {
		fail(1, "%v", err)
	}

	entries, err := compactEntries(codec, args)
	if err != nil {
		fail(1, "%v", err)
	}

	if format == "yaml" {
		document, err := yaml.Marshal(map[string][]compactEntry{codec.name: entries})
		if err != nil {
			fail(4, "%v", err)
		}
		os.Stdout.Write(document)
		return
	}

	writer := table.NewWriter()
	writer.SetTitle(codec.name)
	writer.AppendHeader(table.Row{"Value", "Code", "Decoded"})

	for _, entry := range entries {
		if entry.Error != "" {
			writer.AppendRow(table.Row{entry.Value, errorColor.Sprint(entry.Error), ""})
		} else {
			writer.AppendRow(table.Row{entry.Value, entry.Code, *entry.Decoded})
		}
	}

	fmt.Println(writer.Render())
}
