package mc

import (
	"encoding/binary"
	"errors"
	"log/slog"
	"strings"

	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc/emitter"
	"github.com/Manu343726/sparcmc/pkg/hw/cpu/mc/instructions"
	"github.com/Manu343726/sparcmc/pkg/utils"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// McCmd represents the mc command
var McCmd = &cobra.Command{
	Use:   "mc",
	Short: "SPARC machine code tools",
	Long: `Machine code tools: instruction encoding, compact immediate codecs and
fixup kinds.

Encoding settings can be given as flags, as keys of the config file or as
SPARCMC_* environment variables (SPARCMC_ENDIANNESS=little).`,
}

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	offsetColor  = color.New(color.FgCyan)
	wordColor    = color.New(color.FgYellow)
	fixupColor   = color.New(color.FgMagenta)
	commentColor = color.New(color.FgHiBlack)
)

var ErrInvalidEndianness = errors.New("invalid endianness")
var ErrInvalidFormat = errors.New("invalid output format")

var formats = []string{"text", "table", "tree", "yaml"}

func init() {
	McCmd.PersistentFlags().String("endianness", "big", "Byte order of the emitted words (big, little)")
	McCmd.PersistentFlags().Bool("pic", false, "Emit position independent code (GOT relative immediates)")
	McCmd.PersistentFlags().StringSlice("features", []string{"v9", "64bit", "compactimm"}, "Subtarget features ("+utils.FormatSlice(instructions.AllFeatures(), ", ")+")")
	McCmd.PersistentFlags().Bool("strict", false, "Fail on TLS calls to functions other than __tls_get_addr")
	McCmd.PersistentFlags().StringP("format", "f", "text", "Output format ("+strings.Join(formats, ", ")+")")

	for _, flag := range []string{"endianness", "pic", "features", "strict", "format"} {
		cobra.CheckErr(viper.BindPFlag(flag, McCmd.PersistentFlags().Lookup(flag)))
	}
}

func parseEndianness(name string) (binary.ByteOrder, error) {
	switch strings.ToLower(name) {
	case "big", "be":
		return binary.BigEndian, nil
	case "little", "le":
		return binary.LittleEndian, nil
	}

	return nil, utils.MakeError(ErrInvalidEndianness, "'%v'", name)
}

func outputFormat() (string, error) {
	format := strings.ToLower(viper.GetString("format"))
	for _, supported := range formats {
		if format == supported {
			return format, nil
		}
	}

	return "", utils.MakeError(ErrInvalidFormat, "'%v'", format)
}

// Builds the code emitter and the subtarget features from the configuration
func newEmitter() (*emitter.CodeEmitter, instructions.Features, error) {
	byteOrder, err := parseEndianness(viper.GetString("endianness"))
	if err != nil {
		return nil, 0, err
	}

	features, err := instructions.ParseFeatures(viper.GetStringSlice("features"))
	if err != nil {
		return nil, 0, err
	}

	return emitter.NewCodeEmitter(emitter.Config{
		ByteOrder:           byteOrder,
		PositionIndependent: viper.GetBool("pic"),
		Strict:              viper.GetBool("strict"),
		Logger:              slog.Default(),
	}), features, nil
}
