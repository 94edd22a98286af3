package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/Manu343726/sparcmc/cmd/mc"
	"github.com/Manu343726/sparcmc/cmd/tools"
	"github.com/Manu343726/sparcmc/pkg/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "sparcmc",
	Short: "SPARC machine code emitter",
	Long: `sparcmc encodes SPARC assembly instructions into machine code words.

Operands that cannot be resolved while encoding (symbols, relocated expressions)
are reported as fixups, the relocation requests a linker would apply later.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogging()
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := RootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	RootCmd.AddCommand(tools.ToolsCmd, mc.McCmd)
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.sparcmc.yaml)")
	RootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	RootCmd.PersistentFlags().String("log-file", "", "Also write JSON logs to this file")

	cobra.CheckErr(viper.BindPFlag("log-level", RootCmd.PersistentFlags().Lookup("log-level")))
	cobra.CheckErr(viper.BindPFlag("log-file", RootCmd.PersistentFlags().Lookup("log-file")))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".sparcmc" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".sparcmc")
	}

	// SPARCMC_LOG_LEVEL, SPARCMC_ENDIANNESS, ...
	viper.SetEnvPrefix("SPARCMC")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func initLogging() error {
	level, err := logging.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		return err
	}

	options := logging.Options{
		Level:   level,
		Console: os.Stderr,
	}

	if path := viper.GetString("log-file"); path != "" {
		// Closed on exit
		file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}

		options.JSON = file
	}

	slog.SetDefault(logging.New(options))
	return nil
}
