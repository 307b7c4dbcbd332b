package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "SHA3SUM"

var log zerolog.Logger

var rootCmd = &cobra.Command{
	Use:   "sha3sum [files...]",
	Short: "Print SHA-3 family checksums",
	Long: `Print SHA3, SHAKE or cSHAKE checksums of the given files.
With no file, or when a file is -, read standard input.

Every flag can also be set with a SHA3SUM_<FLAG> environment variable,
for example SHA3SUM_ALGORITHM=shake256.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogger,
	RunE:              sum,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	addConfigFlags(rootCmd)

	log = zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})).With().Timestamp().Logger()

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		log.Fatal().Err(err).Msg("could not bind flags")
	}
}

func setupLogger(*cobra.Command, []string) error {
	level, err := zerolog.ParseLevel(viper.GetString(flagLogLevel))
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	log = log.Level(level)
	return nil
}
