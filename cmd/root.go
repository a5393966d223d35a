package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/resumesift/resumesift/internal/config"
	"github.com/resumesift/resumesift/internal/logger"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "resumesift",
	Short: "Resume screening service with LLM-assisted match scoring",
	Long: `resumesift ingests candidate resumes, scores them against job postings
and serves a ranked hiring board that admins curate before anything is
shown to the hiring team.

Three long-running modes share one configuration:

  serve   HTTP API and server-rendered pages
  worker  consumer pool that executes queued match runs
  review  interactive approval of ranked candidates`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command, it is called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./resumesift.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("json", false, "write logs as json")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

// initConfig loads .env, the optional yaml config and the environment
// into viper before any subcommand runs.
func initConfig() {
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("resumesift")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("RESUMESIFT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
	viper.BindEnv("ai.api-key", "GEMINI_API_KEY")

	config.SetDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// A missing default config file is fine, an explicit one is not.
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			cobra.CheckErr(err)
		}
	}
}

func getConfig() (*config.Config, error) {
	cfg := &config.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

func getLogger() (*zap.Logger, error) {
	return logger.New(viper.GetBool("debug"), viper.GetBool("json"))
}
