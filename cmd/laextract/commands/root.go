// Package commands implements the CLI commands for laextract.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "laextract",
	Short: "Structured field extraction from radiology study reports",
	Long: `Laextract mines structured data fields from a corpus of radiology
study reports, using either a deterministic rule set or an LLM routed
to a cloud API or a local model server.

Examples:
  # Rule-based extraction over the whole corpus
  laextract extract --rules -f reports.csv

  # LLM extraction of the first 10 reports with a local model
  laextract extract --llm falcon3:70b -f reports.csv -l 10

  # Extract two specific studies with a cloud model
  laextract extract --llm gpt-4o -f reports.csv -s CBS0001 -s CBS0002`,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.laextract.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".laextract")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("LAEXTRACT")
	viper.AutomaticEnv()

	// Direct bindings for the conventional provider variables
	_ = viper.BindEnv("open_ai_key", "OPEN_AI_KEY", "OPENAI_API_KEY")
	_ = viper.BindEnv("openai_base_url", "OPENAI_BASE_URL")
	_ = viper.BindEnv("ollama_host", "OLLAMA_HOST")

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
