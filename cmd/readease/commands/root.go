// Package commands implements the CLI commands for readease.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/readease/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "readease",
	Short: "Copy the readable part of a web page as HTML, text or Markdown",
	Long: `Readease extracts the main article of a web page, strips the noise
around it and produces clean HTML, plain text and Markdown, ready to be
pasted elsewhere.

Examples:
  # Print a page as Markdown
  readease export https://example.com/post

  # Copy the sanitized HTML to the clipboard
  readease export https://example.com/post --format html --copy

  # Convert a saved page, resolving relative links against its origin
  readease export saved.html --base-url https://example.com/post

  # Everything as JSON, with sanitizer statistics
  readease export https://example.com/post --emit json --stats`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logger.Options{
			Debug: viper.GetBool("debug"),
			Quiet: viper.GetBool("quiet"),
			JSON:  viper.GetBool("log_json"),
		})
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.readease.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")
	rootCmd.PersistentFlags().Bool("log-json", false, "log as JSON")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("log_json", rootCmd.PersistentFlags().Lookup("log-json"))
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
		viper.SetConfigName(".readease")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("READEASE")
	viper.AutomaticEnv()

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

// logInfo prints an info message to stderr (unless quiet mode).
func logInfo(format string, args ...any) {
	if !viper.GetBool("quiet") {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
