package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tesh254/ukify/internal/config"
	"github.com/tesh254/ukify/internal/dictionary"
	"github.com/tesh254/ukify/internal/logger"
	"github.com/tesh254/ukify/internal/version"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:           "ukify",
	Short:         "ukify rewrites HTML snippets into British English.",
	Long:          `ukify converts American English vocabulary in HTML to British English, splits paragraphs into one paragraph per sentence, removes prompt headers and bolds list item labels.`,
	Version:       version.GetVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		logger.SetVerbose(verbose)
	},
}

// Version command with multiple output formats
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		jsonFlag, _ := cmd.Flags().GetBool("json")
		shortFlag, _ := cmd.Flags().GetBool("short")

		switch {
		case jsonFlag:
			fmt.Fprintln(cmd.OutOrStdout(), version.GetJSONVersion())
		case shortFlag:
			fmt.Fprintln(cmd.OutOrStdout(), version.GetShortVersion())
		default:
			fmt.Fprintln(cmd.OutOrStdout(), version.GetDetailedVersion())
			if version.IsDevelopment() {
				fmt.Fprintf(cmd.OutOrStdout(), "\n%s This is a development build.\n", color.YellowString("Note:"))
			}
		}
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, color.RedString("Error:"), err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	v := viper.GetViper()
	config.SetDefaults(v)
	defaults := config.Default()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.ukify/config.yaml)")
	rootCmd.PersistentFlags().String(config.KeyDictionaryURL, defaults.DictionaryURL, "Dictionary source: an http(s) URL, a JSON file or \""+dictionary.SnapshotSource+"\"")
	rootCmd.PersistentFlags().Duration(config.KeyTimeout, defaults.Timeout, "Timeout for fetching the dictionary")
	rootCmd.PersistentFlags().Int(config.KeyCacheSize, defaults.CacheSize, "Number of converted texts to memoize (0 disables)")
	rootCmd.PersistentFlags().String(config.KeyDB, defaults.DBPath, "Path to the snapshot database file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	versionCmd.Flags().Bool("json", false, "Output version information in JSON format")
	versionCmd.Flags().BoolP("short", "s", false, "Output short version only")
	rootCmd.AddCommand(versionCmd)

	for _, key := range []string{config.KeyDictionaryURL, config.KeyTimeout, config.KeyCacheSize, config.KeyDB} {
		v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key))
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		configPath := filepath.Join(home, ".ukify")
		viper.AddConfigPath(configPath)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")

		// Create config file if it doesn't exist
		if err := os.MkdirAll(configPath, os.ModePerm); err != nil {
			logger.Warn("could not create config directory: %v", err)
		} else if _, err := os.Stat(filepath.Join(configPath, "config.yaml")); os.IsNotExist(err) {
			if err := viper.SafeWriteConfig(); err != nil {
				logger.Warn("could not write config file: %v", err)
			}
		}
	}

	config.BindEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		logger.Debug("using config file %s", viper.ConfigFileUsed())
	}
}
