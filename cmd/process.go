package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tesh254/ukify/internal/config"
	"github.com/tesh254/ukify/internal/logger"
	"github.com/tesh254/ukify/internal/render"
	"github.com/tesh254/ukify/internal/scraper"
)

var processCmd = &cobra.Command{
	Use:   "process [file|url]",
	Short: "Processes an HTML snippet from a file, a URL or stdin",
	Long: `Processes an HTML snippet: converts paragraph text to British English,
splits paragraphs into one paragraph per sentence, removes prompt headers and
bolds the label of list items. Reads stdin when no file (or "-") is given.
An http(s) argument is fetched; --main keeps only the page's main content.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := runtimeConfig()
		if err != nil {
			return err
		}
		format, err := render.ParseFormat(cfg.Format)
		if err != nil {
			return err
		}
		outPath, _ := cmd.Flags().GetString("output")
		mainOnly, _ := cmd.Flags().GetBool("main")

		var input string
		if len(args) == 1 && scraper.IsURL(args[0]) {
			input, err = pageInput(cmd.Context(), cfg, args[0], mainOnly)
		} else {
			input, err = readInput(cmd, args)
		}
		if err != nil {
			return err
		}

		a, release, err := loadAPI(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer release()

		logger.Section("Processing")
		res, err := a.ProcessReport(input)
		if err != nil {
			return fmt.Errorf("failed to process HTML: %w", err)
		}

		if logger.IsVerbose() {
			render.ReportTable(cmd.ErrOrStderr(), res, a.CacheStats())
		}

		if outPath == "" {
			return render.Write(cmd.OutOrStdout(), format, res.HTML)
		}

		var buf bytes.Buffer
		if err := render.Write(&buf, format, res.HTML); err != nil {
			return err
		}
		if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outPath, err)
		}
		logger.Info("wrote %d bytes to %s", buf.Len(), outPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(processCmd)
	processCmd.Flags().StringP("output", "o", "", "Write the result to a file instead of stdout")
	processCmd.Flags().Bool("main", false, "Process only the main content of a fetched page")
	processCmd.Flags().StringP(config.KeyFormat, "f", config.Default().Format, "Output format: html, markdown or both")
	viper.BindPFlag(config.KeyFormat, processCmd.Flags().Lookup(config.KeyFormat))
}
