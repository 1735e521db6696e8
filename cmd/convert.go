package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert [text...]",
	Short: "Converts plain text to British English",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := runtimeConfig()
		if err != nil {
			return err
		}

		text, err := textInput(cmd, args)
		if err != nil {
			return err
		}

		a, release, err := loadAPI(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer release()

		out, err := a.ConvertText(text)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

var lookupCmd = &cobra.Command{
	Use:   "lookup [term]",
	Short: "Shows the British English equivalent of an American term",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := runtimeConfig()
		if err != nil {
			return err
		}

		a, release, err := loadAPI(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer release()

		british, ok, err := a.Lookup(args[0])
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "No British equivalent found for %q.\n", args[0])
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", args[0], british)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(lookupCmd)
}
