package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tesh254/ukify/internal/storage"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Deletes the stored dictionary snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		cfg, err := runtimeConfig()
		if err != nil {
			return err
		}

		if !yes {
			fmt.Fprintln(cmd.OutOrStdout(), color.RedString("WARNING: This will delete the stored dictionary snapshot."))
			fmt.Fprint(cmd.OutOrStdout(), "Are you sure you want to continue? (yes/no): ")

			response, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && response == "" {
				return fmt.Errorf("failed to read response: %w", err)
			}
			if strings.TrimSpace(strings.ToLower(response)) != "yes" {
				fmt.Fprintln(cmd.OutOrStdout(), "Clean operation cancelled.")
				return nil
			}
		}

		st, err := storage.NewStorage(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to initialize storage: %w", err)
		}
		defer st.Close()

		if err := st.Clean(cmd.Context()); err != nil {
			return fmt.Errorf("failed to clean database: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Snapshot deleted successfully.")
		return nil
	},
}

func init() {
	dictCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
