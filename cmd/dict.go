package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tesh254/ukify/internal/dictionary"
	"github.com/tesh254/ukify/internal/render"
	"github.com/tesh254/ukify/internal/storage"
)

var dictCmd = &cobra.Command{
	Use:   "dict",
	Short: "Inspects and stores the conversion dictionary",
}

var dictListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists the dictionary terms in source order",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		cfg, err := runtimeConfig()
		if err != nil {
			return err
		}

		a, release, err := loadAPI(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer release()

		dict, err := a.Dictionary()
		if err != nil {
			return err
		}
		if dict.Mapping.Len() == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "The dictionary has no terms.")
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Source: %s\nTerms: %d\nChecksum: %s\n", dict.Source, dict.Mapping.Len(), dict.Checksum)
		render.DictionaryTable(cmd.OutOrStdout(), dict.Mapping, limit)
		return nil
	},
}

var dictPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Fetches the dictionary and stores it as the local snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := runtimeConfig()
		if err != nil {
			return err
		}
		if cfg.DictionaryURL == dictionary.SnapshotSource {
			return errors.New("pull needs a URL or file source, not the snapshot itself")
		}

		dict, err := dictionary.NewLoader(cfg.LoaderConfig()).Load(cmd.Context(), cfg.DictionaryURL)
		if err != nil {
			return dictionaryError(err)
		}

		st, err := storage.NewStorage(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to initialize storage: %w", err)
		}
		defer st.Close()

		if err := st.SaveSnapshot(cmd.Context(), dict); err != nil {
			return fmt.Errorf("failed to save snapshot: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Stored %d terms from %s in %s.\n", dict.Mapping.Len(), dict.Source, cfg.DBPath)
		return nil
	},
}

var dictInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Shows the stored snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := runtimeConfig()
		if err != nil {
			return err
		}

		st, err := storage.NewStorage(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to initialize storage: %w", err)
		}
		defer st.Close()

		info, err := st.Info(cmd.Context())
		if errors.Is(err, storage.ErrNoSnapshot) {
			fmt.Fprintln(cmd.OutOrStdout(), "No snapshot stored. Run `ukify dict pull` first.")
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Source:   %s\nTerms:    %d\nChecksum: %s\nFetched:  %s\n",
			info.Source, info.Terms, info.Checksum, info.FetchedAt.Local().Format("2006-01-02 15:04:05"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dictCmd)
	dictCmd.AddCommand(dictListCmd, dictPullCmd, dictInfoCmd)
	dictListCmd.Flags().IntP("limit", "n", 50, "Maximum number of terms to show (0 shows all)")
}
