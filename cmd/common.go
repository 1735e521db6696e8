package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tesh254/ukify/internal/api"
	"github.com/tesh254/ukify/internal/config"
	"github.com/tesh254/ukify/internal/dictionary"
	"github.com/tesh254/ukify/internal/logger"
	"github.com/tesh254/ukify/internal/scraper"
	"github.com/tesh254/ukify/internal/storage"
)

// dictionaryFailureMessage is shown whenever the dictionary cannot be loaded.
const dictionaryFailureMessage = "Failed to load the US to UK conversion dictionary. Please try again later."

func runtimeConfig() (*config.Config, error) {
	cfg, err := config.FromViper(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadAPI builds the API and loads the configured dictionary. HTML is never
// processed when this fails. The returned func releases the snapshot store.
func loadAPI(ctx context.Context, cfg *config.Config) (*api.API, func(), error) {
	release := func() {}

	var opts []dictionary.Option
	if cfg.DictionaryURL == dictionary.SnapshotSource {
		st, err := storage.NewStorage(cfg.DBPath)
		if err != nil {
			return nil, release, fmt.Errorf("failed to initialize storage: %w", err)
		}
		release = func() { st.Close() }
		opts = append(opts, dictionary.WithSnapshots(st))
	}

	a := api.NewAPI(dictionary.NewLoader(cfg.LoaderConfig(), opts...), cfg.CacheSize)

	logger.Section("Dictionary")
	logger.Info("loading dictionary from %s", cfg.DictionaryURL)

	mapping, err := a.LoadDictionary(ctx, cfg.DictionaryURL)
	if err != nil {
		release()
		return nil, func() {}, dictionaryError(err)
	}

	logger.Info("loaded %d terms", mapping.Len())
	return a, release, nil
}

// dictionaryError reports the failure to the user and labels its kind.
func dictionaryError(err error) error {
	logger.Error(dictionaryFailureMessage)

	var fetchErr *dictionary.FetchError
	var parseErr *dictionary.ParseError
	switch {
	case errors.As(err, &fetchErr):
		return fmt.Errorf("failed to retrieve the dictionary file: %w", err)
	case errors.As(err, &parseErr):
		return fmt.Errorf("dictionary file is not a JSON object of terms: %w", err)
	default:
		return err
	}
}

// readInput returns the contents of the file named in args, or stdin when
// no file or "-" is given.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(b), nil
	}

	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(b), nil
}

// textInput joins args, falling back to stdin when there are none.
func textInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	return readInput(cmd, nil)
}

// pageInput fetches an http(s) page. With mainOnly set, only the page's
// main content container is returned.
func pageInput(ctx context.Context, cfg *config.Config, url string, mainOnly bool) (string, error) {
	logger.Info("fetching %s", url)
	page, err := scraper.New(cfg.ScraperConfig()).Fetch(ctx, url)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	if !mainOnly {
		return page, nil
	}
	return scraper.MainContent(page)
}
