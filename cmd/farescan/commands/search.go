package commands

import (
	"fmt"
	"log/slog"
	"time"

	"farescan/lib/scrapers/skyscanner"

	"github.com/spf13/cobra"
)

var (
	searchJson      *bool
	searchLimit     *int
	searchExtractor *string
)

func init() {
	searchJson = searchCmd.Flags().Bool("json", false, "Print the results as a json array instead of a table.")
	searchLimit = searchCmd.Flags().IntP("limit", "n", 0, "Only print the n cheapest results, 0 prints all of them.")
	searchExtractor = searchCmd.Flags().String("extractor", "", "How session tokens are found in the search page: raw or script. Overrides the config.")
	rootCmd.AddCommand(searchCmd)
}

// newClient reads the config and builds a scraper client from it, extractor
// overrides the configured extractor when it is not empty.
func newClient(extractor string) (*skyscanner.Client, error) {
	cfg, err := loadConfig(*configPath)
	if err != nil {
		return nil, err
	}
	if extractor != "" {
		cfg.Extractor = extractor
	}
	opts, err := cfg.ClientOptions()
	if err != nil {
		return nil, err
	}
	slog.Debug(
		"client options",
		"base_url", opts.BaseUrl,
		"extractor", cfg.Extractor,
		"settle_delay", opts.Settle.Delay,
		"settle_retries", opts.Settle.MaxRetries,
	)
	return skyscanner.NewClient(opts), nil
}

var searchCmd = &cobra.Command{
	Use:   "search <from> <to> <depart DD/MM/YYYY> <return DD/MM/YYYY> [--json] [--limit <n>]",
	Short: "Searches return flights between two places, cheapest first.",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(*searchExtractor)
		if err != nil {
			return err
		}

		t1 := time.Now()
		results, err := client.Search(cmd.Context(), skyscanner.SearchRequest{
			From:   args[0],
			To:     args[1],
			Depart: args[2],
			Return: args[3],
		})
		if err != nil {
			return fmt.Errorf("search: %w", err)
		}
		slog.Debug("search time", "seconds", time.Since(t1).Seconds(), "results", len(results))

		results = limitResults(results, *searchLimit)
		if *searchJson {
			return writeJson(cmd.OutOrStdout(), results)
		}
		writeTable(cmd.OutOrStdout(), results)
		return nil
	},
}
