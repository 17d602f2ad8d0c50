package main

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	importType   string
	importIDs    string
	importTitles []string
	importTop    bool
	importRegion string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Bulk-import titles from TMDB",
	Long: `Bulk-import titles from TMDB into the catalog.

Candidates come from --ids, --title (repeatable), or --top; progress is
streamed as the server imports each item.

Examples:
  streamdex import --type movie --ids "603,550"
  streamdex import --type series --title "Breaking Bad" --title "Dark"
  streamdex import --type movie --top --region DE`,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, pass := credentials()
		if user == "" || pass == "" {
			return fmt.Errorf("credentials required: pass --user/--password or set STREAMDEX_USER/STREAMDEX_PASSWORD")
		}

		client, err := NewClient(serverURL)
		if err != nil {
			return err
		}
		if err := client.Login(user, pass); err != nil {
			return err
		}

		form := url.Values{
			"type":     {importType},
			"tmdb_ids": {importIDs},
			"titles":   {strings.Join(importTitles, "\n")},
			"region":   {importRegion},
		}
		if importTop {
			form.Set("use_top", "1")
		}

		return client.StreamImport(form, os.Stdout)
	},
}

func init() {
	importCmd.Flags().StringVar(&importType, "type", "movie", "Media type: movie or series")
	importCmd.Flags().StringVar(&importIDs, "ids", "", "Comma-separated TMDB IDs")
	importCmd.Flags().StringArrayVar(&importTitles, "title", nil, "Title to resolve and import (repeatable)")
	importCmd.Flags().BoolVar(&importTop, "top", false, "Import the current top 25 instead")
	importCmd.Flags().StringVar(&importRegion, "region", "", "Availability region (server default if empty)")

	rootCmd.AddCommand(importCmd)
}
