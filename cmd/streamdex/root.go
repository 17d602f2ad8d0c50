package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	serverURL string
	username  string
	password  string
)

var rootCmd = &cobra.Command{
	Use:   "streamdex",
	Short: "CLI client for the streamdex catalog server",
	Long: `streamdex - CLI client for the streamdex catalog server

Bulk-imports titles from TMDB and manages server accounts.

Run 'streamdexd' to start the server daemon.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8585", "Server URL")
	rootCmd.PersistentFlags().StringVar(&username, "user", "", "Login username (or STREAMDEX_USER)")
	rootCmd.PersistentFlags().StringVar(&password, "password", "", "Login password (or STREAMDEX_PASSWORD)")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("streamdex {{.Version}}\n")
}

func credentials() (string, string) {
	user, pass := username, password
	if user == "" {
		user = os.Getenv("STREAMDEX_USER")
	}
	if pass == "" {
		pass = os.Getenv("STREAMDEX_PASSWORD")
	}
	return user, pass
}
