package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "portal",
	Short: "Disrupt Asia investor portal data service",
	Long: `portal serves the startup catalog, per-profile favorites and investor
itineraries of the Disrupt Asia investor portal.

Configuration is read from PORTAL_* environment variables.
Running portal without a subcommand is the same as "portal serve".`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("portal %s (commit=%s, built=%s, go=%s)\n",
		version.Version, version.Commit, version.BuildDate, version.GoVersion))

	favoritesCmd.PersistentFlags().StringVarP(&profileID, "profile", "p", "", "profile ID whose favorites are managed")
	_ = favoritesCmd.MarkPersistentFlagRequired("profile")
	favoritesListCmd.Flags().BoolVar(&listJSON, "json", false, "print the records as JSON")
	favoritesCmd.AddCommand(favoritesListCmd)
	favoritesCmd.AddCommand(favoritesClearCmd)

	catalogCmd.AddCommand(catalogCheckCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(favoritesCmd)
	rootCmd.AddCommand(catalogCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ portal: %v\n", err)
		os.Exit(1)
	}
}
