package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/app"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/catalog"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/config"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/domain"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/favorites"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/kv"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/logger"
)

var (
	profileID string
	listJSON  bool
)

// favoritesCmd operates on one profile's persisted favorites
var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Inspect or clear a profile's favorites",
	Long: `Inspect or clear the favorites persisted for one profile, on the
storage backend selected by PORTAL_STORAGE.

Available subcommands:
  list  - Print the favorites (expired records are dropped and compacted)
  clear - Remove every favorite of the profile`,
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print a profile's favorites",
	Args:  cobra.NoArgs,
	RunE:  runFavoritesList,
}

var favoritesClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every favorite of a profile",
	Args:  cobra.NoArgs,
	RunE:  runFavoritesClear,
}

// openProfileStore loads the profile through the same Store the service
// uses, so list applies the expiration policy. The returned ID is the
// canonical form the service keys storage with.
func openProfileStore(cmd *cobra.Command) (*favorites.Store, string, func(), error) {
	id, err := domain.ParseProfileID(profileID)
	if err != nil {
		return nil, "", nil, fmt.Errorf("--profile %q: %w", profileID, err)
	}

	cfg := config.Load()
	backend, err := app.OpenBackend(cmd.Context(), cfg, logger.NewNop())
	if err != nil {
		return nil, "", nil, err
	}

	store, err := loadProfile(cmd.Context(), backend.Storage, id)
	if err != nil {
		_ = backend.Close()
		return nil, "", nil, err
	}
	return store, id, func() { _ = backend.Close() }, nil
}

// loadProfile refuses an unreachable backend, since Load would report it
// as an empty profile.
func loadProfile(ctx context.Context, st kv.Storage, id string) (*favorites.Store, error) {
	if err := st.Ping(ctx); err != nil {
		return nil, fmt.Errorf("%s storage unavailable: %w", st.Name(), err)
	}

	store := favorites.New(id, st, catalog.New(), logger.NewNop())
	store.Load(ctx)
	return store, nil
}

func runFavoritesList(cmd *cobra.Command, args []string) error {
	store, _, done, err := openProfileStore(cmd)
	if err != nil {
		return err
	}
	defer done()

	records := store.Favorites()
	if listJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	return printFavorites(cmd.OutOrStdout(), records, store.Now())
}

func printFavorites(w io.Writer, records []domain.FavoriteRecord, now time.Time) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No favorites.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTARTUP\tDOMAIN\tADDED\tDAYS LEFT")
	for _, r := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\n",
			r.ID, r.StartupName, r.StartupDomain, r.AddedDate, domain.DaysRemaining(r.Timestamp, now))
	}
	return tw.Flush()
}

func runFavoritesClear(cmd *cobra.Command, args []string) error {
	store, id, done, err := openProfileStore(cmd)
	if err != nil {
		return err
	}
	defer done()

	n := store.Count()
	if err := store.Clear(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d favorites of %s.\n", n, id)
	return nil
}
