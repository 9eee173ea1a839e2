package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjrosen/spotlight/internal/infrastructure/sqlite"
	"github.com/zjrosen/spotlight/internal/presentation"
	"github.com/zjrosen/spotlight/internal/tour"
)

// completionLister is implemented by stores that keep write times.
type completionLister interface {
	List(ctx context.Context) ([]sqlite.Record, error)
}

func newTourCmd(opts *rootOptions) *cobra.Command {
	tourCmd := &cobra.Command{
		Use:   "tour",
		Short: "Inspect and reset tours",
	}

	var listJSON bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the tours in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := loadCatalog(opts.cfg.ToursFile)
			if err != nil {
				return err
			}
			return runTourList(cmd.OutOrStdout(), catalog, listJSON)
		},
	}
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")

	var statusJSON bool
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show which tours a user has completed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withService(opts, func(svc *tour.Service, store tour.Store, catalog tour.Catalog) error {
				return runTourStatus(cmd.Context(), cmd.OutOrStdout(), svc, store, catalog, opts.cfg.UserID, statusJSON)
			})
		},
	}
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output as JSON")

	var resetJSON bool
	resetCmd := &cobra.Command{
		Use:   "reset <key>",
		Short: "Forget that a tour was completed so it auto-starts again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(opts, func(svc *tour.Service, _ tour.Store, catalog tour.Catalog) error {
				return runTourReset(cmd.Context(), cmd.OutOrStdout(), svc, catalog, args[0], opts.cfg.UserID, resetJSON)
			})
		},
	}
	resetCmd.Flags().BoolVar(&resetJSON, "json", false, "output as JSON")

	tourCmd.AddCommand(listCmd, statusCmd, resetCmd)
	return tourCmd
}

func withService(opts *rootOptions, fn func(*tour.Service, tour.Store, tour.Catalog) error) (err error) {
	catalog, err := loadCatalog(opts.cfg.ToursFile)
	if err != nil {
		return err
	}
	svc, store, closeService, err := openService(opts.cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := closeService(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return fn(svc, store, catalog)
}

func runTourList(w io.Writer, catalog tour.Catalog, asJSON bool) error {
	return presentation.NewFormatter(w, asJSON).FormatTours(presentation.FromCatalog(catalog))
}

// runTourStatus reports every catalog tour. A failed read is reported on its
// row rather than aborting the listing.
func runTourStatus(ctx context.Context, w io.Writer, svc *tour.Service, store tour.Store, catalog tour.Catalog, userID string, asJSON bool) error {
	completed, err := completionTimes(ctx, store)
	if err != nil {
		return err
	}

	statuses := make([]presentation.StatusDTO, 0, len(catalog.Tours))
	for _, d := range catalog.Tours {
		dto := presentation.FromDefinition(d)
		s := presentation.StatusDTO{Key: d.Key, Name: dto.Name, User: userID}
		done, err := svc.IsDone(ctx, d.Key, userID)
		if err != nil {
			s.Error = err.Error()
		}
		s.Done = done
		if at, ok := completed[tour.CompletionKey(d.Key, userID)]; ok && done {
			s.CompletedAt = &at
		}
		statuses = append(statuses, s)
	}
	return presentation.NewFormatter(w, asJSON).FormatStatuses(statuses)
}

// completionTimes maps completion keys to their write time. Stores that do not
// keep times yield an empty map.
func completionTimes(ctx context.Context, store tour.Store) (map[string]time.Time, error) {
	lister, ok := store.(completionLister)
	if !ok {
		return nil, nil
	}
	records, err := lister.List(ctx)
	if err != nil {
		return nil, err
	}
	times := make(map[string]time.Time, len(records))
	for _, r := range records {
		if r.Value == tour.DoneValue {
			times[r.Key] = r.UpdatedAt
		}
	}
	return times, nil
}

func runTourReset(ctx context.Context, w io.Writer, svc *tour.Service, catalog tour.Catalog, key, userID string, asJSON bool) error {
	if _, ok := catalog.Find(key); !ok {
		return fmt.Errorf("unknown tour %q (see 'spotlight tour list')", key)
	}
	if err := svc.Reset(ctx, key, userID); err != nil {
		return err
	}
	f := presentation.NewFormatter(w, asJSON)
	if userID == "" {
		return f.FormatMessage("Reset %s", key)
	}
	return f.FormatMessage("Reset %s for %s", key, userID)
}
