package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alem-hub/studentbase/internal/domain/shared"
	"github.com/alem-hub/studentbase/internal/domain/student"
	"github.com/alem-hub/studentbase/pkg/logger"
)

func (a *app) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Delete the record stored at the location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			location := a.cfg.Store.Location

			return a.withStore(cmd.Context(), func(ctx context.Context, store student.Store) error {
				remover, ok := store.(student.Remover)
				if !ok {
					return shared.NewDomainError("cli", "Delete", shared.ErrInvalidInput,
						fmt.Sprintf("backend %s cannot delete records", a.cfg.Store.Backend))
				}
				if err := remover.Delete(ctx, location); err != nil {
					return err
				}
				a.log.Info("record deleted", logger.Location(location))
				fmt.Fprintln(a.streams.Out, msgDeleted)
				return nil
			})
		},
	}
}

// checkCmd connects to the configured backend and pings it.
func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify that the configured store is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			backend := string(a.cfg.Store.Backend)

			return a.withStore(cmd.Context(), func(ctx context.Context, store student.Store) error {
				if checker, ok := store.(student.HealthChecker); ok {
					if err := checker.Ping(ctx); err != nil {
						return err
					}
				}
				a.log.Debug("store reachable", logger.Backend(backend))
				fmt.Fprintf(a.streams.Out, msgStoreReady+"\n", backend)
				return nil
			})
		},
	}
}
