package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alem-hub/studentbase/internal/domain/student"
	"github.com/alem-hub/studentbase/pkg/logger"
)

func (a *app) saveCmd() *cobra.Command {
	var (
		name      string
		firstName string
		birthYear int
	)

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save a student record without prompting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st := student.NewStudent(name, firstName, birthYear)
			location := a.cfg.Store.Location

			return a.withStore(cmd.Context(), func(ctx context.Context, store student.Store) error {
				if err := store.Save(ctx, location, st); err != nil {
					return err
				}
				a.log.Info("record saved", logger.Location(location), logger.StudentName(firstName, name))
				printRecord(a.streams.Out, st)
				fmt.Fprintln(a.streams.Out, msgSaved)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "family name")
	cmd.Flags().StringVar(&firstName, "first-name", "", "given name")
	cmd.Flags().IntVar(&birthYear, "birth-year", 0, "year of birth")
	_ = cmd.MarkFlagRequired("birth-year")
	return cmd
}

func (a *app) loadCmd() *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load the stored student record and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			location := a.cfg.Store.Location

			return a.withStore(cmd.Context(), func(ctx context.Context, store student.Store) error {
				st, err := store.Load(ctx, location)
				if err != nil {
					return err
				}
				if !cmd.Flags().Changed("year") {
					year = a.currentYear()
				}
				printRecordWithAge(a.streams.Out, st, year)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "year used for the age (default: current year)")
	return cmd
}
