package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alem-hub/studentbase/internal/domain/shared"
	"github.com/alem-hub/studentbase/internal/domain/student"
	"github.com/alem-hub/studentbase/pkg/logger"
)

func (a *app) demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Prompt for a student, save it and read it back",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runDemo(cmd.Context())
		},
	}
}

// runDemo reads a record from the input, saves it and loads it back.
// A failed save is reported and the load is still attempted.
func (a *app) runDemo(ctx context.Context) error {
	st, err := promptStudent(bufio.NewReader(a.streams.In), a.streams.Out)
	if err != nil {
		return err
	}
	printRecord(a.streams.Out, st)

	location := a.cfg.Store.Location
	return a.withStore(ctx, func(ctx context.Context, store student.Store) error {
		var failed bool

		if err := store.Save(ctx, location, st); err != nil {
			reportError(a.streams.Err, err)
			failed = true
		} else {
			fmt.Fprintln(a.streams.Out, msgSaved)
			a.log.Info("record saved", logger.Location(location), logger.StudentName(st.FirstName(), st.Name()))
		}

		loaded, err := store.Load(ctx, location)
		if err != nil {
			reportError(a.streams.Err, err)
			failed = true
		} else {
			printRecordWithAge(a.streams.Out, loaded, a.currentYear())
			if !failed {
				if loaded.Equal(st) {
					fmt.Fprintln(a.streams.Out, msgReloadMatches)
				} else {
					fmt.Fprintln(a.streams.Out, msgReloadDiffers)
					a.log.Warn("reloaded record differs from the saved one", logger.Location(location))
				}
			}
		}

		if failed {
			return errReported
		}
		return nil
	})
}

// promptStudent asks for the three fields in order. Names are taken as
// entered, minus the line terminator; the year must be an integer.
func promptStudent(in *bufio.Reader, out io.Writer) (*student.Student, error) {
	fmt.Fprint(out, promptName)
	name, err := readLine(in)
	if err != nil {
		return nil, err
	}

	fmt.Fprint(out, promptFirstName)
	firstName, err := readLine(in)
	if err != nil {
		return nil, err
	}

	fmt.Fprint(out, promptBirthYear)
	line, err := readLine(in)
	if err != nil {
		return nil, err
	}
	year, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return nil, shared.WrapError("cli", "Prompt", shared.ErrInvalidInput, "birth year must be an integer", err)
	}

	return student.NewStudent(name, firstName, year), nil
}

// readLine returns the next line without its terminator. A final line
// without a newline is accepted; end of input before any byte is not.
func readLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", shared.IOError("cli", "Prompt", "failed to read input", err)
		}
		if line == "" {
			return "", shared.NewDomainError("cli", "Prompt", shared.ErrInvalidInput, "unexpected end of input")
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}
