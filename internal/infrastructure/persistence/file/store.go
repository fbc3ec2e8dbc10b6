// Package file implements the local-filesystem student store: one record per
// file, encoded with the codec package.
package file

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alem-hub/studentbase/internal/domain/shared"
	"github.com/alem-hub/studentbase/internal/domain/student"
	"github.com/alem-hub/studentbase/internal/infrastructure/persistence/codec"
	"github.com/alem-hub/studentbase/pkg/logger"
)

const (
	domainName = "file"

	// DefaultFileMode is used when creating a record file.
	DefaultFileMode fs.FileMode = 0o644
)

// Store implements student.Store on top of plain files.
// Relative locations are resolved against the root directory.
type Store struct {
	root string
	log  *logger.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Store) { s.log = l }
}

// NewStore creates a file store rooted at root ("" means the working directory).
func NewStore(root string, opts ...Option) *Store {
	s := &Store{
		root: root,
		log:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Backend(domainName))
	return s
}

var (
	_ student.Store         = (*Store)(nil)
	_ student.Remover       = (*Store)(nil)
	_ student.HealthChecker = (*Store)(nil)
)

// Path returns the file path a location resolves to.
func (s *Store) Path(location string) string {
	if filepath.IsAbs(location) || s.root == "" {
		return filepath.Clean(location)
	}
	return filepath.Join(s.root, location)
}

// Save encodes st and replaces the contents of the location's file.
// A failed write may leave the file truncated; no recovery is attempted.
func (s *Store) Save(ctx context.Context, location string, st *student.Student) (err error) {
	start := time.Now()
	path, err := s.resolve("Save", location)
	if err != nil {
		return err
	}
	if st == nil {
		return shared.NewDomainError(domainName, "Save", shared.ErrInvalidInput, "record is nil")
	}
	if err := ctx.Err(); err != nil {
		return shared.IOError(domainName, "Save", "operation cancelled", err)
	}

	defer func() { s.logResult("Save", path, start, err) }()

	data, err := codec.Marshal(st)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, DefaultFileMode)
	if err != nil {
		return shared.IOError(domainName, "Save", "failed to open file", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = shared.IOError(domainName, "Save", "failed to close file", cerr)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return shared.IOError(domainName, "Save", "failed to write file", err)
	}
	if err := f.Sync(); err != nil {
		return shared.IOError(domainName, "Save", "failed to sync file", err)
	}

	return nil
}

// Load reads the location's file and decodes one record from it.
func (s *Store) Load(ctx context.Context, location string) (st *student.Student, err error) {
	start := time.Now()
	path, err := s.resolve("Load", location)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, shared.IOError(domainName, "Load", "operation cancelled", err)
	}

	defer func() { s.logResult("Load", path, start, err) }()

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, shared.IOError(domainName, "Load", "file does not exist", errors.Join(shared.ErrNotFound, err))
		}
		return nil, shared.IOError(domainName, "Load", "failed to open file", err)
	}
	defer f.Close()

	return codec.Decode(f)
}

// Delete removes the location's file. Deleting a missing file is not an error.
func (s *Store) Delete(ctx context.Context, location string) error {
	path, err := s.resolve("Delete", location)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return shared.IOError(domainName, "Delete", "operation cancelled", err)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return shared.IOError(domainName, "Delete", "failed to remove file", err)
	}
	return nil
}

// Ping checks that the root directory exists and is a directory.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return shared.IOError(domainName, "Ping", "operation cancelled", err)
	}

	dir := s.root
	if dir == "" {
		dir = "."
	}
	info, err := os.Stat(dir)
	if err != nil {
		return shared.IOError(domainName, "Ping", "root directory unavailable", err)
	}
	if !info.IsDir() {
		return shared.NewDomainError(domainName, "Ping", shared.ErrIO, "root is not a directory")
	}
	return nil
}

func (s *Store) resolve(op, location string) (string, error) {
	if strings.TrimSpace(location) == "" {
		return "", shared.NewDomainError(domainName, op, shared.ErrInvalidInput, "location is empty")
	}
	return s.Path(location), nil
}

func (s *Store) logResult(op, path string, start time.Time, err error) {
	fields := []logger.Field{
		logger.Operation(op),
		logger.Location(path),
		logger.Latency(time.Since(start)),
	}
	if err != nil {
		s.log.Error("store operation failed", append(fields, logger.ErrorKind(shared.KindOf(err)), logger.Err(err))...)
		return
	}
	s.log.Debug("store operation completed", fields...)
}
