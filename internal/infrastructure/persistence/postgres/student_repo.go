package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alem-hub/studentbase/internal/domain/shared"
	"github.com/alem-hub/studentbase/internal/domain/student"
	"github.com/alem-hub/studentbase/internal/infrastructure/persistence/codec"
	"github.com/alem-hub/studentbase/pkg/logger"
)

const domainName = "postgres"

// ══════════════════════════════════════════════════════════════════════════════
// STUDENT STORE IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// StudentStore implements student.Store for PostgreSQL.
type StudentStore struct {
	conn *Connection
	log  *logger.Logger
	now  func() time.Time
}

// NewStudentStore creates a new StudentStore.
func NewStudentStore(conn *Connection, log *logger.Logger) *StudentStore {
	if log == nil {
		log = logger.Nop()
	}
	return &StudentStore{
		conn: conn,
		log:  log.With(logger.Backend(domainName)),
		now:  time.Now,
	}
}

var (
	_ student.Store         = (*StudentStore)(nil)
	_ student.Remover       = (*StudentStore)(nil)
	_ student.HealthChecker = (*StudentStore)(nil)
)

// Save upserts the encoded record, fully replacing the previous payload.
func (r *StudentStore) Save(ctx context.Context, location string, s *student.Student) error {
	if strings.TrimSpace(location) == "" {
		return shared.NewDomainError(domainName, "Save", shared.ErrInvalidInput, "location is empty")
	}

	payload, err := codec.Marshal(s)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO student_records (location, id, payload, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (location) DO UPDATE SET
			id = EXCLUDED.id,
			payload = EXCLUDED.payload,
			updated_at = EXCLUDED.updated_at
	`

	ctx, cancel := r.conn.queryContext(ctx)
	defer cancel()

	start := time.Now()
	_, err = r.conn.Exec(ctx, query, location, uuid.New(), payload, r.now().UTC())
	if err != nil {
		err = shared.IOError(domainName, "Save", "failed to upsert record", err)
		r.logFailure("Save", location, err)
		return err
	}

	r.log.Debug("record saved",
		logger.Location(location),
		logger.Bytes(len(payload)),
		logger.Latency(time.Since(start)),
	)
	return nil
}

// Load fetches the payload stored at location and decodes it.
func (r *StudentStore) Load(ctx context.Context, location string) (*student.Student, error) {
	if strings.TrimSpace(location) == "" {
		return nil, shared.NewDomainError(domainName, "Load", shared.ErrInvalidInput, "location is empty")
	}

	query := `SELECT payload FROM student_records WHERE location = $1`

	ctx, cancel := r.conn.queryContext(ctx)
	defer cancel()

	var payload []byte
	if err := r.conn.QueryRow(ctx, query, location).Scan(&payload); err != nil {
		if IsNoRows(err) {
			err = shared.IOError(domainName, "Load", "no record at location", errors.Join(shared.ErrNotFound, err))
		} else {
			err = shared.IOError(domainName, "Load", "failed to query record", err)
		}
		r.logFailure("Load", location, err)
		return nil, err
	}

	s, err := codec.Unmarshal(payload)
	if err != nil {
		r.logFailure("Load", location, err)
		return nil, err
	}

	return s, nil
}

// Delete removes the record at location. Deleting a missing location is not an error.
func (r *StudentStore) Delete(ctx context.Context, location string) error {
	if strings.TrimSpace(location) == "" {
		return shared.NewDomainError(domainName, "Delete", shared.ErrInvalidInput, "location is empty")
	}

	ctx, cancel := r.conn.queryContext(ctx)
	defer cancel()

	if _, err := r.conn.Exec(ctx, `DELETE FROM student_records WHERE location = $1`, location); err != nil {
		err = shared.IOError(domainName, "Delete", "failed to delete record", err)
		r.logFailure("Delete", location, err)
		return err
	}
	return nil
}

// Ping checks that the database answers.
func (r *StudentStore) Ping(ctx context.Context) error {
	if err := r.conn.Ping(ctx); err != nil {
		return shared.IOError(domainName, "Ping", "database unreachable", err)
	}
	return nil
}

func (r *StudentStore) logFailure(op, location string, err error) {
	r.log.Error("store operation failed",
		logger.Operation(op),
		logger.Location(location),
		logger.ErrorKind(shared.KindOf(err)),
		logger.Err(err),
	)
}
