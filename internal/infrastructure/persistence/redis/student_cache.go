package redis

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/alem-hub/studentbase/internal/domain/shared"
	"github.com/alem-hub/studentbase/internal/domain/student"
	"github.com/alem-hub/studentbase/internal/infrastructure/persistence/codec"
	"github.com/alem-hub/studentbase/pkg/logger"
)

const domainName = "redis"

// StudentStore implements student.Store with one Redis key per location.
type StudentStore struct {
	cache *Cache
	ttl   time.Duration
	log   *logger.Logger
}

// NewStudentStore creates a new StudentStore. A zero ttl keeps records forever.
func NewStudentStore(cache *Cache, ttl time.Duration, log *logger.Logger) *StudentStore {
	if log == nil {
		log = logger.Nop()
	}
	return &StudentStore{
		cache: cache,
		ttl:   ttl,
		log:   log.With(logger.Backend(domainName)),
	}
}

var (
	_ student.Store         = (*StudentStore)(nil)
	_ student.Remover       = (*StudentStore)(nil)
	_ student.HealthChecker = (*StudentStore)(nil)
)

// Save stores the encoded record, replacing any previous value.
func (s *StudentStore) Save(ctx context.Context, location string, st *student.Student) error {
	if strings.TrimSpace(location) == "" {
		return shared.NewDomainError(domainName, "Save", shared.ErrInvalidInput, "location is empty")
	}

	payload, err := codec.Marshal(st)
	if err != nil {
		return err
	}

	if err := s.cache.SetBytes(ctx, StudentRecordKey(location), payload, s.ttl); err != nil {
		err = shared.IOError(domainName, "Save", "failed to store record", err)
		s.logFailure("Save", location, err)
		return err
	}

	s.log.Debug("record saved", logger.Location(location), logger.Bytes(len(payload)))
	return nil
}

// Load reads and decodes the record stored at location.
func (s *StudentStore) Load(ctx context.Context, location string) (*student.Student, error) {
	if strings.TrimSpace(location) == "" {
		return nil, shared.NewDomainError(domainName, "Load", shared.ErrInvalidInput, "location is empty")
	}

	payload, err := s.cache.GetBytes(ctx, StudentRecordKey(location))
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			err = shared.IOError(domainName, "Load", "no record at location", errors.Join(shared.ErrNotFound, err))
		} else {
			err = shared.IOError(domainName, "Load", "failed to read record", err)
		}
		s.logFailure("Load", location, err)
		return nil, err
	}

	st, err := codec.Unmarshal(payload)
	if err != nil {
		s.logFailure("Load", location, err)
		return nil, err
	}

	return st, nil
}

// Delete removes the record stored at location. Deleting a missing key is not an error.
func (s *StudentStore) Delete(ctx context.Context, location string) error {
	if strings.TrimSpace(location) == "" {
		return shared.NewDomainError(domainName, "Delete", shared.ErrInvalidInput, "location is empty")
	}
	if err := s.cache.Delete(ctx, StudentRecordKey(location)); err != nil {
		err = shared.IOError(domainName, "Delete", "failed to delete record", err)
		s.logFailure("Delete", location, err)
		return err
	}
	return nil
}

// Ping checks that the Redis server answers.
func (s *StudentStore) Ping(ctx context.Context) error {
	if err := s.cache.Ping(ctx); err != nil {
		return shared.IOError(domainName, "Ping", "redis unreachable", err)
	}
	return nil
}

func (s *StudentStore) logFailure(op, location string, err error) {
	s.log.Error("store operation failed",
		logger.Operation(op),
		logger.Location(location),
		logger.ErrorKind(shared.KindOf(err)),
		logger.Err(err),
	)
}
