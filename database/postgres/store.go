package postgres

import (
	"VaniAssistant/pkg/kvstore"
	contextPkg "VaniAssistant/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

var _ kvstore.Store = (*Store)(nil)

type Store struct {
	db  *sqlx.DB
	log *logrus.Logger
	now func() time.Time
}

func NewStore(db *sqlx.DB, log *logrus.Logger) *Store {
	return &Store{
		db:  db,
		log: log,
		now: time.Now,
	}
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, querySchema); err != nil {
		s.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Error("Failed to create key-value tables")
		return err
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	query, args, err := s.named(ctx, queryGetValue, map[string]interface{}{"key": key})
	if err != nil {
		return nil, err
	}

	var value []byte
	if err := s.db.GetContext(ctx, &value, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, kvstore.ErrNotFound
		}
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"key":        key,
			"error":      err.Error(),
		}).Error("Database error when reading value")
		return nil, err
	}

	return value, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	query, args, err := s.named(ctx, queryUpsertValue, map[string]interface{}{
		"key":        key,
		"value":      value,
		"updated_at": s.now(),
	})
	if err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"key":        key,
			"error":      err.Error(),
		}).Error("Database error when writing value")
		return err
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, q := range []string{queryDeleteValue, queryDeleteList} {
		query, args, err := s.named(ctx, q, map[string]interface{}{"key": key})
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": contextPkg.GetRequestID(ctx),
				"key":        key,
				"error":      err.Error(),
			}).Error("Database error when deleting key")
			return err
		}
	}

	return tx.Commit()
}

// Append serializes writers on the key with a transaction-scoped advisory
// lock, then inserts and trims in the same transaction.
func (s *Store) Append(ctx context.Context, key string, value []byte, capacity int) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	steps := []struct {
		query string
		args  map[string]interface{}
	}{
		{queryLockList, map[string]interface{}{"key": key}},
		{queryAppendList, map[string]interface{}{"key": key, "value": value, "created_at": s.now()}},
	}
	if capacity > 0 {
		steps = append(steps, struct {
			query string
			args  map[string]interface{}
		}{queryTrimList, map[string]interface{}{"key": key, "capacity": capacity}})
	}

	for _, step := range steps {
		query, args, err := s.named(ctx, step.query, step.args)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": contextPkg.GetRequestID(ctx),
				"key":        key,
				"error":      err.Error(),
			}).Error("Database error when appending to list")
			return err
		}
	}

	return tx.Commit()
}

func (s *Store) List(ctx context.Context, key string) ([][]byte, error) {
	query, args, err := s.named(ctx, queryGetList, map[string]interface{}{"key": key})
	if err != nil {
		return nil, err
	}

	values := [][]byte{}
	if err := s.db.SelectContext(ctx, &values, query, args...); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"key":        key,
			"error":      err.Error(),
		}).Error("Database error when reading list")
		return nil, err
	}

	return values, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) named(ctx context.Context, q string, argsKV map[string]interface{}) (string, []interface{}, error) {
	query, args, err := sqlx.Named(q, argsKV)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Failed to build SQL query")
		return "", nil, err
	}
	return s.db.Rebind(query), args, nil
}
