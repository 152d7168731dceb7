package game

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/samber/do/v2"
	"github.com/selfbingo/selfbingo/internal/pkg/common"
	"go.etcd.io/bbolt"
)

var (
	ErrSessionsBucketNotFound = errors.New("sessions bucket doesn't exist")
	ErrStatsBucketNotFound    = errors.New("stats bucket doesn't exist")
	ErrSessionNotFound        = errors.New("session not found")
)

var joinsKey = []byte("joins")

// Store persists paid game entries.
type Store struct {
	DatabaseService *common.DatabaseService
}

func NewStore(i do.Injector) (*Store, error) {
	databaseService, err := do.Invoke[*common.DatabaseService](i)
	if err != nil {
		return nil, fmt.Errorf("failed to create database service: %w", err)
	}

	result := &Store{
		DatabaseService: databaseService,
	}

	return result, nil
}

// SaveSession records a session and bumps the total join counter in one
// transaction.
func (s *Store) SaveSession(session *Session) error {
	marshaled, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	err = s.DatabaseService.DB.Update(func(tx *bbolt.Tx) error {
		sessions := tx.Bucket([]byte(common.GameSessionsBucket))
		if sessions == nil {
			return ErrSessionsBucketNotFound
		}

		stats := tx.Bucket([]byte(common.GameStatsBucket))
		if stats == nil {
			return ErrStatsBucketNotFound
		}

		err := sessions.Put([]byte(session.ID), marshaled)
		if err != nil {
			return fmt.Errorf("failed to put session: %w", err)
		}

		joins := common.BytesToInt64(stats.Get(joinsKey), 0)

		err = stats.Put(joinsKey, common.Int64ToBytes(joins+1))
		if err != nil {
			return fmt.Errorf("failed to put join counter: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (s *Store) Session(id string) (*Session, error) {
	var result *Session

	err := s.DatabaseService.DB.View(func(tx *bbolt.Tx) error {
		sessions := tx.Bucket([]byte(common.GameSessionsBucket))
		if sessions == nil {
			return ErrSessionsBucketNotFound
		}

		marshaled := sessions.Get([]byte(id))
		if marshaled == nil {
			return ErrSessionNotFound
		}

		var session Session

		err := json.Unmarshal(marshaled, &session)
		if err != nil {
			return fmt.Errorf("failed to unmarshal session: %w", err)
		}

		result = &session

		return nil
	})
	if err != nil {
		//nolint:wrapcheck
		return nil, err
	}

	return result, nil
}

func (s *Store) Joins() (int64, error) {
	var result int64

	err := s.DatabaseService.DB.View(func(tx *bbolt.Tx) error {
		stats := tx.Bucket([]byte(common.GameStatsBucket))
		if stats == nil {
			return ErrStatsBucketNotFound
		}

		result = common.BytesToInt64(stats.Get(joinsKey), 0)

		return nil
	})
	if err != nil {
		//nolint:wrapcheck
		return 0, err
	}

	return result, nil
}
