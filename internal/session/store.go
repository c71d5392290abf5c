// Package session implements the session-store surface over the
// repository. The wallet address and the companion contract address
// live in one session row, written wholesale and cleared on disconnect.
package session

import (
	"errors"

	"gorm.io/gorm"

	"github.com/habithero/habitherod/internal/models"
)

// Store persists sessions through the repository.
type Store struct {
	repo models.Repository
}

// NewStore creates a repository-backed session store.
func NewStore(repo models.Repository) *Store {
	return &Store{repo: repo}
}

func (s *Store) Get(id string) (*models.Session, error) {
	session, err := s.repo.GetSession(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, models.ErrSessionNotFound) {
			return nil, models.ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

func (s *Store) Put(session *models.Session) error {
	return s.repo.SaveSession(session)
}

func (s *Store) Clear(id string) error {
	return s.repo.DeleteSession(id)
}
