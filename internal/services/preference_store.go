package services

import (
	"context"

	"github.com/danaingraham/wanderplan-sub002/internal/cache"
	"github.com/danaingraham/wanderplan-sub002/internal/models"
)

type preferenceRepo interface {
	Get(ctx context.Context, userID int64) (*models.UserPreferences, error)
	Update(ctx context.Context, userID int64, patch models.PreferencePatch) (*models.UserPreferences, error)
	Create(ctx context.Context, userID int64, patch models.PreferencePatch) (*models.UserPreferences, error)
	Delete(ctx context.Context, userID int64) error
}

// PreferenceStore layers the TTL cache over the preference repository.
// Every successful read or write populates the cache; delete evicts it.
type PreferenceStore struct {
	repo  preferenceRepo
	cache *cache.PreferenceCache
}

func NewPreferenceStore(repo preferenceRepo, prefCache *cache.PreferenceCache) *PreferenceStore {
	return &PreferenceStore{repo: repo, cache: prefCache}
}

func (s *PreferenceStore) Get(ctx context.Context, userID int64) (*models.UserPreferences, error) {
	if prefs, ok := s.cache.Get(userID); ok {
		return prefs, nil
	}
	prefs, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(userID, prefs)
	return prefs, nil
}

func (s *PreferenceStore) Update(ctx context.Context, userID int64, patch models.PreferencePatch) (*models.UserPreferences, error) {
	prefs, err := s.repo.Update(ctx, userID, patch)
	if err != nil {
		return nil, err
	}
	s.cache.Set(userID, prefs)
	return prefs, nil
}

func (s *PreferenceStore) Create(ctx context.Context, userID int64, patch models.PreferencePatch) (*models.UserPreferences, error) {
	prefs, err := s.repo.Create(ctx, userID, patch)
	if err != nil {
		return nil, err
	}
	s.cache.Set(userID, prefs)
	return prefs, nil
}

func (s *PreferenceStore) Delete(ctx context.Context, userID int64) error {
	if err := s.repo.Delete(ctx, userID); err != nil {
		return err
	}
	s.cache.Invalidate(userID)
	return nil
}
