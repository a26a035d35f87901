package usecase

import (
	"context"
	"fmt"

	"github.com/macrolens/nutrilog/internal/domain"
	"github.com/macrolens/nutrilog/internal/infrastructure/kv"
)

// SettingsService stores the selected daily value profile.
type SettingsService struct {
	store          domain.KeyValueStore
	key            string
	defaultProfile domain.Profile
}

// NewSettingsService creates a settings service. Keys are namespaced by appID.
func NewSettingsService(store domain.KeyValueStore, appID string, defaultProfile domain.Profile) *SettingsService {
	if !defaultProfile.Valid() {
		defaultProfile = domain.ProfileAdult
	}
	return &SettingsService{
		store:          store,
		key:            appID + "-profile",
		defaultProfile: defaultProfile,
	}
}

// Profile returns the stored profile, or the default when none is stored or
// the stored one is unknown.
func (s *SettingsService) Profile(ctx context.Context) (domain.Profile, error) {
	var profile domain.Profile
	ok, err := kv.ReadJSON(ctx, s.store, s.key, &profile)
	if err != nil {
		return "", fmt.Errorf("read profile: %w", err)
	}
	if !ok || !profile.Valid() {
		return s.defaultProfile, nil
	}
	return profile, nil
}

// SetProfile stores profile.
func (s *SettingsService) SetProfile(ctx context.Context, profile domain.Profile) error {
	if !profile.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidProfile, profile)
	}
	return kv.WriteJSON(ctx, s.store, s.key, profile)
}
