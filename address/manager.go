package address

import (
	"context"
	"errors"
	"log"

	"github.com/HimashaKodikara/ShuttlemateClient-sub000/clients"
	"github.com/HimashaKodikara/ShuttlemateClient-sub000/models"
)

// ErrLoginRequired is returned when the pipeline reaches address
// capture without a user identity. The caller routes to the sign-in
// interstitial instead of the form.
var ErrLoginRequired = errors.New("User ID not found")

// ProfileStore is the backend surface the manager needs.
type ProfileStore interface {
	GetUserProfile(ctx context.Context, userID string) (*models.AddressProfile, error)
	PutUserProfile(ctx context.Context, userID string, profile models.AddressProfile) error
}

// Manager loads and saves the shipping profile, gating every call on a
// present identity.
type Manager struct {
	store ProfileStore
}

func NewManager(store ProfileStore) *Manager {
	return &Manager{store: store}
}

// LoadProfile fetches the identity's shipping profile. A missing
// identity is rejected before any network call; a user with no stored
// profile gets an empty one so the form starts blank.
func (m *Manager) LoadProfile(ctx context.Context, userID string) (models.AddressProfile, error) {
	if userID == "" {
		return models.AddressProfile{}, ErrLoginRequired
	}

	profile, err := m.store.GetUserProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, clients.ErrProfileNotFound) {
			return models.AddressProfile{}, nil
		}
		return models.AddressProfile{}, err
	}
	return *profile, nil
}

// SaveProfile overwrites the identity's profile wholesale. Failures are
// recoverable; the caller keeps the entered field values and may retry.
func (m *Manager) SaveProfile(ctx context.Context, userID string, profile models.AddressProfile) error {
	if userID == "" {
		return ErrLoginRequired
	}

	if err := m.store.PutUserProfile(ctx, userID, profile); err != nil {
		return err
	}
	log.Printf("Saved shipping profile for user %s", userID)
	return nil
}
