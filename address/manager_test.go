package address

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HimashaKodikara/ShuttlemateClient-sub000/clients"
	"github.com/HimashaKodikara/ShuttlemateClient-sub000/models"
)

type fakeStore struct {
	profile *models.AddressProfile
	getErr  error
	putErr  error

	getCalls int
	putCalls int
	saved    models.AddressProfile
}

func (f *fakeStore) GetUserProfile(context.Context, string) (*models.AddressProfile, error) {
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.profile, nil
}

func (f *fakeStore) PutUserProfile(_ context.Context, _ string, profile models.AddressProfile) error {
	f.putCalls++
	if f.putErr != nil {
		return f.putErr
	}
	f.saved = profile
	return nil
}

func sampleProfile() models.AddressProfile {
	return models.AddressProfile{
		Phone:      "0771234567",
		Line1:      "12 Lake Road",
		PostalCode: "10400",
		IsDefault:  true,
	}
}

func TestLoadProfileRequiresIdentity(t *testing.T) {
	store := &fakeStore{}
	m := NewManager(store)

	_, err := m.LoadProfile(context.Background(), "")
	require.ErrorIs(t, err, ErrLoginRequired)
	assert.Equal(t, "User ID not found", err.Error())
	assert.Zero(t, store.getCalls, "empty identity must be rejected before the network")
}

func TestSaveProfileRequiresIdentity(t *testing.T) {
	store := &fakeStore{}
	m := NewManager(store)

	err := m.SaveProfile(context.Background(), "", sampleProfile())
	require.ErrorIs(t, err, ErrLoginRequired)
	assert.Zero(t, store.putCalls)
}

func TestLoadProfileReturnsStoredProfile(t *testing.T) {
	profile := sampleProfile()
	store := &fakeStore{profile: &profile}
	m := NewManager(store)

	got, err := m.LoadProfile(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, profile, got)
}

func TestLoadProfileMissingStartsBlank(t *testing.T) {
	store := &fakeStore{getErr: clients.ErrProfileNotFound}
	m := NewManager(store)

	got, err := m.LoadProfile(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, models.AddressProfile{}, got)
}

func TestSaveProfileOverwritesWholesale(t *testing.T) {
	store := &fakeStore{}
	m := NewManager(store)

	profile := sampleProfile()
	profile.Line2 = ""
	require.NoError(t, m.SaveProfile(context.Background(), "uid-1", profile))
	assert.Equal(t, profile, store.saved)
}

func TestSaveProfileFailureIsRecoverable(t *testing.T) {
	store := &fakeStore{putErr: errors.New("backend down")}
	m := NewManager(store)

	err := m.SaveProfile(context.Background(), "uid-1", sampleProfile())
	require.Error(t, err)

	// A retry with the same fields goes through once the backend is back.
	store.putErr = nil
	require.NoError(t, m.SaveProfile(context.Background(), "uid-1", sampleProfile()))
	assert.Equal(t, 2, store.putCalls)
}
