package services

import (
	"context"
	"testing"

	"barterhub/internal/domain/offer"
	barter_errors "barterhub/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfferCreate_RequiresTitle(t *testing.T) {
	e := newTestEnv(t)
	alice := e.createUser(t, "alice")

	_, err := e.offers.Create(context.Background(), alice.ID, CreateOfferInput{Title: "   "})
	assert.ErrorIs(t, err, barter_errors.ErrInvalidInput)
}

func TestOfferCreate_TrimsFields(t *testing.T) {
	e := newTestEnv(t)
	alice := e.createUser(t, "alice")

	o, err := e.offers.Create(context.Background(), alice.ID, CreateOfferInput{
		Title:       "  Vinyl collection  ",
		Description: "  70s funk, good condition  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Vinyl collection", o.Title)
	assert.Equal(t, "70s funk, good condition", o.Description)
	assert.Equal(t, offer.StatusActive, o.Status)
}

func TestOfferRemove_OwnerOnly(t *testing.T) {
	e := newTestEnv(t)
	alice := e.createUser(t, "alice")
	bob := e.createUser(t, "bob")
	o := e.createOffer(t, alice.ID, "Vinyl collection")

	err := e.offers.Remove(context.Background(), o.ID, bob.ID)
	assert.ErrorIs(t, err, barter_errors.ErrForbidden)
}

func TestOfferRemove_SoftDeleteIsIdempotent(t *testing.T) {
	e := newTestEnv(t)
	alice := e.createUser(t, "alice")
	o := e.createOffer(t, alice.ID, "Vinyl collection")

	require.NoError(t, e.offers.Remove(context.Background(), o.ID, alice.ID))
	require.NoError(t, e.offers.Remove(context.Background(), o.ID, alice.ID))

	// The row survives removal; only its status flips.
	removed, err := e.offers.GetByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, offer.StatusRemoved, removed.Status)
}

func TestOfferListActive_ExcludesRemoved(t *testing.T) {
	e := newTestEnv(t)
	alice := e.createUser(t, "alice")
	kept := e.createOffer(t, alice.ID, "Vinyl collection")
	removed := e.createOffer(t, alice.ID, "Polaroid camera")

	require.NoError(t, e.offers.Remove(context.Background(), removed.ID, alice.ID))

	offers, total, err := e.offers.ListActive(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, offers, 1)
	assert.Equal(t, kept.ID, offers[0].ID)
}

func TestOfferRemove_KeepsExistingInterests(t *testing.T) {
	e := newTestEnv(t)
	alice := e.createUser(t, "alice")
	bob := e.createUser(t, "bob")
	o := e.createOffer(t, alice.ID, "Vinyl collection")

	in, _ := e.express(t, o.ID, bob.ID)
	require.NoError(t, e.offers.Remove(context.Background(), o.ID, alice.ID))

	// The interest row is untouched; only new interest is blocked.
	current := e.getInterest(t, in.ID)
	assert.Equal(t, in.ID, current.ID)

	carol := e.createUser(t, "carol")
	_, _, err := e.interests.ExpressInterest(context.Background(), o.ID, carol.ID)
	assert.ErrorIs(t, err, barter_errors.ErrNotFound)
}
