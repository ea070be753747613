package services

import (
	"context"
	"testing"

	"barterhub/internal/domain/interest"
	barter_errors "barterhub/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpressInterest_RejectsOwnOffer(t *testing.T) {
	e := newTestEnv(t)
	alice := e.createUser(t, "alice")
	o := e.createOffer(t, alice.ID, "Vinyl collection")

	_, _, err := e.interests.ExpressInterest(context.Background(), o.ID, alice.ID)
	assert.ErrorIs(t, err, barter_errors.ErrSelfInterest)
}

func TestExpressInterest_RejectsDuplicate(t *testing.T) {
	e := newTestEnv(t)
	alice := e.createUser(t, "alice")
	bob := e.createUser(t, "bob")
	o := e.createOffer(t, alice.ID, "Vinyl collection")

	e.express(t, o.ID, bob.ID)

	_, _, err := e.interests.ExpressInterest(context.Background(), o.ID, bob.ID)
	assert.ErrorIs(t, err, barter_errors.ErrDuplicateInterest)
}

func TestExpressInterest_AllowedAgainAfterCancel(t *testing.T) {
	e := newTestEnv(t)
	alice := e.createUser(t, "alice")
	bob := e.createUser(t, "bob")
	o := e.createOffer(t, alice.ID, "Vinyl collection")

	in, _ := e.express(t, o.ID, bob.ID)
	require.NoError(t, e.interests.CancelInterest(context.Background(), in.ID, bob.ID))

	again, outcome := e.express(t, o.ID, bob.ID)
	assert.False(t, outcome.Matched)
	assert.Equal(t, interest.StatusProposed, again.Status)
}

func TestExpressInterest_RemovedOfferNotFound(t *testing.T) {
	e := newTestEnv(t)
	alice := e.createUser(t, "alice")
	bob := e.createUser(t, "bob")
	o := e.createOffer(t, alice.ID, "Vinyl collection")

	require.NoError(t, e.offers.Remove(context.Background(), o.ID, alice.ID))

	_, _, err := e.interests.ExpressInterest(context.Background(), o.ID, bob.ID)
	assert.ErrorIs(t, err, barter_errors.ErrNotFound)
}

func TestExpressInterest_MutualInterestMatches(t *testing.T) {
	e := newTestEnv(t)
	alice := e.createUser(t, "alice")
	bob := e.createUser(t, "bob")
	offerA := e.createOffer(t, alice.ID, "Vinyl collection")
	offerB := e.createOffer(t, bob.ID, "Oak bookshelf")

	inB, outcome := e.express(t, offerA.ID, bob.ID)
	require.False(t, outcome.Matched)
	assert.Equal(t, interest.StatusProposed, inB.Status)

	inA, outcome := e.express(t, offerB.ID, alice.ID)
	require.True(t, outcome.Matched)
	assert.NotZero(t, outcome.ChatID)
	assert.Equal(t, interest.StatusAccepted, inA.Status)

	// Both sides promoted, not just the triggering one.
	assert.Equal(t, interest.StatusAccepted, e.getInterest(t, inB.ID).Status)

	c, err := e.chats.GetByPair(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, outcome.ChatID, c.ID)
}

func TestExpressInterest_MatchIsOrderIndependent(t *testing.T) {
	e := newTestEnv(t)
	alice := e.createUser(t, "alice")
	bob := e.createUser(t, "bob")
	offerA := e.createOffer(t, alice.ID, "Vinyl collection")
	offerB := e.createOffer(t, bob.ID, "Oak bookshelf")

	// Reverse order from the test above: alice first.
	_, outcome := e.express(t, offerB.ID, alice.ID)
	require.False(t, outcome.Matched)

	_, outcome = e.express(t, offerA.ID, bob.ID)
	assert.True(t, outcome.Matched)
}

func TestExpressInterest_MatchPromotesAllProposedBetweenPair(t *testing.T) {
	e := newTestEnv(t)
	alice := e.createUser(t, "alice")
	bob := e.createUser(t, "bob")
	offerA1 := e.createOffer(t, alice.ID, "Vinyl collection")
	offerA2 := e.createOffer(t, alice.ID, "Polaroid camera")
	offerB := e.createOffer(t, bob.ID, "Oak bookshelf")

	in1, _ := e.express(t, offerA1.ID, bob.ID)
	in2, _ := e.express(t, offerA2.ID, bob.ID)

	_, outcome := e.express(t, offerB.ID, alice.ID)
	require.True(t, outcome.Matched)

	assert.Equal(t, interest.StatusAccepted, e.getInterest(t, in1.ID).Status)
	assert.Equal(t, interest.StatusAccepted, e.getInterest(t, in2.ID).Status)
}

func TestExpressInterest_NoMatchAcrossUnrelatedUsers(t *testing.T) {
	e := newTestEnv(t)
	alice := e.createUser(t, "alice")
	bob := e.createUser(t, "bob")
	carol := e.createUser(t, "carol")
	offerA := e.createOffer(t, alice.ID, "Vinyl collection")
	offerC := e.createOffer(t, carol.ID, "Monstera cuttings")

	// bob wants alice's offer, alice wants carol's: no cycle, no match.
	_, outcome := e.express(t, offerA.ID, bob.ID)
	require.False(t, outcome.Matched)

	_, outcome = e.express(t, offerC.ID, alice.ID)
	assert.False(t, outcome.Matched)
}

func TestCancelInterest_OnlyHolderMayCancel(t *testing.T) {
	e := newTestEnv(t)
	alice := e.createUser(t, "alice")
	bob := e.createUser(t, "bob")
	o := e.createOffer(t, alice.ID, "Vinyl collection")

	in, _ := e.express(t, o.ID, bob.ID)

	err := e.interests.CancelInterest(context.Background(), in.ID, alice.ID)
	assert.ErrorIs(t, err, barter_errors.ErrForbidden)
}

func TestCancelInterest_AcceptedLeavesCounterpartAccepted(t *testing.T) {
	e := newTestEnv(t)
	alice := e.createUser(t, "alice")
	bob := e.createUser(t, "bob")
	offerA := e.createOffer(t, alice.ID, "Vinyl collection")
	offerB := e.createOffer(t, bob.ID, "Oak bookshelf")

	inA, inB := e.mutualMatch(t, alice, bob, offerA, offerB)

	require.NoError(t, e.interests.CancelInterest(context.Background(), inA.ID, alice.ID))

	_, err := e.repos.Interests.GetByID(context.Background(), inA.ID)
	assert.ErrorIs(t, err, barter_errors.ErrNotFound)
	assert.Equal(t, interest.StatusAccepted, e.getInterest(t, inB.ID).Status)
}

func TestCancelInterest_BlockedOnRealized(t *testing.T) {
	e := newTestEnv(t)
	alice := e.createUser(t, "alice")
	bob := e.createUser(t, "bob")
	offerA := e.createOffer(t, alice.ID, "Vinyl collection")
	offerB := e.createOffer(t, bob.ID, "Oak bookshelf")

	inA, _ := e.mutualMatch(t, alice, bob, offerA, offerB)

	_, err := e.realizations.Realize(context.Background(), inA.ID, alice.ID)
	require.NoError(t, err)

	err = e.interests.CancelInterest(context.Background(), inA.ID, alice.ID)
	assert.ErrorIs(t, err, barter_errors.ErrAlreadyRealized)
}

func TestCountForOffer_UsesAndInvalidatesCache(t *testing.T) {
	e := newTestEnv(t)
	cache := newFakeCountCache()
	e.interests.counts = cache

	alice := e.createUser(t, "alice")
	bob := e.createUser(t, "bob")
	o := e.createOffer(t, alice.ID, "Vinyl collection")

	count, err := e.interests.CountForOffer(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// First read populated the cache.
	cached, ok := cache.GetCount(context.Background(), o.ID)
	require.True(t, ok)
	assert.Equal(t, int64(0), cached)

	e.express(t, o.ID, bob.ID)

	// The write invalidated the stale entry.
	_, ok = cache.GetCount(context.Background(), o.ID)
	assert.False(t, ok)

	count, err = e.interests.CountForOffer(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestListForUser_ReturnsOldestFirst(t *testing.T) {
	e := newTestEnv(t)
	alice := e.createUser(t, "alice")
	bob := e.createUser(t, "bob")
	o1 := e.createOffer(t, alice.ID, "Vinyl collection")
	o2 := e.createOffer(t, alice.ID, "Polaroid camera")

	first, _ := e.express(t, o1.ID, bob.ID)
	second, _ := e.express(t, o2.ID, bob.ID)

	list, err := e.interests.ListForUser(context.Background(), bob.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
}
