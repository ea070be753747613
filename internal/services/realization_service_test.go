package services

import (
	"context"
	"sync"
	"testing"

	"barterhub/internal/domain/chat"
	"barterhub/internal/domain/interest"
	barter_errors "barterhub/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealize_RequiresAccepted(t *testing.T) {
	e := newTestEnv(t)
	alice := e.createUser(t, "alice")
	bob := e.createUser(t, "bob")
	o := e.createOffer(t, alice.ID, "Vinyl collection")

	in, _ := e.express(t, o.ID, bob.ID)

	_, err := e.realizations.Realize(context.Background(), in.ID, bob.ID)
	assert.ErrorIs(t, err, barter_errors.ErrBadStatus)
}

func TestRealize_OnlyHolderMayRealize(t *testing.T) {
	e := newTestEnv(t)
	alice := e.createUser(t, "alice")
	bob := e.createUser(t, "bob")
	offerA := e.createOffer(t, alice.ID, "Vinyl collection")
	offerB := e.createOffer(t, bob.ID, "Oak bookshelf")

	inA, _ := e.mutualMatch(t, alice, bob, offerA, offerB)

	_, err := e.realizations.Realize(context.Background(), inA.ID, bob.ID)
	assert.ErrorIs(t, err, barter_errors.ErrForbidden)
}

func TestRealize_FirstSideAwaitsCounterpart(t *testing.T) {
	e := newTestEnv(t)
	alice := e.createUser(t, "alice")
	bob := e.createUser(t, "bob")
	offerA := e.createOffer(t, alice.ID, "Vinyl collection")
	offerB := e.createOffer(t, bob.ID, "Oak bookshelf")

	inA, _ := e.mutualMatch(t, alice, bob, offerA, offerB)

	outcome, err := e.realizations.Realize(context.Background(), inA.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, outcome.Completed)
	assert.Nil(t, outcome.Record)

	current := e.getInterest(t, inA.ID)
	assert.Equal(t, interest.StatusRealized, current.Status)
	require.True(t, current.RealizedAt.Valid)
	almostNow(t, current.RealizedAt.Time)

	assert.Equal(t, int64(0), e.countExchangeRecords(t))
}

func TestRealize_SecondSideCompletesExchange(t *testing.T) {
	e := newTestEnv(t)
	alice := e.createUser(t, "alice")
	bob := e.createUser(t, "bob")
	offerA := e.createOffer(t, alice.ID, "Vinyl collection")
	offerB := e.createOffer(t, bob.ID, "Oak bookshelf")

	inA, inB := e.mutualMatch(t, alice, bob, offerA, offerB)

	_, err := e.realizations.Realize(context.Background(), inA.ID, alice.ID)
	require.NoError(t, err)

	outcome, err := e.realizations.Realize(context.Background(), inB.ID, bob.ID)
	require.NoError(t, err)
	require.True(t, outcome.Completed)
	require.NotNil(t, outcome.Record)

	rec := *outcome.Record
	c, err := e.chats.GetByPair(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, rec.ChatID)
	assert.Equal(t, c.UserLowID, rec.UserLowID)
	assert.Equal(t, c.UserHighID, rec.UserHighID)

	// The low slot carries the offer owned by the chat's low user.
	low, _ := chat.OrderPair(alice.ID, bob.ID)
	require.NotNil(t, rec.OfferLowID)
	require.NotNil(t, rec.OfferHighID)
	if low == alice.ID {
		assert.Equal(t, offerB.ID, *rec.OfferLowID)
		assert.Equal(t, "Oak bookshelf", rec.OfferLowTitle)
		assert.Equal(t, offerA.ID, *rec.OfferHighID)
		assert.Equal(t, "Vinyl collection", rec.OfferHighTitle)
	} else {
		assert.Equal(t, offerA.ID, *rec.OfferLowID)
		assert.Equal(t, "Vinyl collection", rec.OfferLowTitle)
		assert.Equal(t, offerB.ID, *rec.OfferHighID)
		assert.Equal(t, "Oak bookshelf", rec.OfferHighTitle)
	}

	assert.Equal(t, int64(1), e.countExchangeRecords(t))

	history, err := e.exchanges.HistoryForUser(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, rec.ID, history[0].ID)
}

func TestRealize_ConcurrentConfirmationsWriteOneRecord(t *testing.T) {
	e := newTestEnv(t)
	alice := e.createUser(t, "alice")
	bob := e.createUser(t, "bob")
	offerA := e.createOffer(t, alice.ID, "Vinyl collection")
	offerB := e.createOffer(t, bob.ID, "Oak bookshelf")

	inA, inB := e.mutualMatch(t, alice, bob, offerA, offerB)

	var wg sync.WaitGroup
	outcomes := make([]RealizationOutcome, 2)
	errs := make([]error, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		outcomes[0], errs[0] = e.realizations.Realize(context.Background(), inA.ID, alice.ID)
	}()
	go func() {
		defer wg.Done()
		outcomes[1], errs[1] = e.realizations.Realize(context.Background(), inB.ID, bob.ID)
	}()
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	completed := 0
	for _, outcome := range outcomes {
		if outcome.Completed {
			completed++
		}
	}
	assert.Equal(t, 1, completed)
	assert.Equal(t, int64(1), e.countExchangeRecords(t))
}

func TestUnrealize_BeforeCompletionRevertsToAccepted(t *testing.T) {
	e := newTestEnv(t)
	alice := e.createUser(t, "alice")
	bob := e.createUser(t, "bob")
	offerA := e.createOffer(t, alice.ID, "Vinyl collection")
	offerB := e.createOffer(t, bob.ID, "Oak bookshelf")

	inA, _ := e.mutualMatch(t, alice, bob, offerA, offerB)

	_, err := e.realizations.Realize(context.Background(), inA.ID, alice.ID)
	require.NoError(t, err)

	require.NoError(t, e.realizations.Unrealize(context.Background(), inA.ID, alice.ID))

	current := e.getInterest(t, inA.ID)
	assert.Equal(t, interest.StatusAccepted, current.Status)
	assert.False(t, current.RealizedAt.Valid)

	c, err := e.chats.GetByPair(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, chat.StatusActive, c.Status)
}

func TestUnrealize_RequiresRealized(t *testing.T) {
	e := newTestEnv(t)
	alice := e.createUser(t, "alice")
	bob := e.createUser(t, "bob")
	offerA := e.createOffer(t, alice.ID, "Vinyl collection")
	offerB := e.createOffer(t, bob.ID, "Oak bookshelf")

	inA, _ := e.mutualMatch(t, alice, bob, offerA, offerB)

	err := e.realizations.Unrealize(context.Background(), inA.ID, alice.ID)
	assert.ErrorIs(t, err, barter_errors.ErrBadStatus)
}

func TestUnrealize_BlockedAfterCompletion(t *testing.T) {
	e := newTestEnv(t)
	alice := e.createUser(t, "alice")
	bob := e.createUser(t, "bob")
	offerA := e.createOffer(t, alice.ID, "Vinyl collection")
	offerB := e.createOffer(t, bob.ID, "Oak bookshelf")

	inA, inB := e.mutualMatch(t, alice, bob, offerA, offerB)

	_, err := e.realizations.Realize(context.Background(), inA.ID, alice.ID)
	require.NoError(t, err)
	outcome, err := e.realizations.Realize(context.Background(), inB.ID, bob.ID)
	require.NoError(t, err)
	require.True(t, outcome.Completed)

	err = e.realizations.Unrealize(context.Background(), inA.ID, alice.ID)
	assert.ErrorIs(t, err, barter_errors.ErrAlreadyCompleted)
	err = e.realizations.Unrealize(context.Background(), inB.ID, bob.ID)
	assert.ErrorIs(t, err, barter_errors.ErrAlreadyCompleted)
}

func TestRealize_SecondExchangeCycleReusesChat(t *testing.T) {
	e := newTestEnv(t)
	alice := e.createUser(t, "alice")
	bob := e.createUser(t, "bob")
	offerA := e.createOffer(t, alice.ID, "Vinyl collection")
	offerB := e.createOffer(t, bob.ID, "Oak bookshelf")

	inA, inB := e.mutualMatch(t, alice, bob, offerA, offerB)

	_, err := e.realizations.Realize(context.Background(), inA.ID, alice.ID)
	require.NoError(t, err)
	first, err := e.realizations.Realize(context.Background(), inB.ID, bob.ID)
	require.NoError(t, err)
	require.True(t, first.Completed)

	// A new offer pair between the same users matches immediately: the
	// realized interests from the first cycle count as live reciprocals.
	offerA2 := e.createOffer(t, alice.ID, "Polaroid camera")
	offerB2 := e.createOffer(t, bob.ID, "Set of chisels")

	inB2, outcome := e.express(t, offerA2.ID, bob.ID)
	require.True(t, outcome.Matched)
	assert.Equal(t, first.Record.ChatID, outcome.ChatID)

	inA2, outcome := e.express(t, offerB2.ID, alice.ID)
	require.True(t, outcome.Matched)

	_, err = e.realizations.Realize(context.Background(), e.getInterest(t, inA2.ID).ID, alice.ID)
	require.NoError(t, err)
	second, err := e.realizations.Realize(context.Background(), e.getInterest(t, inB2.ID).ID, bob.ID)
	require.NoError(t, err)
	require.True(t, second.Completed)

	assert.Equal(t, first.Record.ChatID, second.Record.ChatID)
	assert.NotEqual(t, first.Record.ID, second.Record.ID)
	assert.Equal(t, int64(2), e.countExchangeRecords(t))

	history, err := e.exchanges.HistoryForUser(context.Background(), bob.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
}

func TestRealize_MirrorSkipsConsumedInterests(t *testing.T) {
	e := newTestEnv(t)
	alice := e.createUser(t, "alice")
	bob := e.createUser(t, "bob")
	offerA := e.createOffer(t, alice.ID, "Vinyl collection")
	offerB1 := e.createOffer(t, bob.ID, "Oak bookshelf")
	offerB2 := e.createOffer(t, bob.ID, "Set of chisels")

	// bob wants alice's offer; alice wants both of bob's.
	inB, _ := e.express(t, offerA.ID, bob.ID)
	inA1, outcome := e.express(t, offerB1.ID, alice.ID)
	require.True(t, outcome.Matched)
	inA2, outcome := e.express(t, offerB2.ID, alice.ID)
	require.True(t, outcome.Matched)

	// First cycle completes offerA against offerB1.
	_, err := e.realizations.Realize(context.Background(), e.getInterest(t, inA1.ID).ID, alice.ID)
	require.NoError(t, err)
	first, err := e.realizations.Realize(context.Background(), e.getInterest(t, inB.ID).ID, bob.ID)
	require.NoError(t, err)
	require.True(t, first.Completed)

	// alice realizing her second interest has no unconsumed mirror left:
	// bob's only realized interest already completed an exchange.
	second, err := e.realizations.Realize(context.Background(), e.getInterest(t, inA2.ID).ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, second.Completed)
	assert.Equal(t, int64(1), e.countExchangeRecords(t))
}
