package services

import (
	"context"
	"testing"
	"time"

	"barterhub/internal/domain/chat"
	"barterhub/internal/domain/exchange"
	"barterhub/internal/domain/interest"
	"barterhub/internal/domain/offer"
	"barterhub/internal/domain/user"
	"barterhub/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps the in-memory database alive and serializes
	// concurrent goroutines the same way a row lock would.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&user.User{},
		&offer.Offer{},
		&interest.Interest{},
		&chat.Chat{},
		&chat.Message{},
		&exchange.Record{},
	))
	return db
}

type testEnv struct {
	db           *gorm.DB
	repos        repository.Repositories
	interests    *InterestService
	realizations *RealizationService
	chats        *ChatService
	offers       *OfferService
	exchanges    *ExchangeService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := setupTestDB(t)
	repos := repository.NewRepositories(db)
	interests := NewInterestService(db, repos, nil, nil)
	return &testEnv{
		db:           db,
		repos:        repos,
		interests:    interests,
		realizations: NewRealizationService(db, repos, interests, nil),
		chats:        NewChatService(db, repos, nil),
		offers:       NewOfferService(db, repos, nil),
		exchanges:    NewExchangeService(db, repos, nil),
	}
}

func (e *testEnv) createUser(t *testing.T, username string) user.User {
	t.Helper()

	u := user.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: "x",
		DisplayName:  username,
		IsActive:     true,
	}
	require.NoError(t, e.repos.Users.Create(context.Background(), &u))
	return u
}

func (e *testEnv) createOffer(t *testing.T, ownerID uuid.UUID, title string) offer.Offer {
	t.Helper()

	o := offer.Offer{
		ID:     uuid.New(),
		UserID: ownerID,
		Title:  title,
		Status: offer.StatusActive,
	}
	require.NoError(t, e.repos.Offers.Create(context.Background(), &o))
	return o
}

func (e *testEnv) express(t *testing.T, offerID, userID uuid.UUID) (interest.Interest, MatchOutcome) {
	t.Helper()

	in, outcome, err := e.interests.ExpressInterest(context.Background(), offerID, userID)
	require.NoError(t, err)
	return in, outcome
}

func (e *testEnv) getInterest(t *testing.T, id uuid.UUID) interest.Interest {
	t.Helper()

	in, err := e.repos.Interests.GetByID(context.Background(), id)
	require.NoError(t, err)
	return in
}

// mutualMatch sets up two users with one offer each and expresses interest in
// both directions. Returns the two ACCEPTED interests: first the one held by
// a in b's offer, then b's in a's.
func (e *testEnv) mutualMatch(t *testing.T, a, b user.User, offerA, offerB offer.Offer) (interest.Interest, interest.Interest) {
	t.Helper()

	inB, outcome := e.express(t, offerA.ID, b.ID)
	require.False(t, outcome.Matched)

	inA, outcome := e.express(t, offerB.ID, a.ID)
	require.True(t, outcome.Matched)

	return e.getInterest(t, inA.ID), e.getInterest(t, inB.ID)
}

func (e *testEnv) countExchangeRecords(t *testing.T) int64 {
	t.Helper()

	var count int64
	require.NoError(t, e.db.Model(&exchange.Record{}).Count(&count).Error)
	return count
}

// fakeCountCache is an in-memory InterestCountCache for cache plumbing tests.
type fakeCountCache struct {
	counts      map[uuid.UUID]int64
	invalidated int
}

func newFakeCountCache() *fakeCountCache {
	return &fakeCountCache{counts: make(map[uuid.UUID]int64)}
}

func (c *fakeCountCache) GetCount(_ context.Context, offerID uuid.UUID) (int64, bool) {
	count, ok := c.counts[offerID]
	return count, ok
}

func (c *fakeCountCache) SetCount(_ context.Context, offerID uuid.UUID, count int64) {
	c.counts[offerID] = count
}

func (c *fakeCountCache) Invalidate(_ context.Context, offerID uuid.UUID) {
	delete(c.counts, offerID)
	c.invalidated++
}

func almostNow(t *testing.T, ts time.Time) {
	t.Helper()
	require.WithinDuration(t, time.Now(), ts, 5*time.Second)
}
