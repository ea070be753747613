package services

import (
	"context"

	"barterhub/internal/domain/interest"
	"barterhub/internal/repository"

	"github.com/google/uuid"
)

// MatchOutcome reports what match evaluation did with a freshly written
// interest.
type MatchOutcome struct {
	// Matched is true when a reciprocal interest exists and both sides were
	// promoted to ACCEPTED.
	Matched bool
	// ChatID is the chat allocated (or reactivated) for the pair. Nil UUID
	// when no match occurred.
	ChatID uuid.UUID
}

// matchDetector decides whether two users are mutually interested and
// promotes their interests. It runs inside the ledger's transaction: either
// both sides promote and the chat is ensured, or nothing is.
type matchDetector struct{}

// Evaluate checks the interest written by userID against reciprocal
// interests held by ownerID (the offer's owner). A reciprocal interest in
// any status counts: PROPOSED and later all mean "still wants it". On a
// match every PROPOSED interest between the pair is promoted, in both
// directions, so each mutually-interested offer combination becomes an
// independent ACCEPTED unit sharing the one chat.
func (matchDetector) Evaluate(ctx context.Context, repos repository.Repositories, in interest.Interest, ownerID uuid.UUID) (MatchOutcome, error) {
	reciprocal, err := repos.Interests.ListBetween(ctx, ownerID, in.UserID)
	if err != nil {
		return MatchOutcome{}, err
	}
	if len(reciprocal) == 0 {
		return MatchOutcome{}, nil
	}

	forward, err := repos.Interests.ListBetween(ctx, in.UserID, ownerID)
	if err != nil {
		return MatchOutcome{}, err
	}

	ids := make([]uuid.UUID, 0, len(forward)+len(reciprocal))
	for _, i := range forward {
		ids = append(ids, i.ID)
	}
	for _, i := range reciprocal {
		ids = append(ids, i.ID)
	}
	if err := repos.Interests.PromoteToAccepted(ctx, ids); err != nil {
		return MatchOutcome{}, err
	}

	c, err := repos.Chats.Ensure(ctx, in.UserID, ownerID)
	if err != nil {
		return MatchOutcome{}, err
	}

	return MatchOutcome{Matched: true, ChatID: c.ID}, nil
}
