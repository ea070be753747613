package httpdto

import (
	"time"

	"barterhub/internal/domain/interest"
	"barterhub/internal/services"
)

type InterestResponse struct {
	ID         string     `json:"id"`
	OfferID    string     `json:"offer_id"`
	UserID     string     `json:"user_id"`
	Status     string     `json:"status"`
	RealizedAt *time.Time `json:"realized_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

type ExpressInterestResponse struct {
	Interest InterestResponse `json:"interest"`
	Matched  bool             `json:"matched"`
	ChatID   string           `json:"chat_id,omitempty"`
}

type RealizeResponse struct {
	Completed bool                    `json:"completed"`
	Record    *ExchangeRecordResponse `json:"record,omitempty"`
}

type ListInterestsResponse struct {
	Interests []InterestResponse `json:"interests"`
	Count     int                `json:"count"`
}

func FromInterest(i interest.Interest) InterestResponse {
	resp := InterestResponse{
		ID:        i.ID.String(),
		OfferID:   i.OfferID.String(),
		UserID:    i.UserID.String(),
		Status:    i.Status,
		CreatedAt: i.CreatedAt,
	}
	if i.RealizedAt.Valid {
		t := i.RealizedAt.Time
		resp.RealizedAt = &t
	}
	return resp
}

func FromInterestSlice(interests []interest.Interest) []InterestResponse {
	out := make([]InterestResponse, 0, len(interests))
	for _, i := range interests {
		out = append(out, FromInterest(i))
	}
	return out
}

func FromExpressResult(i interest.Interest, outcome services.MatchOutcome) ExpressInterestResponse {
	resp := ExpressInterestResponse{
		Interest: FromInterest(i),
		Matched:  outcome.Matched,
	}
	if outcome.Matched {
		resp.ChatID = outcome.ChatID.String()
	}
	return resp
}

func FromRealizationOutcome(outcome services.RealizationOutcome) RealizeResponse {
	resp := RealizeResponse{Completed: outcome.Completed}
	if outcome.Record != nil {
		rec := FromExchangeRecord(*outcome.Record)
		resp.Record = &rec
	}
	return resp
}
