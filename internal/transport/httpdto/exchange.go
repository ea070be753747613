package httpdto

import (
	"time"

	"barterhub/internal/domain/exchange"
)

type ExchangeRecordResponse struct {
	ID          string    `json:"id"`
	ChatID      string    `json:"chat_id"`
	UserAID     string    `json:"user_a_id"`
	UserBID     string    `json:"user_b_id"`
	OfferAID    string    `json:"offer_a_id,omitempty"`
	OfferBID    string    `json:"offer_b_id,omitempty"`
	OfferATitle string    `json:"offer_a_title"`
	OfferBTitle string    `json:"offer_b_title"`
	RealizedAt  time.Time `json:"realized_at"`
}

type ListExchangesResponse struct {
	Exchanges []ExchangeRecordResponse `json:"exchanges"`
	Count     int                      `json:"count"`
}

func FromExchangeRecord(r exchange.Record) ExchangeRecordResponse {
	resp := ExchangeRecordResponse{
		ID:          r.ID.String(),
		ChatID:      r.ChatID.String(),
		UserAID:     r.UserLowID.String(),
		UserBID:     r.UserHighID.String(),
		OfferATitle: r.OfferLowTitle,
		OfferBTitle: r.OfferHighTitle,
		RealizedAt:  r.RealizedAt,
	}
	if r.OfferLowID != nil {
		resp.OfferAID = r.OfferLowID.String()
	}
	if r.OfferHighID != nil {
		resp.OfferBID = r.OfferHighID.String()
	}
	return resp
}

func FromExchangeRecordSlice(records []exchange.Record) []ExchangeRecordResponse {
	out := make([]ExchangeRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, FromExchangeRecord(r))
	}
	return out
}
