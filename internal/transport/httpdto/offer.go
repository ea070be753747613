package httpdto

import (
	"time"

	"barterhub/internal/domain/offer"
)

type CreateOfferRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type OfferResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Status        string    `json:"status"`
	InterestCount *int64    `json:"interest_count,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type ListOffersResponse struct {
	Offers []OfferResponse `json:"offers"`
	Total  int64           `json:"total"`
}

func FromOffer(o offer.Offer) OfferResponse {
	return OfferResponse{
		ID:          o.ID.String(),
		UserID:      o.UserID.String(),
		Title:       o.Title,
		Description: o.Description,
		Status:      o.Status,
		CreatedAt:   o.CreatedAt,
	}
}

func FromOfferSlice(offers []offer.Offer) []OfferResponse {
	out := make([]OfferResponse, 0, len(offers))
	for _, o := range offers {
		out = append(out, FromOffer(o))
	}
	return out
}
