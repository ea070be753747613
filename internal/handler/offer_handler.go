package handler

import (
	"net/http"
	"strconv"

	"barterhub/internal/services"
	"barterhub/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OfferHandler struct {
	offers    *services.OfferService
	interests *services.InterestService
}

func NewOfferHandler(offers *services.OfferService, interests *services.InterestService) *OfferHandler {
	return &OfferHandler{offers: offers, interests: interests}
}

func (h *OfferHandler) Create(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	var req httpdto.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	o, err := h.offers.Create(c.Request.Context(), userID, services.CreateOfferInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(httpdto.FromOffer(o)))
}

func (h *OfferHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	offers, total, err := h.offers.ListActive(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ListOffersResponse{
		Offers: httpdto.FromOfferSlice(offers),
		Total:  total,
	}))
}

// ListMine returns every offer the caller has posted, removed ones included.
func (h *OfferHandler) ListMine(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	offers, err := h.offers.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ListOffersResponse{
		Offers: httpdto.FromOfferSlice(offers),
		Total:  int64(len(offers)),
	}))
}

func (h *OfferHandler) GetByID(c *gin.Context) {
	offerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid offer id", "INVALID_REQUEST"))
		return
	}

	o, err := h.offers.GetByID(c.Request.Context(), offerID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := httpdto.FromOffer(o)
	if count, err := h.interests.CountForOffer(c.Request.Context(), offerID); err == nil {
		resp.InterestCount = &count
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(resp))
}

func (h *OfferHandler) Remove(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}
	offerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid offer id", "INVALID_REQUEST"))
		return
	}

	if err := h.offers.Remove(c.Request.Context(), offerID, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"removed": true}))
}

// ListInterests returns the interests for an offer the caller owns.
func (h *OfferHandler) ListInterests(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}
	offerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid offer id", "INVALID_REQUEST"))
		return
	}

	o, err := h.offers.GetByID(c.Request.Context(), offerID)
	if err != nil {
		respondError(c, err)
		return
	}
	if o.UserID != userID {
		c.JSON(http.StatusForbidden, httpdto.NewErrorResponse("forbidden", "FORBIDDEN"))
		return
	}

	interests, err := h.interests.ListForOffer(c.Request.Context(), offerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ListInterestsResponse{
		Interests: httpdto.FromInterestSlice(interests),
		Count:     len(interests),
	}))
}
