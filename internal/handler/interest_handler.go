package handler

import (
	"net/http"

	"barterhub/internal/services"
	"barterhub/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InterestHandler struct {
	interests    *services.InterestService
	realizations *services.RealizationService
}

func NewInterestHandler(interests *services.InterestService, realizations *services.RealizationService) *InterestHandler {
	return &InterestHandler{interests: interests, realizations: realizations}
}

func (h *InterestHandler) Express(c *gin.Context) {
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

	in, outcome, err := h.interests.ExpressInterest(c.Request.Context(), offerID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(httpdto.FromExpressResult(in, outcome)))
}

func (h *InterestHandler) Cancel(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}
	interestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid interest id", "INVALID_REQUEST"))
		return
	}

	if err := h.interests.CancelInterest(c.Request.Context(), interestID, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"cancelled": true}))
}

func (h *InterestHandler) ListMine(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	interests, err := h.interests.ListForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ListInterestsResponse{
		Interests: httpdto.FromInterestSlice(interests),
		Count:     len(interests),
	}))
}

func (h *InterestHandler) Realize(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}
	interestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid interest id", "INVALID_REQUEST"))
		return
	}

	outcome, err := h.realizations.Realize(c.Request.Context(), interestID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromRealizationOutcome(outcome)))
}

func (h *InterestHandler) Unrealize(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}
	interestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid interest id", "INVALID_REQUEST"))
		return
	}

	if err := h.realizations.Unrealize(c.Request.Context(), interestID, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"unrealized": true}))
}
