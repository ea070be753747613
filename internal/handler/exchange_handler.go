package handler

import (
	"net/http"

	"barterhub/internal/services"
	"barterhub/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type ExchangeHandler struct {
	service *services.ExchangeService
}

func NewExchangeHandler(service *services.ExchangeService) *ExchangeHandler {
	return &ExchangeHandler{service: service}
}

func (h *ExchangeHandler) ListMine(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	records, err := h.service.HistoryForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ListExchangesResponse{
		Exchanges: httpdto.FromExchangeRecordSlice(records),
		Count:     len(records),
	}))
}
