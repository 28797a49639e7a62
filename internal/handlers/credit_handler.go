package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"katador_backend/internal/services"
	"katador_backend/internal/services/dto"
)

type CreditHandler struct {
	*BaseHandler
	creditService services.CreditService
}

func NewCreditHandler(base *BaseHandler, creditService services.CreditService) *CreditHandler {
	return &CreditHandler{
		BaseHandler:   base,
		creditService: creditService,
	}
}

// Consume - POST /api/credits/consume (требует токен)
func (h *CreditHandler) Consume(c *gin.Context) {
	accountID, ok := h.GetAuthorizedAccountID(c)
	if !ok {
		return
	}

	var req dto.ConsumeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.creditService.Consume(c.Request.Context(), accountID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
