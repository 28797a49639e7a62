package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"katador_backend/internal/services"
	"katador_backend/internal/services/dto"
)

type AuthHandler struct {
	*BaseHandler
	authService    services.AuthService
	profileService services.ProfileService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService, profileService services.ProfileService) *AuthHandler {
	return &AuthHandler{
		BaseHandler:    base,
		authService:    authService,
		profileService: profileService,
	}
}

// Register - POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Login - POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Me - GET /api/auth/me (требует токен)
func (h *AuthHandler) Me(c *gin.Context) {
	accountID, ok := h.GetAuthorizedAccountID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), accountID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
