package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/rupaykg-biomass/internal/application"
	"github.com/oksasatya/rupaykg-biomass/internal/domain/entity"
	"github.com/oksasatya/rupaykg-biomass/internal/interface/middleware"
	"github.com/oksasatya/rupaykg-biomass/pkg/response"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

// Email is free-form; only presence is checked.
type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,maxbytes=72"`
	Role     string `json:"role" binding:"required,role"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}
	role, err := entity.ParseRole(req.Role)
	if err != nil {
		response.Abort(c, http.StatusBadRequest, "invalid payload", map[string]string{"role": err.Error()})
		return
	}
	if err := h.Svc.Register(c.Request.Context(), req.Email, req.Password, role); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User registered"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	tok, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, loginResponse{AccessToken: tok.AccessToken, TokenType: "bearer", ExpiresAt: tok.ExpiresAt})
}

// Me echoes the verified token identity.
func (h *AuthHandler) Me(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Abort(c, http.StatusUnauthorized, "missing bearer token", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subject": p.Subject, "role": p.Role})
}
