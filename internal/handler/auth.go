package handler

import (
	"net/http"

	"github.com/dhank77/akayacraft/internal/apierror"
	"github.com/dhank77/akayacraft/internal/dto"
	"github.com/dhank77/akayacraft/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Username atau password salah"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
