package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ClinicFlowBR/clinicflow/internal/httperr"
	"github.com/ClinicFlowBR/clinicflow/internal/identity"
	"github.com/ClinicFlowBR/clinicflow/internal/middleware"
)

type AuthHandler struct {
	provider identity.Provider
	binder   *identity.Binder
}

func NewAuthHandler(provider identity.Provider, binder *identity.Binder) *AuthHandler {
	return &AuthHandler{provider: provider, binder: binder}
}

// --------- Requests ---------

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ResetPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type UpdatePasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// ======================================================
// LOGIN
// ======================================================
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	sess, token, err := h.provider.SignIn(c.Request.Context(), email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha incorretos.")
			return
		}
		httperr.Internal(c, "login_failed", "Erro ao autenticar.")
		return
	}

	// O bootstrap de ADMIN e o refresh do cache já rodaram via assinatura
	// do SIGNED_IN durante o SignIn; aqui só falta resolver o perfil.
	// Sessão sem perfil correspondente não entra no app.
	user, err := h.binder.Lookup(c.Request.Context(), sess)
	if err != nil {
		httperr.Internal(c, "profile_lookup_failed", "Erro ao carregar o perfil.")
		return
	}
	if user == nil {
		httperr.Unauthorized(c, "profile_not_found", "Conta sem perfil cadastrado.")
		return
	}
	if !user.IsActive {
		httperr.Forbidden(c, "user_inactive", "Usuário desativado.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// ======================================================
// LOGOUT
// ======================================================
func (h *AuthHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 {
		_ = h.provider.SignOut(c.Request.Context(), parts[1])
	}
	c.JSON(http.StatusOK, gin.H{"status": "signed_out"})
}

// ======================================================
// RECUPERAÇÃO DE SENHA
// ======================================================
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	token, err := h.provider.RequestPasswordReset(c.Request.Context(), email)
	if err != nil {
		// resposta idêntica para conta inexistente: não vaza cadastro
		if errors.Is(err, identity.ErrAccountNotFound) {
			c.JSON(http.StatusOK, gin.H{"status": "recovery_sent"})
			return
		}
		httperr.Internal(c, "recovery_failed", "Erro ao iniciar recuperação.")
		return
	}

	// TODO: enviar por e-mail quando houver provedor SMTP configurado;
	// por ora o token sai na resposta.
	c.JSON(http.StatusOK, gin.H{
		"status":        "recovery_sent",
		"recoveryToken": token,
	})
}

func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	sess, err := h.provider.SessionFromRecoveryToken(req.Token)
	if err != nil {
		httperr.Unauthorized(c, "invalid_token", "Token de recuperação inválido.")
		return
	}

	if err := h.provider.UpdatePassword(c.Request.Context(), sess.AccountID, req.NewPassword); err != nil {
		httperr.Internal(c, "password_update_failed", "Erro ao atualizar a senha.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "password_updated"})
}

// ======================================================
// PERFIL AUTENTICADO
// ======================================================
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_not_in_context"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
