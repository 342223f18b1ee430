package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gkrishna247/lendit-p2p-market/internal/auth"
	model "github.com/gkrishna247/lendit-p2p-market/internal/models"
	"github.com/gkrishna247/lendit-p2p-market/services/market/helpers"
	"github.com/gkrishna247/lendit-p2p-market/utils"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=auth_handler.go -destination=mock_auth_handler.go -package=handler

type AuthServiceInterface interface {
	Register(ctx context.Context, input auth.RegisterInput) (model.User, error)
	Login(ctx context.Context, username, password string) (auth.Session, error)
	Logout(ctx context.Context, token string) (bool, error)
	DeleteAccount(ctx context.Context, actor model.Actor, token string) error
}

type AuthHandler struct {
	service AuthServiceInterface
}

func NewAuthHandler(service AuthServiceInterface) *AuthHandler {
	return &AuthHandler{service: service}
}

// RegisterHandler handles POST /register
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var req helpers.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RegisterHandler", err)
		return
	}

	user, err := h.service.Register(c.Request.Context(), auth.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		helpers.RespondError(c, "RegisterHandler", "registration failed", err, map[string]any{"username": req.Username})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.NewUserResponse(user), "Account created successfully! Please log in.")
	helpers.LogSuccess("RegisterHandler", "account created", map[string]any{
		"user_id":  user.UserID,
		"username": user.Username,
	})
}

// LoginHandler handles POST /login
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req helpers.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "LoginHandler", err)
		return
	}

	session, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		helpers.RespondError(c, "LoginHandler", "login failed", err, map[string]any{"username": req.Username})
		return
	}

	resp := helpers.SessionResponse{
		Token:     session.Token,
		TokenType: "Bearer",
		ExpiresAt: session.ExpiresAt.UTC().Format(time.RFC3339),
		User:      helpers.NewUserResponse(session.User),
	}
	utils.JSONResponse(c, http.StatusOK, resp, fmt.Sprintf("Welcome back, %s!", session.User.Username))
	helpers.LogSuccess("LoginHandler", "user logged in", map[string]any{"user_id": session.User.UserID})
}

// LogoutHandler handles POST /logout
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	revoked, err := h.service.Logout(c.Request.Context(), helpers.BearerToken(c))
	if err != nil {
		helpers.RespondError(c, "LogoutHandler", "logout failed", err, nil)
		return
	}

	utils.JSONLevelResponse(c, http.StatusOK, utils.LevelInfo, gin.H{"revoked": revoked}, "You have been logged out.")
	helpers.LogSuccess("LogoutHandler", "logout handled", map[string]any{"revoked": revoked})
}

// DeleteAccountHandler handles DELETE /account
func (h *AuthHandler) DeleteAccountHandler(c *gin.Context) {
	actor, _ := helpers.ActorFrom(c)
	if err := h.service.DeleteAccount(c.Request.Context(), actor, helpers.BearerToken(c)); err != nil {
		helpers.RespondError(c, "DeleteAccountHandler", "failed to delete account", err, map[string]any{"user_id": actor.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"user_id": actor.UserID}, "Account deleted.")
	helpers.LogSuccess("DeleteAccountHandler", "account deleted", map[string]any{"user_id": actor.UserID})
}
