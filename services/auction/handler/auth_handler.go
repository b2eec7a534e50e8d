package handler

import (
	"context"
	"errors"
	"net/http"

	account "auction-house/internal/accountService"
	"auction-house/internal/auctionerrors"
	"auction-house/internal/models"
	"auction-house/services/auction/helpers"
	"auction-house/utils"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=auth_handler.go -destination=mock_account_service.go -package=handler

type AccountServiceInterface interface {
	Register(ctx context.Context, input account.RegisterInput) (models.User, error)
	Login(ctx context.Context, username, password string) (models.User, string, error)
	StartSession(ctx context.Context, user models.User) (string, error)
	Logout(ctx context.Context, token string) error
}

type AuthHandler struct {
	service AccountServiceInterface
	cookie  helpers.SessionCookie
}

func NewAuthHandler(service AccountServiceInterface, cookie helpers.SessionCookie) *AuthHandler {
	return &AuthHandler{service: service, cookie: cookie}
}

// LoginPage handles GET /login/
func (h *AuthHandler) LoginPage(c *gin.Context) {
	helpers.Render(c, http.StatusOK, "login.html", gin.H{
		"Next":   helpers.SafeNext(c.Query("next")),
		"Errors": map[string]string{},
	})
}

// LoginHandler handles POST /login/
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var form helpers.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		helpers.Render(c, http.StatusBadRequest, "login.html", gin.H{
			"Next":     helpers.SafeNext(form.Next),
			"Username": form.Username,
			"Errors":   helpers.HandleBindError(c, "LoginHandler", err),
		})
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		if status >= http.StatusInternalServerError {
			helpers.RenderError(c, "LoginHandler", err, map[string]any{"username": form.Username})
			return
		}
		helpers.LogRejected(c, "LoginHandler", err)
		helpers.Render(c, status, "login.html", gin.H{
			"Next":     helpers.SafeNext(form.Next),
			"Username": form.Username,
			"Errors":   map[string]string{helpers.FormErrorKey: message},
		})
		return
	}

	h.cookie.Set(c, token)
	helpers.LogSuccess("LoginHandler", "user logged in", map[string]any{"user_id": user.UserID})

	target := helpers.SafeNext(form.Next)
	if target == "" {
		target = "/"
	}
	c.Redirect(http.StatusSeeOther, target)
}

// LogoutHandler handles GET /logout/
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	if token := h.cookie.Token(c); token != "" {
		if err := h.service.Logout(c.Request.Context(), token); err != nil && !errors.Is(err, auctionerrors.ErrInvalidSession) {
			utils.Error("LogoutHandler: failed to revoke session", map[string]any{"error": err.Error()})
		}
	}
	h.cookie.Clear(c)
	helpers.LogSuccess("LogoutHandler", "user logged out", map[string]any{"user_id": helpers.CurrentUserID(c)})
	c.Redirect(http.StatusFound, "/")
}

// RegisterPage handles GET /register/
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	helpers.Render(c, http.StatusOK, "register.html", gin.H{
		"Form":   helpers.RegisterForm{},
		"Errors": map[string]string{},
	})
}

// RegisterHandler handles POST /register/. A new account is logged in straight away.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var form helpers.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderRegister(c, http.StatusBadRequest, form, helpers.HandleBindError(c, "RegisterHandler", err))
		return
	}

	ctx := c.Request.Context()
	user, err := h.service.Register(ctx, account.RegisterInput{
		Username:     form.Username,
		Email:        form.Email,
		Password:     form.Password,
		Confirmation: form.Confirmation,
		FirstName:    form.FirstName,
		LastName:     form.LastName,
	})
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		if status >= http.StatusInternalServerError {
			helpers.RenderError(c, "RegisterHandler", err, map[string]any{"username": form.Username})
			return
		}
		helpers.LogRejected(c, "RegisterHandler", err)
		fieldErrs := map[string]string{helpers.FormErrorKey: message}
		switch {
		case errors.Is(err, auctionerrors.ErrDuplicateUsername):
			fieldErrs = map[string]string{"username": message}
		case errors.Is(err, auctionerrors.ErrPasswordMismatch):
			fieldErrs = map[string]string{"confirmation": message}
		}
		h.renderRegister(c, status, form, fieldErrs)
		return
	}

	token, err := h.service.StartSession(ctx, user)
	if err != nil {
		helpers.RenderError(c, "RegisterHandler", err, map[string]any{"user_id": user.UserID})
		return
	}
	h.cookie.Set(c, token)

	helpers.LogSuccess("RegisterHandler", "user registered", map[string]any{
		"user_id":  user.UserID,
		"username": user.Username,
	})
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) renderRegister(c *gin.Context, status int, form helpers.RegisterForm, fieldErrs map[string]string) {
	// never echo passwords back into the page
	form.Password, form.Confirmation = "", ""
	helpers.Render(c, status, "register.html", gin.H{"Form": form, "Errors": fieldErrs})
}
