package controllers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/princinho/taskbackend/dto"
	"github.com/princinho/taskbackend/models"
	"github.com/princinho/taskbackend/services"
	"github.com/princinho/taskbackend/utils"
)

type AuthService interface {
	SignUp(ctx context.Context, username, password string) (*models.User, error)
	SignIn(ctx context.Context, username, password string) (accessToken, refreshToken string, err error)
	RefreshAccess(ctx context.Context, refreshToken string) (string, error)
}

type AuthController struct {
	auth    AuthService
	cookie  utils.CookieOptions
	timeout time.Duration
	log     *slog.Logger
}

func NewAuthController(auth AuthService, cookie utils.CookieOptions, timeout time.Duration, log *slog.Logger) *AuthController {
	return &AuthController{auth: auth, cookie: cookie, timeout: timeout, log: log}
}

type tokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// POST /auth/signup
func (ac *AuthController) SignUp() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CredentialsDTO
		if !bindJSON(c, &body, false) {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), ac.timeout)
		defer cancel()

		user, err := ac.auth.SignUp(ctx, body.Username, body.Password)
		if err != nil {
			if errors.Is(err, services.ErrUserExists) {
				respondError(c, messages.UserExists, nil)
				return
			}
			ac.log.ErrorContext(c.Request.Context(), "signup failed", "err", err, "request_id", requestIDFrom(c))
			respondError(c, messages.ServerError, nil)
			return
		}

		respond(c, messages.SignedUp, user)
	}
}

// POST /auth/signin
func (ac *AuthController) SignIn() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CredentialsDTO
		if !bindJSON(c, &body, false) {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), ac.timeout)
		defer cancel()

		accessToken, refreshToken, err := ac.auth.SignIn(ctx, body.Username, body.Password)
		if err != nil {
			if errors.Is(err, services.ErrInvalidCredentials) {
				respondError(c, messages.AuthIncorrect, nil)
				return
			}
			ac.log.ErrorContext(c.Request.Context(), "signin failed", "err", err, "request_id", requestIDFrom(c))
			respondError(c, messages.ServerError, nil)
			return
		}

		utils.SetRefreshCookie(c, refreshToken, ac.cookie)
		respond(c, messages.Success, tokenResponse{AccessToken: accessToken})
	}
}

// POST /auth/refresh
// The token comes from the JSON body; the cookie set at signin is the fallback.
func (ac *AuthController) Refresh() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.RefreshTokenDTO
		// An empty body is fine; the cookie is tried next.
		if err := c.ShouldBindBodyWith(&body, binding.JSON); err != nil && !errors.Is(err, io.EOF) {
			respondError(c, messages.InvalidBody, invalidBodyDetail)
			return
		}

		token := body.RefreshToken
		if token == "" {
			token, _ = c.Cookie(utils.RefreshCookieName)
		}
		if token == "" {
			respondError(c, messages.NoRefreshToken, nil)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), ac.timeout)
		defer cancel()

		accessToken, err := ac.auth.RefreshAccess(ctx, token)
		if err != nil {
			if errors.Is(err, services.ErrInvalidToken) {
				utils.ClearRefreshCookie(c, ac.cookie)
				respondError(c, messages.RefreshNotVerified, nil)
				return
			}
			ac.log.ErrorContext(c.Request.Context(), "refresh failed", "err", err, "request_id", requestIDFrom(c))
			respondError(c, messages.ServerError, nil)
			return
		}

		respond(c, messages.Success, tokenResponse{AccessToken: accessToken})
	}
}
