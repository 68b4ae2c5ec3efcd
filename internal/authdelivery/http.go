// Package authdelivery manages delivery layer of users and sessions.
package authdelivery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-petr/bitlease/internal/domain"
	"github.com/go-petr/bitlease/pkg/errorspkg"
	"github.com/go-petr/bitlease/pkg/tokenpkg"
	"github.com/go-petr/bitlease/pkg/web"
)

// Service provides user service layer interface needed by auth delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package authdelivery
type Service interface {
	Register(ctx context.Context, username, password, fullname, email string) (domain.User, error)
	CheckPassword(ctx context.Context, username, password string) (domain.User, error)
}

// SessionMaker facilitates session creation and renewal.
type SessionMaker interface {
	CreateSession(ctx context.Context, arg domain.CreateSessionParams) (string, time.Time, domain.Session, error)
	RenewAccessToken(ctx context.Context, refreshToken string) (string, time.Time, error)
}

// Handler facilitates auth delivery layer logic.
type Handler struct {
	service      Service
	sessionMaker SessionMaker
}

// NewHandler returns auth handler.
func NewHandler(us Service, sm SessionMaker) *Handler {
	return &Handler{
		service:      us,
		sessionMaker: sm,
	}
}

type sessionData struct {
	User                  domain.User `json:"user"`
	AccessToken           string      `json:"access_token"`
	AccessTokenExpiresAt  time.Time   `json:"access_token_expires_at"`
	RefreshToken          string      `json:"refresh_token"`
	RefreshTokenExpiresAt time.Time   `json:"refresh_token_expires_at"`
}

func bindError(gctx *gin.Context, err error) {
	zerolog.Ctx(gctx.Request.Context()).Info().Err(err).Send()

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})
		return
	}

	gctx.JSON(http.StatusBadRequest, web.Error(err))
}

// startSession opens a session for u and writes it with status 200.
func (h *Handler) startSession(gctx *gin.Context, u domain.User) {
	ctx := gctx.Request.Context()

	accessToken, accessTokenExpiresAt, sess, err := h.sessionMaker.CreateSession(ctx, domain.CreateSessionParams{
		Username:  u.Username,
		UserAgent: gctx.Request.UserAgent(),
		ClientIP:  gctx.ClientIP(),
	})
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{
		Data: sessionData{
			User:                  u,
			AccessToken:           accessToken,
			AccessTokenExpiresAt:  accessTokenExpiresAt,
			RefreshToken:          sess.RefreshToken,
			RefreshTokenExpiresAt: sess.ExpiresAt,
		},
	})
}

type registerRequest struct {
	Username string `json:"username" binding:"required,alphanum"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

// Register handles http request to create user.
func (h *Handler) Register(gctx *gin.Context) {
	var req registerRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, err)
		return
	}

	u, err := h.service.Register(gctx.Request.Context(), req.Username, req.Password, req.FullName, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUsernameAlreadyExists), errors.Is(err, domain.ErrEmailAlreadyExists):
			gctx.JSON(http.StatusConflict, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	h.startSession(gctx, u)
}

type loginRequest struct {
	Username string `json:"username" binding:"required,alphanum"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// Login handles http login request and returns user and session data.
func (h *Handler) Login(gctx *gin.Context) {
	var req loginRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, err)
		return
	}

	u, err := h.service.CheckPassword(gctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			gctx.JSON(http.StatusNotFound, web.Error(err))
		case errors.Is(err, domain.ErrWrongPassword):
			gctx.JSON(http.StatusUnauthorized, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	h.startSession(gctx, u)
}

type renewRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type renewData struct {
	AccessToken          string    `json:"access_token"`
	AccessTokenExpiresAt time.Time `json:"access_token_expires_at"`
}

var unauthorizedErrors = []error{
	tokenpkg.ErrInvalidToken,
	tokenpkg.ErrExpiredToken,
	domain.ErrBlockedSession,
	domain.ErrInvalidUser,
	domain.ErrMismatchedRefreshToken,
	domain.ErrExpiredSession,
}

// RenewAccessToken handles http request to renew access token.
func (h *Handler) RenewAccessToken(gctx *gin.Context) {
	var req renewRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, err)
		return
	}

	accessToken, accessTokenExpiresAt, err := h.sessionMaker.RenewAccessToken(gctx.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		for _, e := range unauthorizedErrors {
			if errors.Is(err, e) {
				gctx.JSON(http.StatusUnauthorized, web.Error(e))
				return
			}
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{
		Data: renewData{
			AccessToken:          accessToken,
			AccessTokenExpiresAt: accessTokenExpiresAt,
		},
	})
}
