// Package authservice manages business logic layer of users and sessions.
//
// A registered username is the account identity the lending ledger acts for.
package authservice

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/go-petr/bitlease/internal/domain"
	"github.com/go-petr/bitlease/pkg/errorspkg"
	"github.com/go-petr/bitlease/pkg/passpkg"
	"github.com/go-petr/bitlease/pkg/tokenpkg"
)

// Repo provides data access layer interface needed by auth service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package authservice
type Repo interface {
	CreateUser(ctx context.Context, arg domain.CreateUserParams) (domain.User, error)
	GetUser(ctx context.Context, username string) (domain.User, error)
	CreateSession(ctx context.Context, arg domain.CreateSessionParams) (domain.Session, error)
	GetSession(ctx context.Context, id uuid.UUID) (domain.Session, error)
}

// Service facilitates auth service layer logic.
type Service struct {
	repo                 Repo
	maker                tokenpkg.Maker
	accessTokenDuration  time.Duration
	refreshTokenDuration time.Duration
}

// New returns auth service struct to manage users and sessions.
func New(repo Repo, maker tokenpkg.Maker, accessTokenDuration, refreshTokenDuration time.Duration) *Service {
	return &Service{
		repo:                 repo,
		maker:                maker,
		accessTokenDuration:  accessTokenDuration,
		refreshTokenDuration: refreshTokenDuration,
	}
}

// Register creates and returns user.
func (s *Service) Register(ctx context.Context, username, password, fullname, email string) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	hashedPassword, err := passpkg.Hash(password)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.User{}, errorspkg.ErrInternal
	}

	return s.repo.CreateUser(ctx, domain.CreateUserParams{
		Username:       username,
		HashedPassword: hashedPassword,
		FullName:       fullname,
		Email:          email,
	})
}

// CheckPassword checks if the password is valid for the given username.
func (s *Service) CheckPassword(ctx context.Context, username, password string) (domain.User, error) {
	u, err := s.repo.GetUser(ctx, username)
	if err != nil {
		return domain.User{}, err
	}

	if err := passpkg.Check(password, u.HashedPassword); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("username", username).Send()
		return domain.User{}, domain.ErrWrongPassword
	}

	return u, nil
}

// CreateSession issues an access token and a refresh token for arg.Username and
// stores the refresh token as a session.
func (s *Service) CreateSession(ctx context.Context, arg domain.CreateSessionParams) (string, time.Time, domain.Session, error) {
	l := zerolog.Ctx(ctx)

	accessToken, accessPayload, err := s.maker.CreateToken(arg.Username, s.accessTokenDuration)
	if err != nil {
		l.Error().Err(err).Send()
		return "", time.Time{}, domain.Session{}, errorspkg.ErrInternal
	}

	refreshToken, refreshPayload, err := s.maker.CreateToken(arg.Username, s.refreshTokenDuration)
	if err != nil {
		l.Error().Err(err).Send()
		return "", time.Time{}, domain.Session{}, errorspkg.ErrInternal
	}

	arg.ID = refreshPayload.ID
	arg.RefreshToken = refreshToken
	arg.ExpiresAt = refreshPayload.ExpiredAt

	sess, err := s.repo.CreateSession(ctx, arg)
	if err != nil {
		return "", time.Time{}, domain.Session{}, err
	}

	return accessToken, accessPayload.ExpiredAt, sess, nil
}

// RenewAccessToken returns a new access token for a valid refresh token.
func (s *Service) RenewAccessToken(ctx context.Context, refreshToken string) (string, time.Time, error) {
	l := zerolog.Ctx(ctx)

	refreshPayload, err := s.maker.VerifyToken(refreshToken)
	if err != nil {
		l.Info().Err(err).Send()
		return "", time.Time{}, err
	}

	sess, err := s.repo.GetSession(ctx, refreshPayload.ID)
	if err != nil {
		return "", time.Time{}, err
	}

	if err := sess.CheckRenewal(refreshPayload.Account, refreshToken, time.Now()); err != nil {
		l.Warn().Err(err).Str("session_id", sess.ID.String()).Send()
		return "", time.Time{}, err
	}

	accessToken, accessPayload, err := s.maker.CreateToken(refreshPayload.Account, s.accessTokenDuration)
	if err != nil {
		l.Error().Err(err).Send()
		return "", time.Time{}, errorspkg.ErrInternal
	}

	return accessToken, accessPayload.ExpiredAt, nil
}
