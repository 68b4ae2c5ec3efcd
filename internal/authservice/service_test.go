package authservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/bitlease/internal/domain"
	"github.com/go-petr/bitlease/pkg/errorspkg"
	"github.com/go-petr/bitlease/pkg/passpkg"
	"github.com/go-petr/bitlease/pkg/randompkg"
	"github.com/go-petr/bitlease/pkg/tokenpkg"
)

func newMaker(t *testing.T) tokenpkg.Maker {
	t.Helper()

	maker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	require.NoError(t, err)

	return maker
}

// hashedPasswordMatcher matches CreateUserParams whose hash belongs to password.
type hashedPasswordMatcher struct {
	arg      domain.CreateUserParams
	password string
}

func (m hashedPasswordMatcher) Matches(x interface{}) bool {
	arg, ok := x.(domain.CreateUserParams)
	if !ok {
		return false
	}

	if err := passpkg.Check(m.password, arg.HashedPassword); err != nil {
		return false
	}

	m.arg.HashedPassword = arg.HashedPassword

	return cmp.Equal(m.arg, arg)
}

func (m hashedPasswordMatcher) String() string {
	return "matches arg and password " + m.password
}

func TestRegister(t *testing.T) {
	t.Parallel()

	password := randompkg.String(10)
	user := domain.User{
		Username: randompkg.Owner(),
		FullName: randompkg.Owner(),
		Email:    randompkg.Email(),
	}
	arg := domain.CreateUserParams{
		Username: user.Username,
		FullName: user.FullName,
		Email:    user.Email,
	}

	testCases := []struct {
		name       string
		password   string
		buildStubs func(repo *MockRepo)
		wantErr    error
	}{
		{
			name:     "OK",
			password: password,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					CreateUser(gomock.Any(), hashedPasswordMatcher{arg, password}).
					Times(1).
					Return(user, nil)
			},
		},
		{
			name:     "UsernameAlreadyExists",
			password: password,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					CreateUser(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.User{}, domain.ErrUsernameAlreadyExists)
			},
			wantErr: domain.ErrUsernameAlreadyExists,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			service := New(repo, newMaker(t), time.Minute, time.Hour)

			got, err := service.Register(context.Background(), user.Username, tc.password, user.FullName, user.Email)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)

			if diff := cmp.Diff(user, got); diff != "" {
				t.Errorf("Register() returned unexpected difference (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCheckPassword(t *testing.T) {
	t.Parallel()

	password := randompkg.String(10)

	hashed, err := passpkg.Hash(password)
	require.NoError(t, err)

	user := domain.User{Username: randompkg.Owner(), HashedPassword: hashed}

	testCases := []struct {
		name       string
		password   string
		buildStubs func(repo *MockRepo)
		wantErr    error
	}{
		{
			name:     "OK",
			password: password,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().GetUser(gomock.Any(), gomock.Eq(user.Username)).Times(1).Return(user, nil)
			},
		},
		{
			name:     "WrongPassword",
			password: password + "x",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().GetUser(gomock.Any(), gomock.Eq(user.Username)).Times(1).Return(user, nil)
			},
			wantErr: domain.ErrWrongPassword,
		},
		{
			name:     "UserNotFound",
			password: password,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					GetUser(gomock.Any(), gomock.Eq(user.Username)).
					Times(1).
					Return(domain.User{}, domain.ErrUserNotFound)
			},
			wantErr: domain.ErrUserNotFound,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			service := New(repo, newMaker(t), time.Minute, time.Hour)

			got, err := service.CheckPassword(context.Background(), user.Username, tc.password)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, user.Username, got.Username)
		})
	}
}

func TestCreateSession(t *testing.T) {
	t.Parallel()

	username := randompkg.Owner()
	maker := newMaker(t)

	testCases := []struct {
		name       string
		buildStubs func(repo *MockRepo)
		wantErr    error
	}{
		{
			name: "OK",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					CreateSession(gomock.Any(), gomock.AssignableToTypeOf(domain.CreateSessionParams{})).
					Times(1).
					DoAndReturn(func(_ context.Context, arg domain.CreateSessionParams) (domain.Session, error) {
						return domain.Session{
							ID:           arg.ID,
							Username:     arg.Username,
							RefreshToken: arg.RefreshToken,
							ExpiresAt:    arg.ExpiresAt,
						}, nil
					})
			},
		},
		{
			name: "RepoInternalError",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					CreateSession(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Session{}, errorspkg.ErrInternal)
			},
			wantErr: errorspkg.ErrInternal,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			service := New(repo, maker, time.Minute, time.Hour)

			accessToken, expiresAt, sess, err := service.CreateSession(context.Background(), domain.CreateSessionParams{
				Username: username,
			})
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			require.WithinDuration(t, time.Now().Add(time.Minute), expiresAt, time.Second)
			require.WithinDuration(t, time.Now().Add(time.Hour), sess.ExpiresAt, time.Second)

			access, err := maker.VerifyToken(accessToken)
			require.NoError(t, err)
			require.Equal(t, username, access.Account)

			refresh, err := maker.VerifyToken(sess.RefreshToken)
			require.NoError(t, err)
			require.Equal(t, sess.ID, refresh.ID)
		})
	}
}

func TestRenewAccessToken(t *testing.T) {
	t.Parallel()

	username := randompkg.Owner()
	maker := newMaker(t)

	refreshToken, payload, err := maker.CreateToken(username, time.Hour)
	require.NoError(t, err)

	expiredToken, _, err := maker.CreateToken(username, -time.Minute)
	require.NoError(t, err)

	otherToken, _, err := maker.CreateToken(username, time.Hour)
	require.NoError(t, err)

	valid := domain.Session{
		ID:           payload.ID,
		Username:     username,
		RefreshToken: refreshToken,
		ExpiresAt:    payload.ExpiredAt,
	}

	testCases := []struct {
		name       string
		token      string
		buildStubs func(repo *MockRepo)
		wantErr    error
	}{
		{
			name:  "OK",
			token: refreshToken,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().GetSession(gomock.Any(), gomock.Eq(payload.ID)).Times(1).Return(valid, nil)
			},
		},
		{
			name:  "ExpiredToken",
			token: expiredToken,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().GetSession(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: tokenpkg.ErrExpiredToken,
		},
		{
			name:  "InvalidToken",
			token: "garbage",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().GetSession(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: tokenpkg.ErrInvalidToken,
		},
		{
			name:  "SessionNotFound",
			token: refreshToken,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					GetSession(gomock.Any(), gomock.Eq(payload.ID)).
					Times(1).
					Return(domain.Session{}, domain.ErrSessionNotFound)
			},
			wantErr: domain.ErrSessionNotFound,
		},
		{
			name:  "BlockedSession",
			token: refreshToken,
			buildStubs: func(repo *MockRepo) {
				s := valid
				s.IsBlocked = true
				repo.EXPECT().GetSession(gomock.Any(), gomock.Any()).Times(1).Return(s, nil)
			},
			wantErr: domain.ErrBlockedSession,
		},
		{
			name:  "InvalidUser",
			token: refreshToken,
			buildStubs: func(repo *MockRepo) {
				s := valid
				s.Username = "someoneelse"
				repo.EXPECT().GetSession(gomock.Any(), gomock.Any()).Times(1).Return(s, nil)
			},
			wantErr: domain.ErrInvalidUser,
		},
		{
			name:  "MismatchedRefreshToken",
			token: refreshToken,
			buildStubs: func(repo *MockRepo) {
				s := valid
				s.RefreshToken = otherToken
				repo.EXPECT().GetSession(gomock.Any(), gomock.Any()).Times(1).Return(s, nil)
			},
			wantErr: domain.ErrMismatchedRefreshToken,
		},
		{
			name:  "ExpiredSession",
			token: refreshToken,
			buildStubs: func(repo *MockRepo) {
				s := valid
				s.ExpiresAt = time.Now().Add(-time.Minute)
				repo.EXPECT().GetSession(gomock.Any(), gomock.Any()).Times(1).Return(s, nil)
			},
			wantErr: domain.ErrExpiredSession,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			service := New(repo, maker, time.Minute, time.Hour)

			accessToken, expiresAt, err := service.RenewAccessToken(context.Background(), tc.token)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("RenewAccessToken() error = %v, want %v", err, tc.wantErr)
				}

				return
			}

			require.NoError(t, err)
			require.NotEmpty(t, accessToken)
			require.False(t, expiresAt.IsZero())
		})
	}
}
