package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestSessionCheckRenewal(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	valid := Session{
		ID:           uuid.New(),
		Username:     "alice",
		RefreshToken: "refresh",
		ExpiresAt:    now.Add(time.Hour),
	}

	testCases := []struct {
		name    string
		mutate  func(s *Session)
		account string
		token   string
		at      time.Time
		wantErr error
	}{
		{name: "OK", account: "alice", token: "refresh", at: now},
		{name: "ExpiresAtBoundary", account: "alice", token: "refresh", at: now.Add(time.Hour)},
		{
			name:    "Blocked",
			mutate:  func(s *Session) { s.IsBlocked = true },
			account: "alice",
			token:   "refresh",
			at:      now,
			wantErr: ErrBlockedSession,
		},
		{name: "OtherAccount", account: "bob", token: "refresh", at: now, wantErr: ErrInvalidUser},
		{name: "OtherToken", account: "alice", token: "stale", at: now, wantErr: ErrMismatchedRefreshToken},
		{name: "Expired", account: "alice", token: "refresh", at: now.Add(time.Hour + time.Second), wantErr: ErrExpiredSession},
		{
			// a blocked session is reported as blocked whatever else is wrong
			name:    "BlockedAndExpired",
			mutate:  func(s *Session) { s.IsBlocked = true },
			account: "bob",
			token:   "stale",
			at:      now.Add(2 * time.Hour),
			wantErr: ErrBlockedSession,
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s := valid
			if tc.mutate != nil {
				tc.mutate(&s)
			}

			err := s.CheckRenewal(tc.account, tc.token, tc.at)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}
