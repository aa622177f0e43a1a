// Copyright (c) 2026 Knihovna. All rights reserved.

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/knihovna/api/internal/platform/apperr"
	"github.com/knihovna/api/internal/platform/sec"
	"github.com/knihovna/api/internal/users/auth"
)

// # In-Memory Fakes

type memoryUserRepo struct {
	users map[primitive.ObjectID]*auth.User
}

func (m *memoryUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*auth.User, error) {
	if user, ok := m.users[id]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (m *memoryUserRepo) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (m *memoryUserRepo) Create(_ context.Context, user *auth.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *memoryUserRepo) UpdatePassword(_ context.Context, id primitive.ObjectID, hash string) error {
	user, ok := m.users[id]
	if !ok {
		return apperr.NotFound("User")
	}
	user.PasswordHash = hash
	return nil
}

type memorySessionRepo struct {
	sessions map[string]primitive.ObjectID
}

func (m *memorySessionRepo) Create(_ context.Context, tokenHash string, userID primitive.ObjectID, _ time.Duration) error {
	m.sessions[tokenHash] = userID
	return nil
}

func (m *memorySessionRepo) Get(_ context.Context, tokenHash string) (primitive.ObjectID, error) {
	if userID, ok := m.sessions[tokenHash]; ok {
		return userID, nil
	}
	return primitive.NilObjectID, apperr.Unauthorized("Invalid or expired refresh token")
}

func (m *memorySessionRepo) Delete(_ context.Context, tokenHash string) error {
	delete(m.sessions, tokenHash)
	return nil
}

// # Fixtures

func newTestService(t *testing.T) (*auth.Service, *memoryUserRepo, *memorySessionRepo, *auth.User) {
	t.Helper()

	hash, err := sec.HashPassword("correct-horse")
	require.NoError(t, err)

	user := &auth.User{
		ID:           primitive.NewObjectID(),
		Username:     "marie",
		PasswordHash: hash,
		Role:         sec.RoleMember,
	}

	users := &memoryUserRepo{users: map[primitive.ObjectID]*auth.User{user.ID: user}}
	sessions := &memorySessionRepo{sessions: map[string]primitive.ObjectID{}}

	tokens, err := sec.NewTokenService("unit-test-secret-material", "test")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return auth.NewService(users, sessions, tokens, logger), users, sessions, user
}

// # Tests

/*
TestLogin verifies a successful login issues both tokens and tracks the
refresh session, and that bad credentials fail with a generic message.
*/
func TestLogin(t *testing.T) {
	service, _, sessions, user := newTestService(t)
	ctx := context.Background()

	session, err := service.Login(ctx, auth.LoginInput{Username: "marie", Password: "correct-horse"})
	require.NoError(t, err)

	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	assert.Equal(t, user.ID, session.User.ID)
	assert.Len(t, sessions.sessions, 1, "refresh session is tracked")

	_, err = service.Login(ctx, auth.LoginInput{Username: "marie", Password: "wrong"})
	requireUnauthorized(t, err)

	_, err = service.Login(ctx, auth.LoginInput{Username: "nobody", Password: "correct-horse"})
	requireUnauthorized(t, err)
}

/*
TestRefreshSession verifies rotation: the old refresh token is revoked and a
new session replaces it, so replaying the old token fails.
*/
func TestRefreshSession(t *testing.T) {
	service, _, sessions, _ := newTestService(t)
	ctx := context.Background()

	first, err := service.Login(ctx, auth.LoginInput{Username: "marie", Password: "correct-horse"})
	require.NoError(t, err)

	second, err := service.RefreshSession(ctx, first.RefreshToken)
	require.NoError(t, err)

	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.Len(t, sessions.sessions, 1, "old session replaced, not accumulated")

	_, err = service.RefreshSession(ctx, first.RefreshToken)
	requireUnauthorized(t, err)
}

/*
TestLogout verifies logout revokes the session and is idempotent.
*/
func TestLogout(t *testing.T) {
	service, _, sessions, _ := newTestService(t)
	ctx := context.Background()

	session, err := service.Login(ctx, auth.LoginInput{Username: "marie", Password: "correct-horse"})
	require.NoError(t, err)

	require.NoError(t, service.Logout(ctx, session.RefreshToken))
	assert.Empty(t, sessions.sessions)

	require.NoError(t, service.Logout(ctx, session.RefreshToken), "second logout is a no-op")
}

/*
TestChangePassword verifies the current password gate and that the stored
hash actually rotates.
*/
func TestChangePassword(t *testing.T) {
	service, _, _, user := newTestService(t)
	ctx := context.Background()

	err := service.ChangePassword(ctx, user.ID.Hex(), "wrong", "new-password-123")
	requireUnauthorized(t, err)

	require.NoError(t, service.ChangePassword(ctx, user.ID.Hex(), "correct-horse", "new-password-123"))

	_, err = service.Login(ctx, auth.LoginInput{Username: "marie", Password: "correct-horse"})
	requireUnauthorized(t, err)

	_, err = service.Login(ctx, auth.LoginInput{Username: "marie", Password: "new-password-123"})
	assert.NoError(t, err)
}

func requireUnauthorized(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 401, appError.HTTPStatus)
}
