// Copyright (c) 2026 Knihovna. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/knihovna/api/internal/platform/apperr"
	"github.com/knihovna/api/internal/platform/constants"
	"github.com/knihovna/api/internal/platform/sec"
)

// TokenProvider defines the contract for generating access tokens.
type TokenProvider interface {
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}

// Service implements the authentication use cases.
type Service struct {
	userRepository    UserRepository
	sessionRepository SessionRepository
	tokenProvider     TokenProvider
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(userRepo UserRepository, sessionRepo SessionRepository, tokenProv TokenProvider, logger *slog.Logger) *Service {
	return &Service{
		userRepository:    userRepo,
		sessionRepository: sessionRepo,
		tokenProvider:     tokenProv,
		logger:            logger,
	}
}

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Username string
	Password string
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *User
}

/*
Login validates user credentials and issues security tokens.

The password check runs in constant time via bcrypt, and unknown-user and
wrong-password failures share one generic message to prevent enumeration.
*/
func (service *Service) Login(ctx context.Context, input LoginInput) (*LoginSession, error) {
	user, err := service.userRepository.FindByUsername(ctx, input.Username)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	session, err := service.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	service.logger.Info("user_logged_in", slog.String("username", user.Username))
	return session, nil
}

/*
Logout revokes the session behind the given refresh token.

An already-gone session counts as success so the operation is idempotent.
*/
func (service *Service) Logout(ctx context.Context, refreshToken string) error {
	if err := service.sessionRepository.Delete(ctx, sec.HashToken(refreshToken)); err != nil {
		return fmt.Errorf("revoking session: %w", err)
	}
	return nil
}

/*
RefreshSession implements refresh token rotation: the presented token is
verified, revoked to block replay, and a fresh pair is issued.
*/
func (service *Service) RefreshSession(ctx context.Context, refreshToken string) (*LoginSession, error) {
	tokenHash := sec.HashToken(refreshToken)

	userID, err := service.sessionRepository.Get(ctx, tokenHash)
	if err != nil {
		return nil, err
	}

	if err := service.sessionRepository.Delete(ctx, tokenHash); err != nil {
		return nil, fmt.Errorf("rotating session: %w", err)
	}

	user, err := service.userRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.Unauthorized("User not found")
	}

	return service.issueSession(ctx, user)
}

/*
ChangePassword lets an authenticated user rotate their own credentials after
re-verifying the current password.
*/
func (service *Service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := service.findUser(ctx, userID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	passwordHash, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hashing new password: %w", err)
	}

	if err := service.userRepository.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
		return err
	}

	service.logger.Info("password_changed", slog.String("username", user.Username))
	return nil
}

// CurrentUser resolves the profile of an authenticated user by token claims.
func (service *Service) CurrentUser(ctx context.Context, userID string) (*User, error) {
	return service.findUser(ctx, userID)
}

// issueSession generates an access token and a tracked refresh session for user.
func (service *Service) issueSession(ctx context.Context, user *User) (*LoginSession, error) {
	accessToken, err := service.tokenProvider.GenerateAccessToken(
		user.ID.Hex(), user.Username, string(user.Role), constants.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("generating access token: %w", err)
	}

	refreshToken, err := sec.GenerateSecureToken(constants.RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("generating refresh token: %w", err)
	}

	expiresAt := time.Now().Add(constants.RefreshTokenTTL)
	if err := service.sessionRepository.Create(ctx,
		sec.HashToken(refreshToken), user.ID, constants.RefreshTokenTTL); err != nil {
		return nil, fmt.Errorf("storing session: %w", err)
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}

func (service *Service) findUser(ctx context.Context, userID string) (*User, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid token subject")
	}
	return service.userRepository.FindByID(ctx, id)
}
