package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"agentdeck/internal/database"
	"agentdeck/internal/metrics"
	"agentdeck/internal/models"
)

// ErrInvalidCredentials is returned for every login failure. Whether the
// account is missing or the password wrong is deliberately not revealed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service implements account and session management on top of the
// user and session repositories.
type Service struct {
	users    *database.UserRepo
	sessions *database.SessionRepo
	tokens   *TokenManager
	log      zerolog.Logger
}

// NewService creates an auth service.
func NewService(users *database.UserRepo, sessions *database.SessionRepo, tokens *TokenManager, log zerolog.Logger) *Service {
	return &Service{users: users, sessions: sessions, tokens: tokens, log: log}
}

// Register creates a new account. Input shape validation happens at the
// handler; this checks uniqueness and stores the hashed password.
func (s *Service) Register(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	taken, err := s.users.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, database.ErrUsernameTaken
	}

	taken, err = s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, database.ErrEmailTaken
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("account created")
	return user, nil
}

// Login verifies credentials against an active account. Every failure
// mode collapses into ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, identifier, password string) (*models.User, error) {
	user, err := s.users.GetByUsernameOrEmail(ctx, identifier)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !VerifyPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// CreateSession issues a signed token for the user and persists the
// matching session row.
func (s *Service) CreateSession(ctx context.Context, userID string) (*models.Session, error) {
	token, err := s.tokens.Generate(userID)
	if err != nil {
		return nil, err
	}

	session := &models.Session{
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().Add(s.tokens.TTL()),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	metrics.Global().SessionsCreated.Inc()
	return session, nil
}

// UserFromSession resolves a session token to its user. Any failure,
// from a bad signature to a deleted session row to a deactivated
// account, yields nil; the caller treats nil as unauthenticated.
func (s *Service) UserFromSession(ctx context.Context, token string) *models.User {
	if token == "" {
		return nil
	}
	if _, err := s.tokens.Parse(token); err != nil {
		return nil
	}

	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil || !user.IsActive {
		return nil
	}
	return user
}

// DeleteSession revokes a session token. Deleting a token that no
// longer exists is not an error.
func (s *Service) DeleteSession(ctx context.Context, token string) error {
	return s.sessions.DeleteByToken(ctx, token)
}

// CleanupExpiredSessions removes all expired session rows.
func (s *Service) CleanupExpiredSessions(ctx context.Context) {
	n, err := s.sessions.DeleteExpired(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("session cleanup failed")
		return
	}
	if n > 0 {
		s.log.Info().Int64("removed", n).Msg("expired sessions removed")
	}
}
