package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"edumate/internal/auth"
	"edumate/internal/models"
	"edumate/internal/repository"
)

// SessionStore persists login sessions.
type SessionStore interface {
	CreateSession(ctx context.Context, sess models.Session) error
	GetSession(ctx context.Context, token string) (models.Session, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteUserSessions(ctx context.Context, userID int64) (int64, error)
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// SignupInput carries the fields of the registration form.
type SignupInput struct {
	Name      string
	StudentID string
	Email     string
	Password  string
}

// ProfileInput carries the editable profile fields. An empty Password keeps the current one.
type ProfileInput struct {
	Name      string
	StudentID string
	Email     string
	Password  string
}

// AccountService handles signup, login sessions, password resets and profile edits.
type AccountService struct {
	users    *repository.UserRepository
	sessions SessionStore
	hasher   *auth.Hasher
	resets   *auth.ResetTokens
	ttl      time.Duration
	logger   *slog.Logger
	now      func() time.Time
	newToken func() string
	dummy    string
}

func NewAccountService(users *repository.UserRepository, sessions SessionStore, hasher *auth.Hasher,
	resets *auth.ResetTokens, ttl time.Duration, logger *slog.Logger) *AccountService {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	// Compared against on unknown emails so both login failures cost one bcrypt check.
	dummy, _ := hasher.Hash(uuid.NewString())
	return &AccountService{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		resets:   resets,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
		newToken: uuid.NewString,
		dummy:    dummy,
	}
}

// Signup registers a new user. It does not log the user in.
func (s *AccountService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	name := strings.TrimSpace(in.Name)
	studentID := strings.TrimSpace(in.StudentID)
	email := normalizeEmail(in.Email)

	if name == "" {
		return nil, models.Problemf(models.ErrValidation, "Name is required.")
	}
	username, err := usernameFromEmail(email)
	if err != nil {
		return nil, err
	}
	if in.Password == "" {
		return nil, models.Problemf(models.ErrValidation, "Password is required.")
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, models.Problemf(models.ErrConflict, "Email already registered.")
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, models.Problemf(models.ErrConflict, "Username already taken.")
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     username,
		Name:         name,
		StudentID:    studentID,
		Email:        email,
		PasswordHash: digest,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return nil, err
	}
	s.logger.Info("user registered", slog.Int64("user_id", user.ID), slog.String("username", username))
	return &user, nil
}

// Login checks credentials and opens a session. Every failure is the same ErrAuth.
func (s *AccountService) Login(ctx context.Context, email, password string) (models.Session, *models.User, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return models.Session{}, nil, err
	}
	if user == nil {
		s.hasher.Verify(s.dummy, password)
		s.logger.Warn("login failed")
		return models.Session{}, nil, models.ErrAuth
	}
	if !s.hasher.Verify(user.PasswordHash, password) {
		s.logger.Warn("login failed")
		return models.Session{}, nil, models.ErrAuth
	}

	now := s.now().UTC()
	sess := models.Session{
		Token:     s.newToken(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.CreateSession(ctx, sess); err != nil {
		return models.Session{}, nil, err
	}
	s.logger.Info("user logged in", slog.Int64("user_id", user.ID))
	return sess, user, nil
}

// Logout ends the session. Unknown or empty tokens are ignored.
func (s *AccountService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.DeleteSession(ctx, token)
}

// CurrentIdentity resolves the identity behind token, or nil for anonymous requests.
func (s *AccountService) CurrentIdentity(ctx context.Context, token string) (*models.Identity, error) {
	if token == "" {
		return nil, nil
	}
	sess, err := s.sessions.GetSession(ctx, token)
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if sess.Expired(s.now()) {
		return nil, s.sessions.DeleteSession(ctx, token)
	}

	user, err := s.users.FindByID(ctx, sess.UserID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, s.sessions.DeleteSession(ctx, token)
	}
	if err != nil {
		return nil, err
	}
	return models.IdentityOf(*user), nil
}

// ForgotPassword issues a reset token for a registered email and hands it to the
// delivery stub. Callers always show the same acknowledgement.
func (s *AccountService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, models.ErrNotFound) {
		s.logger.Debug("password reset requested for unknown email")
		return nil
	}
	if err != nil {
		return err
	}

	token, err := s.resets.Issue(user.ID, user.Email)
	if err != nil {
		return err
	}
	// No mail transport: the link is only written to the debug log.
	s.logger.Debug("password reset link",
		slog.Int64("user_id", user.ID),
		slog.String("path", "/reset-password?token="+token))
	return nil
}

// ResetPassword sets a new password from a reset token and signs the user out everywhere.
func (s *AccountService) ResetPassword(ctx context.Context, token, password string) error {
	userID, email, err := s.resets.Parse(token)
	if err != nil {
		return err
	}
	if password == "" {
		return models.Problemf(models.ErrValidation, "Password is required.")
	}

	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, models.ErrNotFound) {
		return models.Problemf(models.ErrAuth, "This reset link is invalid.")
	}
	if err != nil {
		return err
	}
	if user.Email != email {
		return models.Problemf(models.ErrAuth, "This reset link is invalid.")
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	user.PasswordHash = digest
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	if _, err := s.sessions.DeleteUserSessions(ctx, user.ID); err != nil {
		return err
	}
	s.logger.Info("password reset", slog.Int64("user_id", user.ID))
	return nil
}

// Profile loads the stored user behind identity.
func (s *AccountService) Profile(ctx context.Context, identity *models.Identity) (*models.User, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, identity.UserID)
}

// UpdateProfile edits the caller's own user row. The username never changes.
func (s *AccountService) UpdateProfile(ctx context.Context, identity *models.Identity, in ProfileInput) (*models.User, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" {
		return nil, models.Problemf(models.ErrValidation, "Name is required.")
	}
	if _, err := usernameFromEmail(email); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}

	if email != user.Email {
		other, err := s.users.FindByEmail(ctx, email)
		if err == nil && other.ID != user.ID {
			return nil, models.Problemf(models.ErrConflict, "Email already registered.")
		}
		if err != nil && !errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
	}

	user.Name = name
	user.StudentID = strings.TrimSpace(in.StudentID)
	user.Email = email
	if in.Password != "" {
		digest, err := s.hasher.Hash(in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = digest
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SweepExpiredSessions removes sessions that are past their expiry.
func (s *AccountService) SweepExpiredSessions(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpiredSessions(ctx, s.now())
}

// SessionTTL is how long a fresh session stays valid.
func (s *AccountService) SessionTTL() time.Duration {
	return s.ttl
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// usernameFromEmail returns the local part of a well-formed email.
func usernameFromEmail(email string) (string, error) {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || strings.Count(email, "@") != 1 {
		return "", models.Problemf(models.ErrValidation, "A valid email is required.")
	}
	return email[:at], nil
}
