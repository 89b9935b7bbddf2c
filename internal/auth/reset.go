package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"edumate/internal/models"
)

const resetPurpose = "pwreset"

// resetClaims is the payload of a password reset token.
type resetClaims struct {
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// ResetTokens issues and checks signed, short-lived password reset tokens.
type ResetTokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewResetTokens creates a token issuer. ttl <= 0 falls back to 30 minutes.
func NewResetTokens(secret string, ttl time.Duration) (*ResetTokens, error) {
	if secret == "" {
		return nil, fmt.Errorf("reset token secret must not be empty")
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &ResetTokens{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue signs a token for the user and the email they had when asking for it.
func (r *ResetTokens) Issue(userID int64, email string) (string, error) {
	now := r.now()
	claims := resetClaims{
		Email:   email,
		Purpose: resetPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(r.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(r.secret)
	if err != nil {
		return "", fmt.Errorf("sign reset token: %w", err)
	}
	return token, nil
}

// Parse validates token and returns the user id and email it was issued for.
func (r *ResetTokens) Parse(token string) (int64, string, error) {
	var claims resetClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return r.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(r.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, "", models.Problemf(models.ErrAuth, "This reset link has expired.")
		}
		return 0, "", models.Problemf(models.ErrAuth, "This reset link is invalid.")
	}
	if claims.Purpose != resetPurpose {
		return 0, "", models.Problemf(models.ErrAuth, "This reset link is invalid.")
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, "", models.Problemf(models.ErrAuth, "This reset link is invalid.")
	}
	return userID, claims.Email, nil
}
