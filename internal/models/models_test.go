package models

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDueDate(t *testing.T) {
	want := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	for _, raw := range []string{
		"2024-01-10T09:00",
		"2024-01-10T09:00:00",
		"2024-01-10 09:00",
		" 2024-01-10 09:00:00 ",
		"2024-01-10T09:00:00Z",
		"2024-01-10T10:00:00+01:00",
	} {
		got, err := ParseDueDate(raw)
		require.NoError(t, err, raw)
		assert.True(t, want.Equal(got), "%s parsed as %s", raw, got)
	}

	day, err := ParseDueDate("2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), day)
}

func TestParseDueDateRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "tomorrow", "2024-13-01T09:00", "10/01/2024"} {
		_, err := ParseDueDate(raw)
		require.Error(t, err, raw)
		assert.ErrorIs(t, err, ErrValidation)
	}
}

func TestParseReminderTimeIsStrict(t *testing.T) {
	got, err := ParseReminderTime("2024-03-05T18:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 18, 30, 0, 0, time.UTC), got)

	for _, raw := range []string{"2024-03-05 18:30", "2024-03-05T18:30:00", "2024-03-05", ""} {
		_, err := ParseReminderTime(raw)
		assert.ErrorIs(t, err, ErrValidation, raw)
	}
}

func TestIdentityOwns(t *testing.T) {
	var anonymous *Identity
	assert.False(t, anonymous.Owns(1))
	assert.False(t, (&Identity{}).Owns(0))

	alice := IdentityOf(User{ID: 7, Username: "alice"})
	assert.True(t, alice.Owns(7))
	assert.False(t, alice.Owns(8))
}

func TestSessionExpired(t *testing.T) {
	now := time.Now()
	s := Session{ExpiresAt: now}
	assert.True(t, s.Expired(now))
	assert.False(t, s.Expired(now.Add(-time.Second)))
}

func TestProblemMessage(t *testing.T) {
	err := fmt.Errorf("signup: %w", Problemf(ErrConflict, "Email already registered."))
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, "Email already registered.", Message(err, "fallback"))
	assert.Equal(t, "fallback", Message(errors.New("boom"), "fallback"))
}
