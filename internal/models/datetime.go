package models

import (
	"strings"
	"time"
)

// ReminderTimeLayout is the only accepted reminder time format (HTML datetime-local).
const ReminderTimeLayout = "2006-01-02T15:04"

// dueDateLayouts mirror the ISO-8601 shapes a date-time input or a client may send.
var dueDateLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDueDate parses a task due date. Values without a zone are taken as UTC.
func ParseDueDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, Problemf(ErrValidation, "Due date is required.")
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, Problemf(ErrValidation, "Invalid due date %q.", value)
}

// ParseReminderTime parses a reminder time in ReminderTimeLayout exactly.
func ParseReminderTime(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	t, err := time.ParseInLocation(ReminderTimeLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, Problemf(ErrValidation, "Invalid reminder time %q, expected YYYY-MM-DDTHH:MM.", value)
	}
	return t, nil
}
