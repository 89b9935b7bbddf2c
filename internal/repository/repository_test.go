package repository_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"edumate/internal/models"
	"edumate/internal/repository"
	"edumate/internal/storage/sqlite"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := sqlite.Open(":memory:", logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	db, err := repository.NewDB(store.DB(), logger)
	require.NoError(t, err)
	return db
}

func createUser(t *testing.T, users *repository.UserRepository, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Name: username, Email: username + "@example.com", PasswordHash: "digest"}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func at(hour int) time.Time {
	return time.Date(2024, 1, 10, hour, 0, 0, 0, time.UTC)
}

func TestUserRepositoryUniqueness(t *testing.T) {
	users := repository.NewUserRepository(openDB(t))
	ctx := context.Background()
	alice := createUser(t, users, "alice")

	dupEmail := &models.User{Username: "other", Name: "x", Email: alice.Email, PasswordHash: "d"}
	assert.ErrorIs(t, users.Create(ctx, dupEmail), models.ErrConflict)

	dupName := &models.User{Username: "alice", Name: "x", Email: "x@example.com", PasswordHash: "d"}
	assert.ErrorIs(t, users.Create(ctx, dupName), models.ErrConflict)

	got, err := users.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	_, err = users.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = users.FindByID(ctx, 999)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUserRepositoryUpdate(t *testing.T) {
	users := repository.NewUserRepository(openDB(t))
	ctx := context.Background()
	alice := createUser(t, users, "alice")
	bob := createUser(t, users, "bob")

	alice.Name = "Alice A."
	alice.StudentID = "S9"
	require.NoError(t, users.Update(ctx, alice))
	got, err := users.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice A.", got.Name)
	assert.Equal(t, "S9", got.StudentID)

	alice.Email = bob.Email
	assert.ErrorIs(t, users.Update(ctx, alice), models.ErrConflict)
}

func TestTaskListOrderingAndScope(t *testing.T) {
	db := openDB(t)
	users := repository.NewUserRepository(db)
	tasks := repository.NewTaskRepository(db)
	ctx := context.Background()
	alice := createUser(t, users, "alice")
	bob := createUser(t, users, "bob")

	for _, task := range []*models.Task{
		{Title: "late", DueDate: at(12), UserID: alice.ID},
		{Title: "tie-first", DueDate: at(9), UserID: alice.ID},
		{Title: "bob's", DueDate: at(8), UserID: bob.ID},
		{Title: "tie-second", DueDate: at(9), UserID: alice.ID},
	} {
		require.NoError(t, tasks.Create(ctx, task))
	}

	list, err := tasks.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	var titles []string
	for _, task := range list {
		assert.Equal(t, alice.ID, task.UserID)
		assert.False(t, task.Completed)
		titles = append(titles, task.Title)
	}
	assert.Equal(t, []string{"tie-first", "tie-second", "late"}, titles)
}

func TestTaskUpdateAndDelete(t *testing.T) {
	db := openDB(t)
	tasks := repository.NewTaskRepository(db)
	ctx := context.Background()
	alice := createUser(t, repository.NewUserRepository(db), "alice")

	task := &models.Task{Title: "HW1", TaskType: "homework", DueDate: at(9), UserID: alice.ID}
	require.NoError(t, tasks.Create(ctx, task))

	task.Title = "HW1 (revised)"
	task.DueDate = at(11)
	task.Notes = "chapter 3"
	require.NoError(t, tasks.Update(ctx, task))

	got, err := tasks.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "HW1 (revised)", got.Title)
	assert.True(t, at(11).Equal(got.DueDate))
	assert.Equal(t, "chapter 3", got.Notes)

	require.NoError(t, tasks.Delete(ctx, task.ID))
	_, err = tasks.FindByID(ctx, task.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.ErrorIs(t, tasks.Delete(ctx, task.ID), models.ErrNotFound)
}

func TestTaskAtomicRollsBack(t *testing.T) {
	db := openDB(t)
	tasks := repository.NewTaskRepository(db)
	ctx := context.Background()
	alice := createUser(t, repository.NewUserRepository(db), "alice")

	task := &models.Task{Title: "keep", DueDate: at(9), UserID: alice.ID}
	require.NoError(t, tasks.Create(ctx, task))

	err := tasks.Atomic(ctx, func(tx *repository.TaskRepository) error {
		require.NoError(t, tx.Delete(ctx, task.ID))
		return models.ErrForbidden
	})
	assert.ErrorIs(t, err, models.ErrForbidden)

	_, err = tasks.FindByID(ctx, task.ID)
	assert.NoError(t, err, "delete inside a failed transaction must roll back")
}

func TestReminderListOrdering(t *testing.T) {
	db := openDB(t)
	reminders := repository.NewReminderRepository(db)
	ctx := context.Background()
	alice := createUser(t, repository.NewUserRepository(db), "alice")

	for _, r := range []*models.Reminder{
		{Title: "evening", ReminderTime: at(20), UserID: alice.ID},
		{Title: "morning", ReminderTime: at(7), UserID: alice.ID},
	} {
		require.NoError(t, reminders.Create(ctx, r))
	}

	list, err := reminders.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "morning", list[0].Title)
	assert.Equal(t, "evening", list[1].Title)

	list[0].Title = "early morning"
	require.NoError(t, reminders.Update(ctx, &list[0]))
	got, err := reminders.FindByID(ctx, list[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "early morning", got.Title)

	require.NoError(t, reminders.Delete(ctx, got.ID))
	_, err = reminders.FindByID(ctx, got.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
