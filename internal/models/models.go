package models

import "time"

// User is the identity root. Tasks and reminders hang off it by user_id.
type User struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	Username     string     `json:"username" gorm:"size:80;uniqueIndex;not null"`
	Name         string     `json:"name" gorm:"size:120;not null"`
	StudentID    string     `json:"student_id" gorm:"size:20;not null"`
	Email        string     `json:"email" gorm:"size:120;uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"column:password;size:200;not null"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Tasks        []Task     `json:"-" gorm:"foreignKey:UserID"`
	Reminders    []Reminder `json:"-" gorm:"foreignKey:UserID"`
}

// Task is a due-dated unit of work owned by exactly one user.
type Task struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:100;not null"`
	TaskType  string    `json:"task_type" gorm:"size:50"`
	DueDate   time.Time `json:"due_date" gorm:"not null;index"`
	Notes     string    `json:"notes"`
	Completed bool      `json:"completed" gorm:"not null;default:false"`
	UserID    int64     `json:"user_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Reminder records a point in time with a note. Nothing fires when the time passes.
type Reminder struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Title        string    `json:"title" gorm:"size:120;not null"`
	ReminderTime time.Time `json:"reminder_time" gorm:"not null;index"`
	Notes        string    `json:"notes"`
	UserID       int64     `json:"user_id" gorm:"not null;index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Session binds an opaque cookie token to a user until ExpiresAt.
type Session struct {
	Token     string    `json:"-"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is no longer usable at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Identity is the acting user resolved for a single request.
type Identity struct {
	UserID   int64
	Username string
	Name     string
	Email    string
}

// IdentityOf builds the request identity for a stored user.
func IdentityOf(u User) *Identity {
	return &Identity{UserID: u.ID, Username: u.Username, Name: u.Name, Email: u.Email}
}

// Owns reports whether the identity is the owner referenced by ownerID.
func (i *Identity) Owns(ownerID int64) bool {
	return i != nil && i.UserID != 0 && i.UserID == ownerID
}
