package auth

import (
	"time"

	"github.com/google/uuid"
)

// AdminUser is an organizer account allowed into the roster dashboard.
// Accounts are provisioned by operators; there is no self-signup.
type AdminUser struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
}

func (AdminUser) TableName() string {
	return "admin_users"
}

// Session describes an authenticated admin session derived from a
// validated token.
type Session struct {
	TokenID   string    `json:"-"`
	AdminID   uuid.UUID `json:"admin_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// EventType identifies a session lifecycle transition.
type EventType string

const (
	// SessionOpened fires when the number of tracked sessions goes
	// from zero to one.
	SessionOpened EventType = "opened"
	// SessionClosed fires when the number of tracked sessions drops
	// back to zero.
	SessionClosed EventType = "closed"
)

// Event is delivered to subscribers on session transitions.
type Event struct {
	Type   EventType
	Active int
}
