package domain

import "time"

// SessionStatus enumerates customization session lifecycle states.
type SessionStatus string

const (
	SessionStatusActive    SessionStatus = "active"
	SessionStatusSubmitted SessionStatus = "submitted"
	SessionStatusExpired   SessionStatus = "expired"
)

// Session is one shopper's customization of one product. It owns the
// selected variant and, through its field states, the validation checklist
// that gates the add-to-cart action.
type Session struct {
	ID        string
	ProductID string
	VariantID string
	Locale    string
	Country   string
	Status    SessionStatus
	CreatedAt time.Time
	UpdatedAt time.Time
	ExpiresAt time.Time
}

// Active reports whether the session still accepts field updates.
func (s Session) Active() bool {
	return s.Status == SessionStatusActive
}

// Upload records one stored image belonging to an upload field slot.
type Upload struct {
	ID         string
	SessionID  string
	FieldKey   string
	StorageKey string
	MIME       string
	Bytes      int64
	CreatedAt  time.Time
}
