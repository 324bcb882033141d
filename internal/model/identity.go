package model

import "time"

// Well-known identity used in demo mode
const (
	DemoUID         UID = "demo-user-123"
	DemoEmail           = "demo@example.com"
	DemoDisplayName     = "Demo Player"
)

// Identity is the signed-in user as reported by the identity provider
type Identity struct {
	UID         UID
	Email       string
	DisplayName string
	PhotoURL    string
}

// DemoIdentity returns the fixed identity bound in demo mode
func DemoIdentity() Identity {
	return Identity{
		UID:         DemoUID,
		Email:       DemoEmail,
		DisplayName: DemoDisplayName,
	}
}

// IsDemo reports whether this is the demo identity
func (i Identity) IsDemo() bool {
	return i.UID == DemoUID
}

// Account is the identity provider's credential record.
// Stored separately from the profile so the hash never leaves the provider.
type Account struct {
	UID          UID       `json:"uid"`
	Email        string    `json:"email"` // normalized, lower case
	DisplayName  string    `json:"display_name"`
	PasswordHash string    `json:"password_hash"` // bcrypt hash
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity returns the public identity for the account
func (a *Account) Identity() Identity {
	return Identity{
		UID:         a.UID,
		Email:       a.Email,
		DisplayName: a.DisplayName,
	}
}
