package model

import "time"

// UID uniquely identifies a player identity across the system
type UID string

// UserProfile is the persisted progress record for one player identity
type UserProfile struct {
	UID         UID       `json:"uid"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	PhotoURL    string    `json:"photoURL"`
	Level       int       `json:"level"`
	Clicks      int64     `json:"clicks"`
	TotalClicks int64     `json:"totalClicks"`
	LastLogin   time.Time `json:"lastLogin"`
}

// NewProfile returns a level 1 profile with zeroed counters
func NewProfile(uid UID, email, displayName string, now time.Time) *UserProfile {
	return &UserProfile{
		UID:         uid,
		Email:       email,
		DisplayName: displayName,
		Level:       1,
		Clicks:      0,
		TotalClicks: 0,
		LastLogin:   now,
	}
}

// ProfileUpdate is a partial update of a stored profile.
// Nil fields are left untouched.
type ProfileUpdate struct {
	Level       *int
	Clicks      *int64
	TotalClicks *int64
	LastLogin   *time.Time
}

// ProgressUpdate builds the partial update written after gameplay
func ProgressUpdate(p UserProfile) ProfileUpdate {
	return ProfileUpdate{
		Level:       &p.Level,
		Clicks:      &p.Clicks,
		TotalClicks: &p.TotalClicks,
	}
}

// LastLoginUpdate builds the partial update written when a profile is loaded
func LastLoginUpdate(t time.Time) ProfileUpdate {
	return ProfileUpdate{LastLogin: &t}
}

// Apply writes the non-nil fields of the update onto p
func (u ProfileUpdate) Apply(p *UserProfile) {
	if u.Level != nil {
		p.Level = *u.Level
	}
	if u.Clicks != nil {
		p.Clicks = *u.Clicks
	}
	if u.TotalClicks != nil {
		p.TotalClicks = *u.TotalClicks
	}
	if u.LastLogin != nil {
		p.LastLogin = *u.LastLogin
	}
}

// IsEmpty reports whether the update changes nothing
func (u ProfileUpdate) IsEmpty() bool {
	return u.Level == nil && u.Clicks == nil && u.TotalClicks == nil && u.LastLogin == nil
}
