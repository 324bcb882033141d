package redis

import (
	"fmt"
	"strconv"
	"time"

	"github.com/mcoot/eggbreaker/internal/model"
)

// Hash field names, matching the JSON record format
const (
	fieldUID         = "uid"
	fieldEmail       = "email"
	fieldDisplayName = "displayName"
	fieldPhotoURL    = "photoURL"
	fieldLevel       = "level"
	fieldClicks      = "clicks"
	fieldTotalClicks = "totalClicks"
	fieldLastLogin   = "lastLogin"
)

// profileFields flattens a profile into HSET arguments
func profileFields(p *model.UserProfile) map[string]any {
	return map[string]any{
		fieldUID:         string(p.UID),
		fieldEmail:       p.Email,
		fieldDisplayName: p.DisplayName,
		fieldPhotoURL:    p.PhotoURL,
		fieldLevel:       p.Level,
		fieldClicks:      p.Clicks,
		fieldTotalClicks: p.TotalClicks,
		fieldLastLogin:   p.LastLogin.UTC().Format(time.RFC3339Nano),
	}
}

// updateFields flattens the non-nil fields of a partial update
func updateFields(u model.ProfileUpdate) map[string]any {
	fields := make(map[string]any, 4)
	if u.Level != nil {
		fields[fieldLevel] = *u.Level
	}
	if u.Clicks != nil {
		fields[fieldClicks] = *u.Clicks
	}
	if u.TotalClicks != nil {
		fields[fieldTotalClicks] = *u.TotalClicks
	}
	if u.LastLogin != nil {
		fields[fieldLastLogin] = u.LastLogin.UTC().Format(time.RFC3339Nano)
	}
	return fields
}

// parseProfile rebuilds a profile from HGETALL output
func parseProfile(fields map[string]string) (*model.UserProfile, error) {
	p := &model.UserProfile{
		UID:         model.UID(fields[fieldUID]),
		Email:       fields[fieldEmail],
		DisplayName: fields[fieldDisplayName],
		PhotoURL:    fields[fieldPhotoURL],
	}

	var err error
	if p.Level, err = strconv.Atoi(fields[fieldLevel]); err != nil {
		return nil, fmt.Errorf("parse %s: %w", fieldLevel, err)
	}
	if p.Clicks, err = strconv.ParseInt(fields[fieldClicks], 10, 64); err != nil {
		return nil, fmt.Errorf("parse %s: %w", fieldClicks, err)
	}
	if p.TotalClicks, err = strconv.ParseInt(fields[fieldTotalClicks], 10, 64); err != nil {
		return nil, fmt.Errorf("parse %s: %w", fieldTotalClicks, err)
	}
	if raw := fields[fieldLastLogin]; raw != "" {
		if p.LastLogin, err = time.Parse(time.RFC3339Nano, raw); err != nil {
			return nil, fmt.Errorf("parse %s: %w", fieldLastLogin, err)
		}
	}
	return p, nil
}
