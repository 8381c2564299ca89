package cache

import (
	"fmt"
	"time"
)

// Cache TTLs per entity. Profiles change rarely, rosters churn more.
const (
	UserTTL       = 5 * time.Minute
	GroupTTL      = 1 * time.Minute
	TournamentTTL = 1 * time.Minute
)

// UserKey is the cache key for a user profile.
func UserKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// GroupKey is the cache key for a group with its member count.
func GroupKey(id uint) string {
	return fmt.Sprintf("group:%d", id)
}

// TournamentKey is the cache key for a tournament with its roster count.
func TournamentKey(id uint) string {
	return fmt.Sprintf("tournament:%d", id)
}
