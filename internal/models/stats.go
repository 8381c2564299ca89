package models

import "time"

// UserStats holds per-user play statistics refreshed by the background
// stat simulator. Advisory data only; a failed refresh is logged and the
// previous values stand.
type UserStats struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	User        *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	HoursPlayed int       `gorm:"not null;default:0" json:"hours_played"`
	MatchesWon  int       `gorm:"not null;default:0" json:"matches_won"`
	MatchesLost int       `gorm:"not null;default:0" json:"matches_lost"`
	RefreshedAt time.Time `json:"refreshed_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (UserStats) TableName() string {
	return "user_stats"
}

// Achievement records a title a user unlocked.
type Achievement struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	User       *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Title      string    `gorm:"size:120;not null" json:"title"`
	UnlockedAt time.Time `gorm:"not null" json:"unlocked_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Achievement) TableName() string {
	return "achievements"
}

// Review is a short rating one user leaves about another.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	SubjectID uint      `gorm:"not null;index" json:"subject_id"`
	Subject   *User     `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
	Rating    int       `gorm:"not null" json:"rating"`
	Body      string    `gorm:"type:text" json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Review) TableName() string {
	return "reviews"
}
