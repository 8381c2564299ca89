package models

import "time"

// TournamentStatus is derived from the schedule window, never set by hand.
type TournamentStatus string

const (
	// TournamentStatusUpcoming indicates the tournament has not started yet.
	TournamentStatusUpcoming TournamentStatus = "upcoming"
	// TournamentStatusActive indicates the tournament is in progress.
	TournamentStatusActive TournamentStatus = "active"
	// TournamentStatusCompleted indicates the tournament has ended.
	TournamentStatusCompleted TournamentStatus = "completed"
)

// Tournament is a scheduled competition with a capped participant roster.
type Tournament struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	Name       string           `gorm:"size:120;not null" json:"name"`
	GameID     *uint            `gorm:"index" json:"game_id,omitempty"`
	Game       *Game            `gorm:"foreignKey:GameID" json:"game,omitempty"`
	StartTime  time.Time        `gorm:"not null" json:"start_time"`
	EndTime    time.Time        `gorm:"not null" json:"end_time"`
	MaxPlayers int              `gorm:"not null;default:16" json:"max_players"`
	Status     TournamentStatus `gorm:"type:varchar(20);not null;default:'upcoming'" json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`

	PlayerCount int64 `gorm:"-" json:"player_count,omitempty"`
}

// TableName specifies the table name for GORM
func (Tournament) TableName() string {
	return "tournaments"
}

// TournamentParticipant maps users to tournament rosters.
type TournamentParticipant struct {
	TournamentID uint        `gorm:"primaryKey;autoIncrement:false" json:"tournament_id"`
	Tournament   *Tournament `gorm:"foreignKey:TournamentID" json:"tournament,omitempty"`
	UserID       uint        `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	User         *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// TableName specifies the table name for GORM
func (TournamentParticipant) TableName() string {
	return "tournament_participants"
}

// DeriveTournamentStatus computes the status from the schedule window.
// The boundary instants belong to the active window.
func DeriveTournamentStatus(t *Tournament, now time.Time) TournamentStatus {
	switch {
	case now.Before(t.StartTime):
		return TournamentStatusUpcoming
	case now.After(t.EndTime):
		return TournamentStatusCompleted
	default:
		return TournamentStatusActive
	}
}
