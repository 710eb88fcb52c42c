package models

import "time"

// Prediction is a user's forecast for a single match. A user may hold at most
// one prediction per match; the composite unique index backs the duplicate
// check performed at creation time.
type Prediction struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Match         string    `gorm:"not null;uniqueIndex:idx_predictions_owner_match" json:"match"`
	GoalsTeam1    int       `gorm:"not null" json:"goalsTeam1"`
	GoalsTeam2    int       `gorm:"not null" json:"goalsTeam2"`
	RedCards      int       `json:"redCards"`
	YellowCards   int       `json:"yellowCards"`
	Penalties     int       `json:"penalties"`
	Picture       string    `json:"picture"`
	BackupPicture string    `json:"backupPicture"`
	CreatedBy     uint      `gorm:"not null;uniqueIndex:idx_predictions_owner_match" json:"createdBy"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
