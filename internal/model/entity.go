package model

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex" json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type JournalEntry struct {
	ID             int                         `gorm:"primaryKey" json:"id"`
	UserID         int                         `gorm:"index" json:"user_id"`
	Content        string                      `json:"content"`
	SentimentScore float64                     `json:"sentiment_score"`
	Emotions       datatypes.JSONSlice[string] `json:"emotions"`
	KeyThemes      datatypes.JSONSlice[string] `json:"key_themes"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
}

func (User) TableName() string         { return "users" }
func (JournalEntry) TableName() string { return "journal_entries" }
