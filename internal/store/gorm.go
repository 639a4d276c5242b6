package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sentient-journal/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// gormStore implements the query logic shared by both backends. Each backend
// supplies its own open path and a classify hook that maps driver errors to
// the package sentinels.
type gormStore struct {
	db       *gorm.DB
	classify func(error) error
}

func (s *gormStore) wrap(op string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%s: %w", op, ErrConflict)
	}
	if s.classify != nil {
		if mapped := s.classify(err); mapped != nil {
			return fmt.Errorf("%s: %w", op, mapped)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (s *gormStore) CreateUser(ctx context.Context, email, password string) (int, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}
	u := model.User{Email: email, Password: string(hash)}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		return 0, s.wrap("create user", err)
	}
	return u.ID, nil
}

func (s *gormStore) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	var u model.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, s.wrap("lookup user", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}

func (s *gormStore) CreateEntry(ctx context.Context, userID int, content string, a model.Analysis) (*model.JournalEntry, error) {
	entry := model.JournalEntry{
		UserID:         userID,
		Content:        content,
		SentimentScore: a.SentimentScore,
		Emotions:       datatypes.NewJSONSlice(a.Emotions),
		KeyThemes:      datatypes.NewJSONSlice(a.KeyThemes),
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, s.wrap("create entry", err)
	}
	return &entry, nil
}

func (s *gormStore) UpdateEntry(ctx context.Context, userID, entryID int, content string, a model.Analysis) (*model.JournalEntry, error) {
	res := s.db.WithContext(ctx).
		Model(&model.JournalEntry{}).
		Where("id = ? AND user_id = ?", entryID, userID).
		Updates(map[string]interface{}{
			"content":         content,
			"sentiment_score": a.SentimentScore,
			"emotions":        datatypes.NewJSONSlice(a.Emotions),
			"key_themes":      datatypes.NewJSONSlice(a.KeyThemes),
			"updated_at":      time.Now().UTC(),
		})
	if res.Error != nil {
		return nil, s.wrap("update entry", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var entry model.JournalEntry
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).
		First(&entry).Error; err != nil {
		return nil, s.wrap("reload entry", err)
	}
	return &entry, nil
}

func (s *gormStore) DeleteEntry(ctx context.Context, userID, entryID int) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).
		Delete(&model.JournalEntry{})
	if res.Error != nil {
		return s.wrap("delete entry", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) ListEntries(ctx context.Context, userID int, since time.Time) ([]model.JournalEntry, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if !since.IsZero() {
		q = q.Where("created_at >= ?", since)
	}
	var entries []model.JournalEntry
	if err := q.Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, s.wrap("list entries", err)
	}
	return entries, nil
}

func (s *gormStore) SearchEntries(ctx context.Context, userID int, f model.SearchFilter) ([]model.JournalEntry, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if f.Query != "" {
		// LOWER + LIKE keeps substring matching case-insensitive on both
		// SQLite and Postgres.
		q = q.Where("LOWER(content) LIKE ?", "%"+strings.ToLower(f.Query)+"%")
	}
	if !f.StartDate.IsZero() {
		q = q.Where("created_at >= ?", f.StartDate)
	}
	if !f.EndDate.IsZero() {
		q = q.Where("created_at <= ?", f.EndDate)
	}
	switch f.Sentiment {
	case "positive":
		q = q.Where("sentiment_score > ?", model.SentimentThreshold)
	case "negative":
		q = q.Where("sentiment_score < ?", -model.SentimentThreshold)
	case "neutral":
		q = q.Where("sentiment_score >= ? AND sentiment_score <= ?", -model.SentimentThreshold, model.SentimentThreshold)
	}
	var entries []model.JournalEntry
	if err := q.Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, s.wrap("search entries", err)
	}
	return entries, nil
}

func (s *gormStore) CountEntries(ctx context.Context, userID int) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&model.JournalEntry{}).
		Where("user_id = ?", userID).
		Count(&n).Error
	if err != nil {
		return 0, s.wrap("count entries", err)
	}
	return n, nil
}

func (s *gormStore) RecentEntries(ctx context.Context, userID, limit int) ([]model.JournalEntry, error) {
	var entries []model.JournalEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, s.wrap("recent entries", err)
	}
	return entries, nil
}

func (s *gormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
