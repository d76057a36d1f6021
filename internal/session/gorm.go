package session

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/chefcommunity/client/internal/models"
	"github.com/chefcommunity/client/internal/types"
)

// GormStorage keeps the session in the local_storage key/value table of a
// sqlite or postgres database.
type GormStorage struct {
	db *gorm.DB
}

func NewGormStorage(db *gorm.DB) *GormStorage {
	return &GormStorage{db: db}
}

func (g *GormStorage) Load(ctx context.Context) (*types.Session, error) {
	var entries []models.StorageEntry
	err := g.db.WithContext(ctx).
		Where("key IN ?", []string{KeyUser, KeyToken}).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	values := make(map[string]string, len(entries))
	for _, e := range entries {
		values[e.Key] = e.Value
	}
	return decode(values[KeyUser], values[KeyToken])
}

func (g *GormStorage) Save(ctx context.Context, s types.Session) error {
	user, err := encodeUser(s.User)
	if err != nil {
		return err
	}
	entries := []models.StorageEntry{
		{Key: KeyUser, Value: user},
		{Key: KeyToken, Value: s.Token},
	}

	err = g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&entries).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (g *GormStorage) Clear(ctx context.Context) error {
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("key IN ?", []string{KeyUser, KeyToken}).Delete(&models.StorageEntry{})
		if res.Error != nil && !errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return res.Error
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
