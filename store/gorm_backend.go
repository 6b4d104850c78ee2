package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yeremiapane/enterprise-pos/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBackend stores values in the kv_entries table of a gorm database
// (sqlite or mysql).
type GormBackend struct {
	DB *gorm.DB
}

func NewGormBackend(db *gorm.DB) (*GormBackend, error) {
	if err := db.AutoMigrate(&models.KVEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate kv_entries: %w", err)
	}
	return &GormBackend{DB: db}, nil
}

func (g *GormBackend) Load(ctx context.Context, key string) ([]byte, error) {
	var entry models.KVEntry
	err := g.DB.WithContext(ctx).Where("`key` = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	return entry.Value, nil
}

func (g *GormBackend) Save(ctx context.Context, key string, value []byte) error {
	entry := models.KVEntry{Key: key, Value: value, UpdatedAt: time.Now()}
	err := g.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
