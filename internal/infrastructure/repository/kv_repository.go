package repository

import (
	"context"
	"time"

	"github.com/medibill/billing-api/internal/domain/entity"
	"github.com/medibill/billing-api/pkg/kvstore"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type kvRepository struct {
	db *gorm.DB
}

// NewKVStore creates a database-backed implementation of the key-value
// store capability.
func NewKVStore(db *gorm.DB) kvstore.Store {
	return &kvRepository{db: db}
}

func (r *kvRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var entry entity.KVEntry
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&entry).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, false, nil
		}
		return nil, false, err
	}
	if entry.IsExpired() {
		return nil, false, nil
	}
	return entry.Value, true, nil
}

func (r *kvRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	entry := entity.KVEntry{
		Key:   key,
		Value: value,
	}
	if ttl > 0 {
		entry.ExpiresAt = time.Now().Add(ttl)
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
	}).Create(&entry).Error
}

func (r *kvRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Delete(&entity.KVEntry{}, "key = ?", key).Error
}
