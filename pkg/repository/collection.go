package repository

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"beerledger.io/BeerLedger/pkg/model"
)

var (
	ErrEntryNotFound  = errors.New("collection entry not found")
	ErrDuplicateEntry = errors.New("beer already in collection")
)

func (r *Repository) GetCollectionForUser(ctx context.Context, userID int64) ([]*model.CollectionEntry, error) {
	var entries []*model.CollectionEntry

	result := r.DB.WithContext(ctx).
		Joins("Beer").
		Where("collection_entries.user_id = ?", userID).
		Find(&entries)
	if result.Error != nil {
		r.Logger.Error("error getting collection for user", zap.Int64("user_id", userID), zap.Error(result.Error))

		return nil, result.Error
	}

	return entries, nil
}

// AddCollectionEntry inserts conditionally in one statement; the
// (user_id, beer_id) unique index decides the outcome, so concurrent
// requests for the same pair cannot both succeed. Zero rows affected is
// the conflict signal.
func (r *Repository) AddCollectionEntry(ctx context.Context, entry model.CollectionEntry) (*model.CollectionEntry, error) {
	result := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "beer_id"}},
		DoNothing: true,
	}).Create(&entry)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrForeignKeyViolated) {
			return nil, ErrBeerNotFound
		}

		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, ErrDuplicateEntry
	}

	return &entry, nil
}

func (r *Repository) GetCollectionEntryByID(ctx context.Context, entryID uint) (*model.CollectionEntry, error) {
	var entry model.CollectionEntry

	result := r.DB.WithContext(ctx).Where("id = ?", entryID).First(&entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}

		return nil, result.Error
	}

	return &entry, nil
}

func (r *Repository) UpdateCollectionEntry(ctx context.Context, entryID uint, update model.CollectionUpdate) (*model.CollectionEntry, error) {
	updates := map[string]interface{}{}

	if update.Rating != nil {
		updates["rating"] = *update.Rating
	}

	if update.Notes != nil {
		updates["notes"] = *update.Notes
	}

	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	updates["updated_at"] = time.Now().UTC()

	result := r.DB.WithContext(ctx).Model(&model.CollectionEntry{}).Where("id = ?", entryID).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, ErrEntryNotFound
	}

	return r.GetCollectionEntryByID(ctx, entryID)
}

func (r *Repository) DeleteCollectionEntry(ctx context.Context, entryID uint) error {
	result := r.DB.WithContext(ctx).Where("id = ?", entryID).Delete(&model.CollectionEntry{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

func (r *Repository) ClearCollections(ctx context.Context) error {
	result := r.DB.WithContext(ctx).Exec("DELETE FROM collection_entries")

	return result.Error
}
