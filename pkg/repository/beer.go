package repository

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"beerledger.io/BeerLedger/pkg/model"
)

var (
	ErrBeerNotFound     = errors.New("beer not found")
	ErrDuplicateName    = errors.New("beer name already exists")
	ErrNoFieldsToUpdate = errors.New("no fields to update")
)

// BeerFilter carries the listing predicates. Pointer fields impose no
// constraint when nil; the ABV range is always applied and never excludes
// rows whose ABV is unknown.
type BeerFilter struct {
	Search      string
	MinABV      float64
	MaxABV      float64
	StyleID     *int
	AvailableID *int
	IsOrganic   *bool
	IsRetired   *bool
	Page        int
	Limit       int
}

// ListBeers returns one page of matching beers plus the total match count.
// The count query is built from the same criteria function as the row
// query so pagination metadata can never drift from the returned rows.
func (r *Repository) ListBeers(ctx context.Context, filter BeerFilter) ([]*model.Beer, int64, error) {
	var total int64

	countQuery := updateQueryWithCriteria(filter, r.DB.WithContext(ctx).Model(&model.Beer{}))
	if result := countQuery.Count(&total); result.Error != nil {
		return nil, 0, result.Error
	}

	var beers []*model.Beer

	offset := (filter.Page - 1) * filter.Limit
	rowQuery := updateQueryWithCriteria(filter, r.DB.WithContext(ctx).Model(&model.Beer{}))

	result := rowQuery.
		Order("name asc, id asc").
		Limit(filter.Limit).
		Offset(offset).
		Find(&beers)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return beers, total, nil
}

func updateQueryWithCriteria(filter BeerFilter, query *gorm.DB) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	// Null ABV means unknown strength, not zero; such rows always match.
	query = query.Where("(abv IS NULL OR (abv >= ? AND abv <= ?))", filter.MinABV, filter.MaxABV)

	if filter.StyleID != nil {
		query = query.Where("style_id = ?", *filter.StyleID)
	}

	if filter.AvailableID != nil {
		query = query.Where("available_id = ?", *filter.AvailableID)
	}

	if filter.IsOrganic != nil {
		query = query.Where("is_organic = ?", *filter.IsOrganic)
	}

	if filter.IsRetired != nil {
		query = query.Where("is_retired = ?", *filter.IsRetired)
	}

	return query
}

func (r *Repository) GetBeerByID(ctx context.Context, beerID string) (*model.Beer, error) {
	var beer model.Beer

	result := r.DB.WithContext(ctx).Where("id = ?", beerID).First(&beer)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrBeerNotFound
		}

		return nil, result.Error
	}

	return &beer, nil
}

func (r *Repository) CreateBeer(ctx context.Context, beer model.Beer) (*model.Beer, error) {
	if beer.ID == "" {
		id, err := newBeerID()
		if err != nil {
			return nil, err
		}

		beer.ID = id
	}

	if result := r.DB.WithContext(ctx).Create(&beer); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateName
		}

		return nil, result.Error
	}

	return &beer, nil
}

// ImportBeer inserts a beer keyed on its unique name, skipping rows that
// already exist so a dump can be replayed. Returns whether a row was
// actually inserted.
func (r *Repository) ImportBeer(ctx context.Context, beer model.Beer) (bool, error) {
	if beer.ID == "" {
		id, err := newBeerID()
		if err != nil {
			return false, err
		}

		beer.ID = id
	}

	result := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&beer)

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// UpdateBeer applies a whitelisted partial update. The update map always
// touches update_date, so zero affected rows is a reliable absent-id
// signal.
func (r *Repository) UpdateBeer(ctx context.Context, beerID string, update model.BeerUpdate) (*model.Beer, error) {
	updates, err := beerUpdateColumns(update)
	if err != nil {
		return nil, err
	}

	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	updates["update_date"] = time.Now().UTC()

	result := r.DB.WithContext(ctx).Model(&model.Beer{}).Where("id = ?", beerID).Updates(updates)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateName
		}

		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, ErrBeerNotFound
	}

	return r.GetBeerByID(ctx, beerID)
}

//nolint:cyclop // one branch per updatable column
func beerUpdateColumns(update model.BeerUpdate) (map[string]interface{}, error) {
	updates := map[string]interface{}{}

	if update.Name != nil {
		updates["name"] = *update.Name
	}

	if update.NameDisplay != nil {
		updates["name_display"] = *update.NameDisplay
	}

	if update.Description != nil {
		updates["description"] = *update.Description
	}

	if update.ABV != nil {
		updates["abv"] = *update.ABV
	}

	if update.IBU != nil {
		updates["ibu"] = *update.IBU
	}

	if update.SRM != nil {
		updates["srm"] = *update.SRM
	}

	if update.StyleID != nil {
		updates["style_id"] = *update.StyleID
	}

	if update.AvailableID != nil {
		updates["available_id"] = *update.AvailableID
	}

	if update.GlasswareID != nil {
		updates["glassware_id"] = *update.GlasswareID
	}

	if update.IsOrganic != nil {
		updates["is_organic"] = *update.IsOrganic
	}

	if update.IsRetired != nil {
		updates["is_retired"] = *update.IsRetired
	}

	if update.Labels != nil {
		// map-based Updates bypasses the model serializer
		encoded, err := json.Marshal(update.Labels)
		if err != nil {
			return nil, err
		}

		updates["labels"] = string(encoded)
	}

	if update.Status != nil {
		updates["status"] = *update.Status
	}

	if update.StatusDisplay != nil {
		updates["status_display"] = *update.StatusDisplay
	}

	return updates, nil
}

func (r *Repository) DeleteBeer(ctx context.Context, beerID string) error {
	result := r.DB.WithContext(ctx).Where("id = ?", beerID).Delete(&model.Beer{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrBeerNotFound
	}

	return nil
}

const beerIDBytes = 3 // 6 hex characters

func newBeerID() (string, error) {
	buf := make([]byte, beerIDBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	return hex.EncodeToString(buf), nil
}
