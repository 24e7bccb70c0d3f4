package repository

import (
	"context"

	"beerledger.io/BeerLedger/pkg/model"
)

func (r *Repository) GetStyles(ctx context.Context) ([]*model.Style, error) {
	var styles []*model.Style

	if result := r.DB.WithContext(ctx).Order("name asc").Find(&styles); result.Error != nil {
		return nil, result.Error
	}

	return styles, nil
}
