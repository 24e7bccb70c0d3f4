package server

import (
	"time"

	"beerledger.io/BeerLedger/pkg/model"
)

type beerJSON struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	NameDisplay   *string            `json:"name_display,omitempty"`
	Description   *string            `json:"description,omitempty"`
	ABV           *float64           `json:"abv,omitempty"`
	IBU           *float64           `json:"ibu,omitempty"`
	SRM           *float64           `json:"srm,omitempty"`
	StyleID       *int               `json:"style_id,omitempty"`
	AvailableID   *int               `json:"available_id,omitempty"`
	GlasswareID   *int               `json:"glassware_id,omitempty"`
	IsOrganic     bool               `json:"is_organic"`
	IsRetired     bool               `json:"is_retired"`
	Labels        *model.BeerLabels  `json:"labels,omitempty"`
	Status        *string            `json:"status,omitempty"`
	StatusDisplay *string            `json:"status_display,omitempty"`
	CreateDate    time.Time          `json:"create_date"`
	UpdateDate    time.Time          `json:"update_date"`
}

type styleJSON struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	ShortName   *string `json:"short_name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type collectionEntryJSON struct {
	ID        uint      `json:"id"`
	UserID    int64     `json:"user_id"`
	BeerID    string    `json:"beer_id"`
	Rating    *int      `json:"rating,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Beer      *beerJSON `json:"beer,omitempty"`
}

type paginationJSON struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}

func beerFromModel(beer model.Beer) beerJSON {
	return beerJSON{
		ID:            beer.ID,
		Name:          beer.Name,
		NameDisplay:   beer.NameDisplay,
		Description:   beer.Description,
		ABV:           beer.ABV,
		IBU:           beer.IBU,
		SRM:           beer.SRM,
		StyleID:       beer.StyleID,
		AvailableID:   beer.AvailableID,
		GlasswareID:   beer.GlasswareID,
		IsOrganic:     beer.IsOrganic,
		IsRetired:     beer.IsRetired,
		Labels:        beer.Labels,
		Status:        beer.Status,
		StatusDisplay: beer.StatusDisplay,
		CreateDate:    beer.CreateDate,
		UpdateDate:    beer.UpdateDate,
	}
}

func beersFromModel(beers []*model.Beer) []beerJSON {
	result := make([]beerJSON, 0, len(beers))

	for _, beer := range beers {
		result = append(result, beerFromModel(*beer))
	}

	return result
}

func stylesFromModel(styles []*model.Style) []styleJSON {
	result := make([]styleJSON, 0, len(styles))

	for _, style := range styles {
		result = append(result, styleJSON{
			ID:          style.ID,
			Name:        style.Name,
			ShortName:   style.ShortName,
			Description: style.Description,
		})
	}

	return result
}

func entryFromModel(entry model.CollectionEntry) collectionEntryJSON {
	converted := collectionEntryJSON{
		ID:        entry.ID,
		UserID:    entry.UserID,
		BeerID:    entry.BeerID,
		Rating:    entry.Rating,
		Notes:     entry.Notes,
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	}

	if entry.Beer.ID != "" {
		beer := beerFromModel(entry.Beer)
		converted.Beer = &beer
	}

	return converted
}

func entriesFromModel(entries []*model.CollectionEntry) []collectionEntryJSON {
	result := make([]collectionEntryJSON, 0, len(entries))

	for _, entry := range entries {
		result = append(result, entryFromModel(*entry))
	}

	return result
}

func paginationFor(total int64, page int, limit int) paginationJSON {
	var totalPages int64
	if total > 0 {
		totalPages = (total + int64(limit) - 1) / int64(limit)
	}

	return paginationJSON{Total: total, Page: page, Limit: limit, TotalPages: totalPages}
}
