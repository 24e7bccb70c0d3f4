package model

import "time"

// CollectionEntry is one user's rating/notes for one beer. The composite
// unique index is the source of truth for the one-entry-per-(user,beer)
// invariant; inserts rely on it rather than on a pre-check. Entries are
// hard-deleted so a removed beer can be re-added.
type CollectionEntry struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    int64  `gorm:"uniqueIndex:idx_collection_user_beer"`
	BeerID    string `gorm:"size:6;uniqueIndex:idx_collection_user_beer"`
	Rating    *int
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time

	Beer Beer `gorm:"foreignKey:BeerID"`
}

// CollectionUpdate mirrors BeerUpdate: only rating and notes are
// caller-updatable, ownership of an entry never moves.
type CollectionUpdate struct {
	Rating *int
	Notes  *string
}
