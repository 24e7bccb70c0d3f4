package model

import "time"

// Beer ids are 6 hex characters, assigned at creation and never changed.
// Name is the natural key for import replay, so it carries the unique
// index instead of the random id.
type Beer struct {
	ID            string `gorm:"primaryKey;size:6"`
	Name          string `gorm:"uniqueIndex"`
	NameDisplay   *string
	Description   *string
	ABV           *float64
	IBU           *float64
	SRM           *float64
	StyleID       *int
	AvailableID   *int
	GlasswareID   *int
	IsOrganic     bool
	IsRetired     bool
	Labels        *BeerLabels `gorm:"serializer:json"`
	Status        *string
	StatusDisplay *string
	CreateDate    time.Time `gorm:"autoCreateTime"`
	UpdateDate    time.Time `gorm:"autoUpdateTime"`

	Style     *Style        `gorm:"foreignKey:StyleID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Available *Availability `gorm:"foreignKey:AvailableID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Glassware *Glassware    `gorm:"foreignKey:GlasswareID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
}

type BeerLabels struct {
	Icon   string `json:"icon,omitempty"`
	Medium string `json:"medium,omitempty"`
	Large  string `json:"large,omitempty"`
}

// BeerUpdate enumerates the columns a partial update may touch. Nil
// fields are left alone; the id is not updatable.
type BeerUpdate struct {
	Name          *string
	NameDisplay   *string
	Description   *string
	ABV           *float64
	IBU           *float64
	SRM           *float64
	StyleID       *int
	AvailableID   *int
	GlasswareID   *int
	IsOrganic     *bool
	IsRetired     *bool
	Labels        *BeerLabels
	Status        *string
	StatusDisplay *string
}

type Style struct {
	ID          int `gorm:"primaryKey"`
	Name        string
	ShortName   *string
	Description *string
}

type Glassware struct {
	ID   int `gorm:"primaryKey"`
	Name string
}

type Availability struct {
	ID          int `gorm:"primaryKey"`
	Name        string
	Description *string
}

func (Availability) TableName() string { return "availability" }
