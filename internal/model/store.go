package model

import "time"

// StoreSize classifies the footprint of a retail location.
type StoreSize string

const (
	SizeSmall  StoreSize = "small"
	SizeMedium StoreSize = "medium"
	SizeLarge  StoreSize = "large"
)

// OpeningHours holds the per-day-group opening hour strings.
type OpeningHours struct {
	Weekdays string `json:"weekdays"`
	Saturday string `json:"saturday"`
	Sunday   string `json:"sunday"`
}

// Store represents a physical retail location. Stores are static seed data;
// there are no create/update/delete operations for them.
type Store struct {
	ID         string    `gorm:"primaryKey;size:64" json:"id"`
	Name       string    `gorm:"uniqueIndex;size:256;not null" json:"name"`
	Address    string    `gorm:"size:512;not null" json:"address"`
	City       string    `gorm:"size:128;index;not null" json:"city"`
	State      string    `gorm:"size:8;not null" json:"state"`
	PostalCode string    `gorm:"size:16" json:"postalCode"`
	Phone      string    `gorm:"size:32" json:"phone"`
	Size       StoreSize `gorm:"size:16;not null" json:"storeSize"`

	// Average visitors per day.
	FootTraffic int `gorm:"not null" json:"footTraffic"`

	Hours OpeningHours `gorm:"embedded;embeddedPrefix:hours_" json:"openingHours"`

	Lat float64 `gorm:"not null" json:"lat"`
	Lng float64 `gorm:"not null" json:"lng"`

	Sectors []StoreSector `gorm:"serializer:json" json:"sectors"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Associations
	Spaces []Space `gorm:"foreignKey:StoreID" json:"-"`
}
