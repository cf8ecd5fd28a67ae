package model

import "time"

// SpaceType is the closed set of physical placement kinds.
type SpaceType string

const (
	TypeEndcap        SpaceType = "endcap"
	TypeDigitalScreen SpaceType = "digital-display"
	TypeWindow        SpaceType = "window"
	TypeFloorStanding SpaceType = "floor-standing"
	TypeCheckout      SpaceType = "checkout"
	TypeEntrance      SpaceType = "entrance"
)

// SpaceTypes lists every valid space type, in display order.
func SpaceTypes() []SpaceType {
	return []SpaceType{
		TypeEndcap, TypeDigitalScreen, TypeWindow,
		TypeFloorStanding, TypeCheckout, TypeEntrance,
	}
}

// Valid reports whether t is a known space type.
func (t SpaceType) Valid() bool {
	switch t {
	case TypeEndcap, TypeDigitalScreen, TypeWindow, TypeFloorStanding, TypeCheckout, TypeEntrance:
		return true
	}
	return false
}

// Label returns the pt-BR display name for the type.
func (t SpaceType) Label() string {
	switch t {
	case TypeEndcap:
		return "Ponta de Gôndola"
	case TypeDigitalScreen:
		return "Display Digital"
	case TypeWindow:
		return "Vitrine"
	case TypeFloorStanding:
		return "Display de Chão"
	case TypeCheckout:
		return "Checkout"
	case TypeEntrance:
		return "Entrada"
	}
	return string(t)
}

// SpaceStatus is the availability state of a space.
type SpaceStatus string

const (
	StatusAvailable  SpaceStatus = "available"
	StatusReserved   SpaceStatus = "reserved"
	StatusHighDemand SpaceStatus = "high-demand"
)

// Valid reports whether s is a known space status.
func (s SpaceStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusReserved, StatusHighDemand:
		return true
	}
	return false
}

// Label returns the pt-BR display name for the status.
func (s SpaceStatus) Label() string {
	switch s {
	case StatusAvailable:
		return "Disponível"
	case StatusReserved:
		return "Reservado"
	case StatusHighDemand:
		return "Alta Demanda"
	}
	return string(s)
}

// BadgeColor returns the UI badge variant for the status.
func (s SpaceStatus) BadgeColor() string {
	switch s {
	case StatusAvailable:
		return "default"
	case StatusReserved:
		return "destructive"
	case StatusHighDemand:
		return "secondary"
	}
	return "default"
}

// StoreSector is a department present inside a retail store.
type StoreSector string

const (
	SectorSalao            StoreSector = "Salão"
	SectorAutosservico     StoreSector = "Autosserviço"
	SectorLinhaBranca      StoreSector = "Linha Branca"
	SectorMoveis           StoreSector = "Móveis"
	SectorTelefonia        StoreSector = "Telefonia"
	SectorEletronicos      StoreSector = "Eletrônicos"
	SectorEletrodomesticos StoreSector = "Eletrodomésticos"
	SectorCamaMesaBanho    StoreSector = "Cama, Mesa e Banho"
	SectorModa             StoreSector = "Moda"
	SectorAlimentos        StoreSector = "Alimentos"
)

// Space is the unit of advertising inventory inside a store.
type Space struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	Name        string    `gorm:"size:256;not null" json:"name"`
	Description string    `gorm:"not null" json:"description"`
	Type        SpaceType `gorm:"size:32;index;not null" json:"type"`

	// Store reference is by ID; name, city and sector are denormalized onto
	// the space row so the filter engine never needs a join.
	StoreID   string      `gorm:"size:64;index;not null" json:"storeId"`
	StoreName string      `gorm:"size:256;not null" json:"storeName"`
	City      string      `gorm:"size:128;index;not null" json:"city"`
	Sector    StoreSector `gorm:"size:64;not null" json:"sector"`

	Price             float64     `gorm:"not null;check:price >= 0" json:"price"`
	Images            []string    `gorm:"serializer:json" json:"images"`
	Status            SpaceStatus `gorm:"size:32;index;not null;default:available" json:"status"`
	ExposurePotential int         `gorm:"not null" json:"exposurePotential"`
	OccupancyRate     int         `gorm:"not null" json:"occupancyRate"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Associations
	Store Store `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE" json:"-"`
}

// Available reports whether the space may be selected for reservation.
func (s *Space) Available() bool {
	return s.Status == StatusAvailable
}
