package hopup

import (
	"time"

	"pitboxBackend/domain/photo"
	"pitboxBackend/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type InstallStatus string

const (
	StatusPlanned   InstallStatus = "planned"
	StatusInstalled InstallStatus = "installed"
	StatusRemoved   InstallStatus = "removed"
)

func (s InstallStatus) IsValid() bool {
	switch s {
	case StatusPlanned, StatusInstalled, StatusRemoved:
		return true
	}
	return false
}

// HopUpPart is an aftermarket or upgrade component fitted (or planned) for
// one model.
type HopUpPart struct {
	gorm.Model
	UUID          string `gorm:"uniqueIndex;not null"`
	ModelID       uint   `gorm:"index;not null"`
	Name          string `gorm:"not null"`
	ItemNumber    string
	Category      string
	Manufacturer  string
	Supplier      string
	Cost          float64       `gorm:"not null;default:0"`
	Quantity      int           `gorm:"not null;default:1"`
	Status        InstallStatus `gorm:"not null;default:planned"`
	InstalledAt   *time.Time
	PhotoID       *uint
	Photo         *photo.Photo `gorm:"constraint:OnDelete:SET NULL"`
	Compatibility datatypes.JSONSlice[string]
}

type HopUpIn struct {
	Name          string            `json:"name" binding:"required"`
	ItemNumber    string            `json:"itemNumber"`
	Category      string            `json:"category"`
	Manufacturer  string            `json:"manufacturer"`
	Supplier      string            `json:"supplier"`
	Cost          utils.FlexFloat64 `json:"cost"`
	Quantity      utils.FlexInt     `json:"quantity"`
	Status        string            `json:"status"`
	InstalledAt   *time.Time        `json:"installedAt"`
	PhotoId       string            `json:"photoId"`
	Compatibility []string          `json:"compatibility"`
}

type HopUpUpdateIn struct {
	Name          *string            `json:"name"`
	ItemNumber    *string            `json:"itemNumber"`
	Category      *string            `json:"category"`
	Manufacturer  *string            `json:"manufacturer"`
	Supplier      *string            `json:"supplier"`
	Cost          *utils.FlexFloat64 `json:"cost"`
	Quantity      *utils.FlexInt     `json:"quantity"`
	Status        *string            `json:"status"`
	InstalledAt   *time.Time         `json:"installedAt"`
	PhotoId       *string            `json:"photoId"`
	Compatibility *[]string          `json:"compatibility"`
}

type HopUpOut struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	ItemNumber    string     `json:"itemNumber,omitempty"`
	Category      string     `json:"category,omitempty"`
	Manufacturer  string     `json:"manufacturer,omitempty"`
	Supplier      string     `json:"supplier,omitempty"`
	Cost          float64    `json:"cost"`
	Quantity      int        `json:"quantity"`
	Status        string     `json:"status"`
	InstalledAt   *time.Time `json:"installedAt,omitempty"`
	PhotoId       string     `json:"photoId,omitempty"`
	Compatibility []string   `json:"compatibility"`
}

// SharedHopUpOut is the non-owner projection of a part. Cost, quantity and
// supplier are deliberately absent: spending details stay private even on
// shared models.
type SharedHopUpOut struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	ItemNumber    string     `json:"itemNumber,omitempty"`
	Category      string     `json:"category,omitempty"`
	Manufacturer  string     `json:"manufacturer,omitempty"`
	Status        string     `json:"status"`
	InstalledAt   *time.Time `json:"installedAt,omitempty"`
	Compatibility []string   `json:"compatibility"`
}

func ToHopUpOut(obj HopUpPart) HopUpOut {
	photoId := ""
	if obj.Photo != nil {
		photoId = obj.Photo.UUID
	}

	return HopUpOut{
		ID:            obj.UUID,
		Name:          obj.Name,
		ItemNumber:    obj.ItemNumber,
		Category:      obj.Category,
		Manufacturer:  obj.Manufacturer,
		Supplier:      obj.Supplier,
		Cost:          obj.Cost,
		Quantity:      obj.Quantity,
		Status:        string(obj.Status),
		InstalledAt:   obj.InstalledAt,
		PhotoId:       photoId,
		Compatibility: obj.Compatibility,
	}
}

func ToSharedHopUpOut(obj HopUpPart) SharedHopUpOut {
	return SharedHopUpOut{
		ID:            obj.UUID,
		Name:          obj.Name,
		ItemNumber:    obj.ItemNumber,
		Category:      obj.Category,
		Manufacturer:  obj.Manufacturer,
		Status:        string(obj.Status),
		InstalledAt:   obj.InstalledAt,
		Compatibility: obj.Compatibility,
	}
}
