package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type LaptopStatus string

const (
	LaptopAvailable   LaptopStatus = "available"
	LaptopAssigned    LaptopStatus = "assigned"
	LaptopMaintenance LaptopStatus = "maintenance"
	LaptopRetired     LaptopStatus = "retired"
)

func (s LaptopStatus) Valid() bool {
	switch s {
	case LaptopAvailable, LaptopAssigned, LaptopMaintenance, LaptopRetired:
		return true
	}
	return false
}

// Specs describes the hardware configuration of a laptop.
type Specs struct {
	Processor string `bson:"processor,omitempty" json:"processor,omitempty" validate:"max=100"`
	RAMGB     int    `bson:"ram_gb,omitempty" json:"ram_gb,omitempty" validate:"gte=0,lte=4096"`
	StorageGB int    `bson:"storage_gb,omitempty" json:"storage_gb,omitempty" validate:"gte=0,lte=65536"`
	OS        string `bson:"os,omitempty" json:"os,omitempty" validate:"max=100"`
}

// Laptop is a tracked device. SerialNumber is unique across the inventory.
type Laptop struct {
	Base           `bson:",inline"`
	Brand          string          `bson:"brand" json:"brand"`
	Model          string          `bson:"model" json:"model"`
	SerialNumber   string          `bson:"serial_number" json:"serial_number"`
	Specs          Specs           `bson:"specs" json:"specs"`
	PurchaseDate   *time.Time      `bson:"purchase_date,omitempty" json:"purchase_date,omitempty"`
	PurchasePrice  decimal.Decimal `bson:"purchase_price" json:"purchase_price"`
	WarrantyExpiry *time.Time      `bson:"warranty_expiry,omitempty" json:"warranty_expiry,omitempty"`
	Status         LaptopStatus    `bson:"status" json:"status"`
	Location       string          `bson:"location,omitempty" json:"location,omitempty"`
	Notes          string          `bson:"notes,omitempty" json:"notes,omitempty"`
}

// LaptopFilter narrows laptop listings. Search matches brand, model or serial.
type LaptopFilter struct {
	Status LaptopStatus `form:"status"`
	Brand  string       `form:"brand"`
	Search string       `form:"search"`
}
