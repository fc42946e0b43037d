package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MaintenanceType string

const (
	MaintenanceRepair             MaintenanceType = "repair"
	MaintenanceUpgrade            MaintenanceType = "upgrade"
	MaintenanceCleaning           MaintenanceType = "cleaning"
	MaintenanceInspection         MaintenanceType = "inspection"
	MaintenanceBatteryReplacement MaintenanceType = "battery_replacement"
)

type MaintenanceStatus string

const (
	MaintenanceScheduled  MaintenanceStatus = "scheduled"
	MaintenanceInProgress MaintenanceStatus = "in_progress"
	MaintenanceCompleted  MaintenanceStatus = "completed"
	MaintenanceCancelled  MaintenanceStatus = "cancelled"
)

// Open reports whether the record still holds the laptop out of service.
func (s MaintenanceStatus) Open() bool {
	return s == MaintenanceScheduled || s == MaintenanceInProgress
}

type Maintenance struct {
	Base          `bson:",inline"`
	LaptopID      primitive.ObjectID `bson:"laptop_id" json:"laptop_id"`
	Type          MaintenanceType    `bson:"type" json:"type"`
	Description   string             `bson:"description" json:"description"`
	Cost          decimal.Decimal    `bson:"cost" json:"cost"`
	ScheduledDate *time.Time         `bson:"scheduled_date,omitempty" json:"scheduled_date,omitempty"`
	CompletedDate *time.Time         `bson:"completed_date,omitempty" json:"completed_date,omitempty"`
	Technician    string             `bson:"technician,omitempty" json:"technician,omitempty"`
	Status        MaintenanceStatus  `bson:"status" json:"status"`
}

type MaintenanceFilter struct {
	LaptopID primitive.ObjectID
	Status   MaintenanceStatus
	Type     MaintenanceType
}
