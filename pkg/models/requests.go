package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Laptop payloads

type CreateLaptopRequest struct {
	Brand          string          `json:"brand" validate:"required,max=100"`
	Model          string          `json:"model" validate:"required,max=100"`
	SerialNumber   string          `json:"serial_number" validate:"required,serial"`
	Specs          Specs           `json:"specs"`
	PurchaseDate   *time.Time      `json:"purchase_date"`
	PurchasePrice  decimal.Decimal `json:"purchase_price" validate:"gte=0"`
	WarrantyExpiry *time.Time      `json:"warranty_expiry"`
	Status         LaptopStatus    `json:"status" validate:"omitempty,oneof=available maintenance retired"`
	Location       string          `json:"location" validate:"max=200"`
	Notes          string          `json:"notes" validate:"max=2000"`
}

type UpdateLaptopRequest struct {
	Brand          *string          `json:"brand" validate:"omitempty,min=1,max=100"`
	Model          *string          `json:"model" validate:"omitempty,min=1,max=100"`
	SerialNumber   *string          `json:"serial_number" validate:"omitempty,serial"`
	Specs          *Specs           `json:"specs"`
	PurchaseDate   *time.Time       `json:"purchase_date"`
	PurchasePrice  *decimal.Decimal `json:"purchase_price" validate:"omitempty,gte=0"`
	WarrantyExpiry *time.Time       `json:"warranty_expiry"`
	Status         *LaptopStatus    `json:"status" validate:"omitempty,oneof=available assigned maintenance retired"`
	Location       *string          `json:"location" validate:"omitempty,max=200"`
	Notes          *string          `json:"notes" validate:"omitempty,max=2000"`
}

// Employee payloads

type CreateEmployeeRequest struct {
	FirstName  string `json:"first_name" validate:"required,max=100"`
	LastName   string `json:"last_name" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email,max=254"`
	Department string `json:"department" validate:"required,max=100"`
	Position   string `json:"position" validate:"max=100"`
	Phone      string `json:"phone" validate:"max=30"`
}

type UpdateEmployeeRequest struct {
	FirstName  *string         `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName   *string         `json:"last_name" validate:"omitempty,min=1,max=100"`
	Email      *string         `json:"email" validate:"omitempty,email,max=254"`
	Department *string         `json:"department" validate:"omitempty,min=1,max=100"`
	Position   *string         `json:"position" validate:"omitempty,max=100"`
	Phone      *string         `json:"phone" validate:"omitempty,max=30"`
	Status     *EmployeeStatus `json:"status" validate:"omitempty,oneof=active inactive"`
}

// Assignment payloads

type CreateAssignmentRequest struct {
	LaptopID       string     `json:"laptop_id" validate:"required,objectid"`
	EmployeeID     string     `json:"employee_id" validate:"required,objectid"`
	AssignedDate   *time.Time `json:"assigned_date"`
	ExpectedReturn *time.Time `json:"expected_return"`
	Notes          string     `json:"notes" validate:"max=2000"`
}

type ReturnAssignmentRequest struct {
	ReturnDate *time.Time `json:"return_date"`
	Condition  string     `json:"condition" validate:"max=500"`
	Notes      string     `json:"notes" validate:"max=2000"`
}

// Maintenance payloads

type CreateMaintenanceRequest struct {
	LaptopID      string            `json:"laptop_id" validate:"required,objectid"`
	Type          MaintenanceType   `json:"type" validate:"required,oneof=repair upgrade cleaning inspection battery_replacement"`
	Description   string            `json:"description" validate:"required,max=2000"`
	Cost          decimal.Decimal   `json:"cost" validate:"gte=0"`
	ScheduledDate *time.Time        `json:"scheduled_date"`
	Technician    string            `json:"technician" validate:"max=100"`
	Status        MaintenanceStatus `json:"status" validate:"omitempty,oneof=scheduled in_progress"`
}

type UpdateMaintenanceRequest struct {
	Type          *MaintenanceType   `json:"type" validate:"omitempty,oneof=repair upgrade cleaning inspection battery_replacement"`
	Description   *string            `json:"description" validate:"omitempty,min=1,max=2000"`
	Cost          *decimal.Decimal   `json:"cost" validate:"omitempty,gte=0"`
	ScheduledDate *time.Time         `json:"scheduled_date"`
	Technician    *string            `json:"technician" validate:"omitempty,max=100"`
	Status        *MaintenanceStatus `json:"status" validate:"omitempty,oneof=scheduled in_progress completed cancelled"`
}

// Issue payloads

type CreateIssueRequest struct {
	LaptopID    string        `json:"laptop_id" validate:"required,objectid"`
	ReportedBy  string        `json:"reported_by" validate:"omitempty,objectid"`
	Title       string        `json:"title" validate:"required,max=200"`
	Description string        `json:"description" validate:"required,max=5000"`
	Priority    IssuePriority `json:"priority" validate:"omitempty,oneof=low medium high critical"`
}

type UpdateIssueRequest struct {
	Title       *string        `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string        `json:"description" validate:"omitempty,min=1,max=5000"`
	Priority    *IssuePriority `json:"priority" validate:"omitempty,oneof=low medium high critical"`
	Status      *IssueStatus   `json:"status" validate:"omitempty,oneof=open in_progress resolved closed"`
	Resolution  *string        `json:"resolution" validate:"omitempty,max=5000"`
}

// Auth payloads

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Name     string `json:"name" validate:"required,max=100"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=128"`
	TOTPCode string `json:"totp_code" validate:"omitempty,len=6,numeric"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TOTPCodeRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

type DisableTOTPRequest struct {
	Password string `json:"password" validate:"required,max=128"`
}
