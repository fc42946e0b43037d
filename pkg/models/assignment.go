package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AssignmentStatus string

const (
	AssignmentActive   AssignmentStatus = "active"
	AssignmentReturned AssignmentStatus = "returned"
)

// Assignment records a laptop handed to an employee. At most one active
// assignment exists per laptop.
type Assignment struct {
	Base              `bson:",inline"`
	LaptopID          primitive.ObjectID  `bson:"laptop_id" json:"laptop_id"`
	EmployeeID        primitive.ObjectID  `bson:"employee_id" json:"employee_id"`
	AssignedBy        *primitive.ObjectID `bson:"assigned_by,omitempty" json:"assigned_by,omitempty"`
	AssignedDate      time.Time           `bson:"assigned_date" json:"assigned_date"`
	ExpectedReturn    *time.Time          `bson:"expected_return,omitempty" json:"expected_return,omitempty"`
	ReturnDate        *time.Time          `bson:"return_date,omitempty" json:"return_date,omitempty"`
	Status            AssignmentStatus    `bson:"status" json:"status"`
	ConditionOnReturn string              `bson:"condition_on_return,omitempty" json:"condition_on_return,omitempty"`
	Notes             string              `bson:"notes,omitempty" json:"notes,omitempty"`
}

type AssignmentFilter struct {
	LaptopID   primitive.ObjectID
	EmployeeID primitive.ObjectID
	Status     AssignmentStatus
}
