package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type IssuePriority string

const (
	PriorityLow      IssuePriority = "low"
	PriorityMedium   IssuePriority = "medium"
	PriorityHigh     IssuePriority = "high"
	PriorityCritical IssuePriority = "critical"
)

type IssueStatus string

const (
	IssueOpen       IssueStatus = "open"
	IssueInProgress IssueStatus = "in_progress"
	IssueResolved   IssueStatus = "resolved"
	IssueClosed     IssueStatus = "closed"
)

// Terminal reports whether the issue no longer needs attention.
func (s IssueStatus) Terminal() bool {
	return s == IssueResolved || s == IssueClosed
}

type Issue struct {
	Base        `bson:",inline"`
	LaptopID    primitive.ObjectID  `bson:"laptop_id" json:"laptop_id"`
	ReportedBy  *primitive.ObjectID `bson:"reported_by,omitempty" json:"reported_by,omitempty"`
	Title       string              `bson:"title" json:"title"`
	Description string              `bson:"description" json:"description"`
	Priority    IssuePriority       `bson:"priority" json:"priority"`
	Status      IssueStatus         `bson:"status" json:"status"`
	Resolution  string              `bson:"resolution,omitempty" json:"resolution,omitempty"`
	ResolvedAt  *time.Time          `bson:"resolved_at,omitempty" json:"resolved_at,omitempty"`
}

type IssueFilter struct {
	LaptopID primitive.ObjectID
	Status   IssueStatus
	Priority IssuePriority
}
