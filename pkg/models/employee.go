package models

type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "active"
	EmployeeInactive EmployeeStatus = "inactive"
)

type Employee struct {
	Base       `bson:",inline"`
	FirstName  string         `bson:"first_name" json:"first_name"`
	LastName   string         `bson:"last_name" json:"last_name"`
	Email      string         `bson:"email" json:"email"`
	Department string         `bson:"department" json:"department"`
	Position   string         `bson:"position,omitempty" json:"position,omitempty"`
	Phone      string         `bson:"phone,omitempty" json:"phone,omitempty"`
	Status     EmployeeStatus `bson:"status" json:"status"`
}

func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

type EmployeeFilter struct {
	Department string         `form:"department"`
	Status     EmployeeStatus `form:"status"`
}
