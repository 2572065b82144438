// Package entity defines the domain entities for the leave feature.
package entity

import (
	"time"

	empentity "hrm_backend/internal/feature/employee/domain/entity"
)

// Leave request statuses. Pending is the filing default; approved and
// rejected are terminal.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Leave represents a leave request filed by or for an employee.
// Only the status field is mutable after creation.
type Leave struct {
	ID uint `gorm:"primaryKey" json:"id"`

	EmployeeID uint                `gorm:"not null;index" json:"employeeId"`
	Employee   *empentity.Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`

	LeaveType   string `gorm:"size:64" json:"leaveType,omitempty"`
	Reason      string `gorm:"size:512;not null" json:"reason"`
	Designation string `gorm:"size:255;not null" json:"designation"`

	Status string `gorm:"size:16;not null;default:pending" json:"status"`

	// FromDate is stored at UTC noon of the requested calendar day so that
	// timezone conversion cannot shift it to a neighbouring day.
	FromDate time.Time `gorm:"not null" json:"fromDate"`

	// Docs is the stored path of the attached document.
	Docs string `gorm:"size:512" json:"docs,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsValidStatus reports whether s is one of the enumerated leave statuses.
func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}
