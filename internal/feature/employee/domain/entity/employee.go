// Package entity defines the domain entities for the employee feature.
package entity

import "time"

// Employment statuses. Attendance and leave operations only apply to
// employees whose status is StatusPresent.
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
)

// DefaultRole is assigned when an employee is created through candidate
// promotion.
const DefaultRole = "Employee"

// Employee represents a hired member of staff.
type Employee struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name string `gorm:"size:255;not null" json:"name"`

	// Email must be unique across employees; promotion checks it before
	// creating a record.
	Email string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Phone string `gorm:"size:32;not null" json:"phone"`

	Department string `gorm:"size:255;not null" json:"department"`
	Position   string `gorm:"size:255;not null" json:"position"`
	Role       string `gorm:"size:64;not null" json:"role"`

	DateOfJoining time.Time `json:"dateOfJoining"`

	Status string `gorm:"size:16;not null;default:present" json:"status"`

	// Profile is the stored path of the profile document (the resume, when
	// the employee came from a promoted candidate).
	Profile string `gorm:"size:512" json:"profile"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
