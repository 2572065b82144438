// Package entity defines the domain entities for the attendance feature.
package entity

import "time"

// Daily attendance statuses. StatusNotMarked is never persisted; it is the
// virtual status reported for present employees that have no record yet.
const (
	StatusPresent      = "present"
	StatusAbsent       = "absent"
	StatusMedicalLeave = "medical leave"
	StatusWorkFromHome = "work from home"
	StatusNotMarked    = "not marked"
)

// Attendance is the single governing record per employee. The unique index
// on EmployeeID backs the upsert-by-employee semantics.
type Attendance struct {
	ID uint `gorm:"primaryKey" json:"id"`

	EmployeeID uint `gorm:"uniqueIndex;not null" json:"employee"`

	Date   time.Time `json:"date"`
	Status string    `gorm:"size:32;not null" json:"status"`
	Task   string    `gorm:"size:512" json:"task"`

	CheckInTime  *time.Time `json:"checkInTime,omitempty"`
	CheckOutTime *time.Time `json:"checkOutTime,omitempty"`
	Notes        string     `gorm:"size:1024" json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Row is the projection returned by the attendance list: the record joined
// with its employee's directory fields.
type Row struct {
	ID         uint   `json:"id"`
	EmployeeID uint   `json:"employeeId"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Position   string `json:"position"`
	Status     string `json:"status"`
	Profile    string `json:"profile"`
	Task       string `json:"task"`
}

// IsValidStatus reports whether s is one of the persistable statuses.
func IsValidStatus(s string) bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusMedicalLeave, StatusWorkFromHome:
		return true
	}
	return false
}
