// Package entity defines the domain entities for the candidate feature.
package entity

import "time"

// Pipeline statuses a candidate moves through. New is the intake default;
// Selected is the only status with a side effect (promotion to employee).
const (
	StatusNew       = "New"
	StatusScheduled = "Scheduled"
	StatusOngoing   = "Ongoing"
	StatusSelected  = "Selected"
	StatusRejected  = "Rejected"
)

// Candidate represents a job applicant in the hiring pipeline.
type Candidate struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name string `gorm:"size:255;not null" json:"name"`

	// Email and Phone are both unique across candidates; intake rejects
	// duplicates on either.
	Email string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Phone string `gorm:"uniqueIndex;size:32;not null" json:"phone"`

	Position   string `gorm:"size:255;not null" json:"position"`
	Experience string `gorm:"size:255;not null" json:"experience"`

	// Resume is the stored path of the uploaded resume file.
	Resume string `gorm:"size:512;not null" json:"resume"`

	Status string `gorm:"size:16;not null;default:New" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsValidStatus reports whether s is one of the enumerated pipeline statuses.
func IsValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusScheduled, StatusOngoing, StatusSelected, StatusRejected:
		return true
	}
	return false
}
