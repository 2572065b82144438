// Package dto defines data transfer objects for the candidate feature's HTTP transport layer.
package dto

// CreateCandidateReq is the multipart form body for POST /api/candidates.
// The resume file arrives separately under the form field "resume".
type CreateCandidateReq struct {
	Name       string `form:"name" binding:"required"`
	Email      string `form:"email" binding:"required"`
	Phone      string `form:"phone" binding:"required"`
	Position   string `form:"position" binding:"required"`
	Experience string `form:"experience" binding:"required"`
}

// UpdateStatusReq is the PATCH body for /api/candidates/:id.
type UpdateStatusReq struct {
	Status string `json:"status" binding:"required"`
}
