// Package dto defines data transfer objects for the employee feature's HTTP transport layer.
package dto

// UpdateEmployeeReq is the PATCH body for /api/employees/:id.
// The five directory fields are all required; role is optional.
type UpdateEmployeeReq struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
	Department string `json:"department" binding:"required"`
	Position   string `json:"position" binding:"required"`
	Role       string `json:"role"`
}

// AssignRoleReq is the PATCH body for /api/employees/:id/role.
type AssignRoleReq struct {
	Role string `json:"role" binding:"required"`
}
