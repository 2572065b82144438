// Package dto defines data transfer objects for the attendance feature's HTTP transport layer.
package dto

// UpsertByEmployeeReq is the PATCH body for /api/attendance/by-employee.
type UpsertByEmployeeReq struct {
	EmployeeID uint   `json:"employeeId" binding:"required"`
	Status     string `json:"status" binding:"required"`
}

// UpdateStatusReq is the PATCH body for /api/attendance/:id.
type UpdateStatusReq struct {
	Status string `json:"status" binding:"required"`
}
