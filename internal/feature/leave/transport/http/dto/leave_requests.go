// Package dto defines data transfer objects for the leave feature's HTTP transport layer.
package dto

// CreateLeaveReq is the multipart form body for POST /api/leaves. The
// document file arrives separately under the form field "docs". Either
// employee or employeeName must be supplied; the missing-field message is
// produced by the usecase, so nothing is marked required here.
type CreateLeaveReq struct {
	Employee     uint   `form:"employee"`
	EmployeeName string `form:"employeeName"`
	FromDate     string `form:"fromDate"`
	Reason       string `form:"reason"`
	Designation  string `form:"designation"`
}
