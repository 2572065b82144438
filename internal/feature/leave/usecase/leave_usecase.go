// Package usecase はleaveフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	authentity "hrm_backend/internal/feature/auth/domain/entity"
	empentity "hrm_backend/internal/feature/employee/domain/entity"
	empusecase "hrm_backend/internal/feature/employee/usecase"
	"hrm_backend/internal/feature/leave/domain/entity"
)

// fromDatePattern is the strict MM/DD/YYYY check applied at filing.
var fromDatePattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/(0[1-9]|[12][0-9]|3[01])/\d{4}$`)

// Filter narrows the leave list.
type Filter struct {
	Status     string
	EmployeeID uint
	// FromDate keeps leaves on or after the given day.
	FromDate *time.Time
	// Search resolves to an employee-id set by case-insensitive name match.
	Search string
	// IDs restricts the list to the given employee ids. It is filled by the
	// usecase when Search resolves to more than one employee.
	IDs []uint
	// CalendarOnly forces Status to approved (calendar-view rendering).
	CalendarOnly bool
}

// CreateInput carries the fields of a leave filing. Docs is the stored path
// of the already-saved upload. When EmployeeID is zero, EmployeeName is
// resolved against present employees by exact name.
type CreateInput struct {
	EmployeeID   uint
	EmployeeName string
	FromDate     string
	Reason       string
	Designation  string
	Docs         string
}

// LeaveRepository はleaveエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type LeaveRepository interface {
	Create(ctx context.Context, l *entity.Leave) error
	// FindByID returns the leave with its employee preloaded.
	FindByID(ctx context.Context, id uint) (*entity.Leave, error)
	List(ctx context.Context, f Filter) ([]entity.Leave, error)
	// UpdateStatus mutates only the status field.
	UpdateStatus(ctx context.Context, id uint, status string) (*entity.Leave, error)
	Delete(ctx context.Context, id uint) error
}

// EmployeeDirectory is the slice of the employee feature the workflow needs.
type EmployeeDirectory interface {
	FindPresent(ctx context.Context, id uint) (*empentity.Employee, error)
	FindPresentByName(ctx context.Context, name string) (*empentity.Employee, error)
	IDsByNameSearch(ctx context.Context, search string) ([]uint, error)
}

// leaveUsecase は休暇ワークフローのビジネスロジックを実装します。
type leaveUsecase struct {
	leaves    LeaveRepository
	employees EmployeeDirectory
}

// NewLeaveUsecase はleaveUsecaseの新しいインスタンスを生成します。
func NewLeaveUsecase(leaves LeaveRepository, employees EmployeeDirectory) *leaveUsecase {
	return &leaveUsecase{leaves: leaves, employees: employees}
}

// Create は休暇申請を登録します。
// 従業員はIDまたは名前（在籍者の完全一致）で解決されます。HR/Admin以外の
// 申請者は自分自身の分しか申請できません。fromDateは厳密なMM/DD/YYYY形式
// で、タイムゾーンによる日付ずれを避けるためUTC正午として解釈されます。
func (u *leaveUsecase) Create(ctx context.Context, actor *authentity.User, in CreateInput) (*entity.Leave, error) {
	employeeID := in.EmployeeID
	if employeeID == 0 && in.EmployeeName != "" {
		emp, err := u.employees.FindPresentByName(ctx, in.EmployeeName)
		if err != nil {
			if errors.Is(err, empusecase.ErrEmployeeNotFound) {
				return nil, ErrEmployeeNameNotFound
			}
			return nil, err
		}
		employeeID = emp.ID
	}

	if actor != nil && !actor.IsPrivileged() && actor.ID != employeeID {
		return nil, ErrForbidden
	}

	if employeeID == 0 || in.FromDate == "" || in.Reason == "" || in.Designation == "" {
		return nil, ErrMissingFields
	}

	fromDate, err := parseFromDate(in.FromDate)
	if err != nil {
		return nil, err
	}

	if _, err := u.employees.FindPresent(ctx, employeeID); err != nil {
		if errors.Is(err, empusecase.ErrEmployeeNotFound) {
			return nil, ErrEmployeeNotPresent
		}
		return nil, err
	}

	leave := &entity.Leave{
		EmployeeID:  employeeID,
		Reason:      in.Reason,
		Designation: in.Designation,
		Status:      entity.StatusPending,
		FromDate:    fromDate,
		Docs:        in.Docs,
	}
	if err := u.leaves.Create(ctx, leave); err != nil {
		return nil, err
	}
	return leave, nil
}

// List はフィルタに一致する休暇申請を返します。
// Searchは名前の部分一致で従業員ID集合へ解決され、CalendarOnlyは
// ステータスをapprovedに固定します。
func (u *leaveUsecase) List(ctx context.Context, f Filter) ([]entity.Leave, error) {
	if f.CalendarOnly {
		f.Status = entity.StatusApproved
	}
	if f.Search != "" {
		ids, err := u.employees.IDsByNameSearch(ctx, f.Search)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return []entity.Leave{}, nil
		}
		f.Search = ""
		return u.leaves.List(ctx, filterWithIDs(f, ids))
	}
	return u.leaves.List(ctx, f)
}

// filterWithIDs narrows the filter to the given employee-id set. A single
// match collapses onto EmployeeID; larger sets go through the IDs field.
func filterWithIDs(f Filter, ids []uint) Filter {
	if len(ids) == 1 {
		f.EmployeeID = ids[0]
		return f
	}
	f.IDs = ids
	return f
}

// Get はIDで休暇申請を取得します。
func (u *leaveUsecase) Get(ctx context.Context, id uint) (*entity.Leave, error) {
	return u.leaves.FindByID(ctx, id)
}

// UpdateStatus は休暇申請のステータスのみを更新します。
func (u *leaveUsecase) UpdateStatus(ctx context.Context, id uint, status string) (*entity.Leave, error) {
	if !entity.IsValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	return u.leaves.UpdateStatus(ctx, id, status)
}

// Delete は休暇申請を削除します。
func (u *leaveUsecase) Delete(ctx context.Context, id uint) error {
	return u.leaves.Delete(ctx, id)
}

// parseFromDate validates the MM/DD/YYYY form and pins the result to UTC
// noon of that calendar day.
func parseFromDate(s string) (time.Time, error) {
	if !fromDatePattern.MatchString(s) {
		return time.Time{}, ErrInvalidDate
	}
	parts := strings.Split(s, "/")
	month, _ := strconv.Atoi(parts[0])
	day, _ := strconv.Atoi(parts[1])
	year, _ := strconv.Atoi(parts[2])
	return time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC), nil
}

// ParseFromDate is the exported form used by the transport layer for the
// fromDate list filter.
func ParseFromDate(s string) (time.Time, error) {
	return parseFromDate(s)
}
