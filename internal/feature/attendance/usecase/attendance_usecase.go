// Package usecase はattendanceフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"

	"hrm_backend/internal/feature/attendance/domain/entity"
	empentity "hrm_backend/internal/feature/employee/domain/entity"
	empusecase "hrm_backend/internal/feature/employee/usecase"
)

// Filter narrows the attendance list. Status is an exact match against the
// attendance enum; Search is a case-insensitive substring match on the
// employee name.
type Filter struct {
	Status string
	Search string
}

// Marked is the result of a successful status write: the governing record
// together with its employee's name.
type Marked struct {
	ID         uint   `json:"id"`
	EmployeeID uint   `json:"employee"`
	Name       string `json:"name"`
	Status     string `json:"status"`
}

// AttendanceRepository はattendanceエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type AttendanceRepository interface {
	// ListJoined joins records to the employee directory, restricted to
	// employees whose status is present.
	ListJoined(ctx context.Context, f Filter) ([]entity.Row, error)
	FindByID(ctx context.Context, id uint) (*entity.Attendance, error)
	// UpsertByEmployee creates or updates the single governing record for
	// the employee and returns it.
	UpsertByEmployee(ctx context.Context, employeeID uint, status string) (*entity.Attendance, error)
}

// EmployeeDirectory is the slice of the employee feature the ledger needs.
type EmployeeDirectory interface {
	FindPresent(ctx context.Context, id uint) (*empentity.Employee, error)
	ListPresent(ctx context.Context) ([]empentity.Employee, error)
}

// attendanceUsecase は勤怠台帳のビジネスロジックを実装します。
type attendanceUsecase struct {
	records   AttendanceRepository
	employees EmployeeDirectory
}

// NewAttendanceUsecase はattendanceUsecaseの新しいインスタンスを生成します。
func NewAttendanceUsecase(records AttendanceRepository, employees EmployeeDirectory) *attendanceUsecase {
	return &attendanceUsecase{records: records, employees: employees}
}

// List はフィルタに一致する勤怠行を返します。
// レコードが1件もなくフィルタも指定されていない場合、在籍中の全従業員を
// 仮ステータス「not marked」で返します（書き込みは行いません）。
func (u *attendanceUsecase) List(ctx context.Context, f Filter) ([]entity.Row, error) {
	if f.Status != "" && !entity.IsValidStatus(f.Status) {
		return nil, ErrInvalidStatus
	}

	rows, err := u.records.ListJoined(ctx, f)
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 || f.Status != "" || f.Search != "" {
		return rows, nil
	}

	// フォールバック: 勤怠レコードを持たない在籍従業員を仮の行として合成
	employees, err := u.employees.ListPresent(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Row, 0, len(employees))
	for _, emp := range employees {
		out = append(out, entity.Row{
			ID:         emp.ID,
			EmployeeID: emp.ID,
			Name:       emp.Name,
			Department: emp.Department,
			Position:   emp.Position,
			Status:     entity.StatusNotMarked,
			Profile:    emp.Profile,
			Task:       "",
		})
	}
	return out, nil
}

// SetStatusByEmployee は従業員の勤怠ステータスを記録します。
// 従業員ごとに高々1件のレコードをupsertし、更新後の内容を返します。
func (u *attendanceUsecase) SetStatusByEmployee(ctx context.Context, employeeID uint, status string) (*Marked, error) {
	if !entity.IsValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	emp, err := u.employees.FindPresent(ctx, employeeID)
	if err != nil {
		if errors.Is(err, empusecase.ErrEmployeeNotFound) {
			return nil, ErrEmployeeNotPresent
		}
		return nil, err
	}

	att, err := u.records.UpsertByEmployee(ctx, employeeID, status)
	if err != nil {
		return nil, err
	}
	return &Marked{
		ID:         att.ID,
		EmployeeID: emp.ID,
		Name:       emp.Name,
		Status:     att.Status,
	}, nil
}

// SetStatusByID はレコードIDでステータスを更新します。
// 対象レコードの従業員を解決した上でSetStatusByEmployeeと同じ検証・書き込み
// 経路を通ります（エンティティ単位のAPIへの一本化）。
func (u *attendanceUsecase) SetStatusByID(ctx context.Context, attendanceID uint, status string) (*Marked, error) {
	att, err := u.records.FindByID(ctx, attendanceID)
	if err != nil {
		return nil, err
	}
	return u.SetStatusByEmployee(ctx, att.EmployeeID, status)
}
