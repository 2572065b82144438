// Package usecase はemployeeフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"

	"hrm_backend/internal/feature/employee/domain/entity"
)

// Filter narrows the employee list. Position is an exact match; Search is a
// case-insensitive substring match on name or email.
type Filter struct {
	Position string
	Search   string
}

// UpdateInput carries the directory fields of an employee update.
// All five identity fields are required by the transport layer; Role is optional.
type UpdateInput struct {
	Name       string
	Email      string
	Phone      string
	Department string
	Position   string
	Role       string
}

// EmployeeRepository はemployeeエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type EmployeeRepository interface {
	FindByID(ctx context.Context, id uint) (*entity.Employee, error)
	List(ctx context.Context, f Filter) ([]entity.Employee, error)
	// Save persists all fields of an existing employee.
	Save(ctx context.Context, e *entity.Employee) error
	// Delete removes the employee together with its attendance and leave
	// records in a single transaction.
	Delete(ctx context.Context, id uint) error
}

// employeeUsecase は従業員ディレクトリのビジネスロジックを実装します。
type employeeUsecase struct {
	employees EmployeeRepository
}

// NewEmployeeUsecase はemployeeUsecaseの新しいインスタンスを生成します。
func NewEmployeeUsecase(employees EmployeeRepository) *employeeUsecase {
	return &employeeUsecase{employees: employees}
}

// List はフィルタに一致する従業員を返します。
func (u *employeeUsecase) List(ctx context.Context, f Filter) ([]entity.Employee, error) {
	return u.employees.List(ctx, f)
}

// Get はIDで従業員を取得します。
func (u *employeeUsecase) Get(ctx context.Context, id uint) (*entity.Employee, error) {
	return u.employees.FindByID(ctx, id)
}

// Update は従業員のディレクトリ属性を更新します。
func (u *employeeUsecase) Update(ctx context.Context, id uint, in UpdateInput) (*entity.Employee, error) {
	emp, err := u.employees.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	emp.Name = in.Name
	emp.Email = in.Email
	emp.Phone = in.Phone
	emp.Department = in.Department
	emp.Position = in.Position
	if in.Role != "" {
		emp.Role = in.Role
	}
	if err := u.employees.Save(ctx, emp); err != nil {
		return nil, err
	}
	return emp, nil
}

// AssignRole は従業員のロールのみを更新します。
func (u *employeeUsecase) AssignRole(ctx context.Context, id uint, role string) (*entity.Employee, error) {
	emp, err := u.employees.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	emp.Role = role
	if err := u.employees.Save(ctx, emp); err != nil {
		return nil, err
	}
	return emp, nil
}

// Delete は従業員と、それを参照する勤怠・休暇レコードを削除します。
func (u *employeeUsecase) Delete(ctx context.Context, id uint) error {
	return u.employees.Delete(ctx, id)
}
