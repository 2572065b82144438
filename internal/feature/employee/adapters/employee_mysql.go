// Package adapters はemployeeフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	attentity "hrm_backend/internal/feature/attendance/domain/entity"
	"hrm_backend/internal/feature/employee/domain/entity"
	"hrm_backend/internal/feature/employee/usecase"
	leaveentity "hrm_backend/internal/feature/leave/domain/entity"
)

// employeeMySQL はEmployeeRepositoryインターフェースのMySQL実装です。
// candidate・attendance・leaveフィーチャーが必要とするディレクトリ参照
// （ExistsByEmail、ListPresentなど）もここで提供します。
type employeeMySQL struct {
	db *gorm.DB
}

var _ usecase.EmployeeRepository = (*employeeMySQL)(nil)

// NewEmployeeMySQL は指定されたgorm.DB接続でemployeeMySQLの新しいインスタンスを生成します。
func NewEmployeeMySQL(db *gorm.DB) *employeeMySQL {
	return &employeeMySQL{db: db}
}

// FindByID はIDで従業員を取得します。
func (r *employeeMySQL) FindByID(ctx context.Context, id uint) (*entity.Employee, error) {
	var e entity.Employee
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &e, nil
}

// List はフィルタに一致する従業員を返します。
// Searchは名前またはメールアドレスに対する大文字小文字を区別しない部分一致です。
func (r *employeeMySQL) List(ctx context.Context, f usecase.Filter) ([]entity.Employee, error) {
	q := r.db.WithContext(ctx).Model(&entity.Employee{})
	if f.Position != "" {
		q = q.Where("position = ?", f.Position)
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}
	var out []entity.Employee
	if err := q.Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Save は従業員の全フィールドを保存します。
// メールアドレスが他の従業員と重複する場合、usecase.ErrEmailAlreadyExistsを返します。
func (r *employeeMySQL) Save(ctx context.Context, e *entity.Employee) error {
	if err := r.db.WithContext(ctx).Save(e).Error; err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return usecase.ErrEmailAlreadyExists
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// Delete は従業員と、それを参照する勤怠・休暇レコードを
// 単一トランザクションで削除します（参照整合性のためのカスケード削除）。
func (r *employeeMySQL) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", id).Delete(&attentity.Attendance{}).Error; err != nil {
			return err
		}
		if err := tx.Where("employee_id = ?", id).Delete(&leaveentity.Leave{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&entity.Employee{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrEmployeeNotFound
		}
		return nil
	})
}

// ExistsByEmail は指定メールアドレスの従業員の有無を返します。
// candidateフィーチャーの昇格前チェックから利用されます。
func (r *employeeMySQL) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Employee{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindPresent はstatus=presentの従業員をIDで取得します。
// 勤怠・休暇フィーチャーの在籍チェックから利用されます。
func (r *employeeMySQL) FindPresent(ctx context.Context, id uint) (*entity.Employee, error) {
	var e entity.Employee
	err := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, entity.StatusPresent).
		First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &e, nil
}

// FindPresentByName はstatus=presentの従業員を名前の完全一致で取得します。
// 休暇申請の名前解決から利用されます。
func (r *employeeMySQL) FindPresentByName(ctx context.Context, name string) (*entity.Employee, error) {
	var e entity.Employee
	err := r.db.WithContext(ctx).
		Where("name = ? AND status = ?", name, entity.StatusPresent).
		First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &e, nil
}

// ListPresent はstatus=presentの全従業員を返します。
// 勤怠一覧の「not marked」フォールバックから利用されます。
func (r *employeeMySQL) ListPresent(ctx context.Context) ([]entity.Employee, error) {
	var out []entity.Employee
	err := r.db.WithContext(ctx).
		Where("status = ?", entity.StatusPresent).
		Order("id").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// IDsByNameSearch は名前の部分一致（大文字小文字を区別しない）に一致する
// 従業員IDの集合を返します。休暇一覧のsearchフィルタから利用されます。
func (r *employeeMySQL) IDsByNameSearch(ctx context.Context, search string) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&entity.Employee{}).
		Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
