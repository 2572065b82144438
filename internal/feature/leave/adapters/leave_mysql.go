// Package adapters はleaveフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"hrm_backend/internal/feature/leave/domain/entity"
	"hrm_backend/internal/feature/leave/usecase"
)

// leaveMySQL はLeaveRepositoryインターフェースのMySQL実装です。
type leaveMySQL struct {
	db *gorm.DB
}

var _ usecase.LeaveRepository = (*leaveMySQL)(nil)

// NewLeaveMySQL は指定されたgorm.DB接続でleaveMySQLの新しいインスタンスを生成します。
func NewLeaveMySQL(db *gorm.DB) *leaveMySQL {
	return &leaveMySQL{db: db}
}

// Create は休暇申請をデータベースに追加します。
func (r *leaveMySQL) Create(ctx context.Context, l *entity.Leave) error {
	return r.db.WithContext(ctx).Create(l).Error
}

// FindByID はIDで休暇申請を取得します。従業員もプリロードされます。
func (r *leaveMySQL) FindByID(ctx context.Context, id uint) (*entity.Leave, error) {
	var l entity.Leave
	err := r.db.WithContext(ctx).Preload("Employee").Where("id = ?", id).First(&l).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrLeaveNotFound
		}
		return nil, err
	}
	return &l, nil
}

// List はフィルタに一致する休暇申請を従業員付きで返します。
func (r *leaveMySQL) List(ctx context.Context, f usecase.Filter) ([]entity.Leave, error) {
	q := r.db.WithContext(ctx).Preload("Employee").Model(&entity.Leave{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.EmployeeID != 0 {
		q = q.Where("employee_id = ?", f.EmployeeID)
	}
	if len(f.IDs) > 0 {
		q = q.Where("employee_id IN ?", f.IDs)
	}
	if f.FromDate != nil {
		q = q.Where("from_date >= ?", *f.FromDate)
	}
	var out []entity.Leave
	if err := q.Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus はステータスのみを更新し、更新後のレコードを返します。
func (r *leaveMySQL) UpdateStatus(ctx context.Context, id uint, status string) (*entity.Leave, error) {
	res := r.db.WithContext(ctx).Model(&entity.Leave{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, usecase.ErrLeaveNotFound
	}
	return r.FindByID(ctx, id)
}

// Delete は休暇申請を削除します。対象が存在しない場合はusecase.ErrLeaveNotFoundを返します。
func (r *leaveMySQL) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.Leave{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrLeaveNotFound
	}
	return nil
}
