// Package adapters はattendanceフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hrm_backend/internal/feature/attendance/domain/entity"
	"hrm_backend/internal/feature/attendance/usecase"
	empentity "hrm_backend/internal/feature/employee/domain/entity"
)

// attendanceMySQL はAttendanceRepositoryインターフェースのMySQL実装です。
type attendanceMySQL struct {
	db *gorm.DB
}

var _ usecase.AttendanceRepository = (*attendanceMySQL)(nil)

// NewAttendanceMySQL は指定されたgorm.DB接続でattendanceMySQLの新しいインスタンスを生成します。
func NewAttendanceMySQL(db *gorm.DB) *attendanceMySQL {
	return &attendanceMySQL{db: db}
}

// ListJoined は勤怠レコードを従業員ディレクトリと結合して返します。
// 結合対象はstatus=presentの従業員に限定されます。
func (r *attendanceMySQL) ListJoined(ctx context.Context, f usecase.Filter) ([]entity.Row, error) {
	q := r.db.WithContext(ctx).
		Table("attendances").
		Select("attendances.id AS id, " +
			"employees.id AS employee_id, " +
			"employees.name AS name, " +
			"employees.department AS department, " +
			"employees.position AS position, " +
			"attendances.status AS status, " +
			"employees.profile AS profile, " +
			"attendances.task AS task").
		Joins("JOIN employees ON employees.id = attendances.employee_id").
		Where("employees.status = ?", empentity.StatusPresent)

	if f.Status != "" {
		q = q.Where("attendances.status = ?", f.Status)
	}
	if f.Search != "" {
		q = q.Where("LOWER(employees.name) LIKE ?", "%"+strings.ToLower(f.Search)+"%")
	}

	var rows []entity.Row
	if err := q.Order("attendances.id").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID はIDで勤怠レコードを取得します。
func (r *attendanceMySQL) FindByID(ctx context.Context, id uint) (*entity.Attendance, error) {
	var a entity.Attendance
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrAttendanceNotFound
		}
		return nil, err
	}
	return &a, nil
}

// UpsertByEmployee は従業員ごとに高々1件のレコードをupsertします。
// employee_idのユニークインデックスを衝突キーとして使用します。
func (r *attendanceMySQL) UpsertByEmployee(ctx context.Context, employeeID uint, status string) (*entity.Attendance, error) {
	att := entity.Attendance{
		EmployeeID: employeeID,
		Date:       time.Now(),
		Status:     status,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"status": status, "updated_at": time.Now()}),
		}).
		Create(&att).Error
	if err != nil {
		return nil, err
	}

	// upsert後のレコードを取り直す（衝突時はattのIDが設定されないため）
	var out entity.Attendance
	if err := r.db.WithContext(ctx).Where("employee_id = ?", employeeID).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}
