package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"hrm_backend/internal/feature/attendance/domain/entity"
	"hrm_backend/internal/feature/attendance/usecase"
	empentity "hrm_backend/internal/feature/employee/domain/entity"
)

// setupTestDB はテスト用のインメモリSQLiteデータベースを準備します。
// 結合クエリを検証するため、従業員テーブルも作成します。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&empentity.Employee{}, &entity.Attendance{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

// seedEmployee はテスト用の従業員をデータベースに作成します。
func seedEmployee(t *testing.T, db *gorm.DB, name, email, status string) *empentity.Employee {
	t.Helper()

	e := &empentity.Employee{
		Name:          name,
		Email:         email,
		Phone:         "1234567890",
		Department:    "Design",
		Position:      "Designer",
		Role:          empentity.DefaultRole,
		DateOfJoining: time.Now(),
		Status:        status,
	}
	require.NoError(t, db.Create(e).Error, "failed to seed employee")
	if status != empentity.StatusPresent {
		require.NoError(t, db.Model(e).Update("status", status).Error)
	}
	return e
}

// seedAttendance はテスト用の勤怠レコードをデータベースに作成します。
func seedAttendance(t *testing.T, db *gorm.DB, employeeID uint, status string) *entity.Attendance {
	t.Helper()

	a := &entity.Attendance{EmployeeID: employeeID, Date: time.Now(), Status: status}
	require.NoError(t, db.Create(a).Error, "failed to seed attendance")
	return a
}

// TestAttendanceMySQL_UpsertByEmployee は従業員ごとに高々1件のレコードしか
// 作られないことを検証します。
func TestAttendanceMySQL_UpsertByEmployee(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewAttendanceMySQL(db)
	emp := seedEmployee(t, db, "Jane", "jane@example.com", empentity.StatusPresent)

	// 初回はinsert
	first, err := repo.UpsertByEmployee(context.Background(), emp.ID, entity.StatusPresent)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPresent, first.Status)

	// 2回目は同じレコードのupdate
	second, err := repo.UpsertByEmployee(context.Background(), emp.ID, entity.StatusAbsent)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "upsert must reuse the governing record")
	assert.Equal(t, entity.StatusAbsent, second.Status)

	var count int64
	require.NoError(t, db.Model(&entity.Attendance{}).Where("employee_id = ?", emp.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count, "exactly one record per employee")
}

func TestAttendanceMySQL_FindByID(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewAttendanceMySQL(db)
	emp := seedEmployee(t, db, "Jane", "jane@example.com", empentity.StatusPresent)
	seeded := seedAttendance(t, db, emp.ID, entity.StatusPresent)

	a, err := repo.FindByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, emp.ID, a.EmployeeID)

	_, err = repo.FindByID(context.Background(), 999)
	assert.ErrorIs(t, err, usecase.ErrAttendanceNotFound)
}

// TestAttendanceMySQL_ListJoined は従業員との結合と各種フィルタを検証します。
func TestAttendanceMySQL_ListJoined(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		filter        usecase.Filter
		expectedNames []string
	}{
		{
			name:          "no filter returns rows for present employees only",
			filter:        usecase.Filter{},
			expectedNames: []string{"Jane Cooper", "Bob Stone"},
		},
		{
			name:          "status filter is an exact match",
			filter:        usecase.Filter{Status: entity.StatusAbsent},
			expectedNames: []string{"Bob Stone"},
		},
		{
			name:          "search matches employee name case-insensitively",
			filter:        usecase.Filter{Search: "jane"},
			expectedNames: []string{"Jane Cooper"},
		},
		{
			name:          "no match returns empty list",
			filter:        usecase.Filter{Search: "zzz"},
			expectedNames: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db := setupTestDB(t)
			repo := NewAttendanceMySQL(db)

			jane := seedEmployee(t, db, "Jane Cooper", "jane@example.com", empentity.StatusPresent)
			bob := seedEmployee(t, db, "Bob Stone", "bob@example.com", empentity.StatusPresent)
			gone := seedEmployee(t, db, "Ana Diaz", "ana@example.com", empentity.StatusAbsent)

			seedAttendance(t, db, jane.ID, entity.StatusPresent)
			seedAttendance(t, db, bob.ID, entity.StatusAbsent)
			// 退職者のレコードは結合結果に現れない
			seedAttendance(t, db, gone.ID, entity.StatusPresent)

			rows, err := repo.ListJoined(context.Background(), tt.filter)

			require.NoError(t, err)
			require.Len(t, rows, len(tt.expectedNames))
			for i, name := range tt.expectedNames {
				assert.Equal(t, name, rows[i].Name)
			}
		})
	}
}

// TestAttendanceMySQL_ListJoined_FieldValues は結合行の全フィールドが正しく
// 射影されることを検証します。
func TestAttendanceMySQL_ListJoined_FieldValues(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewAttendanceMySQL(db)

	emp := seedEmployee(t, db, "Jane Cooper", "jane@example.com", empentity.StatusPresent)
	require.NoError(t, db.Model(emp).Update("profile", "uploads/jane.pdf").Error)
	att := seedAttendance(t, db, emp.ID, entity.StatusWorkFromHome)
	require.NoError(t, db.Model(att).Update("task", "design review").Error)

	rows, err := repo.ListJoined(context.Background(), usecase.Filter{})

	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, att.ID, row.ID)
	assert.Equal(t, emp.ID, row.EmployeeID)
	assert.Equal(t, "Jane Cooper", row.Name)
	assert.Equal(t, "Design", row.Department)
	assert.Equal(t, "Designer", row.Position)
	assert.Equal(t, entity.StatusWorkFromHome, row.Status)
	assert.Equal(t, "uploads/jane.pdf", row.Profile)
	assert.Equal(t, "design review", row.Task)
}
