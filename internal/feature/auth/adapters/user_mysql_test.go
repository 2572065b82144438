package adapters

import (
	"context"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"hrm_backend/internal/feature/auth/domain/entity"
	"hrm_backend/internal/feature/auth/usecase"
)

// setupTestDB はテスト用のインメモリSQLiteデータベースを準備します。
// TranslateErrorを有効にして、一意制約違反がgorm.ErrDuplicatedKeyへ変換されるようにします。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.User{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

// seedUser はテスト用のユーザーをデータベースに作成します。
func seedUser(t *testing.T, db *gorm.DB, name, email, phone string) *entity.User {
	t.Helper()

	u := &entity.User{
		Name:     name,
		Email:    email,
		Password: "hashed-password",
		Role:     entity.RoleHR,
	}
	if phone != "" {
		u.Phone = &phone
	}
	err := db.Create(u).Error
	require.NoError(t, err, "failed to seed user")

	return u
}

func TestUserMySQL_Create(t *testing.T) {
	t.Parallel()

	t.Run("success: persists a user", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		u := &entity.User{Name: "Jane", Email: "jane@example.com", Password: "hash", Role: entity.RoleHR}
		err := repo.Create(context.Background(), u)

		assert.NoError(t, err)
		assert.NotZero(t, u.ID)
	})

	t.Run("error: duplicate email maps to conflict", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		repo := NewUserMySQL(db)
		seedUser(t, db, "Jane", "jane@example.com", "")

		err := repo.Create(context.Background(), &entity.User{
			Name: "Other", Email: "jane@example.com", Password: "hash", Role: entity.RoleHR,
		})

		assert.ErrorIs(t, err, usecase.ErrEmailAlreadyExists)
	})

	t.Run("error: duplicate phone is rejected by the unique index", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		repo := NewUserMySQL(db)
		seedUser(t, db, "Jane", "jane@example.com", "1234567890")

		phone := "1234567890"
		err := repo.Create(context.Background(), &entity.User{
			Name: "Other", Email: "other@example.com", Phone: &phone,
			Password: "hash", Role: entity.RoleHR,
		})
		require.Error(t, err)

		// 事前チェックをすり抜けた重複もインデックスが阻止する
		var count int64
		require.NoError(t, db.Model(&entity.User{}).Where("phone = ?", phone).Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})

	t.Run("success: accounts without a phone do not collide", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		repo := NewUserMySQL(db)
		seedUser(t, db, "Jane", "jane@example.com", "")

		err := repo.Create(context.Background(), &entity.User{
			Name: "Other", Email: "other@example.com", Password: "hash", Role: entity.RoleHR,
		})

		assert.NoError(t, err)
	})
}

// TestDuplicateConflict はMySQLの1062メッセージのキー名から競合エラーが
// 選ばれることを検証します。
func TestDuplicateConflict(t *testing.T) {
	t.Parallel()

	phoneErr := &mysql.MySQLError{Number: 1062,
		Message: "Duplicate entry '1234567890' for key 'users.uni_users_phone'"}
	assert.ErrorIs(t, translateDuplicate(phoneErr, duplicateConflict(phoneErr)), usecase.ErrPhoneAlreadyExists)

	emailErr := &mysql.MySQLError{Number: 1062,
		Message: "Duplicate entry 'jane@example.com' for key 'users.uni_users_email'"}
	assert.ErrorIs(t, translateDuplicate(emailErr, duplicateConflict(emailErr)), usecase.ErrEmailAlreadyExists)
}

func TestUserMySQL_FindByEmail(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewUserMySQL(db)
	seeded := seedUser(t, db, "Jane", "jane@example.com", "1234567890")

	t.Run("success: finds the user", func(t *testing.T) {
		u, err := repo.FindByEmail(context.Background(), "jane@example.com")

		require.NoError(t, err)
		assert.Equal(t, seeded.ID, u.ID)
		assert.Equal(t, "Jane", u.Name)
	})

	t.Run("error: unknown email maps to not found", func(t *testing.T) {
		_, err := repo.FindByEmail(context.Background(), "nobody@example.com")

		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	})
}

func TestUserMySQL_FindByPhone(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewUserMySQL(db)
	seeded := seedUser(t, db, "Jane", "jane@example.com", "1234567890")

	u, err := repo.FindByPhone(context.Background(), "1234567890")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, u.ID)

	_, err = repo.FindByPhone(context.Background(), "0000000000")
	assert.ErrorIs(t, err, usecase.ErrUserNotFound)
}

func TestUserMySQL_List(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewUserMySQL(db)
	seedUser(t, db, "Jane", "jane@example.com", "")
	seedUser(t, db, "Bob", "bob@example.com", "")

	users, err := repo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, users, 2)
	// ID昇順
	assert.Equal(t, "Jane", users[0].Name)
	assert.Equal(t, "Bob", users[1].Name)
}

func TestUserMySQL_Update(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewUserMySQL(db)
	seeded := seedUser(t, db, "Jane", "jane@example.com", "")

	seeded.Name = "Jane Cooper"
	seeded.Role = entity.RoleAdmin
	err := repo.Update(context.Background(), seeded)
	require.NoError(t, err)

	got, err := repo.FindByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Cooper", got.Name)
	assert.Equal(t, entity.RoleAdmin, got.Role)
}

func TestUserMySQL_Delete(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewUserMySQL(db)
	seeded := seedUser(t, db, "Jane", "jane@example.com", "")

	err := repo.Delete(context.Background(), seeded.ID)
	require.NoError(t, err)

	_, err = repo.FindByID(context.Background(), seeded.ID)
	assert.ErrorIs(t, err, usecase.ErrUserNotFound)

	// 既に削除済みのIDは見つからない
	err = repo.Delete(context.Background(), seeded.ID)
	assert.ErrorIs(t, err, usecase.ErrUserNotFound)
}
