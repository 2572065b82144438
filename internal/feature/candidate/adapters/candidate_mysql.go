// Package adapters はcandidateフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"hrm_backend/internal/feature/candidate/domain/entity"
	"hrm_backend/internal/feature/candidate/usecase"
	empentity "hrm_backend/internal/feature/employee/domain/entity"
)

// candidateMySQL はCandidateRepositoryインターフェースのMySQL実装です。
type candidateMySQL struct {
	db *gorm.DB
}

var _ usecase.CandidateRepository = (*candidateMySQL)(nil)

// NewCandidateMySQL は指定されたgorm.DB接続でcandidateMySQLの新しいインスタンスを生成します。
func NewCandidateMySQL(db *gorm.DB) *candidateMySQL {
	return &candidateMySQL{db: db}
}

// Create は候補者をデータベースに追加します。
// メールアドレスまたは電話番号が重複する場合、usecase.ErrCandidateExistsを返します。
func (r *candidateMySQL) Create(ctx context.Context, c *entity.Candidate) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return translateDuplicate(err, usecase.ErrCandidateExists)
	}
	return nil
}

// FindByID はIDで候補者を取得します。
func (r *candidateMySQL) FindByID(ctx context.Context, id uint) (*entity.Candidate, error) {
	var c entity.Candidate
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrCandidateNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindByEmailOrPhone はメールアドレスまたは電話番号のいずれかに一致する候補者を取得します。
func (r *candidateMySQL) FindByEmailOrPhone(ctx context.Context, email, phone string) (*entity.Candidate, error) {
	var c entity.Candidate
	err := r.db.WithContext(ctx).
		Where("email = ? OR phone = ?", email, phone).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrCandidateNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ExistsOtherWithEmail は指定ID以外で同じメールアドレスを持つ候補者の有無を返します。
func (r *candidateMySQL) ExistsOtherWithEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Candidate{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// List はフィルタに一致する候補者を返します。
// Searchは名前に対する大文字小文字を区別しない部分一致です。
func (r *candidateMySQL) List(ctx context.Context, f usecase.Filter) ([]entity.Candidate, error) {
	q := r.db.WithContext(ctx).Model(&entity.Candidate{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Position != "" {
		q = q.Where("position = ?", f.Position)
	}
	if f.Search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(f.Search)+"%")
	}
	var out []entity.Candidate
	if err := q.Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus は候補者のステータスのみを更新し、更新後のレコードを返します。
func (r *candidateMySQL) UpdateStatus(ctx context.Context, id uint, status string) (*entity.Candidate, error) {
	res := r.db.WithContext(ctx).Model(&entity.Candidate{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, usecase.ErrCandidateNotFound
	}
	return r.FindByID(ctx, id)
}

// UpdateStatusWithEmployee はステータス更新と従業員作成を単一トランザクションで行います。
// 従業員の作成に失敗した場合、ステータス更新もロールバックされます。
func (r *candidateMySQL) UpdateStatusWithEmployee(ctx context.Context, id uint, status string, emp *empentity.Employee) (*entity.Candidate, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(emp).Error; err != nil {
			return translateDuplicate(err, usecase.ErrEmployeeExists)
		}
		res := tx.Model(&entity.Candidate{}).Where("id = ?", id).Update("status", status)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrCandidateNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// MoveToEmployee は従業員作成と候補者削除を単一トランザクションで行います。
// どちらかが失敗した場合、両方ロールバックされます。
func (r *candidateMySQL) MoveToEmployee(ctx context.Context, candidateID uint, emp *empentity.Employee) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(emp).Error; err != nil {
			return translateDuplicate(err, usecase.ErrEmployeeExists)
		}
		res := tx.Delete(&entity.Candidate{}, candidateID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrCandidateNotFound
		}
		return nil
	})
}

// Delete は候補者を削除します。対象が存在しない場合はusecase.ErrCandidateNotFoundを返します。
func (r *candidateMySQL) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.Candidate{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrCandidateNotFound
	}
	return nil
}

// translateDuplicate はユニークキー違反をドメインの競合エラーへ変換します。
// MySQLエラー1062（重複エントリ）とGORMの汎用重複エラーの両方を扱います。
func translateDuplicate(err error, conflict error) error {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return conflict
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return conflict
	}
	return err
}
