// Package usecase はcandidateフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"time"

	"hrm_backend/internal/feature/candidate/domain/entity"
	empentity "hrm_backend/internal/feature/employee/domain/entity"
)

// Filter narrows the candidate list.
type Filter struct {
	// Status and Position are exact matches; Search is a case-insensitive
	// substring match on the name.
	Status   string
	Position string
	Search   string
}

// CreateInput carries the fields of an intake request. Resume is the stored
// path of the already-saved upload.
type CreateInput struct {
	Name       string
	Email      string
	Phone      string
	Position   string
	Experience string
	Resume     string
}

// CandidateRepository はcandidateエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type CandidateRepository interface {
	Create(ctx context.Context, c *entity.Candidate) error
	FindByID(ctx context.Context, id uint) (*entity.Candidate, error)
	// FindByEmailOrPhone returns any candidate matching either value.
	FindByEmailOrPhone(ctx context.Context, email, phone string) (*entity.Candidate, error)
	// ExistsOtherWithEmail reports whether a different candidate record
	// shares the email.
	ExistsOtherWithEmail(ctx context.Context, email string, excludeID uint) (bool, error)
	List(ctx context.Context, f Filter) ([]entity.Candidate, error)
	UpdateStatus(ctx context.Context, id uint, status string) (*entity.Candidate, error)
	// UpdateStatusWithEmployee sets the status and creates the employee in a
	// single transaction; a failed employee insert aborts the status update.
	UpdateStatusWithEmployee(ctx context.Context, id uint, status string, emp *empentity.Employee) (*entity.Candidate, error)
	// MoveToEmployee creates the employee and deletes the candidate in a
	// single transaction.
	MoveToEmployee(ctx context.Context, candidateID uint, emp *empentity.Employee) error
	Delete(ctx context.Context, id uint) error
}

// EmployeeDirectory is the slice of the employee feature the pipeline needs:
// a duplicate check before promotion.
type EmployeeDirectory interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// candidateUsecase は採用パイプラインのビジネスロジックを実装します。
type candidateUsecase struct {
	candidates CandidateRepository
	employees  EmployeeDirectory
}

// NewCandidateUsecase はcandidateUsecaseの新しいインスタンスを生成します。
func NewCandidateUsecase(candidates CandidateRepository, employees EmployeeDirectory) *candidateUsecase {
	return &candidateUsecase{candidates: candidates, employees: employees}
}

// Create は新しい候補者を登録します。
// 同じメールアドレスまたは電話番号の候補者が既に存在する場合は失敗します。
func (u *candidateUsecase) Create(ctx context.Context, in CreateInput) (*entity.Candidate, error) {
	if _, err := u.candidates.FindByEmailOrPhone(ctx, in.Email, in.Phone); err == nil {
		return nil, ErrCandidateExists
	}
	cand := &entity.Candidate{
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
		Position:   in.Position,
		Experience: in.Experience,
		Resume:     in.Resume,
		Status:     entity.StatusNew,
	}
	if err := u.candidates.Create(ctx, cand); err != nil {
		return nil, err
	}
	return cand, nil
}

// List はフィルタに一致する候補者を返します。
func (u *candidateUsecase) List(ctx context.Context, f Filter) ([]entity.Candidate, error) {
	return u.candidates.List(ctx, f)
}

// Get はIDで候補者を取得します。
func (u *candidateUsecase) Get(ctx context.Context, id uint) (*entity.Candidate, error) {
	return u.candidates.FindByID(ctx, id)
}

// UpdateStatus は候補者のステータスを更新します。
// Selectedへの遷移では、同じメールアドレスの従業員が存在しない場合に限り、
// ステータス更新と同一トランザクションで従業員を作成します。
// 従業員作成の失敗は（旧実装のように握りつぶさず）更新全体を失敗させます。
func (u *candidateUsecase) UpdateStatus(ctx context.Context, id uint, status string) (*entity.Candidate, *empentity.Employee, error) {
	if !entity.IsValidStatus(status) {
		return nil, nil, ErrInvalidStatus
	}

	cand, err := u.candidates.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if status != entity.StatusSelected {
		updated, err := u.candidates.UpdateStatus(ctx, id, status)
		return updated, nil, err
	}

	// Selected: 同じメールアドレスを持つ別の候補者がいる場合は拒否
	dup, err := u.candidates.ExistsOtherWithEmail(ctx, cand.Email, cand.ID)
	if err != nil {
		return nil, nil, err
	}
	if dup {
		return nil, nil, ErrDuplicateCandidateEmail
	}

	// 既に従業員が存在する場合はステータス更新のみ（重複作成しない）
	exists, err := u.employees.ExistsByEmail(ctx, cand.Email)
	if err != nil {
		return nil, nil, err
	}
	if exists {
		updated, err := u.candidates.UpdateStatus(ctx, id, status)
		return updated, nil, err
	}

	emp := employeeFromCandidate(cand)
	updated, err := u.candidates.UpdateStatusWithEmployee(ctx, id, status, emp)
	if err != nil {
		return nil, nil, err
	}
	return updated, emp, nil
}

// MoveToEmployee はSelected状態の候補者を従業員へ昇格させます。
// 従業員の作成と候補者の削除は単一トランザクションで行われます。
func (u *candidateUsecase) MoveToEmployee(ctx context.Context, id uint) (*empentity.Employee, error) {
	cand, err := u.candidates.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cand.Status != entity.StatusSelected {
		return nil, ErrNotSelected
	}

	emp := employeeFromCandidate(cand)
	if err := u.candidates.MoveToEmployee(ctx, cand.ID, emp); err != nil {
		return nil, err
	}
	return emp, nil
}

// Delete は候補者を削除します。
func (u *candidateUsecase) Delete(ctx context.Context, id uint) error {
	return u.candidates.Delete(ctx, id)
}

// employeeFromCandidate maps the candidate's fields onto a new employee:
// profile from the resume, department defaulted from the position.
func employeeFromCandidate(c *entity.Candidate) *empentity.Employee {
	department := c.Position
	if department == "" {
		department = "General"
	}
	return &empentity.Employee{
		Name:          c.Name,
		Email:         c.Email,
		Phone:         c.Phone,
		Position:      c.Position,
		Department:    department,
		Role:          empentity.DefaultRole,
		DateOfJoining: time.Now(),
		Status:        empentity.StatusPresent,
		Profile:       c.Resume,
	}
}
