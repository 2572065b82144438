package usecase

import (
	"context"

	"hrm_backend/internal/feature/auth/domain/entity"
)

// UpdateUserInput carries the mutable fields of a user record.
// Empty fields are left unchanged.
type UpdateUserInput struct {
	Name  string
	Email string
	Phone string
	Role  string
}

// userUsecase implements the user-management operations behind /api/users.
type userUsecase struct {
	users UserRepository
}

// NewUserUsecase はuserUsecaseの新しいインスタンスを生成します。
func NewUserUsecase(users UserRepository) *userUsecase {
	return &userUsecase{users: users}
}

// List returns all registered users.
func (u *userUsecase) List(ctx context.Context) ([]entity.User, error) {
	return u.users.List(ctx)
}

// Get returns the user with the given ID.
func (u *userUsecase) Get(ctx context.Context, id uint) (*entity.User, error) {
	return u.users.FindByID(ctx, id)
}

// Update applies the non-empty fields of in to the stored user.
func (u *userUsecase) Update(ctx context.Context, id uint, in UpdateUserInput) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Email != "" && in.Email != user.Email {
		if !emailPattern.MatchString(in.Email) {
			return nil, ErrInvalidEmail
		}
		if _, err := u.users.FindByEmail(ctx, in.Email); err == nil {
			return nil, ErrEmailAlreadyExists
		}
		user.Email = in.Email
	}
	if in.Role != "" {
		if in.Role != entity.RoleHR && in.Role != entity.RoleAdmin {
			return nil, ErrInvalidRole
		}
		user.Role = in.Role
	}
	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Phone != "" {
		user.Phone = &in.Phone
	}

	if err := u.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the user with the given ID.
func (u *userUsecase) Delete(ctx context.Context, id uint) error {
	return u.users.Delete(ctx, id)
}
