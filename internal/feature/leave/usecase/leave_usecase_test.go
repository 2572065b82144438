package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	authentity "hrm_backend/internal/feature/auth/domain/entity"
	empentity "hrm_backend/internal/feature/employee/domain/entity"
	empusecase "hrm_backend/internal/feature/employee/usecase"
	"hrm_backend/internal/feature/leave/domain/entity"
)

// mockLeaveRepository は LeaveRepository インターフェースのモック実装です。
type mockLeaveRepository struct {
	CreateFunc       func(ctx context.Context, l *entity.Leave) error
	FindByIDFunc     func(ctx context.Context, id uint) (*entity.Leave, error)
	ListFunc         func(ctx context.Context, f Filter) ([]entity.Leave, error)
	UpdateStatusFunc func(ctx context.Context, id uint, status string) (*entity.Leave, error)
	DeleteFunc       func(ctx context.Context, id uint) error
}

func (m *mockLeaveRepository) Create(ctx context.Context, l *entity.Leave) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, l)
	}
	return nil
}

func (m *mockLeaveRepository) FindByID(ctx context.Context, id uint) (*entity.Leave, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrLeaveNotFound
}

func (m *mockLeaveRepository) List(ctx context.Context, f Filter) ([]entity.Leave, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return nil, nil
}

func (m *mockLeaveRepository) UpdateStatus(ctx context.Context, id uint, status string) (*entity.Leave, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil, ErrLeaveNotFound
}

func (m *mockLeaveRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// mockEmployeeDirectory は EmployeeDirectory インターフェースのモック実装です。
type mockEmployeeDirectory struct {
	FindPresentFunc       func(ctx context.Context, id uint) (*empentity.Employee, error)
	FindPresentByNameFunc func(ctx context.Context, name string) (*empentity.Employee, error)
	IDsByNameSearchFunc   func(ctx context.Context, search string) ([]uint, error)
}

func (m *mockEmployeeDirectory) FindPresent(ctx context.Context, id uint) (*empentity.Employee, error) {
	if m.FindPresentFunc != nil {
		return m.FindPresentFunc(ctx, id)
	}
	return nil, empusecase.ErrEmployeeNotFound
}

func (m *mockEmployeeDirectory) FindPresentByName(ctx context.Context, name string) (*empentity.Employee, error) {
	if m.FindPresentByNameFunc != nil {
		return m.FindPresentByNameFunc(ctx, name)
	}
	return nil, empusecase.ErrEmployeeNotFound
}

func (m *mockEmployeeDirectory) IDsByNameSearch(ctx context.Context, search string) ([]uint, error) {
	if m.IDsByNameSearchFunc != nil {
		return m.IDsByNameSearchFunc(ctx, search)
	}
	return nil, nil
}

func presentDirectory() *mockEmployeeDirectory {
	return &mockEmployeeDirectory{
		FindPresentFunc: func(ctx context.Context, id uint) (*empentity.Employee, error) {
			return &empentity.Employee{ID: id, Name: "Jane", Status: empentity.StatusPresent}, nil
		},
	}
}

func hrUser() *authentity.User {
	return &authentity.User{ID: 10, Name: "HR", Role: authentity.RoleHR}
}

func validCreateInput() CreateInput {
	return CreateInput{
		EmployeeID:  1,
		FromDate:    "09/15/2026",
		Reason:      "family event",
		Designation: "Designer",
	}
}

func TestLeaveUsecase_Create(t *testing.T) {
	t.Run("申請成功時はpendingでUTC正午の日付になる", func(t *testing.T) {
		mockRepo := &mockLeaveRepository{
			CreateFunc: func(ctx context.Context, l *entity.Leave) error {
				if l.Status != entity.StatusPending {
					t.Errorf("初期ステータスがpendingではありません: %s", l.Status)
				}
				expected := time.Date(2026, time.September, 15, 12, 0, 0, 0, time.UTC)
				if !l.FromDate.Equal(expected) {
					t.Errorf("fromDateがUTC正午に固定されていません: %v", l.FromDate)
				}
				l.ID = 1
				return nil
			},
		}

		uc := NewLeaveUsecase(mockRepo, presentDirectory())
		leave, err := uc.Create(context.Background(), hrUser(), validCreateInput())

		if err != nil {
			t.Fatalf("予期せぬエラーが発生しました: %v", err)
		}
		if leave.ID != 1 {
			t.Error("作成された休暇申請が返されていません")
		}
	})

	t.Run("名前で従業員を解決できる", func(t *testing.T) {
		dir := presentDirectory()
		dir.FindPresentByNameFunc = func(ctx context.Context, name string) (*empentity.Employee, error) {
			if name != "Jane Cooper" {
				t.Errorf("想定外の名前で解決されました: %s", name)
			}
			return &empentity.Employee{ID: 5, Name: name, Status: empentity.StatusPresent}, nil
		}
		mockRepo := &mockLeaveRepository{
			CreateFunc: func(ctx context.Context, l *entity.Leave) error {
				if l.EmployeeID != 5 {
					t.Errorf("解決された従業員IDで作成されていません: %d", l.EmployeeID)
				}
				return nil
			},
		}

		uc := NewLeaveUsecase(mockRepo, dir)
		in := validCreateInput()
		in.EmployeeID = 0
		in.EmployeeName = "Jane Cooper"
		_, err := uc.Create(context.Background(), hrUser(), in)

		if err != nil {
			t.Fatalf("予期せぬエラーが発生しました: %v", err)
		}
	})

	t.Run("解決できない名前はエラーになる", func(t *testing.T) {
		uc := NewLeaveUsecase(&mockLeaveRepository{}, &mockEmployeeDirectory{})
		in := validCreateInput()
		in.EmployeeID = 0
		in.EmployeeName = "Nobody"
		_, err := uc.Create(context.Background(), hrUser(), in)

		if !errors.Is(err, ErrEmployeeNameNotFound) {
			t.Errorf("期待したエラー '%v' と異なるエラーが返されました: %v", ErrEmployeeNameNotFound, err)
		}
	})

	t.Run("必須フィールドの欠落は拒否される", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(in *CreateInput)
		}{
			{name: "従業員未指定", mutate: func(in *CreateInput) { in.EmployeeID = 0 }},
			{name: "fromDate未指定", mutate: func(in *CreateInput) { in.FromDate = "" }},
			{name: "理由未指定", mutate: func(in *CreateInput) { in.Reason = "" }},
			{name: "役職未指定", mutate: func(in *CreateInput) { in.Designation = "" }},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				uc := NewLeaveUsecase(&mockLeaveRepository{}, presentDirectory())
				in := validCreateInput()
				tt.mutate(&in)
				_, err := uc.Create(context.Background(), hrUser(), in)

				if !errors.Is(err, ErrMissingFields) {
					t.Errorf("期待したエラー '%v' と異なるエラーが返されました: %v", ErrMissingFields, err)
				}
			})
		}
	})

	t.Run("不正な日付形式は拒否される", func(t *testing.T) {
		tests := []string{"2026-09-15", "9/15/2026", "13/01/2026", "09/32/2026", "09/15/26"}
		for _, date := range tests {
			uc := NewLeaveUsecase(&mockLeaveRepository{}, presentDirectory())
			in := validCreateInput()
			in.FromDate = date
			_, err := uc.Create(context.Background(), hrUser(), in)

			if !errors.Is(err, ErrInvalidDate) {
				t.Errorf("日付 %q: 期待したエラー '%v' と異なるエラーが返されました: %v", date, ErrInvalidDate, err)
			}
		}
	})

	t.Run("在籍していない従業員の申請は拒否される", func(t *testing.T) {
		uc := NewLeaveUsecase(&mockLeaveRepository{}, &mockEmployeeDirectory{})
		_, err := uc.Create(context.Background(), hrUser(), validCreateInput())

		if !errors.Is(err, ErrEmployeeNotPresent) {
			t.Errorf("期待したエラー '%v' と異なるエラーが返されました: %v", ErrEmployeeNotPresent, err)
		}
	})

	t.Run("権限のない申請者は他人の分を申請できない", func(t *testing.T) {
		actor := &authentity.User{ID: 2, Name: "Member", Role: "Member"}

		uc := NewLeaveUsecase(&mockLeaveRepository{}, presentDirectory())
		_, err := uc.Create(context.Background(), actor, validCreateInput())

		if !errors.Is(err, ErrForbidden) {
			t.Errorf("期待したエラー '%v' と異なるエラーが返されました: %v", ErrForbidden, err)
		}
	})
}

func TestLeaveUsecase_List(t *testing.T) {
	t.Run("カレンダー表示はapprovedに固定される", func(t *testing.T) {
		mockRepo := &mockLeaveRepository{
			ListFunc: func(ctx context.Context, f Filter) ([]entity.Leave, error) {
				if f.Status != entity.StatusApproved {
					t.Errorf("ステータスがapprovedに固定されていません: %s", f.Status)
				}
				return []entity.Leave{}, nil
			},
		}

		uc := NewLeaveUsecase(mockRepo, &mockEmployeeDirectory{})
		_, err := uc.List(context.Background(), Filter{CalendarOnly: true})

		if err != nil {
			t.Fatalf("予期せぬエラーが発生しました: %v", err)
		}
	})

	t.Run("検索は従業員ID集合へ解決される", func(t *testing.T) {
		dir := &mockEmployeeDirectory{
			IDsByNameSearchFunc: func(ctx context.Context, search string) ([]uint, error) {
				return []uint{3, 4}, nil
			},
		}
		mockRepo := &mockLeaveRepository{
			ListFunc: func(ctx context.Context, f Filter) ([]entity.Leave, error) {
				if len(f.IDs) != 2 {
					t.Errorf("ID集合で絞り込まれていません: %+v", f.IDs)
				}
				if f.Search != "" {
					t.Error("解決後のフィルタにSearchが残っています")
				}
				return []entity.Leave{}, nil
			},
		}

		uc := NewLeaveUsecase(mockRepo, dir)
		_, err := uc.List(context.Background(), Filter{Search: "ja"})

		if err != nil {
			t.Fatalf("予期せぬエラーが発生しました: %v", err)
		}
	})

	t.Run("検索が1名に解決される場合はEmployeeIDへ畳み込む", func(t *testing.T) {
		dir := &mockEmployeeDirectory{
			IDsByNameSearchFunc: func(ctx context.Context, search string) ([]uint, error) {
				return []uint{7}, nil
			},
		}
		mockRepo := &mockLeaveRepository{
			ListFunc: func(ctx context.Context, f Filter) ([]entity.Leave, error) {
				if f.EmployeeID != 7 || len(f.IDs) != 0 {
					t.Errorf("単一IDへ畳み込まれていません: %+v", f)
				}
				return []entity.Leave{}, nil
			},
		}

		uc := NewLeaveUsecase(mockRepo, dir)
		_, err := uc.List(context.Background(), Filter{Search: "jane"})

		if err != nil {
			t.Fatalf("予期せぬエラーが発生しました: %v", err)
		}
	})

	t.Run("検索に一致する従業員がいなければ空を返す", func(t *testing.T) {
		mockRepo := &mockLeaveRepository{
			ListFunc: func(ctx context.Context, f Filter) ([]entity.Leave, error) {
				t.Error("一致なしの検索でリポジトリが呼ばれました")
				return nil, nil
			},
		}

		uc := NewLeaveUsecase(mockRepo, &mockEmployeeDirectory{})
		out, err := uc.List(context.Background(), Filter{Search: "zzz"})

		if err != nil {
			t.Fatalf("予期せぬエラーが発生しました: %v", err)
		}
		if len(out) != 0 {
			t.Errorf("空の結果が返されるべきです: %+v", out)
		}
	})
}

func TestLeaveUsecase_UpdateStatus(t *testing.T) {
	t.Run("ステータス更新成功", func(t *testing.T) {
		mockRepo := &mockLeaveRepository{
			UpdateStatusFunc: func(ctx context.Context, id uint, status string) (*entity.Leave, error) {
				return &entity.Leave{ID: id, Status: status}, nil
			},
		}

		uc := NewLeaveUsecase(mockRepo, &mockEmployeeDirectory{})
		leave, err := uc.UpdateStatus(context.Background(), 1, entity.StatusApproved)

		if err != nil {
			t.Fatalf("予期せぬエラーが発生しました: %v", err)
		}
		if leave.Status != entity.StatusApproved {
			t.Errorf("ステータスが更新されていません: %s", leave.Status)
		}
	})

	t.Run("不正なステータスは拒否される", func(t *testing.T) {
		uc := NewLeaveUsecase(&mockLeaveRepository{}, &mockEmployeeDirectory{})
		_, err := uc.UpdateStatus(context.Background(), 1, "cancelled")

		if !errors.Is(err, ErrInvalidStatus) {
			t.Errorf("期待したエラー '%v' と異なるエラーが返されました: %v", ErrInvalidStatus, err)
		}
	})
}
