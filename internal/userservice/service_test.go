package userservice

import (
	"context"
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"

	"github.com/monteverde/bank-backoffice/internal/domain"
	"github.com/monteverde/bank-backoffice/pkg/passpkg"
	"github.com/monteverde/bank-backoffice/pkg/randompkg"
)

type eqCreateUserMatcher struct {
	username string
	password string
	status   string
}

func (e eqCreateUserMatcher) Matches(x interface{}) bool {
	hashedPassword, ok := x.(string)
	if !ok {
		return false
	}

	return passpkg.Check(e.password, hashedPassword) == nil
}

func (e eqCreateUserMatcher) String() string {
	return fmt.Sprintf("matches hash of password %q", e.password)
}

func TestCreate(t *testing.T) {
	username := randompkg.Username()
	password := randompkg.String(10)

	testCases := []struct {
		name       string
		status     string
		buildStubs func(repo *MockRepo, wantUser domain.User)
		wantError  error
	}{
		{
			name:   "OK",
			status: domain.UserStatusInactive,
			buildStubs: func(repo *MockRepo, wantUser domain.User) {
				repo.EXPECT().
					Create(gomock.Any(),
						gomock.Eq(username),
						eqCreateUserMatcher{username: username, password: password},
						gomock.Eq(domain.UserStatusInactive)).
					Times(1).
					Return(wantUser, nil)
			},
		},
		{
			name:   "EmptyStatusDefaultsToActive",
			status: "",
			buildStubs: func(repo *MockRepo, wantUser domain.User) {
				repo.EXPECT().
					Create(gomock.Any(),
						gomock.Eq(username),
						gomock.Any(),
						gomock.Eq(domain.UserStatusActive)).
					Times(1).
					Return(wantUser, nil)
			},
		},
		{
			name:   "DuplicateUsername",
			status: domain.UserStatusActive,
			buildStubs: func(repo *MockRepo, wantUser domain.User) {
				repo.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.User{}, domain.ErrUsernameAlreadyExists)
			},
			wantError: domain.ErrUsernameAlreadyExists,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			wantUser := domain.User{
				Username: username,
				Status:   tc.status,
			}

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo, wantUser)

			service := New(repo)

			gotUser, err := service.Create(context.Background(), username, password, tc.status)
			if err != tc.wantError {
				t.Fatalf("service.Create() error = %v, want %v", err, tc.wantError)
			}

			if tc.wantError != nil {
				return
			}

			if diff := cmp.Diff(wantUser, gotUser); diff != "" {
				t.Errorf("user mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCheckPassword(t *testing.T) {
	username := randompkg.Username()
	password := randompkg.String(10)

	hashedPassword, err := passpkg.Hash(password)
	if err != nil {
		t.Fatalf("passpkg.Hash(password) returned error: %v", err)
	}

	user := domain.User{
		Username:       username,
		HashedPassword: hashedPassword,
		Status:         domain.UserStatusActive,
	}

	testCases := []struct {
		name       string
		password   string
		buildStubs func(repo *MockRepo)
		wantError  error
	}{
		{
			name:     "OK",
			password: password,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(username)).
					Times(1).
					Return(user, nil)
			},
		},
		{
			name:     "WrongPassword",
			password: "not-" + password,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(username)).
					Times(1).
					Return(user, nil)
			},
			wantError: domain.ErrWrongPassword,
		},
		{
			name:     "UserNotFound",
			password: password,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(username)).
					Times(1).
					Return(domain.User{}, domain.ErrUserNotFound)
			},
			wantError: domain.ErrUserNotFound,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			service := New(repo)

			gotUser, err := service.CheckPassword(context.Background(), username, tc.password)
			if err != tc.wantError {
				t.Fatalf("service.CheckPassword() error = %v, want %v", err, tc.wantError)
			}

			if tc.wantError != nil {
				return
			}

			if diff := cmp.Diff(user, gotUser); diff != "" {
				t.Errorf("user mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUpdate(t *testing.T) {
	username := randompkg.Username()
	newPassword := randompkg.String(10)

	testCases := []struct {
		name       string
		password   string
		status     string
		buildStubs func(repo *MockRepo)
		wantError  error
	}{
		{
			name:     "RehashesNewPassword",
			password: newPassword,
			status:   "",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Update(gomock.Any(), gomock.Eq(username), gomock.Any()).
					Times(1).
					DoAndReturn(func(_ context.Context, _ string, arg domain.UpdateUserParams) (domain.User, error) {
						if arg.HashedPassword == nil {
							t.Error("arg.HashedPassword is nil, want hash")
						} else if err := passpkg.Check(newPassword, *arg.HashedPassword); err != nil {
							t.Errorf("stored hash does not match new password: %v", err)
						}

						if arg.Status != nil {
							t.Errorf("arg.Status = %q, want nil", *arg.Status)
						}

						return domain.User{Username: username}, nil
					})
			},
		},
		{
			name:     "StatusOnly",
			password: "",
			status:   domain.UserStatusInactive,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Update(gomock.Any(), gomock.Eq(username), gomock.Any()).
					Times(1).
					DoAndReturn(func(_ context.Context, _ string, arg domain.UpdateUserParams) (domain.User, error) {
						if arg.HashedPassword != nil {
							t.Errorf("arg.HashedPassword = %q, want nil", *arg.HashedPassword)
						}

						if arg.Status == nil || *arg.Status != domain.UserStatusInactive {
							t.Errorf("arg.Status = %v, want %q", arg.Status, domain.UserStatusInactive)
						}

						return domain.User{Username: username, Status: domain.UserStatusInactive}, nil
					})
			},
		},
		{
			name:     "NotFound",
			password: "",
			status:   domain.UserStatusActive,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Update(gomock.Any(), gomock.Eq(username), gomock.Any()).
					Times(1).
					Return(domain.User{}, domain.ErrUserNotFound)
			},
			wantError: domain.ErrUserNotFound,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			service := New(repo)

			_, err := service.Update(context.Background(), username, tc.password, tc.status)
			if err != tc.wantError {
				t.Fatalf("service.Update() error = %v, want %v", err, tc.wantError)
			}
		})
	}
}

func TestList(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := []domain.User{{Username: randompkg.Username(), Status: domain.UserStatusActive}}

	repo := NewMockRepo(ctrl)
	repo.EXPECT().
		List(gomock.Any(), gomock.Eq(int32(5)), gomock.Eq(int32(10))).
		Times(1).
		Return(users, nil)

	service := New(repo)

	gotUsers, err := service.List(context.Background(), 5, 3)
	if err != nil {
		t.Fatalf("service.List() returned error: %v", err)
	}

	if diff := cmp.Diff(users, gotUsers); diff != "" {
		t.Errorf("users mismatch (-want +got):\n%s", diff)
	}
}

func TestDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	username := randompkg.Username()

	repo := NewMockRepo(ctrl)
	repo.EXPECT().
		Delete(gomock.Any(), gomock.Eq(username)).
		Times(1).
		Return(domain.ErrUserNotFound)

	service := New(repo)

	if err := service.Delete(context.Background(), username); err != domain.ErrUserNotFound {
		t.Fatalf("service.Delete() error = %v, want %v", err, domain.ErrUserNotFound)
	}
}
