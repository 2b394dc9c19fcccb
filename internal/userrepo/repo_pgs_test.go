package userrepo

import (
	"context"
	"database/sql"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	_ "github.com/lib/pq"

	"github.com/monteverde/bank-backoffice/internal/domain"
	"github.com/monteverde/bank-backoffice/pkg/configpkg"
	"github.com/monteverde/bank-backoffice/pkg/passpkg"
	"github.com/monteverde/bank-backoffice/pkg/randompkg"
)

var testRepo *RepoPGS

func TestMain(m *testing.M) {
	config, err := configpkg.Load("../../configs")
	if err != nil {
		log.Println("skipping user repo tests: cannot load config:", err)
		os.Exit(0)
	}

	testDB, err := sql.Open(config.DBDriver, config.DBSource)
	if err != nil {
		log.Println("skipping user repo tests: cannot open db:", err)
		os.Exit(0)
	}

	if err := testDB.Ping(); err != nil {
		log.Println("skipping user repo tests: database unreachable:", err)
		os.Exit(0)
	}

	testRepo = NewRepoPGS(testDB)

	os.Exit(m.Run())
}

func createRandomUser(t *testing.T) domain.User {
	t.Helper()

	hashedPassword, err := passpkg.Hash(randompkg.String(10))
	require.NoError(t, err)

	user, err := testRepo.Create(context.Background(), randompkg.Username(), hashedPassword, domain.UserStatusActive)
	require.NoError(t, err)
	require.NotEmpty(t, user)

	t.Cleanup(func() {
		_ = testRepo.Delete(context.Background(), user.Username)
	})

	return user
}

func TestCreateDuplicateUsername(t *testing.T) {
	user := createRandomUser(t)

	_, err := testRepo.Create(context.Background(), user.Username, user.HashedPassword, domain.UserStatusActive)
	require.ErrorIs(t, err, domain.ErrUsernameAlreadyExists)
}

func TestGet(t *testing.T) {
	user := createRandomUser(t)

	gotUser, err := testRepo.Get(context.Background(), user.Username)
	require.NoError(t, err)
	require.Equal(t, user, gotUser)

	_, err = testRepo.Get(context.Background(), "absentusername")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	user := createRandomUser(t)

	newHash, err := passpkg.Hash(randompkg.String(10))
	require.NoError(t, err)

	gotUser, err := testRepo.Update(ctx, user.Username, domain.UpdateUserParams{HashedPassword: &newHash})
	require.NoError(t, err)
	require.Equal(t, newHash, gotUser.HashedPassword)
	require.Equal(t, user.Status, gotUser.Status)

	inactive := domain.UserStatusInactive

	gotUser, err = testRepo.Update(ctx, user.Username, domain.UpdateUserParams{Status: &inactive})
	require.NoError(t, err)
	require.Equal(t, newHash, gotUser.HashedPassword)
	require.Equal(t, domain.UserStatusInactive, gotUser.Status)

	_, err = testRepo.Update(ctx, "absentusername", domain.UpdateUserParams{Status: &inactive})
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestDelete(t *testing.T) {
	user := createRandomUser(t)

	err := testRepo.Delete(context.Background(), user.Username)
	require.NoError(t, err)

	err = testRepo.Delete(context.Background(), user.Username)
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestList(t *testing.T) {
	for i := 0; i < 3; i++ {
		createRandomUser(t)
	}

	users, err := testRepo.List(context.Background(), 2, 0)
	require.NoError(t, err)
	require.Len(t, users, 2)
}
