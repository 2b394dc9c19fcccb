package accountrepo

import (
	"context"
	"database/sql"
	"log"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	_ "github.com/lib/pq"

	"github.com/monteverde/bank-backoffice/internal/customerrepo"
	"github.com/monteverde/bank-backoffice/internal/domain"
	"github.com/monteverde/bank-backoffice/pkg/configpkg"
	"github.com/monteverde/bank-backoffice/pkg/passpkg"
	"github.com/monteverde/bank-backoffice/pkg/randompkg"
)

var (
	testRepo         *RepoPGS
	testCustomerRepo *customerrepo.RepoPGS
)

func TestMain(m *testing.M) {
	config, err := configpkg.Load("../../configs")
	if err != nil {
		log.Println("skipping account repo tests: cannot load config:", err)
		os.Exit(0)
	}

	testDB, err := sql.Open(config.DBDriver, config.DBSource)
	if err != nil {
		log.Println("skipping account repo tests: cannot open db:", err)
		os.Exit(0)
	}

	if err := testDB.Ping(); err != nil {
		log.Println("skipping account repo tests: database unreachable:", err)
		os.Exit(0)
	}

	testRepo = NewRepoPGS(testDB)
	testCustomerRepo = customerrepo.NewRepoPGS(testDB)

	os.Exit(m.Run())
}

func createRandomCustomer(t *testing.T) domain.Customer {
	t.Helper()

	birthDate := time.Date(1990, time.March, 14, 0, 0, 0, 0, time.UTC)

	customer, err := testCustomerRepo.Create(
		context.Background(),
		randompkg.Document(),
		randompkg.FullName(),
		randompkg.Phone(),
		birthDate,
	)
	require.NoError(t, err)
	require.NotEmpty(t, customer)

	t.Cleanup(func() {
		_ = testCustomerRepo.Delete(context.Background(), customer.Document)
	})

	return customer
}

func createRandomAccount(t *testing.T, customer domain.Customer, balance string) domain.Account {
	t.Helper()

	ctx := context.Background()

	hashedSecret, err := passpkg.Hash(randompkg.String(8))
	require.NoError(t, err)

	max, err := testRepo.MaxNumber(ctx)
	require.NoError(t, err)

	arg := CreateAccountParams{
		Number:           max + 1,
		CustomerDocument: customer.Document,
		OpenedAt:         time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC),
		Balance:          balance,
		HashedSecret:     hashedSecret,
	}

	account, err := testRepo.Create(ctx, arg)
	require.NoError(t, err)
	require.Equal(t, arg.Number, account.Number)
	require.Equal(t, arg.CustomerDocument, account.CustomerDocument)

	t.Cleanup(func() {
		_, _ = testRepo.AddToBalance(ctx, decimal.RequireFromString(account.Balance).Neg().String(), account.Number)
		_ = testRepo.Delete(ctx, account.Number)
	})

	return account
}

func requireBalanceEqual(t *testing.T, want, got string) {
	t.Helper()

	wantDec := decimal.RequireFromString(want)
	gotDec := decimal.RequireFromString(got)
	require.Truef(t, wantDec.Equal(gotDec), "balance = %s, want %s", got, want)
}

func TestCreateAssignsUniqueNumbers(t *testing.T) {
	customer := createRandomCustomer(t)

	first := createRandomAccount(t, customer, "0")
	second := createRandomAccount(t, customer, "0")

	require.Greater(t, second.Number, first.Number)
}

func TestCreateUnknownCustomer(t *testing.T) {
	ctx := context.Background()

	hashedSecret, err := passpkg.Hash(randompkg.String(8))
	require.NoError(t, err)

	max, err := testRepo.MaxNumber(ctx)
	require.NoError(t, err)

	arg := CreateAccountParams{
		Number:           max + 1,
		CustomerDocument: randompkg.Document(),
		OpenedAt:         time.Now(),
		Balance:          "0",
		HashedSecret:     hashedSecret,
	}

	_, err = testRepo.Create(ctx, arg)
	require.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestCreateDuplicateNumber(t *testing.T) {
	customer := createRandomCustomer(t)
	account := createRandomAccount(t, customer, "0")

	hashedSecret, err := passpkg.Hash(randompkg.String(8))
	require.NoError(t, err)

	arg := CreateAccountParams{
		Number:           account.Number,
		CustomerDocument: customer.Document,
		OpenedAt:         time.Now(),
		Balance:          "0",
		HashedSecret:     hashedSecret,
	}

	_, err = testRepo.Create(context.Background(), arg)
	require.ErrorIs(t, err, domain.ErrAccountNumberTaken)
}

// TestMoneyMovementScenario walks an account through its whole lifecycle:
// open with 500, deposit 100, reject an overdraft of 700, withdraw the
// remaining 600 and close.
func TestMoneyMovementScenario(t *testing.T) {
	ctx := context.Background()
	customer := createRandomCustomer(t)
	account := createRandomAccount(t, customer, "500")

	got, err := testRepo.AddToBalance(ctx, "100", account.Number)
	require.NoError(t, err)
	requireBalanceEqual(t, "600", got.Balance)

	_, err = testRepo.AddToBalance(ctx, "-700", account.Number)
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	got, err = testRepo.Get(ctx, account.Number)
	require.NoError(t, err)
	requireBalanceEqual(t, "600", got.Balance)

	got, err = testRepo.AddToBalance(ctx, "-600", account.Number)
	require.NoError(t, err)
	requireBalanceEqual(t, "0", got.Balance)

	err = testRepo.Delete(ctx, account.Number)
	require.NoError(t, err)

	_, err = testRepo.Get(ctx, account.Number)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestWithdrawBoundary(t *testing.T) {
	ctx := context.Background()
	customer := createRandomCustomer(t)
	account := createRandomAccount(t, customer, "100")

	// one smallest unit over the balance must fail
	_, err := testRepo.AddToBalance(ctx, "-100.01", account.Number)
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	// exactly the balance must succeed
	got, err := testRepo.AddToBalance(ctx, "-100", account.Number)
	require.NoError(t, err)
	requireBalanceEqual(t, "0", got.Balance)
}

func TestDeleteNonZeroBalance(t *testing.T) {
	customer := createRandomCustomer(t)
	account := createRandomAccount(t, customer, "1")

	err := testRepo.Delete(context.Background(), account.Number)
	require.ErrorIs(t, err, domain.ErrNonZeroBalance)

	got, err := testRepo.Get(context.Background(), account.Number)
	require.NoError(t, err)
	requireBalanceEqual(t, "1", got.Balance)
}

func TestDeleteAbsentAccount(t *testing.T) {
	max, err := testRepo.MaxNumber(context.Background())
	require.NoError(t, err)

	err = testRepo.Delete(context.Background(), max+1000)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestGetJoinsCustomerName(t *testing.T) {
	customer := createRandomCustomer(t)
	account := createRandomAccount(t, customer, "0")

	got, err := testRepo.Get(context.Background(), account.Number)
	require.NoError(t, err)
	require.Equal(t, customer.FullName, got.CustomerName)
}

func TestSetAccessSecret(t *testing.T) {
	customer := createRandomCustomer(t)
	account := createRandomAccount(t, customer, "0")

	newHash, err := passpkg.Hash("newsecret")
	require.NoError(t, err)

	got, err := testRepo.SetAccessSecret(context.Background(), newHash, account.Number)
	require.NoError(t, err)
	require.Equal(t, newHash, got.AccessSecret)
	require.NotEqual(t, account.AccessSecret, got.AccessSecret)
}

func TestList(t *testing.T) {
	customer := createRandomCustomer(t)

	for i := 0; i < 3; i++ {
		createRandomAccount(t, customer, "0")
	}

	accounts, err := testRepo.List(context.Background(), 3, 0)
	require.NoError(t, err)
	require.Len(t, accounts, 3)

	for i := 1; i < len(accounts); i++ {
		require.Greater(t, accounts[i].Number, accounts[i-1].Number)
	}
}
