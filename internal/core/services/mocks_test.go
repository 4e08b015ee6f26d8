package services_test

import (
	"context"
	"time"

	"github.com/finvault/finvault_backend/internal/core/domain"
	portsrepo "github.com/finvault/finvault_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, userID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByName(ctx context.Context, userID string, name string) (*domain.Account, error) {
	args := m.Called(ctx, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByClientRef(ctx context.Context, userID string, clientRef string) (*domain.Account, error) {
	args := m.Called(ctx, userID, clientRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccountDetails(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccountCascade(ctx context.Context, userID string, accountID string) (int64, error) {
	args := m.Called(ctx, userID, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) ApplyBalanceDelta(ctx context.Context, tx pgx.Tx, userID string, accountID string, delta decimal.Decimal, updatedBy string, now time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, userID, accountID, delta, updatedBy, now)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAccountRepository) ApplyBalanceDeltas(ctx context.Context, tx pgx.Tx, userID string, balanceChanges map[string]decimal.Decimal, updatedBy string, now time.Time) error {
	args := m.Called(ctx, tx, userID, balanceChanges, updatedBy, now)
	return args.Error(0)
}

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionsByIDs(ctx context.Context, userID string, transactionIDs []string) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindAllTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, userID string, accountID *string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, userID, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedNextToken, args.Error(2)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, delta decimal.Decimal) (*domain.Transaction, error) {
	args := m.Called(ctx, txn, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) (*domain.Transaction, error) {
	args := m.Called(ctx, txn, balanceChanges)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, txn domain.Transaction, reversalDelta decimal.Decimal) error {
	args := m.Called(ctx, txn, reversalDelta)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransactionsByIDs(ctx context.Context, userID string, transactionIDs []string, balanceChanges map[string]decimal.Decimal) (int64, error) {
	args := m.Called(ctx, userID, transactionIDs, balanceChanges)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransferPair(ctx context.Context, outgoing domain.Transaction, incoming domain.Transaction) (*domain.Transaction, *domain.Transaction, error) {
	args := m.Called(ctx, outgoing, incoming)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Transaction), args.Get(1).(*domain.Transaction), args.Error(2)
}

// --- Mock AccountTypeRepository ---

type MockAccountTypeRepository struct {
	mock.Mock
}

var _ portsrepo.AccountTypeRepository = (*MockAccountTypeRepository)(nil)

func (m *MockAccountTypeRepository) SaveAccountType(ctx context.Context, accountType domain.AccountType) error {
	args := m.Called(ctx, accountType)
	return args.Error(0)
}

func (m *MockAccountTypeRepository) FindAccountTypeByLabel(ctx context.Context, userID string, label string) (*domain.AccountType, error) {
	args := m.Called(ctx, userID, label)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountType), args.Error(1)
}

func (m *MockAccountTypeRepository) ListAccountTypes(ctx context.Context, userID string) ([]domain.AccountType, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountType), args.Error(1)
}

func (m *MockAccountTypeRepository) DeleteAccountType(ctx context.Context, userID string, accountTypeID string) error {
	args := m.Called(ctx, userID, accountTypeID)
	return args.Error(0)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
