package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/finvault/finvault_backend/internal/apperrors"
	"github.com/finvault/finvault_backend/internal/core/domain"
	portssvc "github.com/finvault/finvault_backend/internal/core/ports/services"
	"github.com/finvault/finvault_backend/internal/core/services"
	"github.com/finvault/finvault_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type SyncServiceTestSuite struct {
	suite.Suite
	mockAccountRepo     *MockAccountRepository
	mockAccountTypeRepo *MockAccountTypeRepository
	mockTxnRepo         *MockTransactionRepository
	service             portssvc.SyncSvcFacade
	userID              string
}

func (suite *SyncServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockAccountTypeRepo = new(MockAccountTypeRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.service = services.NewSyncService(suite.mockAccountRepo, suite.mockAccountTypeRepo, suite.mockTxnRepo)
	suite.userID = uuid.NewString()
}

func (suite *SyncServiceTestSuite) TestSync_MatchesAccountByClientRef() {
	ctx := context.Background()
	existing := domain.Account{AccountID: uuid.NewString(), UserID: suite.userID, Name: "Renamed Cash", ClientRef: "ref-1"}

	req := dto.SyncRequest{
		Accounts: []dto.SyncAccount{
			{LocalID: "1", ClientRef: "ref-1", Name: "Cash"},
		},
		Transactions: []dto.SyncTransaction{
			{AccountLocalID: "1", Amount: decimal.NewFromInt(10), Type: domain.Income, Category: "Misc", Date: time.Now()},
		},
	}

	suite.mockAccountRepo.On("FindAccountByClientRef", ctx, suite.userID, "ref-1").Return(&existing, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.AccountID == existing.AccountID
	}), mock.MatchedBy(func(delta decimal.Decimal) bool {
		return delta.Equal(decimal.NewFromInt(10))
	})).Return(&domain.Transaction{}, nil).Once()

	result, err := suite.service.Sync(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Equal(1, result.AccountsMapped)
	suite.Equal(1, result.TransactionsInserted)
	// Client ref matched, so the name lookup never ran despite the rename.
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByName", mock.Anything, mock.Anything, mock.Anything)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *SyncServiceTestSuite) TestSync_FallsBackToNameMatch() {
	ctx := context.Background()
	existing := domain.Account{AccountID: uuid.NewString(), UserID: suite.userID, Name: "Cash"}

	req := dto.SyncRequest{
		Accounts: []dto.SyncAccount{{LocalID: "1", Name: "Cash"}},
	}

	suite.mockAccountRepo.On("FindAccountByName", ctx, suite.userID, "Cash").Return(&existing, nil).Once()

	result, err := suite.service.Sync(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Equal(1, result.AccountsMapped)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *SyncServiceTestSuite) TestSync_CreatesUnmatchedAccountWithZeroBalance() {
	ctx := context.Background()

	req := dto.SyncRequest{
		Accounts: []dto.SyncAccount{{LocalID: "1", ClientRef: "ref-9", Name: "New Wallet"}},
	}

	suite.mockAccountRepo.On("FindAccountByClientRef", ctx, suite.userID, "ref-9").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("FindAccountByName", ctx, suite.userID, "New Wallet").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.Name == "New Wallet" && acc.ClientRef == "ref-9" && acc.Balance.IsZero()
	})).Return(nil).Once()

	result, err := suite.service.Sync(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Equal(1, result.AccountsMapped)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *SyncServiceTestSuite) TestSync_DropsTransactionsWithUnresolvedAccountRef() {
	ctx := context.Background()

	req := dto.SyncRequest{
		Transactions: []dto.SyncTransaction{
			{AccountLocalID: "unknown", Amount: decimal.NewFromInt(10), Type: domain.Income, Category: "Misc", Date: time.Now()},
		},
	}

	result, err := suite.service.Sync(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Equal(0, result.TransactionsInserted)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SyncServiceTestSuite) TestSync_AccountTypesIdempotentByLabel() {
	ctx := context.Background()
	existing := domain.AccountType{AccountTypeID: uuid.NewString(), UserID: suite.userID, Label: "Cash"}

	req := dto.SyncRequest{
		AccountTypes: []dto.SyncAccountType{
			{Label: "Cash"},
			{Label: "Card", Theme: domain.ThemeBlue},
		},
	}

	suite.mockAccountTypeRepo.On("FindAccountTypeByLabel", ctx, suite.userID, "Cash").Return(&existing, nil).Once()
	suite.mockAccountTypeRepo.On("FindAccountTypeByLabel", ctx, suite.userID, "Card").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountTypeRepo.On("SaveAccountType", ctx, mock.MatchedBy(func(at domain.AccountType) bool {
		return at.Label == "Card" && at.Theme == domain.ThemeBlue
	})).Return(nil).Once()

	_, err := suite.service.Sync(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.mockAccountTypeRepo.AssertExpectations(suite.T())
}

func (suite *SyncServiceTestSuite) TestSync_AccountTypeConflictSwallowed() {
	ctx := context.Background()

	req := dto.SyncRequest{
		AccountTypes: []dto.SyncAccountType{{Label: "Cash"}},
	}

	suite.mockAccountTypeRepo.On("FindAccountTypeByLabel", ctx, suite.userID, "Cash").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountTypeRepo.On("SaveAccountType", ctx, mock.AnythingOfType("domain.AccountType")).
		Return(apperrors.ErrConflict).Once()

	result, err := suite.service.Sync(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
}

func (suite *SyncServiceTestSuite) TestSync_InsertFailurePropagates() {
	ctx := context.Background()
	existing := domain.Account{AccountID: uuid.NewString(), UserID: suite.userID, Name: "Cash"}
	storeErr := errors.New("store unavailable")

	req := dto.SyncRequest{
		Accounts: []dto.SyncAccount{{LocalID: "1", Name: "Cash"}},
		Transactions: []dto.SyncTransaction{
			{AccountLocalID: "1", Amount: decimal.NewFromInt(10), Type: domain.Expense, Category: "Misc", Date: time.Now()},
		},
	}

	suite.mockAccountRepo.On("FindAccountByName", ctx, suite.userID, "Cash").Return(&existing, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("decimal.Decimal")).
		Return(nil, storeErr).Once()

	_, err := suite.service.Sync(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, storeErr)
}

func TestSyncService(t *testing.T) {
	suite.Run(t, new(SyncServiceTestSuite))
}
