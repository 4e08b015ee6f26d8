package services_test

import (
	"context"
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

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo     *MockTransactionRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.TransactionSvcFacade
	userID          string
	account         domain.Account
	otherAccount    domain.Account
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewTransactionService(suite.mockTxnRepo, suite.mockAccountRepo)

	suite.userID = uuid.NewString()
	suite.account = domain.Account{
		AccountID: uuid.NewString(),
		UserID:    suite.userID,
		Name:      "Cash",
		Balance:   decimal.NewFromInt(100),
	}
	suite.otherAccount = domain.Account{
		AccountID: uuid.NewString(),
		UserID:    suite.userID,
		Name:      "Savings",
		Balance:   decimal.NewFromInt(500),
	}
}

func (suite *TransactionServiceTestSuite) incomeTxn(amount int64) *domain.Transaction {
	return &domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        suite.userID,
		AccountID:     suite.account.AccountID,
		Amount:        decimal.NewFromInt(amount),
		Type:          domain.Income,
		Category:      "Salary",
		Date:          time.Now().UTC(),
	}
}

// --- CreateTransaction ---

func (suite *TransactionServiceTestSuite) TestCreateTransaction_IncomeAppliesPositiveDelta() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		AccountID: suite.account.AccountID,
		Amount:    decimal.NewFromInt(100),
		Type:      domain.Income,
		Category:  "Salary",
		Date:      time.Now().UTC(),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.userID, suite.account.AccountID).Return(&suite.account, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.AccountID == suite.account.AccountID && txn.Type == domain.Income
	}), mock.MatchedBy(func(delta decimal.Decimal) bool {
		return delta.Equal(decimal.NewFromInt(100))
	})).Return(suite.incomeTxn(100), nil).Once()

	created, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ExpenseAppliesNegativeDelta() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		AccountID: suite.account.AccountID,
		Amount:    decimal.NewFromInt(30),
		Type:      domain.Expense,
		Category:  "Groceries",
		Date:      time.Now().UTC(),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.userID, suite.account.AccountID).Return(&suite.account, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.MatchedBy(func(delta decimal.Decimal) bool {
		return delta.Equal(decimal.NewFromInt(-30))
	})).Return(suite.incomeTxn(30), nil).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		AccountID: suite.account.AccountID,
		Amount:    decimal.Zero,
		Type:      domain.Income,
		Category:  "Salary",
	}

	_, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, services.ErrNonPositiveAmount)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_AccountNotFound() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		AccountID: "missing",
		Amount:    decimal.NewFromInt(10),
		Type:      domain.Income,
		Category:  "Salary",
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.userID, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

// --- UpdateTransaction ---

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_SameAccountNetsToSingleDelta() {
	ctx := context.Background()
	existing := suite.incomeTxn(100)
	newAmount := decimal.NewFromInt(40)

	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.userID, existing.TransactionID).Return(existing, nil).Once()
	// Reversal of +100 and forward of +40 net to a single -60 increment.
	suite.mockTxnRepo.On("UpdateTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Amount.Equal(newAmount) && txn.AccountID == suite.account.AccountID
	}), mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
		return len(changes) == 1 && changes[suite.account.AccountID].Equal(decimal.NewFromInt(-60))
	})).Return(existing, nil).Once()

	_, err := suite.service.UpdateTransaction(ctx, suite.userID, existing.TransactionID, dto.UpdateTransactionRequest{
		Amount: &newAmount,
	})

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_NoFieldChangesIsNetZero() {
	ctx := context.Background()
	existing := suite.incomeTxn(100)

	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.userID, existing.TransactionID).Return(existing, nil).Once()
	suite.mockTxnRepo.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
		return len(changes) == 1 && changes[suite.account.AccountID].IsZero()
	})).Return(existing, nil).Once()

	_, err := suite.service.UpdateTransaction(ctx, suite.userID, existing.TransactionID, dto.UpdateTransactionRequest{})

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_RetargetProducesTwoDeltas() {
	ctx := context.Background()
	existing := suite.incomeTxn(100)
	targetID := suite.otherAccount.AccountID

	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.userID, existing.TransactionID).Return(existing, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.userID, targetID).Return(&suite.otherAccount, nil).Once()
	suite.mockTxnRepo.On("UpdateTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.AccountID == targetID
	}), mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
		return len(changes) == 2 &&
			changes[suite.account.AccountID].Equal(decimal.NewFromInt(-100)) &&
			changes[targetID].Equal(decimal.NewFromInt(100))
	})).Return(existing, nil).Once()

	_, err := suite.service.UpdateTransaction(ctx, suite.userID, existing.TransactionID, dto.UpdateTransactionRequest{
		AccountID: &targetID,
	})

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_NonPositiveAmount() {
	ctx := context.Background()
	existing := suite.incomeTxn(100)
	badAmount := decimal.NewFromInt(-5)

	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.userID, existing.TransactionID).Return(existing, nil).Once()

	_, err := suite.service.UpdateTransaction(ctx, suite.userID, existing.TransactionID, dto.UpdateTransactionRequest{
		Amount: &badAmount,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "UpdateTransaction", mock.Anything, mock.Anything, mock.Anything)
}

// --- DeleteTransaction ---

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_ReversesIncomeEffect() {
	ctx := context.Background()
	existing := suite.incomeTxn(100)

	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.userID, existing.TransactionID).Return(existing, nil).Once()
	suite.mockTxnRepo.On("DeleteTransaction", ctx, *existing, mock.MatchedBy(func(reversal decimal.Decimal) bool {
		return reversal.Equal(decimal.NewFromInt(-100))
	})).Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, suite.userID, existing.TransactionID)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_NotFound() {
	ctx := context.Background()

	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.userID, "missing").Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteTransaction(ctx, suite.userID, "missing")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Bulk deletes ---

func (suite *TransactionServiceTestSuite) TestDeleteTransactions_EmptyList() {
	ctx := context.Background()

	_, err := suite.service.DeleteTransactions(ctx, suite.userID, nil)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestDeleteTransactions_AggregatesPerAccount() {
	ctx := context.Background()

	txnA1 := suite.incomeTxn(100)
	txnA2 := suite.incomeTxn(30)
	txnA2.Type = domain.Expense
	txnB := suite.incomeTxn(50)
	txnB.AccountID = suite.otherAccount.AccountID
	txns := []domain.Transaction{*txnA1, *txnA2, *txnB}
	ids := []string{txnA1.TransactionID, txnA2.TransactionID, txnB.TransactionID}

	suite.mockTxnRepo.On("FindTransactionsByIDs", ctx, suite.userID, ids).Return(txns, nil).Once()
	// Reversals: -(+100) + -(-30) = -70 on the first account, -(+50) on the second.
	suite.mockTxnRepo.On("DeleteTransactionsByIDs", ctx, suite.userID, ids, mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
		return len(changes) == 2 &&
			changes[suite.account.AccountID].Equal(decimal.NewFromInt(-70)) &&
			changes[suite.otherAccount.AccountID].Equal(decimal.NewFromInt(-50))
	})).Return(int64(3), nil).Once()

	removed, err := suite.service.DeleteTransactions(ctx, suite.userID, ids)

	suite.Require().NoError(err)
	suite.Equal(int64(3), removed)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteAllTransactions_NoTransactions() {
	ctx := context.Background()

	suite.mockTxnRepo.On("FindAllTransactions", ctx, suite.userID).Return([]domain.Transaction{}, nil).Once()

	removed, err := suite.service.DeleteAllTransactions(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(int64(0), removed)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "DeleteTransactionsByIDs", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Transfer ---

func (suite *TransactionServiceTestSuite) TestTransfer_ProducesLinkedSymmetricPair() {
	ctx := context.Background()
	amount := decimal.NewFromInt(25)
	req := dto.TransferRequest{
		FromAccountID: suite.account.AccountID,
		ToAccountID:   suite.otherAccount.AccountID,
		Amount:        amount,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.userID, suite.account.AccountID).Return(&suite.account, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.userID, suite.otherAccount.AccountID).Return(&suite.otherAccount, nil).Once()

	var captured []domain.Transaction
	suite.mockTxnRepo.On("SaveTransferPair", ctx, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("domain.Transaction")).
		Run(func(args mock.Arguments) {
			captured = []domain.Transaction{
				args.Get(1).(domain.Transaction),
				args.Get(2).(domain.Transaction),
			}
		}).
		Return(suite.incomeTxn(25), suite.incomeTxn(25), nil).Once()

	_, _, err := suite.service.Transfer(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().Len(captured, 2)

	outgoing, incoming := captured[0], captured[1]
	suite.Equal(domain.Expense, outgoing.Type)
	suite.Equal(domain.Income, incoming.Type)
	suite.Equal(suite.account.AccountID, outgoing.AccountID)
	suite.Equal(suite.otherAccount.AccountID, incoming.AccountID)
	suite.True(outgoing.Amount.Equal(amount))
	suite.True(incoming.Amount.Equal(amount))
	suite.Equal(domain.TransferCategory, outgoing.Category)
	suite.Equal(domain.TransferCategory, incoming.Category)
	suite.Require().NotNil(outgoing.TransferGroupID)
	suite.Require().NotNil(incoming.TransferGroupID)
	suite.Equal(*outgoing.TransferGroupID, *incoming.TransferGroupID)
	suite.True(outgoing.IsTransferHalf())
	suite.True(incoming.IsTransferHalf())
}

func (suite *TransactionServiceTestSuite) TestTransfer_SameAccountRejected() {
	ctx := context.Background()
	req := dto.TransferRequest{
		FromAccountID: suite.account.AccountID,
		ToAccountID:   suite.account.AccountID,
		Amount:        decimal.NewFromInt(10),
	}

	_, _, err := suite.service.Transfer(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, services.ErrSameAccountTransfer)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransferPair", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestTransfer_NonPositiveAmountRejected() {
	ctx := context.Background()
	req := dto.TransferRequest{
		FromAccountID: suite.account.AccountID,
		ToAccountID:   suite.otherAccount.AccountID,
		Amount:        decimal.Zero,
	}

	_, _, err := suite.service.Transfer(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNonPositiveAmount)
}

func (suite *TransactionServiceTestSuite) TestTransfer_MissingTargetAccount() {
	ctx := context.Background()
	req := dto.TransferRequest{
		FromAccountID: suite.account.AccountID,
		ToAccountID:   "missing",
		Amount:        decimal.NewFromInt(10),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.userID, suite.account.AccountID).Return(&suite.account, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.userID, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.Transfer(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransferPair", mock.Anything, mock.Anything, mock.Anything)
}

// --- Listing ---

func (suite *TransactionServiceTestSuite) TestListTransactions_DefaultsLimit() {
	ctx := context.Background()

	suite.mockTxnRepo.On("ListTransactions", ctx, suite.userID, (*string)(nil), 20, (*string)(nil)).
		Return([]domain.Transaction{*suite.incomeTxn(10)}, nil, nil).Once()

	page, err := suite.service.ListTransactions(ctx, suite.userID, dto.ListTransactionsParams{})

	suite.Require().NoError(err)
	suite.Len(page.Transactions, 1)
	suite.Nil(page.NextToken)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func TestTransactionService(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
