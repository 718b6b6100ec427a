package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"zipline/events"
	"zipline/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestWagerService_EditPendingWager_Success(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockWagerRepo := new(MockWagerRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, mockWagerRepo, nil, nil)

	service := NewWagerService(mockFactory)

	wager := &models.Wager{
		ID:     5,
		UserID: 1,
		Amount: 150,
		Status: models.WagerStatusPendingApproval,
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByIDForUpdate", ctx, int64(1)).Return(&models.User{ID: 1, Coins: 2000}, nil)
	mockWagerRepo.On("GetByID", ctx, int64(5)).Return(wager, nil)
	mockWagerRepo.On("GetPendingTotal", ctx, int64(1)).Return(int64(250), nil)
	mockWagerRepo.On("Update", ctx, mock.MatchedBy(func(w *models.Wager) bool {
		return w.ID == 5 && w.Amount == 300 && w.UpdatedAt != nil
	})).Return(nil)

	updated, err := service.EditPendingWager(ctx, 5, 1, 300)

	assert.NoError(t, err)
	assert.Equal(t, int64(300), updated.Amount)

	mockWagerRepo.AssertExpectations(t)
}

func TestWagerService_EditPendingWager_OtherUsersWagerIsNotFound(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockWagerRepo := new(MockWagerRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, mockWagerRepo, nil, nil)

	service := NewWagerService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByIDForUpdate", ctx, int64(2)).Return(&models.User{ID: 2, Coins: 2000}, nil)
	mockWagerRepo.On("GetByID", ctx, int64(5)).Return(&models.Wager{
		ID:     5,
		UserID: 1,
		Status: models.WagerStatusPendingApproval,
	}, nil)

	// Ownership failures look identical to missing wagers
	_, err := service.EditPendingWager(ctx, 5, 2, 300)

	assert.ErrorIs(t, err, ErrWagerNotFound)
	mockWagerRepo.AssertNotCalled(t, "Update")
}

func TestWagerService_EditPendingWager_ActiveWagerRejected(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockWagerRepo := new(MockWagerRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, mockWagerRepo, nil, nil)

	service := NewWagerService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByIDForUpdate", ctx, int64(1)).Return(&models.User{ID: 1, Coins: 2000}, nil)
	mockWagerRepo.On("GetByID", ctx, int64(5)).Return(&models.Wager{
		ID:     5,
		UserID: 1,
		Status: models.WagerStatusActive,
	}, nil)

	_, err := service.EditPendingWager(ctx, 5, 1, 300)

	assert.ErrorIs(t, err, ErrInvalidState)
	mockWagerRepo.AssertNotCalled(t, "Update")
}

func TestWagerService_EditPendingWager_ExceedsBalanceWithOtherPending(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockWagerRepo := new(MockWagerRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, mockWagerRepo, nil, nil)

	service := NewWagerService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByIDForUpdate", ctx, int64(1)).Return(&models.User{ID: 1, Coins: 1000}, nil)
	mockWagerRepo.On("GetByID", ctx, int64(5)).Return(&models.Wager{
		ID:     5,
		UserID: 1,
		Amount: 200,
		Status: models.WagerStatusPendingApproval,
	}, nil)
	// 800 pending total, of which 200 is this wager; 600 stays committed
	mockWagerRepo.On("GetPendingTotal", ctx, int64(1)).Return(int64(800), nil)

	_, err := service.EditPendingWager(ctx, 5, 1, 500)

	var insufficient *InsufficientFundsError
	assert.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(400), insufficient.Available)
	assert.Equal(t, int64(500), insufficient.Required)

	mockWagerRepo.AssertNotCalled(t, "Update")
}

func TestWagerService_CancelPendingWager_DeletesWithoutBalanceEffect(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockWagerRepo := new(MockWagerRepository)
	mockBalanceHistoryRepo := new(MockBalanceHistoryRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, mockWagerRepo, mockBalanceHistoryRepo, nil)

	service := NewWagerService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByIDForUpdate", ctx, int64(1)).Return(&models.User{ID: 1, Coins: 2000}, nil)
	mockWagerRepo.On("GetByID", ctx, int64(5)).Return(&models.Wager{
		ID:     5,
		UserID: 1,
		Amount: 150,
		Status: models.WagerStatusPendingApproval,
	}, nil)
	mockWagerRepo.On("Delete", ctx, int64(5)).Return(nil)

	err := service.CancelPendingWager(ctx, 5, 1)

	assert.NoError(t, err)
	mockUserRepo.AssertNotCalled(t, "AddCoins", mock.Anything, mock.Anything, mock.Anything)
	mockBalanceHistoryRepo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
	mockWagerRepo.AssertExpectations(t)
}

func TestWagerService_DecideForUser_ApproveDebitsBatchTotalOnce(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockWagerRepo := new(MockWagerRepository)
	mockBalanceHistoryRepo := new(MockBalanceHistoryRepository)
	mockPublisher := new(MockEventPublisher)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, mockWagerRepo, mockBalanceHistoryRepo, mockPublisher)

	service := NewWagerService(mockFactory)

	pending := []*models.Wager{
		{ID: 5, UserID: 1, Amount: 150, Status: models.WagerStatusPendingApproval},
		{ID: 6, UserID: 1, Amount: 100, Status: models.WagerStatusPendingApproval},
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByIDForUpdate", ctx, int64(1)).Return(&models.User{ID: 1, Coins: 2000}, nil)
	mockWagerRepo.On("GetPendingByUser", ctx, int64(1)).Return(pending, nil)
	mockWagerRepo.On("Update", ctx, mock.MatchedBy(func(w *models.Wager) bool {
		return w.Status == models.WagerStatusActive && w.ApprovedAt != nil
	})).Return(nil).Times(2)
	mockUserRepo.On("DeductCoins", ctx, int64(1), int64(250)).Return(nil).Once()
	mockBalanceHistoryRepo.On("Record", ctx, mock.MatchedBy(func(h *models.BalanceHistory) bool {
		return h.UserID == 1 &&
			h.BalanceBefore == 2000 &&
			h.BalanceAfter == 1750 &&
			h.ChangeAmount == -250 &&
			h.TransactionType == models.TransactionTypeWagerApproved
	})).Return(nil).Once()
	mockPublisher.On("Publish", mock.AnythingOfType("events.BalanceChangeEvent")).Return()
	mockPublisher.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		decided, ok := e.(events.WagerBatchDecidedEvent)
		return ok && decided.Decision == models.DecisionApproved && decided.TotalAmount == 250
	})).Return()

	result, err := service.DecideForUser(ctx, 1, models.DecisionApproved)

	assert.NoError(t, err)
	assert.Equal(t, 2, result.WagerCount)
	assert.Equal(t, int64(250), result.TotalAmount)
	assert.Equal(t, int64(1750), result.UserCoins)

	mockUserRepo.AssertExpectations(t)
	mockWagerRepo.AssertExpectations(t)
	mockBalanceHistoryRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestWagerService_DecideForUser_RejectMovesNoCoins(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockWagerRepo := new(MockWagerRepository)
	mockBalanceHistoryRepo := new(MockBalanceHistoryRepository)
	mockPublisher := new(MockEventPublisher)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, mockWagerRepo, mockBalanceHistoryRepo, mockPublisher)

	service := NewWagerService(mockFactory)

	pending := []*models.Wager{
		{ID: 5, UserID: 1, Amount: 150, Status: models.WagerStatusPendingApproval},
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByIDForUpdate", ctx, int64(1)).Return(&models.User{ID: 1, Coins: 2000}, nil)
	mockWagerRepo.On("GetPendingByUser", ctx, int64(1)).Return(pending, nil)
	mockWagerRepo.On("Update", ctx, mock.MatchedBy(func(w *models.Wager) bool {
		return w.Status == models.WagerStatusRejected && w.RejectedAt != nil
	})).Return(nil)
	mockPublisher.On("Publish", mock.AnythingOfType("events.WagerBatchDecidedEvent")).Return()

	result, err := service.DecideForUser(ctx, 1, models.DecisionRejected)

	assert.NoError(t, err)
	assert.Equal(t, int64(2000), result.UserCoins)

	mockUserRepo.AssertNotCalled(t, "DeductCoins", mock.Anything, mock.Anything, mock.Anything)
	mockBalanceHistoryRepo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestWagerService_DecideForUser_NoPendingWagers(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockWagerRepo := new(MockWagerRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, mockWagerRepo, nil, nil)

	service := NewWagerService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByIDForUpdate", ctx, int64(1)).Return(&models.User{ID: 1, Coins: 2000}, nil)
	mockWagerRepo.On("GetPendingByUser", ctx, int64(1)).Return([]*models.Wager{}, nil)

	_, err := service.DecideForUser(ctx, 1, models.DecisionApproved)

	assert.ErrorIs(t, err, ErrNoPendingWagers)
}

func TestWagerService_DecideForUser_InvalidDecision(t *testing.T) {
	ctx := context.Background()

	mockFactory := new(MockUnitOfWorkFactory)
	service := NewWagerService(mockFactory)

	_, err := service.DecideForUser(ctx, 1, models.Decision("maybe"))

	assert.ErrorIs(t, err, ErrInvalidDecision)
	mockFactory.AssertNotCalled(t, "Create")
}

func TestWagerService_Settle_WinCreditsDoubleStake(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockWagerRepo := new(MockWagerRepository)
	mockBalanceHistoryRepo := new(MockBalanceHistoryRepository)
	mockPublisher := new(MockEventPublisher)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, mockWagerRepo, mockBalanceHistoryRepo, mockPublisher)

	service := NewWagerService(mockFactory)

	wager := &models.Wager{
		ID:     5,
		UserID: 1,
		Amount: 150,
		Status: models.WagerStatusActive,
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	// Read once to find the owner, again under the user lock
	mockWagerRepo.On("GetByID", ctx, int64(5)).Return(wager, nil).Times(2)
	mockUserRepo.On("GetByIDForUpdate", ctx, int64(1)).Return(&models.User{ID: 1, Coins: 1850}, nil)
	mockUserRepo.On("AddCoins", ctx, int64(1), int64(300)).Return(nil).Once()
	mockBalanceHistoryRepo.On("Record", ctx, mock.MatchedBy(func(h *models.BalanceHistory) bool {
		return h.UserID == 1 &&
			h.ChangeAmount == 300 &&
			h.BalanceAfter == 2150 &&
			h.TransactionType == models.TransactionTypeWagerWin
	})).Return(nil).Once()
	mockWagerRepo.On("Update", ctx, mock.MatchedBy(func(w *models.Wager) bool {
		return w.Status == models.WagerStatusWin && w.SettledAt != nil
	})).Return(nil)
	mockPublisher.On("Publish", mock.AnythingOfType("events.BalanceChangeEvent")).Return()
	mockPublisher.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		settled, ok := e.(events.WagerSettledEvent)
		return ok && settled.Result == models.SettleResultWin && settled.Payout == 300
	})).Return()

	result, err := service.Settle(ctx, 5, models.SettleResultWin)

	assert.NoError(t, err)
	assert.Equal(t, int64(2150), result.UserCoins)
	assert.Equal(t, models.WagerStatusWin, result.Wager.Status)

	mockUserRepo.AssertExpectations(t)
	mockWagerRepo.AssertExpectations(t)
	mockBalanceHistoryRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestWagerService_Settle_LossCreditsNothing(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockWagerRepo := new(MockWagerRepository)
	mockBalanceHistoryRepo := new(MockBalanceHistoryRepository)
	mockPublisher := new(MockEventPublisher)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, mockWagerRepo, mockBalanceHistoryRepo, mockPublisher)

	service := NewWagerService(mockFactory)

	wager := &models.Wager{
		ID:     5,
		UserID: 1,
		Amount: 150,
		Status: models.WagerStatusActive,
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockWagerRepo.On("GetByID", ctx, int64(5)).Return(wager, nil).Times(2)
	mockUserRepo.On("GetByIDForUpdate", ctx, int64(1)).Return(&models.User{ID: 1, Coins: 1850}, nil)
	mockWagerRepo.On("Update", ctx, mock.MatchedBy(func(w *models.Wager) bool {
		return w.Status == models.WagerStatusLoss && w.SettledAt != nil
	})).Return(nil)
	mockPublisher.On("Publish", mock.AnythingOfType("events.WagerSettledEvent")).Return()

	result, err := service.Settle(ctx, 5, models.SettleResultLoss)

	assert.NoError(t, err)
	assert.Equal(t, int64(1850), result.UserCoins)

	mockUserRepo.AssertNotCalled(t, "AddCoins", mock.Anything, mock.Anything, mock.Anything)
	mockBalanceHistoryRepo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestWagerService_Settle_PushReturnsStake(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockWagerRepo := new(MockWagerRepository)
	mockBalanceHistoryRepo := new(MockBalanceHistoryRepository)
	mockPublisher := new(MockEventPublisher)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, mockWagerRepo, mockBalanceHistoryRepo, mockPublisher)

	service := NewWagerService(mockFactory)

	wager := &models.Wager{
		ID:     5,
		UserID: 1,
		Amount: 150,
		Status: models.WagerStatusActive,
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockWagerRepo.On("GetByID", ctx, int64(5)).Return(wager, nil).Times(2)
	mockUserRepo.On("GetByIDForUpdate", ctx, int64(1)).Return(&models.User{ID: 1, Coins: 1850}, nil)
	mockUserRepo.On("AddCoins", ctx, int64(1), int64(150)).Return(nil).Once()
	mockBalanceHistoryRepo.On("Record", ctx, mock.MatchedBy(func(h *models.BalanceHistory) bool {
		return h.ChangeAmount == 150 && h.TransactionType == models.TransactionTypeWagerPush
	})).Return(nil).Once()
	mockWagerRepo.On("Update", ctx, mock.MatchedBy(func(w *models.Wager) bool {
		return w.Status == models.WagerStatusPush
	})).Return(nil)
	mockPublisher.On("Publish", mock.AnythingOfType("events.BalanceChangeEvent")).Return()
	mockPublisher.On("Publish", mock.AnythingOfType("events.WagerSettledEvent")).Return()

	result, err := service.Settle(ctx, 5, models.SettleResultPush)

	assert.NoError(t, err)
	assert.Equal(t, int64(2000), result.UserCoins)
}

func TestWagerService_Settle_AlreadySettled(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockWagerRepo := new(MockWagerRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, mockWagerRepo, nil, nil)

	service := NewWagerService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockWagerRepo.On("GetByID", ctx, int64(5)).Return(&models.Wager{
		ID:     5,
		UserID: 1,
		Amount: 150,
		Status: models.WagerStatusWin,
	}, nil).Times(2)
	mockUserRepo.On("GetByIDForUpdate", ctx, int64(1)).Return(&models.User{ID: 1, Coins: 2150}, nil)

	_, err := service.Settle(ctx, 5, models.SettleResultLoss)

	assert.ErrorIs(t, err, ErrInvalidState)
	mockUserRepo.AssertNotCalled(t, "AddCoins", mock.Anything, mock.Anything, mock.Anything)
	mockWagerRepo.AssertNotCalled(t, "Update")
}

func TestWagerService_Settle_InvalidResult(t *testing.T) {
	ctx := context.Background()

	mockFactory := new(MockUnitOfWorkFactory)
	service := NewWagerService(mockFactory)

	_, err := service.Settle(ctx, 5, models.SettleResult("draw"))

	assert.ErrorIs(t, err, ErrInvalidResult)
	mockFactory.AssertNotCalled(t, "Create")
}

func TestWagerService_GroupedPendingWagers_GroupsByUserOldestFirst(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockWagerRepo := new(MockWagerRepository)

	mockUoW.SetRepositories(nil, nil, nil, mockWagerRepo, nil, nil)

	service := NewWagerService(mockFactory)

	base := time.Date(2025, 11, 2, 12, 0, 0, 0, time.UTC)
	pending := []*models.Wager{
		{ID: 1, UserID: 1, Username: "alice", Amount: 150, SubmittedAt: base},
		{ID: 2, UserID: 1, Username: "alice", Amount: 100, SubmittedAt: base},
		{ID: 3, UserID: 2, Username: "bob", Amount: 400, SubmittedAt: base.Add(time.Hour)},
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockWagerRepo.On("GetAllPending", ctx).Return(pending, nil)

	groups, err := service.GroupedPendingWagers(ctx)

	assert.NoError(t, err)
	assert.Len(t, groups, 2)

	assert.Equal(t, "alice", groups[0].Username)
	assert.Equal(t, int64(250), groups[0].TotalAmount)
	assert.Len(t, groups[0].Wagers, 2)
	assert.Equal(t, base, groups[0].SubmittedAt)

	assert.Equal(t, "bob", groups[1].Username)
	assert.Equal(t, int64(400), groups[1].TotalAmount)
}

func TestWagerService_Settle_RepositoryErrorRollsBack(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockWagerRepo := new(MockWagerRepository)
	mockBalanceHistoryRepo := new(MockBalanceHistoryRepository)
	mockPublisher := new(MockEventPublisher)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, mockWagerRepo, mockBalanceHistoryRepo, mockPublisher)

	service := NewWagerService(mockFactory)

	wager := &models.Wager{
		ID:     5,
		UserID: 1,
		Amount: 150,
		Status: models.WagerStatusActive,
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockWagerRepo.On("GetByID", ctx, int64(5)).Return(wager, nil).Times(2)
	mockUserRepo.On("GetByIDForUpdate", ctx, int64(1)).Return(&models.User{ID: 1, Coins: 1850}, nil)
	mockUserRepo.On("AddCoins", ctx, int64(1), int64(300)).Return(errors.New("connection reset")).Once()

	_, err := service.Settle(ctx, 5, models.SettleResultWin)

	assert.Error(t, err)
	mockUoW.AssertNotCalled(t, "Commit")
}
