package service

import (
	"context"
	"testing"

	"zipline/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func TestUserService_CreateUser_RecordsInitialBalance(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockBalanceHistoryRepo := new(MockBalanceHistoryRepository)
	mockPublisher := new(MockEventPublisher)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, nil, mockBalanceHistoryRepo, mockPublisher)

	service := NewUserService(mockFactory, testConfig())

	created := &models.User{ID: 1, Username: "alice", Coins: 2000}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByUsername", ctx, "alice").Return(nil, nil)
	mockUserRepo.On("Create", ctx, "alice", mock.AnythingOfType("string"), int64(2000), false).Return(created, nil)
	mockBalanceHistoryRepo.On("Record", ctx, mock.MatchedBy(func(h *models.BalanceHistory) bool {
		return h.UserID == 1 &&
			h.BalanceBefore == 0 &&
			h.BalanceAfter == 2000 &&
			h.ChangeAmount == 2000 &&
			h.TransactionType == models.TransactionTypeInitial
	})).Return(nil)
	mockPublisher.On("Publish", mock.AnythingOfType("events.BalanceChangeEvent")).Return()
	mockPublisher.On("Publish", mock.AnythingOfType("events.UserCreatedEvent")).Return()

	user, err := service.CreateUser(ctx, "alice", "hunter22", false)

	assert.NoError(t, err)
	assert.Equal(t, created, user)

	mockUserRepo.AssertExpectations(t)
	mockBalanceHistoryRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestUserService_CreateUser_UsernameTaken(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockBalanceHistoryRepo := new(MockBalanceHistoryRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, nil, mockBalanceHistoryRepo, nil)

	service := NewUserService(mockFactory, testConfig())

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByUsername", ctx, "alice").Return(&models.User{ID: 1, Username: "alice"}, nil)

	_, err := service.CreateUser(ctx, "alice", "hunter22", false)

	assert.ErrorIs(t, err, ErrUsernameTaken)
	mockUserRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockBalanceHistoryRepo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestUserService_Authenticate_Success(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, nil, nil, nil)

	service := NewUserService(mockFactory, testConfig())

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	assert.NoError(t, err)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByUsername", ctx, "alice").Return(&models.User{
		ID:           1,
		Username:     "alice",
		PasswordHash: string(hash),
	}, nil)

	user, err := service.Authenticate(ctx, "alice", "hunter22")

	assert.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
}

func TestUserService_Authenticate_WrongPassword(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, nil, nil, nil)

	service := NewUserService(mockFactory, testConfig())

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	assert.NoError(t, err)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByUsername", ctx, "alice").Return(&models.User{
		ID:           1,
		Username:     "alice",
		PasswordHash: string(hash),
	}, nil)

	_, err = service.Authenticate(ctx, "alice", "wrong")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_Authenticate_UnknownUserLooksLikeWrongPassword(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, nil, nil, nil)

	service := NewUserService(mockFactory, testConfig())

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByUsername", ctx, "nobody").Return(nil, nil)

	_, err := service.Authenticate(ctx, "nobody", "hunter22")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_Leaderboard(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, nil, nil, nil)

	service := NewUserService(mockFactory, testConfig())

	entries := []*models.LeaderboardEntry{
		{ID: 2, Username: "bob", Coins: 3200},
		{ID: 1, Username: "alice", Coins: 1750},
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetLeaderboard", ctx).Return(entries, nil)

	got, err := service.Leaderboard(ctx)

	assert.NoError(t, err)
	assert.Equal(t, entries, got)
}
