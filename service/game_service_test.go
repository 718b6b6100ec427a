package service

import (
	"context"
	"testing"
	"time"

	"zipline/models"

	"github.com/stretchr/testify/assert"
)

func TestGameService_SetSpread_MirrorsAwaySpread(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockGameRepo := new(MockGameRepository)

	mockUoW.SetRepositories(nil, mockGameRepo, nil, nil, nil, nil)

	service := NewGameService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockGameRepo.On("GetByID", ctx, int64(7)).Return(&models.Game{
		ID:       7,
		HomeTeam: "Eagles",
		AwayTeam: "Cowboys",
	}, nil)
	mockGameRepo.On("SetSpread", ctx, int64(7), -3.5).Return(nil)

	game, err := service.SetSpread(ctx, 7, -3.5)

	assert.NoError(t, err)
	assert.True(t, game.SpreadsSet)
	assert.Equal(t, -3.5, *game.HomeSpread)
	assert.Equal(t, 3.5, *game.AwaySpread)
}

func TestGameService_SetSpread_RejectsQuarterPoints(t *testing.T) {
	ctx := context.Background()

	mockFactory := new(MockUnitOfWorkFactory)
	service := NewGameService(mockFactory)

	_, err := service.SetSpread(ctx, 7, -3.25)

	assert.ErrorIs(t, err, ErrInvalidSpread)
	mockFactory.AssertNotCalled(t, "Create")
}

func TestGameService_CreateGame_RejectsSameTeamTwice(t *testing.T) {
	ctx := context.Background()

	mockFactory := new(MockUnitOfWorkFactory)
	service := NewGameService(mockFactory)

	_, err := service.CreateGame(ctx, "Eagles", "Eagles", time.Now())

	assert.ErrorIs(t, err, ErrInvalidTeam)
	mockFactory.AssertNotCalled(t, "Create")
}

func TestGameService_SetLocked(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockGameRepo := new(MockGameRepository)

	mockUoW.SetRepositories(nil, mockGameRepo, nil, nil, nil, nil)

	service := NewGameService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockGameRepo.On("GetByID", ctx, int64(7)).Return(&models.Game{ID: 7}, nil)
	mockGameRepo.On("SetLocked", ctx, int64(7), true).Return(nil)

	game, err := service.SetLocked(ctx, 7, true)

	assert.NoError(t, err)
	assert.True(t, game.Locked)
}
