package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"zipline/config"
	"zipline/database"
	"zipline/events"
	"zipline/repository"
	"zipline/service"
	"zipline/web"

	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting zipline server...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Println("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Database connection established successfully")

	// Initialize event bus
	eventBus := events.NewBus()
	subscribeAuditLogging(eventBus)

	// Initialize unit of work factory
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	// Initialize services
	userService := service.NewUserService(uowFactory, cfg)
	gameService := service.NewGameService(uowFactory)
	cartService := service.NewCartService(uowFactory, cfg)
	wagerService := service.NewWagerService(uowFactory)

	router := web.NewRouter(cfg, userService, gameService, cartService, wagerService)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Server listening on port %s in %s mode", cfg.Port, cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		db.Close()
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	// Cleanup resources
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}

	log.Println("Closing database connection...")
	db.Close()

	log.Println("Shutdown completed")
	return nil
}

// subscribeAuditLogging logs balance changes and wager lifecycle events as
// they are flushed after commit
func subscribeAuditLogging(bus *events.Bus) {
	bus.Subscribe(events.EventTypeBalanceChange, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.BalanceChangeEvent); ok {
			log.WithFields(log.Fields{
				"userID":          e.UserID,
				"changeAmount":    e.ChangeAmount,
				"newBalance":      e.NewBalance,
				"transactionType": e.TransactionType,
			}).Info("Balance changed")
		}
	})

	bus.Subscribe(events.EventTypeWagerBatchDecided, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.WagerBatchDecidedEvent); ok {
			log.WithFields(log.Fields{
				"userID":      e.UserID,
				"decision":    e.Decision,
				"wagerCount":  e.WagerCount,
				"totalAmount": e.TotalAmount,
			}).Info("Pending wagers decided")
		}
	})

	bus.Subscribe(events.EventTypeWagerSettled, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.WagerSettledEvent); ok {
			log.WithFields(log.Fields{
				"wagerID": e.WagerID,
				"userID":  e.UserID,
				"result":  e.Result,
				"payout":  e.Payout,
			}).Info("Wager settled")
		}
	})
}
