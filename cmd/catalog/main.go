package main

import (
	"log"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/spec-kit/catalog-service/internal/config"
	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/events"
	"github.com/spec-kit/catalog-service/internal/observability"
	"github.com/spec-kit/catalog-service/internal/store"
	"github.com/spec-kit/catalog-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("starting",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", cfg.App.Version))

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(dispatcher, logger, metrics)

	deps := store.Deps{
		Logger:     logger,
		Metrics:    metrics,
		Dispatcher: dispatcher,
		Actor:      cfg.Seed.Actor,
	}
	users := store.NewUserStore(deps, cfg.Auth.BcryptCost)
	products := store.NewProductStore(deps)
	orders := store.NewOrderStore(deps)

	if cfg.Seed.Enabled {
		if err := runWalkthrough(users, products, orders); err != nil {
			logger.Fatal("walkthrough failed", zap.Error(err))
		}
	}

	ops, errCounts, eventCounts := metrics.Snapshot()
	logger.Info("shutting down",
		zap.Int("users", users.Count()),
		zap.Int("products", products.Count()),
		zap.Int("orders", orders.Count()),
		zap.Any("ops", ops),
		zap.Any("errors", errCounts),
		zap.Any("events", eventCounts))
}

// runWalkthrough exercises the stores end to end: a customer, a stocked
// product and an order moved through its full lifecycle.
func runWalkthrough(users *store.UserStore, products *store.ProductStore, orders *store.OrderStore) error {
	user, err := users.CreateUser("alice", "alice@example.com", "Alice", "Anderson")
	if err != nil {
		return err
	}
	if _, err := users.SetPassword(user.ID, "correct-horse-battery"); err != nil {
		return err
	}

	product, err := products.CreateProduct("Mechanical Keyboard", "KB-001",
		decimal.RequireFromString("89.90"), domain.CategoryElectronics)
	if err != nil {
		return err
	}
	if _, err := products.UpdateStock(product.ID, 25); err != nil {
		return err
	}

	order, err := orders.CreateOrder(store.OrderCreateInput{
		CustomerID:      user.ID,
		ShippingAddress: "1 Main St",
		BillingAddress:  "1 Main St",
	})
	if err != nil {
		return err
	}

	line := domain.NewOrderLine(product.ID, product.Name, product.SKU, product.Price, 2)
	if _, err := orders.AddItem(order.ID, &line); err != nil {
		return err
	}
	if _, err := orders.SetCharges(order.ID,
		decimal.RequireFromString("14.38"), decimal.RequireFromString("4.99")); err != nil {
		return err
	}

	if _, err := orders.Confirm(order.ID); err != nil {
		return err
	}
	if _, err := products.RemoveStock(product.ID, 2); err != nil {
		return err
	}
	if _, err := orders.Ship(order.ID); err != nil {
		return err
	}
	if _, err := orders.Deliver(order.ID); err != nil {
		return err
	}
	return nil
}
