package handlers

import (
	"e-kasir/internal/ai"
	"e-kasir/internal/cart"
	"e-kasir/internal/catalog"
	"e-kasir/internal/config"
	"e-kasir/internal/database"
	"e-kasir/internal/ledger"
	"e-kasir/internal/settings"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Handler bundles the services behind the HTTP surface. Everything is
// injected so the store can be swapped without touching a handler.
type Handler struct {
	cfg      *config.Config
	db       *gorm.DB
	redis    *redis.Client // nil when Redis is not configured
	catalog  *catalog.Catalog
	carts    *cart.Manager
	ledger   *ledger.Ledger
	settings *settings.Service
	reports  *database.Reports
	agent    *ai.Agent // nil when no API key is set
}

func New(
	cfg *config.Config,
	db *gorm.DB,
	redisClient *redis.Client,
	cat *catalog.Catalog,
	carts *cart.Manager,
	led *ledger.Ledger,
	set *settings.Service,
	rep *database.Reports,
	agent *ai.Agent,
) *Handler {
	return &Handler{
		cfg:      cfg,
		db:       db,
		redis:    redisClient,
		catalog:  cat,
		carts:    carts,
		ledger:   led,
		settings: set,
		reports:  rep,
		agent:    agent,
	}
}
