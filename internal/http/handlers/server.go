package handlers

import (
	"database/sql"
	"log/slog"

	"github.com/glowdesk/glowdesk/internal/cache"
	"github.com/glowdesk/glowdesk/internal/repo"
)

var (
	transactionRepo repo.TransactionRepository
	appointmentRepo repo.AppointmentRepository
	clientRepo      repo.ClientRepository
	productRepo     repo.ProductRepository
	dashboardRepo   repo.DashboardRepository
	settingsRepo    repo.SettingsRepository

	database       *sql.DB
	cacheSvc       *cache.Service
	serviceKeyHash string
	logger         = slog.Default()
)

func SetTransactionRepo(r repo.TransactionRepository) {
	transactionRepo = r
}

func SetAppointmentRepo(r repo.AppointmentRepository) {
	appointmentRepo = r
}

func SetClientRepo(r repo.ClientRepository) {
	clientRepo = r
}

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetDashboardRepo(r repo.DashboardRepository) {
	dashboardRepo = r
}

func SetSettingsRepo(r repo.SettingsRepository) {
	settingsRepo = r
}

// SetDB hands the raw connection to the admin schema routes. The CRUD
// handlers never touch it.
func SetDB(db *sql.DB) {
	database = db
}

// SetCache installs the Redis list cache. Handlers tolerate a nil service.
func SetCache(s *cache.Service) {
	cacheSvc = s
}

// SetServiceKeyHash installs the bcrypt hash the login route checks the
// elevated service key against.
func SetServiceKeyHash(hash string) {
	serviceKeyHash = hash
}

func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}
