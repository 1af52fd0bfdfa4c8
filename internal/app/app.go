package app

import (
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	pgrepo "github.com/phenrril/tallerfix/internal/adapters/repo/postgres"
	"github.com/phenrril/tallerfix/internal/domain"
	"github.com/phenrril/tallerfix/internal/usecase"
)

type App struct {
	DB      *gorm.DB
	OrderUC *usecase.OrderUC
}

func NewApp(db *gorm.DB) *App {
	orderRepo := pgrepo.NewOrderRepo(db)
	custRepo := pgrepo.NewCustomerRepo(db)

	return &App{
		DB: db,
		OrderUC: &usecase.OrderUC{
			Orders:    orderRepo,
			Customers: custRepo,
			Tx:        pgrepo.NewTxManager(db),
		},
	}
}

func (a *App) Migrate() error {
	return a.DB.AutoMigrate(&domain.Customer{}, &domain.Order{})
}

// OpenDB arma el DSN desde el entorno: DB_DSN gana, si no se compone
// con las variables sueltas y defaults de desarrollo.
func OpenDB() (*gorm.DB, error) {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		host := envOr("DB_HOST", "localhost")
		port := envOr("DB_PORT", "5432")
		user := os.Getenv("DB_USER")
		if user == "" {
			user = envOr("POSTGRES_USER", "postgres")
		}
		pass := os.Getenv("DB_PASSWORD")
		if pass == "" {
			pass = envOr("POSTGRES_PASSWORD", "postgres")
		}
		name := os.Getenv("DB_NAME")
		if name == "" {
			name = envOr("POSTGRES_DB", "tallerfix")
		}
		ssl := envOr("DB_SSLMODE", "disable")
		dsn = "host=" + host + " user=" + user + " password=" + pass +
			" dbname=" + name + " port=" + port + " sslmode=" + ssl
	}
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
