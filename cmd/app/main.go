package main

import (
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"strconv"
	"time"

	"marketplace/cmd"
	httpadapter "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/postgres/cartrepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/productrepo"
	"marketplace/internal/adapters/out/postgres/tokenrepo"
	"marketplace/internal/adapters/out/postgres/userrepo"
	"marketplace/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	db := connectDB(configs)
	migrate(db)

	app := cmd.NewCompositionRoot(configs, db)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	jobManager := jobs.NewJobManager(app.CreatePurgeExpiredTokensCommandHandler(), logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	return cmd.Config{
		HTTPPort:        envVariable("HTTP_PORT", "8080"),
		DBHost:          envVariable("DB_HOST", "localhost"),
		DBPort:          envVariable("DB_PORT", "5432"),
		DBUser:          envVariable("DB_USER", "postgres"),
		DBPassword:      envVariable("DB_PASSWORD", ""),
		DBName:          envVariable("DB_NAME", "marketplace"),
		DBSslMode:       envVariable("DB_SSLMODE", "disable"),
		JWTSecret:       envVariable("JWT_SECRET", ""),
		AccessTokenTTL:  envDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenTTL: envDuration("REFRESH_TOKEN_TTL", 30*24*time.Hour),
		BcryptCost:      envInt("BCRYPT_COST", 10),
	}
}

func envVariable(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("Invalid duration in %s: %v", key, err)
	}
	return d
}

func envInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("Invalid integer in %s: %v", key, err)
	}
	return n
}

func connectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode,
	)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return db
}

func migrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&userrepo.UserDTO{},
		&productrepo.ProductDTO{},
		&orderrepo.OrderDTO{},
		&cartrepo.CartItemDTO{},
		&tokenrepo.RefreshTokenDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	e.GET("/health", func(c echo.Context) error {
		return c.String(nethttp.StatusOK, "Healthy")
	})

	server := httpadapter.NewServer(
		app.TokenSigner(),
		app.CreateRegisterUserCommandHandler(),
		app.CreateLoginCommandHandler(),
		app.CreateRefreshTokenCommandHandler(),
		app.CreateLogoutCommandHandler(),
		app.CreateCreateProductCommandHandler(),
		app.CreateUpdateProductCommandHandler(),
		app.CreateDeleteProductCommandHandler(),
		app.CreateAddCartItemCommandHandler(),
		app.CreateUpdateCartItemCommandHandler(),
		app.CreateRemoveCartItemCommandHandler(),
		app.CreatePlaceOrderCommandHandler(),
		app.CreateConfirmProcessingCommandHandler(),
		app.CreatePickupOrderCommandHandler(),
		app.CreateChangeDeliveryCommandHandler(),
		app.CreateGetAccountQueryHandler(),
		app.CreateGetProductsQueryHandler(),
		app.CreateGetProductQueryHandler(),
		app.CreateGetCartQueryHandler(),
		app.CreateGetOrdersQueryHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateGetSalesQueryHandler(),
		app.CreateGetSaleQueryHandler(),
		app.CreateGetDeliveriesQueryHandler(),
		app.CreateGetDeliveryQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
