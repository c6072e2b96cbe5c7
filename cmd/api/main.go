package main

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/huellitas/pet-shop-backend/internal/appointment"
	"github.com/huellitas/pet-shop-backend/internal/cart"
	"github.com/huellitas/pet-shop-backend/internal/config"
	"github.com/huellitas/pet-shop-backend/internal/notification"
	"github.com/huellitas/pet-shop-backend/internal/order"
	"github.com/huellitas/pet-shop-backend/internal/payment"
	"github.com/huellitas/pet-shop-backend/internal/product"
	"github.com/huellitas/pet-shop-backend/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New()
	setupCORS(app)
	app.Use(requestLogger)

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()
	ensureSchema(db)

	userService := user.NewService(user.NewPostgresRepository(db))
	userHandler := user.NewHandler(userService)

	productService := product.NewService(product.NewPostgresRepository(db))
	productHandler := product.NewHandler(productService)

	notificationService := notification.NewService(notification.NewPostgresRepository(db))
	notificationHandler := notification.NewHandler(notificationService)

	orderService := order.NewService(order.NewPostgresRepository(db))
	orderHandler := order.NewHandler(orderService, notificationService)

	cartHandler := cart.NewHandler(cart.NewService(cart.NewPostgresRepository(db)))

	appointmentHandler := appointment.NewHandler(
		appointment.NewService(appointment.NewPostgresRepository(db)), notificationService)

	gateway := payment.NewMercadoPagoClient(cfg.MPBaseURL, cfg.MPAccessToken)
	paymentService := payment.NewService(gateway, orderService, productService, notificationService,
		cfg.PublicBaseURL+"/api/payments/webhook", cfg.FrontendBaseURL)
	paymentHandler := payment.NewHandler(paymentService)

	// public routes go in before the jwt middleware: auth, catalog reads and
	// the provider webhook must work without a token
	userHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	paymentHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	userHandler.RegisterProtectedRoutes(app)
	productHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	paymentHandler.RegisterProtectedRoutes(app)
	notificationHandler.RegisterProtectedRoutes(app)
	appointmentHandler.RegisterProtectedRoutes(app)

	if err := app.Listen(cfg.Addr); err != nil {
		fmt.Printf("server stopped: %v\n", err)
		os.Exit(1)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	fmt.Printf("%s %s -> %d (%v)\n", c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
	return err
}

func mustOpenDB(dbURL string) *sql.DB {
	if dbURL == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	return db
}

func ensureSchema(db *sql.DB) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			is_admin BOOLEAN NOT NULL DEFAULT false,
			cart jsonb NOT NULL DEFAULT '{}',
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS product (
			product_id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			price numeric NOT NULL DEFAULT 0,
			description TEXT NOT NULL DEFAULT '',
			image TEXT NOT NULL DEFAULT '',
			stock INT NOT NULL DEFAULT 0,
			category TEXT NOT NULL,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			order_id SERIAL PRIMARY KEY,
			user_id INT NOT NULL,
			order_items jsonb NOT NULL DEFAULT '[]',
			shipping_address jsonb NOT NULL DEFAULT '{}',
			payment_method TEXT NOT NULL DEFAULT '',
			items_price numeric NOT NULL DEFAULT 0,
			tax_price numeric NOT NULL DEFAULT 0,
			shipping_price numeric NOT NULL DEFAULT 0,
			total_price numeric NOT NULL DEFAULT 0,
			is_paid BOOLEAN NOT NULL DEFAULT false,
			paid_at TEXT,
			payment_result jsonb,
			is_delivered BOOLEAN NOT NULL DEFAULT false,
			delivered_at TEXT,
			status TEXT NOT NULL DEFAULT 'Pendiente',
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS notifications (
			notification_id SERIAL PRIMARY KEY,
			user_id INT,
			message TEXT NOT NULL,
			type TEXT NOT NULL DEFAULT 'system',
			link TEXT NOT NULL DEFAULT '',
			is_read BOOLEAN NOT NULL DEFAULT false,
			created_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS appointments (
			appointment_id SERIAL PRIMARY KEY,
			user_id INT NOT NULL,
			pet_name TEXT NOT NULL,
			pet_photo TEXT NOT NULL,
			contact_phone TEXT NOT NULL,
			date_requested TEXT,
			status TEXT NOT NULL DEFAULT 'Pendiente',
			confirmed_date TEXT,
			notes TEXT,
			created_at TEXT,
			updated_at TEXT
		)`,
		// cart column may be missing on databases created before the
		// server-synced cart existed
		`ALTER TABLE users ADD COLUMN IF NOT EXISTS cart jsonb NOT NULL DEFAULT '{}'`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			panic(err)
		}
	}
}
