package main

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/wirote65/storefront-backend/internal/cart"
	"github.com/wirote65/storefront-backend/internal/category"
	"github.com/wirote65/storefront-backend/internal/checkout"
	"github.com/wirote65/storefront-backend/internal/config"
	"github.com/wirote65/storefront-backend/internal/order"
	"github.com/wirote65/storefront-backend/internal/product"
	"github.com/wirote65/storefront-backend/internal/review"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()

	ensureSchema(db, logger)
	seedCatalog(db, logger)

	app := fiber.New()
	setupCORS(app)
	app.Use(requestLogger(logger))

	// tokens are optional: a valid one resolves the cart owner to the
	// authenticated user, everything else falls back to sessionId
	if cfg.JWTSecret != "" {
		app.Use(jwtware.New(jwtware.Config{
			SigningKey: []byte(cfg.JWTSecret),
			Filter: func(c *fiber.Ctx) bool {
				return c.Get("Authorization") == ""
			},
		}))
	}

	categoryHandler := category.NewHandler(category.NewService(category.NewPostgresRepository(db)), logger)
	categoryHandler.RegisterPublicRoutes(app)

	productService := product.NewService(product.NewPostgresRepository(db))
	productHandler := product.NewHandler(productService, logger)
	productHandler.RegisterPublicRoutes(app)

	reviewHandler := review.NewHandler(review.NewService(review.NewPostgresRepository(db)), logger)
	reviewHandler.RegisterPublicRoutes(app)

	cartService := cart.NewService(cart.NewPostgresRepository(db))
	cartHandler := cart.NewHandler(cartService, logger)
	cartHandler.RegisterRoutes(app)

	pricing := order.Pricing{DeliveryCharge: cfg.DeliveryCharge, FreeDeliveryMin: cfg.FreeDeliveryMin}
	orderService := order.NewService(order.NewPostgresRepository(db), pricing, cfg.EstimatedDelivery)
	orderHandler := order.NewHandler(orderService, logger)
	orderHandler.RegisterRoutes(app)

	checkoutService := checkout.NewService(checkout.NewSessionStore(), cartService, orderService, logger)
	checkoutHandler := checkout.NewHandler(checkoutService, logger)
	checkoutHandler.RegisterRoutes(app)

	logger.Info("starting server", zap.String("addr", cfg.Addr))
	if err := app.Listen(cfg.Addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func requestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		logger.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.OriginalURL()),
			zap.Int("status", c.Response().StatusCode()))
		return err
	}
}

func mustOpenDB(url string) *sql.DB {
	if url == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		panic(err)
	}
	if err := db.Ping(); err != nil {
		panic(err)
	}
	return db
}

func ensureSchema(db *sql.DB, logger *zap.Logger) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS categories (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			localized_name TEXT,
			image TEXT,
			ord INT NOT NULL DEFAULT 0,
			active BOOLEAN NOT NULL DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			localized_name TEXT,
			description TEXT NOT NULL DEFAULT '',
			price NUMERIC NOT NULL DEFAULT 0,
			original_price NUMERIC,
			image TEXT,
			image_second TEXT,
			brand TEXT,
			stock INT NOT NULL DEFAULT 0,
			category_id INT,
			rating NUMERIC NOT NULL DEFAULT 0,
			review_count INT NOT NULL DEFAULT 0,
			featured BOOLEAN NOT NULL DEFAULT FALSE,
			active BOOLEAN NOT NULL DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS cart_items (
			id SERIAL PRIMARY KEY,
			product_id INT NOT NULL,
			user_id INT,
			session_id TEXT,
			quantity INT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			order_number TEXT NOT NULL UNIQUE,
			customer_key TEXT NOT NULL,
			subtotal NUMERIC NOT NULL DEFAULT 0,
			delivery_charge NUMERIC NOT NULL DEFAULT 0,
			total NUMERIC NOT NULL DEFAULT 0,
			payment_method TEXT NOT NULL,
			payment_status TEXT NOT NULL,
			status TEXT NOT NULL,
			delivery_address JSONB NOT NULL DEFAULT '{}',
			estimated_delivery_time TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id SERIAL PRIMARY KEY,
			order_id INT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			product_id INT NOT NULL,
			seller_id INT NOT NULL DEFAULT 0,
			quantity INT NOT NULL,
			unit_price NUMERIC NOT NULL,
			total_price NUMERIC NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS reviews (
			id SERIAL PRIMARY KEY,
			product_id INT NOT NULL,
			rating INT NOT NULL,
			comment TEXT,
			author TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS cart_items_owner_product ON cart_items (user_id, session_id, product_id)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			logger.Fatal("schema setup failed", zap.Error(err))
		}
	}
}

// seedCatalog inserts a small demo catalog when the tables are empty.
func seedCatalog(db *sql.DB, logger *zap.Logger) {
	var categoryCount int
	if err := db.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&categoryCount); err == nil && categoryCount == 0 {
		seed := []struct{ name, localized, img string }{
			{"Electronics", "อิเล็กทรอนิกส์", "/category/electronics.png"},
			{"Fashion", "แฟชั่น", "/category/fashion.png"},
			{"Home & Kitchen", "บ้านและครัว", "/category/home.png"},
			{"Beauty", "ความงาม", "/category/beauty.png"},
		}
		for i, s := range seed {
			if _, err := db.Exec(`INSERT INTO categories (name, localized_name, image, ord) VALUES ($1,$2,$3,$4)`,
				s.name, s.localized, s.img, len(seed)-i); err != nil {
				continue
			}
		}
	}

	var productCount int
	if err := db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&productCount); err == nil && productCount == 0 {
		seed := []struct {
			name, desc string
			price      float64
			category   int
			featured   bool
		}{
			{"Wireless Earbuds", "Bluetooth 5.3 earbuds with charging case", 1290, 1, true},
			{"Cotton T-Shirt", "Plain crew-neck cotton t-shirt", 190, 2, false},
			{"Ceramic Mug Set", "Set of four 300ml ceramic mugs", 450, 3, true},
			{"Facial Cleanser", "Gentle daily facial cleanser 150ml", 320, 4, false},
		}
		inserted := 0
		for _, s := range seed {
			if _, err := db.Exec(`INSERT INTO products (name, description, price, category_id, stock, featured) VALUES ($1,$2,$3,$4,$5,$6)`,
				s.name, s.desc, s.price, s.category, 50, s.featured); err != nil {
				continue
			}
			inserted++
		}
		logger.Info("seeded demo catalog", zap.Int("products", inserted))
	}
}
