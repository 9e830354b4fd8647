package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"glowshop/internal/handlers"
	"glowshop/internal/middleware"
	"glowshop/internal/models"
	"glowshop/internal/repositories"
	"glowshop/internal/services"
	"glowshop/internal/uploads"
	"glowshop/pkg/rabbitmq"
)

func main() {
	loadConfig()

	app, cleanup, err := newApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer cleanup()

	appPort := ":" + viper.GetString("PORT")
	log.Printf("Starting server on %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// loadConfig sets up Viper to read configuration from environment
// variables with sensible defaults for local development.
func loadConfig() {
	viper.SetDefault("PORT", "5000")
	viper.SetDefault("JWT_SECRET", "glowshop-dev-secret")
	viper.SetDefault("UPLOAD_DIR", "./uploads")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_DSN", "")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()
}

// openDatabase opens the configured GORM backend. With no DATABASE_DSN
// the service runs on the in-memory repositories and a restart discards
// all writes.
func openDatabase() (*gorm.DB, error) {
	dsn := viper.GetString("DATABASE_DSN")
	if dsn == "" {
		return nil, nil
	}
	if viper.GetString("DB_DRIVER") == "postgres" {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
}

// newApp wires repositories, services, and handlers into a Fiber app.
// The returned cleanup function releases external resources.
func newApp() (*fiber.App, func(), error) {
	// --- Repositories ---
	var productRepo repositories.ProductRepository
	var userRepo repositories.UserRepository

	db, err := openDatabase()
	if err != nil {
		return nil, nil, err
	}
	if db != nil {
		if err := db.AutoMigrate(&models.Product{}, &models.User{}); err != nil {
			return nil, nil, err
		}
		productRepo = repositories.NewGORMProductRepository(db)
		userRepo = repositories.NewGORMUserRepository(db)
	} else {
		productRepo = repositories.NewMemoryProductRepository()
		userRepo = repositories.NewMemoryUserRepository()
	}

	// --- RabbitMQ (optional) ---
	var mqClient *rabbitmq.Client
	var publisher services.EventPublisher
	cleanup := func() {}
	if url := viper.GetString("RABBITMQ_URL"); url != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: url})
		if err != nil {
			return nil, nil, err
		}
		publisher = mqClient
		cleanup = func() {
			if err := mqClient.Close(); err != nil {
				log.Printf("Error closing RabbitMQ client: %v", err)
			}
		}

		if err := mqClient.ConsumeProductEvents(func(msg amqp.Delivery) error {
			log.Printf("Catalog event (tag %d): %s", msg.DeliveryTag, msg.Body)
			return nil
		}); err != nil {
			log.Printf("Failed to start catalog event consumer: %v", err)
		}
	}

	// --- Uploads ---
	receiver, err := uploads.NewReceiver(viper.GetString("UPLOAD_DIR"))
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	// --- Services ---
	catalogService := services.NewCatalogService(productRepo, publisher)
	authService := services.NewAuthService(userRepo, viper.GetString("JWT_SECRET"))

	seedProducts(productRepo)
	seedUsers(authService, userRepo)

	// --- Handlers ---
	productHandler := handlers.NewProductHandler(catalogService, receiver)
	authHandler := handlers.NewAuthHandler(authService)

	// --- Fiber App ---
	app := fiber.New()
	app.Use(logger.New())
	app.Use(cors.New())
	app.Static("/uploads", receiver.Dir())

	api := app.Group("/api")
	authHandler.RegisterRoutes(api)
	productHandler.RegisterRoutes(api, middleware.AuthRequired(authService))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
		})
	})

	return app, cleanup, nil
}

// seedUsers creates the default credential when it does not exist yet.
func seedUsers(authService *services.AuthService, userRepo repositories.UserRepository) {
	if _, err := userRepo.GetByEmail("leyla@gmail.com"); err == nil {
		return
	}
	user := models.User{Email: "leyla@gmail.com", Password: "123456"}
	if err := authService.RegisterUser(&user); err != nil {
		log.Printf("Error seeding user %s: %v", user.Email, err)
	}
}

// seedProducts loads the storefront catalog into an empty repository.
func seedProducts(repo repositories.ProductRepository) {
	if existing, err := repo.GetAll(); err != nil || len(existing) > 0 {
		return
	}

	mlOptions := []string{"12 ml", "24 ml", "36 ml"}
	products := []models.Product{
		{ID: "1", Name: "Algae Peel-Off Mask", Details: "Algae Peel-Off Mask with moisturizing and soothing properties.", Brand: "BKIND", Price: 115.0, Currency: "USD", Image: "uploads/bkind-algae-main.webp", HoverImage: "uploads/bkind-algae-hover.webp", Category: "face-care", CreatedAt: "2024-08-15", Stock: 8},
		{ID: "2", Name: "Active Toning Essence", Details: "Delays the aging process", Brand: "MOKOSH", Price: 59.0, Currency: "USD", Image: "uploads/mokosh-active-main.webp", HoverImage: "uploads/mokosh-active-hover.webp", MlOptions: mlOptions, Category: "face-care", CreatedAt: "2025-01-10", Stock: 5},
		{ID: "3", Name: "Figa Smoothing Face Cream", Details: "Reduces fine wrinkles, rejuvenates, improves facial oval", Brand: "MOKOSH", Price: 70.0, Currency: "USD", Image: "uploads/mokosh-figa-main.webp", HoverImage: "uploads/mokosh-figa-hover.webp", Category: "face-care", CreatedAt: "2025-02-13", Stock: 4},
		{ID: "4", Name: "Jasmine Body Oil", Details: "Moisturizes, smooths and firms the body", Brand: "Herbivore", Price: 170.0, Currency: "USD", Image: "uploads/herbivore-jasmine-main.webp", HoverImage: "uploads/herbivore-jasmine-hover.webp", MlOptions: mlOptions, Category: "body-care", CreatedAt: "2024-11-07", Stock: 6},
		{ID: "5", Name: "Firming face serum Orange", Details: "Perfect for natural skin tightening", Brand: "MOKOSH", Price: 69.0, Currency: "USD", Image: "uploads/mokosh-firming-main.webp", HoverImage: "uploads/mokosh-firming-hover.webp", MlOptions: mlOptions, Category: "face-care", BestSeller: true, CreatedAt: "2025-05-02", Stock: 15},
		{ID: "6", Name: "Body salt scrub 300 g", Details: "Perfect for natural skin tightening", Brand: "MOKOSH", Price: 68.0, Currency: "USD", Image: "uploads/mokosh-body-salt-main.webp", HoverImage: "uploads/mokosh-body-salt-hover.webp", Category: "body-care", BestSeller: true, CreatedAt: "2024-01-07", Stock: 18},
		{ID: "7", Name: "Moisturizing hand lotion", Details: "Effectively nourishes the skin of the hands and protects it from drying out", Brand: "MOKOSH", Price: 11.5, Currency: "USD", Image: "uploads/mokosh-moisturizing-main.webp", HoverImage: "uploads/mokosh-moisturizing-hover.webp", Category: "hand-care", BestSeller: true, CreatedAt: "2024-02-07", Stock: 2},
		{ID: "8", Name: "Corrective eye cream", Details: "Reduces dark circles and puffs under the eyes", Brand: "MOKOSH", Price: 29.0, Currency: "USD", Image: "uploads/mokosh-corrective-main.webp", HoverImage: "uploads/mokosh-corrective-hover.webp", Category: "face-care", BestSeller: true, CreatedAt: "2025-05-01", Stock: 11},
		{ID: "9", Name: "Nourishing hand balm", Details: "Moisturizes, soothes, repairs and promotes tissue healing", Brand: "BKIND", Price: 96.0, Currency: "USD", Image: "uploads/bkind-nourishing-main.webp", HoverImage: "uploads/bkind-nourishing-hover.webp", Category: "hand-care", BestSeller: true, CreatedAt: "2025-02-01", Stock: 18},
		{ID: "10", Name: "Iodine & bromine salt", Details: "Fights cellulite", Brand: "MOKOSH", Price: 13.9, Currency: "USD", Image: "uploads/mokosh-iodine-main.webp", HoverImage: "uploads/mokosh-iodine-hover.webp", MlOptions: mlOptions, Category: "bath-body", BestSeller: true, CreatedAt: "2025-02-17", Stock: 8},
		{ID: "11", Name: "Orchid Antioxidant Beauty Face Oil", Details: "Orchid Antioxidant Beauty Face Oil contains lush", Brand: "Herbivore", Price: 86.0, Currency: "USD", Image: "uploads/herbivore-orchid-main.webp", HoverImage: "uploads/herbivore-orchid-hover.webp", MlOptions: mlOptions, Category: "face-care", BestSeller: true, CreatedAt: "2024-03-07", Stock: 13},
		{ID: "12", Name: "Bakuchiol Retinol Alternative Serum", Details: "Orchid Antioxidant Beauty Face Oil contains lush", Brand: "Herbivore", Price: 55.0, Currency: "USD", Image: "uploads/herbivore-bakuchiol-main.webp", HoverImage: "uploads/herbivore-bakuchiol-hover.webp", MlOptions: mlOptions, Category: "face-care", CreatedAt: "2024-11-07", Stock: 0},
		{ID: "13", Name: "Lapis Blue Tansy Face Oil", Details: "Lapis Blue Tansy Face Oil", Brand: "HERBIVORE", Price: 170.0, Currency: "USD", Image: "uploads/herbivore-lapis-main.webp", HoverImage: "uploads/herbivore-lapis-hover.webp", MlOptions: mlOptions, Category: "face-care", CreatedAt: "2025-03-25", Stock: 4},
		{ID: "14", Name: "Conditioner bar - colored or white hair", Details: "Conditioner bar - colored or white hair", Brand: "BKIND", Price: 80.0, Currency: "USD", Image: "uploads/bkind-conditioner-main.webp", HoverImage: "uploads/bkind-conditioner-hover.webp", Category: "hair-care", CreatedAt: "2025-02-10", Stock: 0},
		{ID: "15", Name: "Moisturizing body lotion", Details: "Mokosh body lotion", Brand: "MOKOSH", Price: 65.0, Currency: "USD", Image: "uploads/mokosh-moisturizing-body-lotion-main.webp", HoverImage: "uploads/mokosh-moisturizing-body-lotion-hover.webp", MlOptions: mlOptions, Category: "body-care", CreatedAt: "2025-02-11", Stock: 1},
	}

	for i := range products {
		if err := repo.Create(&products[i]); err != nil {
			log.Printf("Error seeding product %s: %v", products[i].Name, err)
		}
	}
}
