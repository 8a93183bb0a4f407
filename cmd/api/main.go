package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"recortes/internal/config"
	"recortes/internal/database"
	"recortes/internal/middleware"
	"recortes/internal/modules/cut"
	"recortes/internal/pkg/tokens"
	"recortes/internal/repository"
	"recortes/internal/storage"
	memorystore "recortes/internal/storage/memory"
	s3store "recortes/internal/storage/s3"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	var store storage.Store
	if cfg.UseMemoryStorage() {
		log.Println("No STORAGE_PUBLIC_BASE_URL configured, using in-memory blob store")
		store = memorystore.New(cfg.StorageBucket, "http://localhost:"+cfg.Port+"/storage")
	} else {
		store, err = s3store.New(ctx, cfg.StorageBucket, cfg.StorageEndpoint, cfg.StoragePublicBaseURL)
		if err != nil {
			log.Fatal(err)
		}
	}

	var verifier tokens.Verifier
	if cfg.UseDevTokens() {
		log.Println("No GOOGLE_CLIENT_ID configured, using dev token verification")
		verifier = tokens.NewDevTokenService(cfg.DevTokenSecret, 24*time.Hour)
	} else {
		verifier, err = tokens.NewOIDCVerifier(ctx, cfg.GoogleIssuerURL, cfg.GoogleClientID)
		if err != nil {
			log.Fatal(err)
		}
	}

	userRepo := repository.NewUserRepository(db)
	cutRepo := repository.NewCutRepository(db)

	cutService := cut.NewService(cutRepo, store)
	cutHandler := cut.NewHandler(cutService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	protected := r.Group("/")
	protected.Use(middleware.Auth(verifier, userRepo))
	{
		cut.RegisterRoutes(protected, cutHandler)
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
