// Seeds a local database with a dev user and a few cuts, and prints a
// bearer token for that user so the API can be exercised immediately.
// Dev-mode only; it mints HS256 tokens with the configured secret.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"recortes/internal/config"
	"recortes/internal/database"
	"recortes/internal/domain"
	"recortes/internal/pkg/tokens"
	"recortes/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if !cfg.UseDevTokens() {
		log.Fatal("seed only works in dev token mode (unset GOOGLE_CLIENT_ID)")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	cuts := repository.NewCutRepository(db)

	user, err := users.GetOrCreateByGoogleID(ctx, "seed-user", "dev@example.com", "Dev User")
	if err != nil {
		log.Fatal("seed user failed:", err)
	}

	samples := []domain.Cut{
		{
			SKU: "SKU001", ModelName: "Modelo A", CutType: "frente", Position: "frente",
			ProductType: "boné americano", Material: "linho", MaterialColor: "azul marinho",
			DisplayOrder: 1, Status: domain.CutStatusActive,
			ImageURL: "http://localhost:8080/storage/recortes/bone-americano_frente_linho_azul-marinho.png",
			UserID:   user.ID,
		},
		{
			SKU: "SKU002", ModelName: "Modelo B", CutType: "aba", Position: "frente",
			ProductType: "boné trucker", Material: "couro", MaterialColor: "preto",
			DisplayOrder: 2, Status: domain.CutStatusPending,
			ImageURL: "http://localhost:8080/storage/recortes/bone-trucker_aba_couro_preto.png",
			UserID:   user.ID,
		},
	}
	for i := range samples {
		if err := cuts.Create(ctx, &samples[i]); err != nil {
			log.Fatal("seed cut failed:", err)
		}
	}
	log.Printf("Seeded %d cuts for user %d", len(samples), user.ID)

	svc := tokens.NewDevTokenService(cfg.DevTokenSecret, 24*time.Hour)
	token, err := svc.Generate("seed-user", user.Email, user.Name)
	if err != nil {
		log.Fatal("token generation failed:", err)
	}
	fmt.Println("Bearer token for dev@example.com:")
	fmt.Println(token)
}
