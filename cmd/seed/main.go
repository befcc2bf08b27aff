package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"lawvriksh-onboarding/internal/config"
	pg "lawvriksh-onboarding/internal/infra/db/postgres"
	"lawvriksh-onboarding/internal/infra/logging"
	"lawvriksh-onboarding/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	email := flag.String("email", "dev@lawvriksh.com", "user email")
	passcode := flag.String("passcode", "1234", "user passcode")
	flag.Parse()

	_ = godotenv.Load()

	// ---- Config ----
	cfg, err := config.LoadConfig(*cfgPath, true)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.Database.URL == "" {
		log.Fatalf("database.url is not set in %s", *cfgPath)
	}
	logger := logging.New(cfg.Log, true)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pg.Connect(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	loginUC := usecase.NewLoginUseCase(pg.NewCredentialRepo(pool), pg.NewTxManager(pool), logger, true)
	if err := loginUC.Seed(ctx, *email, *passcode); err != nil {
		log.Fatalf("seed user: %v", err)
	}
	if _, err := loginUC.Login(ctx, *email, *passcode); err != nil {
		log.Fatalf("verify seeded user: %v", err)
	}
	fmt.Printf("user %s is ready\n", *email)
}
