// Package main implements a standalone seed script that populates the store
// with a small catalog and a demo account for local development.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/lojinha/api/internal/domain"
	mongorepo "github.com/lojinha/api/internal/repository/mongo"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var products = []domain.Product{
	{Name: "Caneca de cerâmica", Price: 29.90, ImageURL: "https://example.com/img/caneca.png", Description: "Caneca de cerâmica 300ml"},
	{Name: "Camiseta básica", Price: 49.90, ImageURL: "https://example.com/img/camiseta.png", Description: "Camiseta 100% algodão"},
	{Name: "Garrafa térmica", Price: 89.90, ImageURL: "https://example.com/img/garrafa.png", Description: "Garrafa térmica 500ml"},
	{Name: "Mochila urbana", Price: 199.90, ImageURL: "https://example.com/img/mochila.png", Description: "Mochila com compartimento para notebook"},
	{Name: "Fone de ouvido", Price: 149.90, ImageURL: "https://example.com/img/fone.png", Description: "Fone bluetooth com microfone"},
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	uri := getEnv("MONGO_URI", "mongodb://localhost:27017")
	dbName := getEnv("MONGO_DATABASE", "lojinha")

	client, err := mongorepo.Connect(ctx, uri)
	if err != nil {
		log.Fatalf("connect to mongodb: %v", err)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	db := client.Database(dbName)
	if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("ensure indexes: %v", err)
	}

	productRepo := mongorepo.NewProductRepository(db)
	for i := range products {
		if err := productRepo.Create(ctx, &products[i]); err != nil {
			log.Fatalf("seed product %q: %v", products[i].Name, err)
		}
		log.Printf("seeded product %s (%s)", products[i].Name, products[i].ID.Hex())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(getEnv("SEED_USER_PASSWORD", "segredo123")), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash seed password: %v", err)
	}

	userRepo := mongorepo.NewUserRepository(db)
	demo := &domain.User{
		Name:         "Usuário Demo",
		Age:          30,
		Email:        "demo@lojinha.dev",
		PasswordHash: string(hashed),
	}
	if err := userRepo.Create(ctx, demo); err != nil {
		log.Printf("seed user skipped: %v", err)
	} else {
		log.Printf("seeded user %s (%s)", demo.Email, demo.ID.Hex())
	}

	log.Printf("done: %d products", len(products))
}
