// Package usecase contains application-level services.
package usecase

import (
	"context"
	"log"
)

// Seeder asks the backend to populate its content catalog.
type Seeder interface {
	Seed(ctx context.Context) error
}

// SeedCatalog triggers seeding and ignores failures.
func SeedCatalog(ctx context.Context, seeder Seeder) {
	if seeder == nil {
		return
	}
	if err := seeder.Seed(ctx); err != nil {
		log.Printf("catalog: seed ignored: %v", err)
	}
}
