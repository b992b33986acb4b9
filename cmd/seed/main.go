// Command seed prepares the backing stores for a deploy: it migrates
// PostgreSQL, validates the compiled event catalog and rebuilds the catalog
// cache in Redis.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"plugevents/internal/catalog"
	"plugevents/internal/shared/config"
	"plugevents/internal/shared/constants"
	"plugevents/internal/shared/database"
	"plugevents/pkg/cache"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	fmt.Println("Preparing Plug Events stores...")

	cat, err := catalog.New(catalog.Seed())
	if err != nil {
		log.Fatalf("Invalid event catalog: %v", err)
	}
	fmt.Printf("Catalog OK: %d events, categories %v\n", cat.Len(), cat.Categories())

	// InitDB runs the migrations when PostgreSQL is enabled.
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize stores: %v", err)
	}
	defer db.Close()

	if db.PostgreSQL != nil {
		fmt.Println("PostgreSQL migrated")
	}

	client := db.GetRedis()
	if client == nil {
		fmt.Println("Redis disabled, nothing to warm")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cacheService := cache.NewService(client)
	if err := cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_EVENT_ALL); err != nil {
		log.Fatalf("Failed to clear catalog cache: %v", err)
	}

	svc := catalog.NewService(cat, nil)
	svc.SetCacheService(cacheService)

	if _, err := svc.ListEvents(ctx, catalog.ListQuery{}); err != nil {
		log.Fatalf("Failed to warm listing: %v", err)
	}
	for _, category := range cat.Categories() {
		if _, err := svc.ListEvents(ctx, catalog.ListQuery{Category: category}); err != nil {
			log.Fatalf("Failed to warm %s listing: %v", category, err)
		}
	}
	if _, err := svc.GetFeaturedEvents(ctx, catalog.DefaultFeaturedLimit); err != nil {
		log.Fatalf("Failed to warm featured events: %v", err)
	}
	if _, err := svc.GetCategories(ctx); err != nil {
		log.Fatalf("Failed to warm categories: %v", err)
	}

	fmt.Println("Catalog cache rebuilt")
}
