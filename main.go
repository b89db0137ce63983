package main

import (
	"log"

	"github.com/DillonStreator/identifiable/identifiable"
	"github.com/DillonStreator/identifiable/internal/observability"
	"github.com/DillonStreator/identifiable/storage"
	"github.com/go-pg/pg/v10"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}
	if noEnvsSet(dbEnvs...) {
		log.Printf("no DB_* environment set, using defaults for %s", cfg.DB.Addr)
	}

	identifiable.Configure(func(c *identifiable.Configuration) {
		*c = cfg.Identifiable
	})

	logger := observability.NewLoggerWithLevel("todos", cfg.LogLevel)
	metrics := observability.NewMetrics(nil)

	db := pg.Connect(&cfg.DB)
	defer db.Close()

	err = storage.CreateSchema(db)
	if err != nil {
		log.Fatal(err)
	}

	repo, err := storage.New(db, cfg.Declarations,
		identifiable.WithLogger(logger.With("component", "identifiable")),
		identifiable.WithObserver(metrics),
	)
	if err != nil {
		log.Fatal(err)
	}

	err = startServer(cfg.Port, newServer(repo, logger))
	if err != nil {
		log.Fatal(err)
	}
}
