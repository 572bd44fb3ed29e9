package main

import (
	"flag"
	"os"

	"collector/cmd/migration/initialize"
	"collector/cmd/migration/seed"
	"collector/config"
	"collector/internal/database"
	"collector/internal/logger"
)

func main() {
	log := logger.New("migration")

	runSeed := flag.Bool("seed", false, "seed development data after migrating")
	flag.Parse()

	cfg, err := config.InitConfig()
	if err != nil {
		log.Er("failed to initialize config", err)
		os.Exit(1)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Er("failed to create database", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	if err := initialize.InitializeTables(db.SQL, cfg, log); err != nil {
		log.Er("failed to initialize tables", err)
		os.Exit(1)
	}

	if *runSeed {
		if err := seed.Seed(db.SQL, cfg, log); err != nil {
			log.Er("failed to seed data", err)
			os.Exit(1)
		}
	}
}
