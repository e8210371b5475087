package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/clinicops/station-scheduler/backend/internal/config"
	"github.com/clinicops/station-scheduler/backend/internal/repository"
	"github.com/clinicops/station-scheduler/backend/internal/seed"
	"github.com/clinicops/station-scheduler/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var emailDomain string

	flag.IntVar(&op, "op", 0, "operation (1: insert random employees, 2: insert random stations, 3: seed a sample board)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.StringVar(&emailDomain, "email-domain", "clinic.example.com", "domain for generated employee emails")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to create database connection pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open only builds the pool object, so ping explicitly to verify
	// the database is actually reachable.
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no operation specified")
	case 1:
		if n <= 0 {
			slog.Error("employee count must be positive")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				employee := utils.GenerateRandomEmployee(emailDomain)
				if err := repo.CreateEmployee(employee); err != nil {
					slog.Error("failed to insert employee", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("employees inserted", slog.Int("count", n-cnt))
		}
	case 2:
		if n <= 0 {
			slog.Error("station count must be positive")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				station := utils.GenerateRandomStation(int32(i + 1))
				if err := repo.CreateStation(station); err != nil {
					slog.Error("failed to insert station", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("stations inserted", slog.Int("count", n-cnt))
		}
	case 3:
		if n <= 0 {
			slog.Error("board size must be positive")
		} else {
			seed.SeedSampleBoard(repo, n, emailDomain)
		}
	default:
		slog.Error("invalid operation")
	}
}
