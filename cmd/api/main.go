package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gquyenhsb/agriplan-backend/config"
	"github.com/gquyenhsb/agriplan-backend/internal/advisor"
	"github.com/gquyenhsb/agriplan-backend/internal/bootstrap"
	"github.com/gquyenhsb/agriplan-backend/internal/geocode"
	"github.com/gquyenhsb/agriplan-backend/internal/llm"
	"github.com/gquyenhsb/agriplan-backend/internal/notify"
	"github.com/gquyenhsb/agriplan-backend/internal/projects"
	"github.com/gquyenhsb/agriplan-backend/internal/storage/postgres"
	"github.com/gquyenhsb/agriplan-backend/internal/weather"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)
	ctx := context.Background()

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: postgres.DSN(&cfg.Database)})
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	rdb, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	repo := projects.NewRepo(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatalf("schema: %v", err)
	}

	gemini := llm.NewGemini(cfg.Keys.Gemini)
	weatherTTL := time.Duration(cfg.App.WeatherTTLMinutes) * time.Minute
	weatherSvc := weather.NewService(weather.NewClient(cfg.Keys.Weather), weather.NewCache(rdb, weatherTTL))
	geo := geocode.New(cfg.Keys.Geoapify)
	advisorSvc := advisor.NewService(repo, gemini)

	agg := notify.NewAggregator(repo)
	sched := notify.NewScheduler(agg, time.Duration(cfg.App.NotifyIntervalSeconds)*time.Second)
	sched.AddJob(fmt.Sprintf("@every %dm", cfg.App.WeatherTTLMinutes), weatherSvc.RefreshAll)
	sched.Start()
	defer sched.Stop()

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    "agriplan-api",
		Version:        cfg.App.Version,
		FrontendOrigin: cfg.App.FrontendOrigin,
		DB:             pool,
		Redis:          rdb,
		Projects:       repo,
		Advisor:        advisorSvc,
		Weather:        weatherSvc,
		Geocode:        geo,
		Generator:      gemini,
		Notifications:  agg,
	})

	log.Printf("listening on :%s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
