package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"matzip_radar/internal/adapters/gemini"
	server "matzip_radar/internal/adapters/http_server"
	"matzip_radar/internal/adapters/observability"
	"matzip_radar/internal/adapters/places"
	redisad "matzip_radar/internal/adapters/redis"
	"matzip_radar/internal/app"
	"matzip_radar/internal/shared"
	mysqlrepo "matzip_radar/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db (user accounts only; recommendation data is never persisted)
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	users := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	placeClient := places.New(cfg.PlacesBase, cfg.PlacesKey, cfg.PageDelay, 5)
	llm := gemini.New(cfg.GeminiBase, cfg.GeminiKey, 5)

	rec := app.NewRecommendService(placeClient, llm, llm, places.MapAmenities, app.RecommendOptions{
		PlaceCap:     cfg.PlaceCap,
		SimThreshold: cfg.SimThreshold,
		Cache:        cache,
		CacheTTL:     cfg.CacheTTL,
	})
	auth := app.NewAuthService(users, cfg.JWTSecret)

	// http
	srv := server.New(cfg.CORSOrigins, cfg.MaxInflight)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Rec: rec, Auth: auth})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
