package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/notesnap/notesnap-api/config"
	"github.com/notesnap/notesnap-api/gemini"
	"github.com/notesnap/notesnap-api/handlers"
	"github.com/notesnap/notesnap-api/middleware"
	"github.com/notesnap/notesnap-api/study"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

func init() {
	// A missing .env file is fine; deployed environments provide the
	// variables directly.
	_ = godotenv.Load()
}

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	db, err := config.Connect(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("database connection failed")
	}

	handler := &handlers.DBHandler{
		DB:       db,
		AI:       gemini.NewClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiTimeout),
		Sessions: study.NewManager(),
		Cfg:      cfg,
		Log:      logger,
	}
	mux := handlers.NewRouter(handler, middleware.RequireSession(db, cfg.JWTSecret))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(mux)

	serverAddr := "0.0.0.0:" + cfg.Port
	logger.Info().Str("addr", serverAddr).Msg("listening")
	err = http.ListenAndServe(serverAddr, middleware.RequestLogger(logger)(corsHandler))
	logger.Fatal().Err(err).Msg("server stopped")
}
