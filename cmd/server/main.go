package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dfryer1193/blogfeed/blog/application"
	"github.com/dfryer1193/blogfeed/blog/persistence"
	"github.com/dfryer1193/blogfeed/blog/summary"
	"github.com/dfryer1193/blogfeed/blog/view"
	"github.com/dfryer1193/blogfeed/internal/rest"
	"github.com/dfryer1193/blogfeed/shared/config"
	"github.com/dfryer1193/blogfeed/shared/db/sqlite"
	"github.com/dfryer1193/blogfeed/shared/logging"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := logging.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatal().Err(err).Msg("Failed to configure logging")
	}

	database := sqlite.NewSQLiteDB(sqlite.NewSQLiteConfig())
	if err := database.Connect(); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	dbConn := database.DB()
	feedService := application.NewFeedService(
		persistence.NewPostRepository(dbConn),
		persistence.NewLikeRepository(dbConn),
		application.NewMarkdownRenderer(),
		dbConn,
	)

	summaries, err := summary.NewCache(summary.NewExtractor(summary.HTMLParser{}), cfg.SummaryCacheSize)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create summary cache")
	}

	renderer, err := view.NewRenderer(summaries)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load templates")
	}

	gin.SetMode(gin.ReleaseMode)
	r := rest.NewRouter(rest.NewHandlers(feedService, renderer, cfg.FeedPageSize))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to shutdown server")
	}

	log.Info().Msg("Server stopped")
}
