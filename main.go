package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"grocy-label-server/internal/labels"
	"grocy-label-server/internal/platform/config"
	"grocy-label-server/internal/platform/db"
	"grocy-label-server/internal/platform/escpos"
	"grocy-label-server/internal/platform/logger"
)

func main() {
	cfgPath := os.Getenv("CONFIG_FILE")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	log.Info("starting",
		zap.String("mode", cfg.Server.Mode),
		zap.String("printer", cfg.Printer.Addr()),
		zap.Int("label_width", cfg.Label.WidthPx),
		zap.String("language", cfg.Label.Language),
	)

	var store *labels.Store
	if cfg.Database.Enabled {
		conn, err := db.Connect(cfg.Database)
		if err != nil {
			log.Fatal("print history DB unavailable", zap.Error(err))
		}
		defer conn.Close()
		store = labels.NewStore(conn)
		log.Info("print history enabled", zap.String("db", cfg.Database.DBName))
	}

	svc, err := labels.NewService(log, cfg, networkDriver{}, store)
	if err != nil {
		log.Fatal("service init failed", zap.Error(err))
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	_ = r.SetTrustedProxies(nil)

	if cfg.Server.Mode == "dev" {
		// CORS only matters when a browser UI is served from another origin
		r.Use(cors.New(cors.Config{
			AllowOrigins:  []string{"http://localhost:3000"},
			AllowHeaders:  []string{"Origin", "Content-Type"},
			ExposeHeaders: []string{"Content-Length"},
			AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		}))
	}

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	labels.RegisterRoutes(r, svc)

	srv := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: r,
	}

	go func() {
		log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Info("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("shutdown failed", zap.Error(err))
	}
}

// networkDriver adapts the ESC/POS client to the dispatcher's interface.
type networkDriver struct{}

func (networkDriver) Open(host string, port int) (labels.Connection, error) {
	return escpos.Dial(fmt.Sprintf("%s:%d", host, port))
}
