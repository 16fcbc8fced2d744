package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"go-tabletop/config"
	"go-tabletop/controller"
	"go-tabletop/middleware"
	"go-tabletop/repository"
	"go-tabletop/router"
	"go-tabletop/service"
	"go-tabletop/utils"
	"go-tabletop/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	configPath := pflag.String("config", "", "path to a YAML config file")
	addr := pflag.String("addr", "", "listen address (overrides config)")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	logger, err := utils.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	code := 0
	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", zap.Error(err))
		code = 1
	}
	_ = logger.Sync()
	os.Exit(code)
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		index service.RoomIndex
		lobby *controller.LobbyController
	)
	if cfg.Redis.Enabled {
		rdb, err := repository.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer rdb.Close()
		roomIndex := repository.NewRoomIndex(rdb, cfg.Redis.KeyPrefix)
		writer := repository.NewIndexWriter(roomIndex, cfg.Redis.IndexBuffer, logger.Named("index"))
		go writer.Run(ctx)
		index = writer
		lobby = controller.NewLobbyController(roomIndex)
		logger.Info("redis room index enabled", zap.String("addr", cfg.Redis.Addr))
	}

	transport := ws.NewTransport(logger.Named("transport"))
	handler := service.NewHandler(transport, index, logger.Named("session"))
	hub := service.NewHub(handler, cfg.Hub.QueueSize, logger.Named("hub"))
	go func() {
		if err := hub.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("hub exited", zap.Error(err))
		}
	}()

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Recovery(logger), middleware.Logger(logger.Named("http")))
	r.Use(cors.New(corsConfig(cfg.Server.AllowOrigins)))

	router.InitRouter(r,
		controller.NewRoomController(hub),
		lobby,
		ws.NewServer(hub, transport, cfg, logger.Named("ws")),
	)

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: r}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Server.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	// Shutdown does not track hijacked connections.
	if n := transport.CloseAll(); n > 0 {
		logger.Info("closed websocket connections", zap.Int("connections", n))
	}
	return err
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}
