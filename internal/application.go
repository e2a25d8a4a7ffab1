package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/checkers-backend/internal/config"
	"github.com/rocketscienceinc/checkers-backend/internal/repository"
	"github.com/rocketscienceinc/checkers-backend/internal/repository/storage"
	"github.com/rocketscienceinc/checkers-backend/internal/room"
	"github.com/rocketscienceinc/checkers-backend/internal/usecase"
	"github.com/rocketscienceinc/checkers-backend/transport/rest"
	"github.com/rocketscienceinc/checkers-backend/transport/socket"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	var snapshotRepo repository.SnapshotRepository
	if conf.Redis.Enabled {
		redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		snapshotRepo = repository.NewSnapshotRepository(redisStorage.Connection, conf.Redis.SnapshotTTL)
		log.Info("Mirroring room snapshots to redis", "addr", conf.Redis.GetRedisAddr())
	}

	roomRepo := repository.NewRoomRepository()
	gameManager := usecase.NewGameManager(logger, roomRepo, snapshotRepo, room.Settings{
		Clock: conf.Game.Clock,
	})

	socketServer := socket.New(logger, gameManager)
	if conf.TLS.Enabled() {
		if err := socketServer.WithTLS(conf.TLS.CertFile, conf.TLS.KeyFile); err != nil {
			return fmt.Errorf("could not configure tls: %w", err)
		}
	}

	// run HTTP server
	httpErrCh := make(chan error, 1)
	if conf.HTTPPort != "" {
		go func() {
			log.Info("Starting HTTP server", "port", conf.HTTPPort)
			if httpErr := rest.Start(ctx, conf.HTTPPort, gameManager); httpErr != nil {
				log.Error("HTTP server error", "error", httpErr)
				httpErrCh <- httpErr
			}
		}()
	}

	// run socket server
	socketErrCh := make(chan error, 1)
	socketDone := make(chan struct{})
	go func() {
		defer close(socketDone)

		log.Info("Starting socket server", "port", conf.SocketPort, "tls", conf.TLS.Enabled())
		if socketErr := socketServer.Start(ctx, conf.SocketPort); socketErr != nil {
			log.Error("Socket server error", "error", socketErr)
			socketErrCh <- socketErr
		}
	}()

	select {
	case err := <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err := <-socketErrCh:
		return fmt.Errorf("socket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		<-socketDone
		return nil
	}
}
