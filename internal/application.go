package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/config"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/repository"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/service"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-rooms/transport/rest"
)

const (
	shutdownTimeout = 10 * time.Second
	lookupTimeout   = 5 * time.Second
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	roomRepo, closeStorage, err := openRoomRepository(ctx, logger, conf)
	if err != nil {
		return err
	}
	defer closeStorage()

	roomUseCase := usecase.NewRoomUseCase(logger, roomRepo)

	router := rest.NewRouter(logger, roomUseCase, newVerifier(conf.Auth), rest.RouterOptions{
		AllowedOrigins: conf.CORS.AllowedOrigins,
		ClientConfig:   conf.ClientConfig,
	})
	server := rest.NewServer(logger, conf.HTTPPort, router)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(server.Start)

	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("Application context canceled, shutting down")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		return server.Shutdown(shutdownCtx)
	})

	if err = group.Wait(); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	return nil
}

// openRoomRepository - connects the configured storage and prepares its schema.
func openRoomRepository(ctx context.Context, logger *slog.Logger, conf *config.Config) (repository.RoomRepository, func(), error) {
	log := logger.With("method", "openRoomRepository", "driver", conf.Storage.Driver)

	switch conf.Storage.Driver {
	case config.StorageRedis:
		redisAddrString := conf.Redis.GetRedisAddr()
		if conf.Redis.Host == "" {
			return nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedis(ctx, redisAddrString, conf.Redis.Password, conf.Redis.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewRedisRoomRepository(redisStorage), func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}, nil

	case config.StoragePostgres:
		if err := storage.MigratePostgres(logger, conf.Postgres.DSN); err != nil {
			return nil, nil, fmt.Errorf("could not migrate postgres storage: %w", err)
		}

		pool, err := storage.NewPostgres(ctx, conf.Postgres.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to postgres storage: %w", err)
		}

		return repository.NewPostgresRoomRepository(pool), pool.Close, nil

	case config.StorageSQLite:
		conn, err := storage.NewSQLite(conf.SQLite.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		if err = storage.InitSQLite(ctx, conn); err != nil {
			_ = conn.Close()
			return nil, nil, fmt.Errorf("could not prepare sqlite storage: %w", err)
		}

		return repository.NewSQLiteRoomRepository(conn), func() {
			if err = conn.Close(); err != nil {
				log.Error("could not close sqlite storage", "error", err)
			}
		}, nil

	default:
		log.Warn("rooms are kept in memory and lost on restart")

		return repository.NewMemoryRoomRepository(), func() {}, nil
	}
}

func newVerifier(conf config.Auth) service.Verifier {
	if conf.Provider == config.AuthFirebase {
		return service.NewFirebaseVerifier(conf.FirebaseAPIKey, conf.FirebaseLookupURL, &http.Client{Timeout: lookupTimeout})
	}

	return service.NewAuthService(conf.JWTSecretKey, conf.JWTIssuer)
}
