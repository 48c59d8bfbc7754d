package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"customizer/internal/infra"
	"customizer/internal/sqlinline"
	"customizer/internal/storage"
)

// The worker sweeps expired customization sessions: sessions past their
// deadline are marked expired and their uploaded images removed from
// storage along with the upload and field state rows.
func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv).With().Str("component", "worker").Logger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	store, err := storage.NewFileStore(cfg.StorageBasePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init upload storage")
	}

	runner := infra.NewSQLRunner(dbpool, logger)
	sweeper := &sessionSweeper{sql: runner, store: store, logger: logger}

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		<-stop
		cancel()
	}()

	logger.Info().Dur("interval", cfg.WorkerPollInterval).Msg("session sweeper started")
	ticker := time.NewTicker(cfg.WorkerPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("session sweeper stopped")
			return
		case <-ticker.C:
			if err := sweeper.sweep(ctx); err != nil && ctx.Err() == nil {
				logger.Error().Err(err).Msg("sweep failed")
			}
		}
	}
}

type sessionSweeper struct {
	sql    infra.SQLExecutor
	store  *storage.FileStore
	logger infra.Logger
}

func (s *sessionSweeper) sweep(ctx context.Context) error {
	rows, err := s.sql.Query(ctx, sqlinline.QExpireStaleSessions)
	if err != nil {
		return err
	}
	var expired []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		expired = append(expired, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}
	if len(expired) == 0 {
		return nil
	}

	for _, sessionID := range expired {
		if err := s.cleanup(ctx, sessionID); err != nil {
			s.logger.Error().Err(err).Str("session_id", sessionID).Msg("cleanup failed")
			continue
		}
	}
	s.logger.Info().Int("sessions", len(expired)).Msg("expired sessions swept")
	return nil
}

func (s *sessionSweeper) cleanup(ctx context.Context, sessionID string) error {
	rows, err := s.sql.Query(ctx, sqlinline.QListUploadsForExpiredSession, sessionID)
	if err != nil {
		return err
	}
	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			rows.Close()
			return err
		}
		keys = append(keys, key)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, key := range keys {
		if err := s.store.Remove(ctx, key); err != nil {
			s.logger.Warn().Err(err).Str("storage_key", key).Msg("failed to remove upload file")
		}
	}
	// Session directory may hold replaced uploads no row points at anymore.
	if err := s.store.RemoveAll(ctx, "sessions/"+sessionID); err != nil {
		s.logger.Warn().Err(err).Str("session_id", sessionID).Msg("failed to remove session directory")
	}

	if _, err := s.sql.Exec(ctx, sqlinline.QDeleteUploadsForSession, sessionID); err != nil {
		return err
	}
	if _, err := s.sql.Exec(ctx, sqlinline.QDeleteFieldStatesForSession, sessionID); err != nil {
		return err
	}
	return nil
}
