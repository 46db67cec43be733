package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Astemirdum/readinglist-service/config"
	"github.com/Astemirdum/readinglist-service/internal/handler"
	"github.com/Astemirdum/readinglist-service/internal/repository"
	"github.com/Astemirdum/readinglist-service/internal/server"
	authSvc "github.com/Astemirdum/readinglist-service/internal/service/auth"
	"github.com/Astemirdum/readinglist-service/internal/service/books"
	"github.com/Astemirdum/readinglist-service/internal/service/catalog"
	"github.com/Astemirdum/readinglist-service/migrations"
	"github.com/Astemirdum/readinglist-service/pkg/auth"
	"github.com/Astemirdum/readinglist-service/pkg/kafka"
	"github.com/Astemirdum/readinglist-service/pkg/logger"
	"github.com/Astemirdum/readinglist-service/pkg/postgres"
	"go.uber.org/zap"
)

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "readinglist")
	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		log.Fatal("repo", zap.Error(err))
	}

	var enq books.Enqueuer
	if cfg.Kafka.Enabled {
		producer, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			log.Fatal("kafka.NewProducer", zap.Error(err))
		}
		enq = books.NewEnqueuer(producer)
	}

	tokens := auth.NewManager(cfg.Auth.JWTSecret)
	catalogSvc := catalog.NewService(log, cfg.Catalog)
	booksSvc := books.NewService(repo, catalogSvc, enq, log)
	authsvc := authSvc.NewService(repo, tokens, log)

	h := handler.New(authsvc, booksSvc, catalogSvc, tokens, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	db.Close()
	log.Info("Graceful shutdown finished")
}
