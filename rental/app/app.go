package app

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Astemirdum/rental-service/pkg/kafka"
	"github.com/Astemirdum/rental-service/pkg/logger"
	"github.com/Astemirdum/rental-service/pkg/postgres"
	"github.com/Astemirdum/rental-service/rental/config"
	"github.com/Astemirdum/rental-service/rental/internal/charge"
	"github.com/Astemirdum/rental-service/rental/internal/client"
	"github.com/Astemirdum/rental-service/rental/internal/handler"
	"github.com/Astemirdum/rental-service/rental/internal/notify"
	"github.com/Astemirdum/rental-service/rental/internal/outbox"
	"github.com/Astemirdum/rental-service/rental/internal/repository"
	"github.com/Astemirdum/rental-service/rental/internal/server"
	"github.com/Astemirdum/rental-service/rental/internal/service"
	"github.com/Astemirdum/rental-service/rental/migrations"
)

func Run(cfg *config.Config) error {
	log := logger.NewLogger(cfg.Log, "rental")
	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		return fmt.Errorf("db init %v", err)
	}
	defer db.Close()
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		return fmt.Errorf("repo rentals %v", err)
	}

	producer, err := kafka.NewProducer(cfg.Kafka)
	if err != nil {
		return fmt.Errorf("kafka.NewProducer %v", err)
	}
	defer producer.Close()
	consumerGroup, err := kafka.NewConsumer(cfg.Kafka, kafka.ActivationConsumerGroup)
	if err != nil {
		return fmt.Errorf("kafka.NewConsumer %v", err)
	}

	var (
		reservations = client.NewReservation(log, cfg.Reservation, cfg.Client)
		users        = client.NewUser(log, cfg.User, cfg.Client)
		vehicles     = client.NewVehicle(log, cfg.Vehicle, cfg.Client)
		contracts    = client.NewContract(log, cfg.Contract, cfg.Client)
	)
	svc := service.NewService(repo, service.Gateways{
		Reservation: reservations,
		User:        users,
		Vehicle:     vehicles,
	}, charge.NewCalculator(cfg.Charge), log)

	dispatcher := outbox.NewDispatcher(repo,
		outbox.Routes(contracts, vehicles, reservations, notify.NewPublisher(producer, log)),
		cfg.Outbox, log)
	if err := dispatcher.Start(); err != nil {
		return fmt.Errorf("outbox start %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return kafka.Consume(gCtx, consumerGroup, handler.NewConsumer(svc.Activate, log), log, kafka.ActivationTopic)
	})

	h := handler.New(svc, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	g.Go(func() error {
		return srv.Run()
	})

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	select {
	case termSig := <-sig:
		log.Debug("Graceful shutdown", zap.Any("signal", termSig))
	case <-gCtx.Done():
		log.Error("component stopped", zap.Error(context.Cause(gCtx)))
	}

	closeCtx, closeCancel := context.WithTimeout(context.Background(), time.Second*5)
	defer closeCancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.Error("srv.Stop", zap.Error(err))
	}
	dispatcher.Stop(closeCtx)
	cancel()
	if err = consumerGroup.Close(); err != nil {
		log.Error("consumerGroup.Close", zap.Error(err))
	}
	if err = g.Wait(); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
	log.Info("Graceful shutdown finished")
	return nil
}
