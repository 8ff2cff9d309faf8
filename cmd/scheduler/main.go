package main

import (
	"examsched/internal/reservations/events"
	"examsched/internal/reservations/handler"
	"examsched/internal/reservations/repository"
	"examsched/internal/reservations/service"
	"examsched/internal/reservations/validator"
	"examsched/internal/venues"
	"examsched/pkg/app"
	"examsched/pkg/config"
	"examsched/pkg/kafka"
	kafka_config "examsched/pkg/kafka/config"
)

const ServiceName = "scheduler"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Scheduler service")
	reservationService, catalog := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewReservationHandler(reservationService, catalog, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) (service.ReservationService, *venues.Catalog) {
	catalog := venues.NewCatalog(cfg.VenueCatalog)
	reservationValidator := validator.NewReservationValidator(cfg.Log)
	reservationRepo := repository.NewMongoReservationRepository(cfg)
	publisher := initPublisher(cfg)

	reservationService := service.NewReservationService(
		reservationRepo,
		reservationValidator,
		catalog,
		publisher,
		cfg,
	)

	cfg.Log.Info("Scheduler service initialized",
		"database", cfg.MongoDatabaseName,
		"venues", catalog.Len(),
	)
	return reservationService, catalog
}

func initPublisher(cfg *config.Config) *events.Publisher {
	kafkaCfg := kafka_config.Load()
	if !kafkaCfg.Enabled {
		cfg.Log.Info("Kafka events disabled, reservation events will not be published")
		return events.NewPublisher(nil, cfg.Log, ServiceName)
	}

	producer, err := kafka.NewProducer(kafkaCfg, kafkaCfg.Topic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	cfg.Log.Info("Kafka events enabled",
		"topic", kafkaCfg.Topic,
		"brokers", kafkaCfg.Brokers,
	)
	return events.NewPublisher(producer, cfg.Log, ServiceName)
}
