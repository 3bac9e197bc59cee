package cmd

import (
	"context"
	"log/slog"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	goredis "github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"skybroker/internal/adapters/out/carriers"
	"skybroker/internal/adapters/out/inpost"
	"skybroker/internal/adapters/out/kafka"
	"skybroker/internal/adapters/out/postgres"
	"skybroker/internal/adapters/out/redis"
	"skybroker/internal/adapters/out/s3"
	"skybroker/internal/core/application/usecases/commands"
	"skybroker/internal/core/application/usecases/queries"
	"skybroker/internal/core/domain/model/shipment"
	"skybroker/internal/core/ports"
	"skybroker/internal/jobs"
)

// CompositionRoot wires adapters to use cases. It owns every shared
// dependency: the database handle, the carrier registry, the event
// publisher, the tracking cache and the label store.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	registry   *carriers.Registry
	publisher  *kafka.Publisher
	cache      *redis.TrackingCache
	store      *s3.LabelStore
	logger     *slog.Logger
}

func NewCompositionRoot(ctx context.Context, configs Config, gormDB *gorm.DB) (CompositionRoot, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	inpostClient, err := inpost.NewClient(inpost.ClientConfig{
		BaseURL:        configs.InPostBaseURL,
		Token:          configs.InPostToken,
		OrganizationID: configs.InPostOrganizationID,
		Timeout:        configs.InPostTimeout,
	})
	if err != nil {
		return CompositionRoot{}, err
	}

	registry := carriers.NewRegistry()
	registry.Register(shipment.CarrierInPost, inpost.NewGateway(inpostClient))

	publisher, err := kafka.NewPublisher(configs.KafkaBrokers(), configs.KafkaShipmentEventTopic)
	if err != nil {
		return CompositionRoot{}, err
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return CompositionRoot{}, err
	}
	store, err := s3.NewLabelStore(awss3.NewFromConfig(awsCfg), configs.S3LabelBucket)
	if err != nil {
		return CompositionRoot{}, err
	}

	redisClient := goredis.NewClient(&goredis.Options{
		Addr:     configs.RedisAddr,
		Password: configs.RedisPassword,
	})

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		registry:   registry,
		publisher:  publisher,
		cache:      redis.NewTrackingCache(redisClient, configs.RedisTrackingTTL),
		store:      store,
		logger:     logger,
	}, nil
}

// Close releases connections held by shared adapters.
func (c *CompositionRoot) Close() error {
	return c.publisher.Close()
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) CreateLinkCarrierCommandHandler() commands.LinkCarrierCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewLinkCarrierCommandHandler(f, c.registry, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateShipmentCommandHandler(f, c.CreateLinkCarrierCommandHandler(), c.logger)
}

func (c *CompositionRoot) CreateStartPaymentCommandHandler() commands.StartPaymentCommandHandler {
	var f commands.PaymentUoWFactory = FuncPaymentUoWFactory(func() commands.PaymentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewStartPaymentCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateApplyPaymentOutcomeCommandHandler() commands.ApplyPaymentOutcomeCommandHandler {
	var f commands.PaymentUoWFactory = FuncPaymentUoWFactory(func() commands.PaymentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewApplyPaymentOutcomeCommandHandler(f, c.CreateLabelDispatcher(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateFetchLabelCommandHandler() commands.FetchLabelCommandHandler {
	var f commands.LabelUoWFactory = FuncLabelUoWFactory(func() commands.LabelUoW {
		return c.uowFactory.Create()
	})
	return commands.NewFetchLabelCommandHandler(f, c.registry, c.store, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateRefreshTrackingCommandHandler() commands.RefreshTrackingCommandHandler {
	var f commands.TrackingUoWFactory = FuncTrackingUoWFactory(func() commands.TrackingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRefreshTrackingCommandHandler(f, c.registry, c.cache, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateManifestShipmentsCommandHandler() commands.ManifestShipmentsCommandHandler {
	var f commands.ManifestUoWFactory = FuncManifestUoWFactory(func() commands.ManifestUoW {
		return c.uowFactory.Create()
	})
	return commands.NewManifestShipmentsCommandHandler(f, c.registry, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateGetShipmentQueryHandler() queries.GetShipmentQueryHandler {
	return queries.NewGetShipmentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetLabelQueryHandler() queries.GetLabelQueryHandler {
	return queries.NewGetLabelQueryHandler(c.gormDB, c.store)
}

func (c *CompositionRoot) CreateGetTrackingQueryHandler() queries.GetTrackingQueryHandler {
	return queries.NewGetTrackingQueryHandler(c.gormDB, c.cache, c.logger)
}

func (c *CompositionRoot) CreateLabelDispatcher() ports.LabelDispatcher {
	return jobs.NewSyncLabelDispatcher(c.CreateFetchLabelCommandHandler(), c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return jobs.NewJobManager(f, c.CreateLabelDispatcher(),
		c.CreateRefreshTrackingCommandHandler(), c.logger)
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncPaymentUoWFactory func() commands.PaymentUoW

func (f FuncPaymentUoWFactory) Create() commands.PaymentUoW {
	return f()
}

type FuncLabelUoWFactory func() commands.LabelUoW

func (f FuncLabelUoWFactory) Create() commands.LabelUoW {
	return f()
}

type FuncManifestUoWFactory func() commands.ManifestUoW

func (f FuncManifestUoWFactory) Create() commands.ManifestUoW {
	return f()
}

type FuncTrackingUoWFactory func() commands.TrackingUoW

func (f FuncTrackingUoWFactory) Create() commands.TrackingUoW {
	return f()
}
