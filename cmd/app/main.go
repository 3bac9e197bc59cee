package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"skybroker/cmd"
	httpin "skybroker/internal/adapters/in/http"
	"skybroker/internal/adapters/out/postgres/labelrepo"
	"skybroker/internal/adapters/out/postgres/manifestrepo"
	"skybroker/internal/adapters/out/postgres/paymentrepo"
	"skybroker/internal/adapters/out/postgres/shipmentrepo"
	"skybroker/internal/adapters/out/postgres/trackingrepo"
)

func main() {
	configs := getConfigs()
	if err := configs.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	gormDB := mustConnectDB(configs)

	ctx := context.Background()
	app, err := cmd.NewCompositionRoot(ctx, configs, gormDB)
	if err != nil {
		log.Fatalf("Error building composition root: %v", err)
	}
	defer app.Close()

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs)
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:      goDotEnvVariable("HTTP_PORT"),
		WebhookAPIKey: goDotEnvVariable("WEBHOOK_API_KEY"),

		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),

		InPostBaseURL:        goDotEnvVariable("INPOST_BASE_URL"),
		InPostToken:          goDotEnvVariable("INPOST_TOKEN"),
		InPostOrganizationID: goDotEnvVariable("INPOST_ORG_ID"),
		InPostTimeout:        durationOrDefault("INPOST_TIMEOUT", 10*time.Second),

		RedisAddr:        goDotEnvVariable("REDIS_ADDR"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RedisTrackingTTL: durationOrDefault("REDIS_TRACKING_TTL", 5*time.Minute),

		KafkaHosts:              goDotEnvVariable("KAFKA_HOSTS"),
		KafkaShipmentEventTopic: goDotEnvVariable("KAFKA_TOPIC"),

		S3LabelBucket: goDotEnvVariable("S3_LABEL_BUCKET"),
	}
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func durationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("Invalid duration in %s: %v", key, err)
	}
	return parsed
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&shipmentrepo.ShipmentDTO{},
		&paymentrepo.PaymentDTO{},
		&labelrepo.LabelDTO{},
		&trackingrepo.TrackingEventDTO{},
		&manifestrepo.ManifestDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, configs cmd.Config) {
	server := httpin.NewServer(
		app.CreateCreateShipmentCommandHandler(),
		app.CreateStartPaymentCommandHandler(),
		app.CreateApplyPaymentOutcomeCommandHandler(),
		app.CreateManifestShipmentsCommandHandler(),
		app.CreateGetShipmentQueryHandler(),
		app.CreateGetLabelQueryHandler(),
		app.CreateGetTrackingQueryHandler(),
		configs.WebhookAPIKey,
	)

	e := echo.New()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
