package cmd

import (
	"errors"
	"strings"
	"time"

	"skybroker/internal/pkg/errs"
)

// Config carries every setting the application reads from the environment.
type Config struct {
	HTTPPort      string
	WebhookAPIKey string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	InPostBaseURL        string
	InPostToken          string
	InPostOrganizationID string
	InPostTimeout        time.Duration

	RedisAddr        string
	RedisPassword    string
	RedisTrackingTTL time.Duration

	KafkaHosts              string
	KafkaShipmentEventTopic string

	S3LabelBucket string
}

// Validate reports every missing required setting at once.
func (c Config) Validate() error {
	var failures []error

	required := []struct {
		name  string
		value string
	}{
		{"HTTP_PORT", c.HTTPPort},
		{"WEBHOOK_API_KEY", c.WebhookAPIKey},
		{"DB_HOST", c.DBHost},
		{"DB_PORT", c.DBPort},
		{"DB_USER", c.DBUser},
		{"DB_PASSWORD", c.DBPassword},
		{"DB_NAME", c.DBName},
		{"DB_SSLMODE", c.DBSslMode},
		{"INPOST_BASE_URL", c.InPostBaseURL},
		{"INPOST_TOKEN", c.InPostToken},
		{"INPOST_ORG_ID", c.InPostOrganizationID},
		{"REDIS_ADDR", c.RedisAddr},
		{"KAFKA_HOSTS", c.KafkaHosts},
		{"KAFKA_TOPIC", c.KafkaShipmentEventTopic},
		{"S3_LABEL_BUCKET", c.S3LabelBucket},
	}
	for _, setting := range required {
		if setting.value == "" {
			failures = append(failures, errs.NewConfigurationError(setting.name))
		}
	}

	return errors.Join(failures...)
}

// KafkaBrokers splits the comma separated KAFKA_HOSTS value.
func (c Config) KafkaBrokers() []string {
	hosts := strings.Split(c.KafkaHosts, ",")
	brokers := make([]string, 0, len(hosts))
	for _, host := range hosts {
		if trimmed := strings.TrimSpace(host); trimmed != "" {
			brokers = append(brokers, trimmed)
		}
	}
	return brokers
}
