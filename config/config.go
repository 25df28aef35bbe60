package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

const (
	DatastoreDriverKV       = "kv"
	DatastoreDriverPostgres = "postgres"

	KVDriverMemory = "memory"
	KVDriverSQLite = "sqlite"
	KVDriverRedis  = "redis"

	StorageDriverKV = "kv"
	StorageDriverS3 = "s3"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"`
		LogLevel string `envconfig:"LOG_LEVEL"`
		Port     string `envconfig:"PORT"      default:"8080"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME" default:"folio"`
		Timezone string `envconfig:"TIMEZONE"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS"`
		} `envconfig:"RATE_LIMITER"`
		APIKey string `envconfig:"API_KEY"`
		Admin  struct {
			Email    string `envconfig:"EMAIL"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"ADMIN"`
		Reviews struct {
			RequireModeration bool `envconfig:"REQUIRE_MODERATION"`
			HomeLimit         int  `envconfig:"HOME_LIMIT"         default:"6"`
		} `envconfig:"REVIEWS"`
		Invites struct {
			TTLHours int `envconfig:"TTL_HOURS" default:"168"`
		} `envconfig:"INVITES"`
		AboutImages struct {
			PublicLimit int `envconfig:"PUBLIC_LIMIT" default:"3"`
		} `envconfig:"ABOUT_IMAGES"`
	} `envconfig:"APP"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL" default:"300"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret     string `envconfig:"ACCESS_SECRET"`
		RefreshSecret    string `envconfig:"REFRESH_SECRET"`
		AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN"  default:"60"`
		RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN" default:"10080"`
	} `envconfig:"JWT"`

	Datastore struct {
		Driver string `envconfig:"DRIVER" default:"kv"`
		KV     struct {
			Driver     string `envconfig:"DRIVER"      default:"memory"`
			Namespace  string `envconfig:"NAMESPACE"   default:"folio"`
			SQLitePath string `envconfig:"SQLITE_PATH" default:"folio.db"`
		} `envconfig:"KV"`
	} `envconfig:"DATASTORE"`

	DB struct {
		Postgres struct {
			MaxRetry       int              `envconfig:"MAX_RETRY"`
			RetryWaitTime  int              `envconfig:"RETRY_WAIT_TIME"`
			MigrationTable string           `envconfig:"MIGRATION_TABLE"`
			AutoMigrate    bool             `envconfig:"AUTO_MIGRATE"`
			Prefix         string           `envconfig:"PREFIX"`
			Read           PostgresEndpoint `envconfig:"READ"`
			Write          PostgresEndpoint `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Storage struct {
		Driver         string `envconfig:"DRIVER"           default:"kv"`
		MaxObjectBytes int64  `envconfig:"MAX_OBJECT_BYTES" default:"5242880"`
		QuotaBytes     int64  `envconfig:"QUOTA_BYTES"      default:"52428800"`
	} `envconfig:"STORAGE"`

	External struct {
		Otel struct {
			Endpoint    string  `envconfig:"ENDPOINT"`
			Insecure    bool    `envconfig:"INSECURE"     default:"true"`
			SampleRatio float64 `envconfig:"SAMPLE_RATIO" default:"1"`
		} `envconfig:"OTEL"`
		S3 struct {
			APIEndpoint     string `envconfig:"API_ENDPOINT"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
			BucketName      string `envconfig:"BUCKET_NAME"`
			PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
		} `envconfig:"S3"`
		Kafka struct {
			Brokers       []string `envconfig:"BROKERS"`
			ConsumerGroup string   `envconfig:"CONSUMER_GROUP" default:"folio"`
			SASL          struct {
				Username string `envconfig:"USERNAME"`
				Password string `envconfig:"PASSWORD"`
			} `envconfig:"SASL"`
			Topics struct {
				Contact string `envconfig:"CONTACT" default:"folio.contact"`
				Reviews string `envconfig:"REVIEWS" default:"folio.reviews"`
			} `envconfig:"TOPICS"`
		} `envconfig:"KAFKA"`
	} `envconfig:"EXTERNAL"`
}

// PostgresEndpoint is one side of the read/write connection pair.
type PostgresEndpoint struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	Timezone string `envconfig:"TIMEZONE"`
	SSLMode  string `envconfig:"SSL_MODE"`
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

func Init() error {
	var err error

	once.Do(func() {
		err = godotenv.Load(".env")
		if err != nil {
			log.Warn().Err(err).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Successfully loaded variables from .env file into environment")
		}

		err = envconfig.Process("", &conf)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to process environment variables")
		}

		initialized = true

		log.Info().
			Str("datastore", conf.Datastore.Driver).
			Str("storage", conf.Storage.Driver).
			Msg("Service configuration initialized successfully")
	})

	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	return nil
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize configuration")
		}
	}

	return &conf
}

// UsesPostgres reports whether rows live in Postgres rather than the key-value store.
func (c *Config) UsesPostgres() bool {
	return c.Datastore.Driver == DatastoreDriverPostgres
}

// UsesRedis reports whether a redis connection is configured for cache or kv storage.
func (c *Config) UsesRedis() bool {
	return c.Cache.Redis.Primary.Host != "" || c.Datastore.KV.Driver == KVDriverRedis
}
