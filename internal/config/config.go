package config

import (
	"sync"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	JWT      JWTConfig
}

var (
	configInstance *Config
	once           sync.Once
)

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	URI string
}

type KafkaConfig struct {
	Brokers       []string
	VoteTopic     string
	ConsumerGroup string
}

type JWTConfig struct {
	Secret         string
	ExpirationTime time.Duration
}

// LoadConfig reads configuration from the environment with sane defaults
func LoadConfig() (*Config, error) {
	once.Do(func() {
		viper.SetDefault("CIVIC_HOST", "0.0.0.0")
		viper.SetDefault("CIVIC_PORT", "8080")
		viper.SetDefault("CIVIC_READ_TIMEOUT", 30*time.Second)
		viper.SetDefault("CIVIC_WRITE_TIMEOUT", 30*time.Second)
		viper.SetDefault("CIVIC_IDLE_TIMEOUT", 60*time.Second)
		viper.SetDefault("CIVIC_JWT_SECRET", "secret")
		viper.SetDefault("CIVIC_JWT_EXPIRE", "24h")
		viper.SetDefault("REDIS_URL", "redis://127.0.0.1:6379/0")
		viper.SetDefault("KAFKA_BROKERS", []string{"localhost:9092"})
		viper.SetDefault("KAFKA_VOTE_TOPIC", "polling.votes")
		viper.SetDefault("KAFKA_CONSUMER_GROUP", "polling-tally-relay")
		viper.SetDefault("POSTGRES_USER", "postgres")
		viper.SetDefault("POSTGRES_PASSWORD", "password")
		viper.SetDefault("POSTGRES_HOST", "localhost")
		viper.SetDefault("POSTGRES_PORT", "5432")
		viper.SetDefault("POSTGRES_DB", "civic")
		viper.SetDefault("POSTGRES_SSLMODE", "disable")
		viper.AutomaticEnv()

		configInstance = &Config{
			Server: ServerConfig{
				Host:         viper.GetString("CIVIC_HOST"),
				Port:         viper.GetString("CIVIC_PORT"),
				ReadTimeout:  viper.GetDuration("CIVIC_READ_TIMEOUT"),
				WriteTimeout: viper.GetDuration("CIVIC_WRITE_TIMEOUT"),
				IdleTimeout:  viper.GetDuration("CIVIC_IDLE_TIMEOUT"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("POSTGRES_HOST"),
				Port:     viper.GetString("POSTGRES_PORT"),
				User:     viper.GetString("POSTGRES_USER"),
				Password: viper.GetString("POSTGRES_PASSWORD"),
				DBName:   viper.GetString("POSTGRES_DB"),
				SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
			},
			Redis: RedisConfig{
				URI: viper.GetString("REDIS_URL"),
			},
			Kafka: KafkaConfig{
				Brokers:       viper.GetStringSlice("KAFKA_BROKERS"),
				VoteTopic:     viper.GetString("KAFKA_VOTE_TOPIC"),
				ConsumerGroup: viper.GetString("KAFKA_CONSUMER_GROUP"),
			},
			JWT: JWTConfig{
				Secret:         viper.GetString("CIVIC_JWT_SECRET"),
				ExpirationTime: viper.GetDuration("CIVIC_JWT_EXPIRE"),
			},
		}
	})
	return configInstance, nil
}
