package config

import (
	"os"
	"strconv"
)

type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	Queue    QueueConfig
	Session  SessionConfig
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
	Host     string
	Port     string
	Password string
	DB       int
}

type QueueConfig struct {
	// ConsumerID 留空時由 queue 自行產生
	ConsumerID string
	BufferSize int
}

type SessionConfig struct {
	// TTLSeconds 購票流程 session 的存活秒數
	TTLSeconds int
}

var AppConfig *Config

func LoadConfig() *Config {
	AppConfig = &Config{
		Database: GetDatabaseConfig(),
		Redis:    GetRedisConfig(),
		Queue:    GetQueueConfig(),
		Session:  GetSessionConfig(),
	}

	return AppConfig
}

func LoadTestConfig() *Config {
	testConfig := &DatabaseConfig{
		Host:     "localhost",
		Port:     "5433", // 測試 DB 用 5433 port
		User:     "postgres",
		Password: "postgres",
		DBName:   "test_db",
		SSLMode:  "disable",
	}

	testRedisConfig := RedisConfig{
		Host:     "localhost",
		Port:     "6380", // 測試 Redis 用 6380 port
		Password: "",
		DB:       1,
	}

	return &Config{
		Database: *testConfig,
		Redis:    testRedisConfig,
		Queue:    QueueConfig{BufferSize: 16},
		Session:  SessionConfig{TTLSeconds: 600},
	}
}

func GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "postgres"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}
}

func GetRedisConfig() RedisConfig {
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		panic(err)
	}

	return RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
	}
}

func GetQueueConfig() QueueConfig {
	size, err := strconv.Atoi(getEnv("QUEUE_BUFFER_SIZE", "128"))
	if err != nil {
		panic(err)
	}

	return QueueConfig{
		ConsumerID: getEnv("QUEUE_CONSUMER_ID", ""),
		BufferSize: size,
	}
}

func GetSessionConfig() SessionConfig {
	ttl, err := strconv.Atoi(getEnv("SESSION_TTL_SECONDS", "1800"))
	if err != nil {
		panic(err)
	}

	return SessionConfig{TTLSeconds: ttl}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
