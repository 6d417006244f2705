// Package config 從環境變數（及可選的 .env）載入服務設定
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config 為啟動時一次建立、之後唯讀的設定物件
type Config struct {
	DatabaseURL    string
	RedisAddr      string
	RedisDB        int
	RedisPassword  string
	JWTSecret      string
	ListenAddr     string
	WorkerCount    int
	LogLevel       string
	Debug          bool
	AllowedOrigins []string
}

var loadEnvFile = func() { _ = godotenv.Load() }

// Load 讀取環境變數並回傳 Config；必要欄位缺少時回傳錯誤
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		ListenAddr:     getEnv("LISTEN_ADDR", ":8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Debug:          os.Getenv("APP_DEBUG") == "1",
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("環境變數 DATABASE_URL 未設定")
	}
	if cfg.RedisAddr == "" {
		return nil, fmt.Errorf("環境變數 REDIS_ADDR 未設定")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("環境變數 JWT_SECRET 未設定")
	}

	redisDB, err := getEnvAsInt("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("無效的 REDIS_DB: %w", err)
	}
	cfg.RedisDB = redisDB

	workerCount, err := getEnvAsInt("WORKER_COUNT", 1)
	if err != nil || workerCount <= 0 {
		return nil, fmt.Errorf("無效的 WORKER_COUNT: %q", os.Getenv("WORKER_COUNT"))
	}
	cfg.WorkerCount = workerCount

	return cfg, nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvAsInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
