package main

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Addr           string
	TLSCert        string
	TLSKey         string
	MaxMessageSize int64
	PingInterval   time.Duration
	RateLimitPerIP float64
}

func LoadConfig() *Config {
	return &Config{
		Addr:           envStr("RELAY_ADDR", ":8080"),
		TLSCert:        envStr("RELAY_TLS_CERT", ""),
		TLSKey:         envStr("RELAY_TLS_KEY", ""),
		MaxMessageSize: int64(envInt("RELAY_MAX_MESSAGE_SIZE", 4096)),
		PingInterval:   time.Duration(envInt("RELAY_PING_INTERVAL", 30)) * time.Second,
		RateLimitPerIP: float64(envInt("RELAY_RATE_LIMIT_PER_IP", 100)),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
