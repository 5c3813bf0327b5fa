package config

import (
	"os"
)

type Config struct {
	ServerAddress string
	StaticDir     string
	SessionDB     string
	SignalingURL  string
	STUNServer    string
	DefaultRoom   string
	MirrorFile    string
}

func Load() *Config {
	return &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", "0.0.0.0:8000"),
		StaticDir:     getEnv("STATIC_DIR", "static"),
		SessionDB:     getEnv("SESSION_DB", "sessions.db"),
		SignalingURL:  getEnv("SIGNALING_URL", "ws://localhost:8000/ws"),
		STUNServer:    getEnv("STUN_SERVER", "stun:stun.l.google.com:19302"),
		DefaultRoom:   getEnv("DEFAULT_ROOM", "default"),
		MirrorFile:    getEnv("MIRROR_FILE", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
