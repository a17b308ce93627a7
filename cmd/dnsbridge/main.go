package main

import (
	"log/slog"
	"os"

	"github.com/lite-lake/infra-dnsbridge/internal/infrastructure/logger"
	"github.com/lite-lake/infra-dnsbridge/internal/interfaces/cli"
)

func main() {
	logLevel := slog.LevelInfo
	if os.Getenv("DNSBRIDGE_DEBUG") != "" {
		logLevel = slog.LevelDebug
	}

	logFormat := os.Getenv("DNSBRIDGE_LOG_FORMAT")

	logger.Init(&logger.Config{
		Level:     logLevel,
		Format:    logFormat,
		AddSource: os.Getenv("DNSBRIDGE_DEBUG") != "",
	})

	cli.Execute()
}
