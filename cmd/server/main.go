package main

import (
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/iceymoss/echo-news/internal/conf"
	"github.com/iceymoss/echo-news/internal/server"
	"github.com/iceymoss/echo-news/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Warn("⚠️ .env não encontrado, usando variáveis do ambiente", zap.Error(err))
	}

	cfg, err := conf.LoadConfig("configs/config.yaml")
	if err != nil {
		logger.Fatal("❌ LoadConfig error", zap.Error(err))
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		logger.Fatal("❌ Server init error", zap.Error(err))
	}

	port := cfg.Server.Port
	if port == "" {
		port = ":8080"
	}

	log.Printf("🌐 Echo rodando em http://localhost%s", port)
	if err := srv.Run(port); err != nil {
		logger.Fatal("❌ Server error", zap.Error(err))
	}
}
