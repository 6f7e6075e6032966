package main

import (
	"os"

	"go.uber.org/zap"

	"lecture-scribe/config"
	"lecture-scribe/internal/deps"
	"lecture-scribe/internal/server"
	"lecture-scribe/internal/storage"
	"lecture-scribe/log"
)

func main() {
	log.InitLogger()
	defer log.GetLogger().Sync()

	created, err := config.LoadOrCreateConfig()
	if err != nil {
		log.GetLogger().Error("failed to load config", zap.Error(err))
		return
	}
	if created {
		log.GetLogger().Info("default config generated, edit config/config.toml to set API keys")
	}

	if err := deps.CheckDependency(); err != nil {
		log.GetLogger().Error("dependency check failed", zap.Error(err))
		os.Exit(1)
	}

	storage.InitDB()

	// Mark any stale "processing" tasks as "failed" (zombie cleanup)
	if count, err := storage.MarkStaleTasks(); err != nil {
		log.GetLogger().Warn("failed to mark stale tasks", zap.Error(err))
	} else if count > 0 {
		log.GetLogger().Info("marked stale tasks as failed", zap.Int64("count", count))
	}

	if err := server.StartBackend(); err != nil {
		log.GetLogger().Error("backend failed to start", zap.Error(err))
		os.Exit(1)
	}
}
