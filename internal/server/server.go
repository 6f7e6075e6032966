package server

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lecture-scribe/config"
	"lecture-scribe/internal/queue"
	"lecture-scribe/internal/router"
	"lecture-scribe/internal/service"
	"lecture-scribe/internal/taskrunner"
	"lecture-scribe/log"
)

// StartBackend wires the service to its background executor and runs the
// HTTP API. It blocks until the listener stops.
func StartBackend() error {
	svc := service.NewService()

	if config.Conf.Queue.Enabled {
		q := queue.NewQueue(queue.Config{
			RedisAddr:     config.Conf.Queue.RedisAddr,
			RedisPassword: config.Conf.Queue.RedisPassword,
			RedisDB:       config.Conf.Queue.RedisDB,
			Concurrency:   config.Conf.Queue.Concurrency,
		})
		svc.Enqueuer = q
		defer q.Close()

		go func() {
			if err := queue.StartWorker(q, svc); err != nil {
				log.GetLogger().Error("queue worker stopped", zap.Error(err))
			}
		}()
		log.GetLogger().Info("using Redis-backed task queue",
			zap.String("redis_addr", config.Conf.Queue.RedisAddr))
	} else {
		runner := taskrunner.New(svc, taskrunner.DefaultConfig())
		svc.Enqueuer = runner
		defer runner.Close()
		log.GetLogger().Info("using in-process task runner")
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.Default()
	router.SetupRouter(engine, svc)

	addr := fmt.Sprintf("%s:%d", config.Conf.Server.Host, config.Conf.Server.Port)
	log.GetLogger().Info("API listening", zap.String("addr", addr))
	return engine.Run(addr)
}
