package router

import (
	"github.com/gin-gonic/gin"

	"lecture-scribe/internal/handler"
	"lecture-scribe/internal/service"
)

func SetupRouter(r *gin.Engine, svc *service.Service) {
	api := r.Group("/api")

	hdl := handler.NewHandler(svc)
	{
		api.POST("/task", hdl.StartTask)
		api.GET("/task", hdl.GetTask)
		api.GET("/history", hdl.GetTaskHistory)
		api.DELETE("/task/:taskId", hdl.DeleteTask)
		api.GET("/presets", hdl.GetPresets)
		api.POST("/file", hdl.UploadFile)
		api.GET("/file/*filepath", hdl.DownloadFile)
		api.HEAD("/file/*filepath", hdl.DownloadFile)
		api.GET("/config", hdl.GetConfig)
		api.POST("/config", hdl.UpdateConfig)
	}
}
