package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lecture-scribe/config"
	"lecture-scribe/internal/response"
	"lecture-scribe/log"
	apperrors "lecture-scribe/pkg/errors"
)

func (h *Handler) GetConfig(c *gin.Context) {
	response.Success(c, config.Conf)
}

func (h *Handler) UpdateConfig(c *gin.Context) {
	var newConf config.Config
	if err := c.ShouldBindJSON(&newConf); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "Invalid parameters", err))
		return
	}

	config.Conf = newConf
	if err := config.SaveConfig(); err != nil {
		log.GetLogger().Error("UpdateConfig SaveConfig err", zap.Error(err))
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeFileWriteError, "Failed to save config", err))
		return
	}

	configUpdated = true
	response.Success(c, nil)
}
