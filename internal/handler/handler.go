package handler

import (
	"lecture-scribe/internal/service"
)

type Handler struct {
	Service *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{Service: svc}
}

// configUpdated marks that the config changed and the service needs to be
// rebuilt (e.g. a different transcription provider) before the next task.
var configUpdated bool
