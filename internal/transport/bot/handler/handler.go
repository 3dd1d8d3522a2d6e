package handler

import (
	"deal_analyzer/internal/worker"
	"deal_analyzer/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type Scheduler interface {
	RunNow() error
	Status() worker.Status
}

type Handler struct {
	scheduler Scheduler
}

func New(scheduler Scheduler) *Handler {
	return &Handler{
		scheduler: scheduler,
	}
}
