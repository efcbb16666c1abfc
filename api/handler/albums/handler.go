package albums

import (
	svcTrips "github.com/anoixa/tripill/internal/trips"
)

// Handler 相册处理器
type Handler struct {
	svc *svcTrips.Service
}

// NewHandler 创建新的相册处理器
func NewHandler(svc *svcTrips.Service) *Handler {
	return &Handler{svc: svc}
}
