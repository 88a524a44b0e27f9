package handlers

import (
	"net/http"

	"github.com/Harshitk-cp/aurora/internal/service"
	"go.uber.org/zap"
)

type MemoryHandler struct {
	facts       *service.FactService
	progression *service.ProgressionService
	logger      *zap.Logger
}

func NewMemoryHandler(fs *service.FactService, ps *service.ProgressionService, logger *zap.Logger) *MemoryHandler {
	return &MemoryHandler{facts: fs, progression: ps, logger: logger}
}

type factsResponse struct {
	Facts []string `json:"facts"`
	Count int      `json:"count"`
}

func (h *MemoryHandler) Facts(w http.ResponseWriter, r *http.Request) {
	facts, err := h.facts.List(r.Context())
	if err != nil {
		h.logger.Error("list facts failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load facts")
		return
	}
	writeJSON(w, http.StatusOK, factsResponse{Facts: facts, Count: len(facts)})
}

func (h *MemoryHandler) Progression(w http.ResponseWriter, r *http.Request) {
	snap, err := h.progression.Snapshot(r.Context())
	if err != nil {
		h.logger.Error("load progression failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load progression")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}
