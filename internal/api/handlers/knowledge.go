package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Harshitk-cp/aurora/internal/domain"
	"github.com/Harshitk-cp/aurora/internal/service"
	"go.uber.org/zap"
)

type KnowledgeHandler struct {
	svc    *service.SourceService
	logger *zap.Logger
}

func NewKnowledgeHandler(svc *service.SourceService, logger *zap.Logger) *KnowledgeHandler {
	return &KnowledgeHandler{svc: svc, logger: logger}
}

type ingestRequest struct {
	URL string `json:"url"`
}

type ingestResponse struct {
	Success bool           `json:"success"`
	Source  *domain.Source `json:"source"`
}

type verifyRequest struct {
	ID       string `json:"id"`
	Verified bool   `json:"verified"`
}

type deleteRequest struct {
	ID string `json:"id"`
}

func (h *KnowledgeHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if !decodeBody(w, r, &req) {
		return
	}

	src, err := h.svc.Ingest(r.Context(), req.URL)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "url is required")
		case errors.Is(err, service.ErrFetchFailed):
			writeError(w, http.StatusBadGateway, err.Error())
		default:
			h.logger.Error("ingest failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to ingest source")
		}
		return
	}

	writeJSON(w, http.StatusCreated, ingestResponse{Success: true, Source: src})
}

func (h *KnowledgeHandler) List(w http.ResponseWriter, r *http.Request) {
	sources, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Error("list sources failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list knowledge")
		return
	}
	writeJSON(w, http.StatusOK, sources)
}

func (h *KnowledgeHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.ID) == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := h.svc.SetVerified(r.Context(), req.ID, req.Verified); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeError(w, http.StatusNotFound, "source not found")
			return
		}
		h.logger.Error("verify source failed", zap.String("source_id", req.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to update source")
		return
	}

	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (h *KnowledgeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.ID) == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := h.svc.Delete(r.Context(), req.ID); err != nil {
		h.logger.Error("delete source failed", zap.String("source_id", req.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to delete source")
		return
	}

	writeJSON(w, http.StatusOK, successResponse{Success: true})
}
