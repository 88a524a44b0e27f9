package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Harshitk-cp/aurora/internal/domain"
	"github.com/Harshitk-cp/aurora/internal/service"
)

type ChatHandler struct {
	svc *service.ChatService
}

func NewChatHandler(svc *service.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// flexInt accepts both 3 and "3"; browser range inputs send strings.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("invalid integer %q", s)
		}
		*f = flexInt(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}

type chatRequest struct {
	Message          string           `json:"message"`
	History          []domain.Message `json:"history"`
	ImageURL         string           `json:"image_url"`
	Model            string           `json:"model"`
	ReasoningEnabled bool             `json:"reasoningEnabled"`
	QuantumMode      bool             `json:"quantumMode"`
	CreativeMode     bool             `json:"creativeMode"`
	SimulationDepth  flexInt          `json:"simulationDepth"`
	Tone             string           `json:"tone"`
	SystemPrompt     string           `json:"systemPrompt"`
	Temperature      *float64         `json:"temperature"`
}

func (req chatRequest) toServiceRequest() service.ChatRequest {
	return service.ChatRequest{
		Message:  req.Message,
		ImageURL: req.ImageURL,
		History:  req.History,
		Options: domain.ChatOptions{
			Model:           req.Model,
			Temperature:     req.Temperature,
			SystemPrompt:    req.SystemPrompt,
			Tone:            domain.Tone(req.Tone),
			SimulationDepth: int(req.SimulationDepth),
			Modes: domain.ModeFlags{
				Reasoning: req.ReasoningEnabled,
				Quantum:   req.QuantumMode,
				Creative:  req.CreativeMode,
			},
		},
	}
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.svc.Chat(r.Context(), req.toServiceRequest())
	if err != nil {
		writeError(w, chatErrorStatus(err), service.UserFacingError(err))
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func chatErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrLLMAuth):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrLLMRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrLLMNetwork):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
