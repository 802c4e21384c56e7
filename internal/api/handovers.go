package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/slocops/handover/internal/handover"
	"github.com/slocops/handover/internal/model"
)

// HandoversHandler handles handover endpoints.
type HandoversHandler struct {
	Processor *handover.Processor
	Log       *handover.Log
}

// Create handles POST /api/handovers.
func (h *HandoversHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.HandoverRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonErrorCode(w, http.StatusBadRequest, "invalid_body", "invalid request body")
		return
	}

	rec, err := h.Processor.Process(r.Context(), req)
	if err != nil {
		code := handover.Reason(err)
		switch {
		case errors.Is(err, handover.ErrInvalidRequest):
			jsonErrorCode(w, http.StatusBadRequest, code, err.Error())
		case errors.Is(err, handover.ErrInsufficientStock):
			jsonErrorCode(w, http.StatusConflict, code, err.Error())
		default:
			slog.Error("failed to process handover", "error", err)
			jsonErrorCode(w, http.StatusInternalServerError, code, "failed to process handover")
		}
		return
	}

	jsonResponse(w, http.StatusCreated, rec)
}

// List handles GET /api/handovers, newest first. Optional query parameter:
// limit.
func (h *HandoversHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			jsonError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	jsonResponse(w, http.StatusOK, h.Log.Recent(limit))
}

// Get handles GET /api/handovers/{id}.
func (h *HandoversHandler) Get(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.Log.Get(r.PathValue("id"))
	if !ok {
		jsonError(w, http.StatusNotFound, "handover not found")
		return
	}
	jsonResponse(w, http.StatusOK, rec)
}
