package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	app_errors "loomchat/backend/internal/errors"
	"loomchat/backend/internal/interfaces"
	"loomchat/backend/internal/model"
	"loomchat/backend/internal/session"

	"github.com/go-chi/chi/v5"
)

// eventBufferSize is the capacity of the per-connection event channel. The
// registry delivers events without blocking, so the buffer absorbs bursts of
// small deltas while the HTTP writer catches up.
const eventBufferSize = 64

// GenerationHandler handles HTTP requests for the streaming generation pipeline:
// starting and regenerating responses, reattaching to a running stream, and
// tearing a stream down.
type GenerationHandler struct {
	service interfaces.GenerationService
}

func NewGenerationHandler(svc interfaces.GenerationService) *GenerationHandler {
	return &GenerationHandler{service: svc}
}

// HandleGenerate godoc
// @Summary      Generate an assistant response
// @Description  Records the user message, starts a detached generation for the branch, and streams events over SSE.
// @Tags         Generation
// @Accept       json
// @Produce      text/event-stream
// @Param        branchID  path  string           true  "Branch ID"
// @Param        request   body  GenerateRequest  true  "User message"
// @Success      200  {object}  model.StreamEvent "Stream of chunk, usage and done events"
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "A generation is already running on this branch"
// @Router       /v1/chats/branches/{branchID}/generate [post]
func (h *GenerationHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	branchID := chi.URLParam(r, "branchID")

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request body", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(&req); err != nil {
		respondWithError(w, err)
		return
	}

	sender := session.NewChanSender(eventBufferSize)
	if _, err := h.service.Generate(r.Context(), branchID, req.Message, sender); err != nil {
		respondWithError(w, err)
		return
	}

	h.relayEvents(w, r, branchID, sender.C)
}

// HandleRegenerate godoc
// @Summary      Regenerate an assistant response
// @Description  Creates a new version for an existing assistant node and streams the regeneration over SSE.
// @Tags         Generation
// @Accept       json
// @Produce      text/event-stream
// @Param        nodeID   path  string             true   "Assistant node ID"
// @Param        request  body  RegenerateRequest  false  "Optional model override"
// @Success      200  {object}  model.StreamEvent "Stream of chunk, usage and done events"
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /v1/chats/nodes/{nodeID}/regenerate [post]
func (h *GenerationHandler) HandleRegenerate(w http.ResponseWriter, r *http.Request) {
	nodeID := chi.URLParam(r, "nodeID")

	// The body is optional: an empty or absent body means "reuse the branch model".
	var req RegenerateRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, fmt.Errorf("%w: invalid request body", app_errors.ErrValidation))
			return
		}
		if err := validateRequest(&req); err != nil {
			respondWithError(w, err)
			return
		}
	}

	sender := session.NewChanSender(eventBufferSize)
	version, err := h.service.Regenerate(r.Context(), nodeID, req.ModelID, sender)
	if err != nil {
		respondWithError(w, err)
		return
	}

	h.relayEvents(w, r, version.NodeID, sender.C)
}

// HandleReconnect godoc
// @Summary      Reattach to a running stream
// @Description  Replaces the subscriber of an active generation. Events from this point on are delivered to the new connection; no transcript replay occurs.
// @Tags         Generation
// @Produce      text/event-stream
// @Param        branchID  path  string  true  "Branch ID"
// @Success      200  {object}  model.StreamEvent "Stream of chunk, usage and done events"
// @Failure      404  {object}  ErrorResponse "No active stream exists for this branch"
// @Router       /v1/chats/branches/{branchID}/stream [get]
func (h *GenerationHandler) HandleReconnect(w http.ResponseWriter, r *http.Request) {
	branchID := chi.URLParam(r, "branchID")

	sender := session.NewChanSender(eventBufferSize)
	if err := h.service.Reconnect(branchID, sender); err != nil {
		respondWithError(w, err)
		return
	}

	h.relayEvents(w, r, branchID, sender.C)
}

// HandleStopStream godoc
// @Summary      Stop a running stream
// @Description  Cancels the generation on a branch, if any, and removes its session. Succeeds even when no stream is active.
// @Tags         Generation
// @Produce      json
// @Param        branchID  path  string  true  "Branch ID"
// @Success      200  {object}  StatusResponse
// @Router       /v1/chats/branches/{branchID}/stream [delete]
func (h *GenerationHandler) HandleStopStream(w http.ResponseWriter, r *http.Request) {
	branchID := chi.URLParam(r, "branchID")
	h.service.Unregister(branchID)
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// relayEvents forwards registry events to the client as SSE until the stream
// reports completion or the client disconnects. Disconnecting does not cancel
// the generation; the session stays available for reconnection.
func (h *GenerationHandler) relayEvents(w http.ResponseWriter, r *http.Request, streamID string, events <-chan model.StreamEvent) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	for {
		select {
		case <-r.Context().Done():
			slog.Info("Client disconnected from event stream.", "stream_id", streamID)
			return
		case ev := <-events:
			if err := writeStreamEvent(w, ev); err != nil {
				slog.Warn("Could not write to event stream, client likely disconnected.", "error", err)
				return
			}
			if ev.Event == model.EventDone {
				slog.Info("Finished streaming response.", "stream_id", streamID)
				return
			}
		}
	}
}
