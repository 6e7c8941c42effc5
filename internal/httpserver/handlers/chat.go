package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/toolhub/toolhub/internal/chat"
	"github.com/toolhub/toolhub/internal/httpserver/deps"
	"github.com/toolhub/toolhub/internal/logger"
)

type chatOpenRequest struct {
	WidgetID string `json:"widgetId"`
}

type chatOpenResponse struct {
	SessionID string      `json:"sessionId"`
	Turns     []chat.Turn `json:"turns"`
}

// ChatOpen returns the session for a widget, creating one on first
// open. Reopening the same widget returns the existing session with
// its transcript intact.
func ChatOpen(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatOpenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		session := d.Chat.Open(req.WidgetID, d.Catalog.All())
		writeJSON(w, http.StatusOK, chatOpenResponse{
			SessionID: session.ID(),
			Turns:     session.Turns(),
		})
	}
}

type chatSendRequest struct {
	Text string `json:"text"`
}

// ChatSend streams the model reply over SSE. Each delta event carries
// the newly generated chunk; the done event carries the full reply.
func ChatSend(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "session")
		session, ok := d.Chat.Get(sessionID)
		if !ok {
			writeError(w, http.StatusNotFound, "unknown chat session")
			return
		}

		var req chatSendRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.Text == "" {
			writeError(w, http.StatusBadRequest, "text is required")
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, "streaming unsupported")
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)

		// The observer receives the accumulated partial; emit only the
		// suffix past what was already sent.
		sent := 0
		reply := session.Send(r.Context(), req.Text, func(partial string) {
			if len(partial) <= sent {
				return
			}
			delta := partial[sent:]
			sent = len(partial)
			writeSSE(w, "delta", delta)
			flusher.Flush()
		})

		writeSSE(w, "done", reply)
		flusher.Flush()

		d.Logger.Debug("chat turn completed",
			logger.String("session", sessionID),
			logger.Int("reply_bytes", len(reply)))
	}
}

// ChatClose drops the widget's session and its transcript.
func ChatClose(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatOpenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		d.Chat.Close(r.Context(), req.WidgetID)
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeSSE(w http.ResponseWriter, event, data string) {
	payload, _ := json.Marshal(data)
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload)
}
