package hub

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agenthub/notifykit/pkg/toast"
)

// Router builds a chi router exposing a hub over HTTP:
//
//	POST   /{scope}            show a notification (toast.Options JSON body)
//	GET    /{scope}            current visible snapshot
//	GET    /{scope}/stream     SSE stream of visible snapshots
//	DELETE /{scope}            dismiss all
//	DELETE /{scope}/{id}       dismiss one
//
// Mount it under a path of your choosing, e.g.
// r.Mount("/notifications", hub.Router(h)).
func Router(h *Hub) chi.Router {
	r := chi.NewRouter()
	r.Post("/{scope}", showHandler(h))
	r.Get("/{scope}", snapshotHandler(h))
	r.Get("/{scope}/stream", StreamHandler(h))
	r.Delete("/{scope}", func(w http.ResponseWriter, r *http.Request) {
		h.DismissAll(chi.URLParam(r, "scope"))
		w.WriteHeader(http.StatusNoContent)
	})
	r.Delete("/{scope}/{id}", func(w http.ResponseWriter, r *http.Request) {
		h.Dismiss(chi.URLParam(r, "scope"), chi.URLParam(r, "id"))
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}

func showHandler(h *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var opts toast.Options
		if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		id, err := h.Show(chi.URLParam(r, "scope"), opts)
		switch {
		case errors.Is(err, toast.ErrCenterClosed):
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		case err != nil:
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": id})
	}
}

func snapshotHandler(h *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := h.Center(chi.URLParam(r, "scope"))
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"notifications": c.Visible(),
			"queued":        c.Queued(),
		})
	}
}

// StreamHandler streams a scope's visible-notification snapshots as
// server-sent events. Each update is one "notifications" event carrying the
// JSON-encoded snapshot. The stream ends when the client disconnects or the
// center closes.
func StreamHandler(h *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, "streaming unsupported")
			return
		}

		c, err := h.Center(chi.URLParam(r, "scope"))
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		sub := c.Subscribe(r.Context())
		defer sub.Close()

		// Initial snapshot so the client renders immediately.
		if err := writeEvent(w, c.Visible()); err != nil {
			return
		}
		flusher.Flush()

		for {
			select {
			case <-r.Context().Done():
				return
			case snapshot, ok := <-sub.Receive():
				if !ok {
					return
				}
				if err := writeEvent(w, snapshot); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	}
}

func writeEvent(w http.ResponseWriter, snapshot []toast.Notification) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte("event: notifications\ndata: ")); err != nil {
		return err
	}
	if _, err := w.Write(payload); err != nil {
		return err
	}
	_, err = w.Write([]byte("\n\n"))
	return err
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
