// Package hub manages one notification center per scope, where a scope is
// any string identifying an independent notification surface: a user, a
// session, a screen. Centers are created lazily on first use and held in an
// LRU cache so idle scopes release their resources.
//
// The package also ships an HTTP transport: Router mounts show/dismiss
// endpoints and a server-sent-events stream of a scope's visible
// notifications.
//
// Usage:
//
//	h, err := hub.New(toast.DefaultConfig(), hub.WithMaxScopes(512))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer h.Close()
//
//	h.Show("user:42", toast.Options{Message: "Report ready", Type: toast.TypeSuccess})
//
//	r := chi.NewRouter()
//	r.Mount("/notifications", hub.Router(h))
package hub
