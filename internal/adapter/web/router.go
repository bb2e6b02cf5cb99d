package web

import (
	"encoding/json"
	"net/http"
)

// NewRouter initializes the HTTP router and registers routes. Protected
// handlers are wrapped with the auth guard at registration time; everything
// else stays public.
func NewRouter(h *TodoHandler, authH *AuthHandler, guard Middleware, mws ...Middleware) http.Handler {
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("GET /about", h.About)
	mux.HandleFunc("GET /register", authH.RegisterForm)
	mux.HandleFunc("POST /register", authH.Register)
	mux.HandleFunc("GET /login", authH.LoginForm)
	mux.HandleFunc("POST /login", authH.Login)
	mux.HandleFunc("GET /logout", authH.Logout)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Protected routes
	mux.Handle("GET /{$}", guard(http.HandlerFunc(h.Index)))
	mux.Handle("POST /add", guard(http.HandlerFunc(h.Add)))
	mux.Handle("GET /update/{id}", guard(http.HandlerFunc(h.Update)))
	mux.Handle("GET /delete/{id}", guard(http.HandlerFunc(h.Delete)))

	// Wrap with middleware
	return Chain(mux, mws...)
}
