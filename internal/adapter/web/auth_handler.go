package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"go-todo-app/internal/core/ports"
	"go-todo-app/internal/core/service"
)

// credentialsForm is the shape of both the register and login forms. The
// password cap is bcrypt's 72-byte input limit.
type credentialsForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8,max=72"`
}

// AuthHandler serves the register/login/logout flow.
type AuthHandler struct {
	auth     ports.AuthService
	cookies  *SessionCookies
	views    *Views
	validate *validator.Validate
	logger   *slog.Logger
}

func NewAuthHandler(auth ports.AuthService, cookies *SessionCookies, views *Views, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		cookies:  cookies,
		views:    views,
		validate: validator.New(),
		logger:   logger,
	}
}

// RegisterForm handles GET /register
func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "register", viewData{Title: "Register", Flash: popFlash(w, r)})
}

// Register handles POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	form := credentialsForm{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	if err := h.validate.Struct(form); err != nil {
		setFlash(w, "Enter a valid email and a password of at least 8 characters.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	token, err := h.auth.Register(r.Context(), form.Email, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			setFlash(w, "That email is already registered. Log in instead.")
			http.Redirect(w, r, "/register", http.StatusSeeOther)
			return
		}
		h.serverError(w, r, err)
		return
	}

	h.startSession(w, r, token)
}

// LoginForm handles GET /login
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "login", viewData{Title: "Log in", Flash: popFlash(w, r)})
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	token, err := h.auth.Login(r.Context(), r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownEmail):
			setFlash(w, "No account with that email. Register first.")
		case errors.Is(err, service.ErrWrongPassword):
			setFlash(w, "Wrong password. Try again.")
		default:
			h.serverError(w, r, err)
			return
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	h.startSession(w, r, token)
}

// Logout handles GET /logout. Always succeeds, cookie or not.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token, err := h.cookies.Read(r); err == nil {
		if err := h.auth.Logout(r.Context(), token); err != nil {
			h.logger.Error("failed to end session", "error", err)
		}
	}
	h.cookies.Clear(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, token string) {
	if err := h.cookies.Write(w, token); err != nil {
		h.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func (h *AuthHandler) render(w http.ResponseWriter, status int, page string, data viewData) {
	if err := h.views.Render(w, status, page, data); err != nil {
		h.logger.Error("failed to render page", "page", page, "error", err)
	}
}
