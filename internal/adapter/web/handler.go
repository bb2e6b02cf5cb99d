// Package web is the HTTP adapter: server-rendered pages, session cookies,
// and the route guard for authenticated operations.
package web

import (
	"errors"
	"log/slog"
	"net/http"

	"go-todo-app/internal/core/domain/todo"
	"go-todo-app/internal/core/ports"
	"go-todo-app/internal/core/service"
)

// TodoHandler serves the list page and the item mutations. Every mutation
// redirects back to the list; validation problems travel as flash messages.
type TodoHandler struct {
	todos  ports.TodoService
	views  *Views
	logger *slog.Logger
}

func NewTodoHandler(todos ports.TodoService, views *Views, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{todos: todos, views: views, logger: logger}
}

// Index handles GET /
func (h *TodoHandler) Index(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFrom(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	items, err := h.todos.List(r.Context(), user.ID)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "index", viewData{
		Title: "My list",
		Flash: popFlash(w, r),
		User:  &user,
		Items: items,
	})
}

// About handles GET /about
func (h *TodoHandler) About(w http.ResponseWriter, r *http.Request) {
	var data = viewData{Title: "About"}
	if user, ok := UserFrom(r.Context()); ok {
		data.User = &user
	}
	h.render(w, r, http.StatusOK, "about", data)
}

// Add handles POST /add
func (h *TodoHandler) Add(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFrom(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if _, err := h.todos.Add(r.Context(), user.ID, r.PostFormValue("title")); err != nil {
		switch {
		case errors.Is(err, todo.ErrEmptyTitle):
			// No item is created; the list view simply reappears.
			setFlash(w, "Title must not be empty.")
		case errors.Is(err, todo.ErrTitleTooLong):
			setFlash(w, "Title is too long.")
		default:
			h.serverError(w, r, err)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Update handles GET /update/{id}
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFrom(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if _, err := h.todos.Toggle(r.Context(), r.PathValue("id"), user.ID); err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			h.notFound(w, r)
			return
		}
		h.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Delete handles GET /delete/{id}
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFrom(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := h.todos.Remove(r.Context(), r.PathValue("id"), user.ID); err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			h.notFound(w, r)
			return
		}
		h.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *TodoHandler) notFound(w http.ResponseWriter, r *http.Request) {
	data := viewData{Title: "Not found"}
	if user, ok := UserFrom(r.Context()); ok {
		data.User = &user
	}
	h.render(w, r, http.StatusNotFound, "notfound", data)
}

func (h *TodoHandler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func (h *TodoHandler) render(w http.ResponseWriter, r *http.Request, status int, page string, data viewData) {
	if err := h.views.Render(w, status, page, data); err != nil {
		h.logger.Error("failed to render page", "page", page, "error", err)
	}
}
