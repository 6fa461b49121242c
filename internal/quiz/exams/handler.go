package exams

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Elias0099/examenes-api/internal/auth"
	"github.com/Elias0099/examenes-api/internal/platform/httpx"
)

// Handler wires HTTP endpoints for exams.
type Handler struct {
	logger  *slog.Logger
	service *Service
	authmw  auth.Middleware
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, authmw auth.Middleware) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, authmw: authmw}
}

// MountRoutes registers exam routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(h.authmw.Authenticate)

	r.Get("/", h.list)
	r.Get("/{id:[0-9]+}", h.get)
	r.Get("/categoria/{categoriaId}", h.listByCategoria)
	r.Get("/activo", h.listActive)
	r.Get("/activo/categoria/{categoriaId}", h.listActiveByCategoria)

	r.Group(func(r chi.Router) {
		r.Use(h.authmw.RequireRole(auth.RoleAdmin))
		r.Post("/", h.create)
		r.Put("/", h.update)
		r.Delete("/{id:[0-9]+}", h.delete)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	h.respondList(w, r, ListFilters{})
}

func (h *Handler) listByCategoria(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "categoriaId"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid category ID")
		return
	}
	h.respondList(w, r, ListFilters{CategoriaID: id})
}

func (h *Handler) listActive(w http.ResponseWriter, r *http.Request) {
	h.respondList(w, r, ListFilters{ActiveOnly: true})
}

func (h *Handler) listActiveByCategoria(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "categoriaId"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid category ID")
		return
	}
	h.respondList(w, r, ListFilters{CategoriaID: id, ActiveOnly: true})
}

func (h *Handler) respondList(w http.ResponseWriter, r *http.Request, filters ListFilters) {
	result, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("list exams", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if result == nil {
		result = []Examen{}
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid exam ID")
		return
	}
	e, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, e)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var e Examen
	if err := httpx.DecodeJSON(r, &e); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	created, err := h.service.Create(r.Context(), e)
	if err != nil {
		h.logger.Error("create exam", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, created)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var e Examen
	if err := httpx.DecodeJSON(r, &e); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	updated, err := h.service.Update(r.Context(), e)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid exam ID")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": true})
}
