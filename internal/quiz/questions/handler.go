package questions

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Elias0099/examenes-api/internal/auth"
	"github.com/Elias0099/examenes-api/internal/platform/httpx"
)

// Handler wires HTTP endpoints for questions.
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

// MountRoutes registers question routes. The two exam-listing variants share
// one handler parameterized by requirePrivilegedView: the privileged variant
// is hard-denied for non-admins at the role check, not merely masked, since
// masking is data shaping for permitted calls and never a substitute for
// access control.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(h.authmw.Authenticate)

	r.Get("/examen/{examenId}", h.listByExamen(false))
	r.Post("/evaluar-examen/{examenId}", h.evaluate)

	r.Group(func(r chi.Router) {
		r.Use(h.authmw.RequireRole(auth.RoleAdmin))
		r.Get("/examen/todos/{examenId}", h.listByExamen(true))
		r.Get("/{id:[0-9]+}", h.get)
		r.Post("/", h.create)
		r.Put("/", h.update)
		r.Delete("/{id:[0-9]+}", h.delete)
	})
}

func (h *Handler) listByExamen(requirePrivilegedView bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		examenID, err := strconv.ParseInt(chi.URLParam(r, "examenId"), 10, 64)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid exam ID")
			return
		}

		principal := auth.PrincipalFromContext(r.Context())

		var result []Pregunta
		if requirePrivilegedView {
			result, err = h.service.ListAllByExamen(r.Context(), examenID)
		} else {
			result, err = h.service.ListByExamen(r.Context(), examenID)
		}
		if err != nil {
			h.logger.Error("list questions", slog.Any("error", err))
			httpx.RespondError(w, err)
			return
		}

		// Answer visibility follows the caller's role, not the route.
		httpx.JSON(w, http.StatusOK, NewQuestionViews(result, principal.IsAdmin()))
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid question ID")
		return
	}
	q, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	principal := auth.PrincipalFromContext(r.Context())
	httpx.JSON(w, http.StatusOK, NewQuestionView(q, principal.IsAdmin()))
}

type preguntaRequest struct {
	PreguntaID    int64  `json:"preguntaId"`
	Contenido     string `json:"contenido"`
	Imagen        string `json:"imagen"`
	Opcion1       string `json:"opcion1"`
	Opcion2       string `json:"opcion2"`
	Opcion3       string `json:"opcion3"`
	Opcion4       string `json:"opcion4"`
	Respuesta     string `json:"respuesta"`
	RespuestaDada string `json:"respuestaDada"`
	ExamenID      int64  `json:"examenId"`
	Examen        struct {
		ExamenID int64 `json:"examenId"`
	} `json:"examen"`
}

func (req preguntaRequest) toModel() Pregunta {
	examenID := req.ExamenID
	if examenID == 0 {
		examenID = req.Examen.ExamenID
	}
	return Pregunta{
		PreguntaID:    req.PreguntaID,
		Contenido:     req.Contenido,
		Imagen:        req.Imagen,
		Opcion1:       req.Opcion1,
		Opcion2:       req.Opcion2,
		Opcion3:       req.Opcion3,
		Opcion4:       req.Opcion4,
		Respuesta:     req.Respuesta,
		RespuestaDada: req.RespuestaDada,
		ExamenID:      examenID,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req preguntaRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	created, err := h.service.Create(r.Context(), req.toModel())
	if err != nil {
		h.logger.Error("create question", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	// Creation requires the privileged role, so the answer echoes back.
	httpx.JSON(w, http.StatusOK, NewQuestionView(created, true))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req preguntaRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	updated, err := h.service.Update(r.Context(), req.toModel())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, NewQuestionView(updated, true))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid question ID")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": true})
}

func (h *Handler) evaluate(w http.ResponseWriter, r *http.Request) {
	examenID, err := strconv.ParseInt(chi.URLParam(r, "examenId"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid exam ID")
		return
	}
	var submissions []Submission
	if err := httpx.DecodeJSON(r, &submissions); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	result, err := h.service.Evaluate(r.Context(), examenID, submissions)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}
