package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"rickmorty/internal/character/models"
	dErrors "rickmorty/pkg/domain-errors"
	"rickmorty/pkg/platform/httputil"
	"rickmorty/pkg/platform/middleware/request"
)

// Service defines the character queries used by the handler.
type Service interface {
	GetAllCharacters(ctx context.Context) (models.Collection, error)
	GetCharacterByID(ctx context.Context, id int) (*models.Character, error)
	GetCharactersByStatus(ctx context.Context, status string) (models.Collection, error)
	GetSpeciesStatistic(ctx context.Context, status, species string) (int, error)
}

// Handler handles HTTP requests for character queries.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New creates a new character handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts the handler routes on the given router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/api/characters", func(r chi.Router) {
		r.Get("/", h.HandleListCharacters)
		r.Get("/status", h.HandleListByStatus)
		r.Get("/species-statistic", h.HandleSpeciesStatistic)
		r.Get("/{id}", h.HandleGetCharacter)
	})
}

// HandleListCharacters handles GET /api/characters.
func (h *Handler) HandleListCharacters(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	characters, err := h.service.GetAllCharacters(ctx)
	if err != nil {
		h.writeQueryError(ctx, w, "list characters failed", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toCharacterResponses(characters))
}

// HandleGetCharacter handles GET /api/characters/{id}.
func (h *Handler) HandleGetCharacter(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "character id must be an integer"))
		return
	}

	character, err := h.service.GetCharacterByID(ctx, id)
	if err != nil {
		h.writeQueryError(ctx, w, "get character failed", err, "character_id", id)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toCharacterResponse(character))
}

// HandleListByStatus handles GET /api/characters/status?status=...
func (h *Handler) HandleListByStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status, ok := requireQuery(w, r, "status")
	if !ok {
		return
	}

	characters, err := h.service.GetCharactersByStatus(ctx, status)
	if err != nil {
		h.writeQueryError(ctx, w, "list characters by status failed", err, "status", status)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toCharacterResponses(characters))
}

// HandleSpeciesStatistic handles GET /api/characters/species-statistic?status=...&species=...
// The body is the bare count, e.g. 2.
func (h *Handler) HandleSpeciesStatistic(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status, ok := requireQuery(w, r, "status")
	if !ok {
		return
	}
	species, ok := requireQuery(w, r, "species")
	if !ok {
		return
	}

	count, err := h.service.GetSpeciesStatistic(ctx, status, species)
	if err != nil {
		h.writeQueryError(ctx, w, "species statistic failed", err, "status", status, "species", species)
		return
	}

	httputil.WriteRawJSON(w, http.StatusOK, []byte(strconv.Itoa(count)))
}

// requireQuery returns the named query parameter, writing a 400 when it is
// absent. A present but empty value is passed through.
func requireQuery(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	values, ok := r.URL.Query()[name]
	if !ok || len(values) == 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "missing query parameter: "+name))
		return "", false
	}
	return values[0], true
}

func (h *Handler) writeQueryError(ctx context.Context, w http.ResponseWriter, msg string, err error, attrs ...any) {
	attrs = append(attrs,
		"request_id", request.GetRequestID(ctx),
		"error", err,
	)
	h.logger.ErrorContext(ctx, msg, attrs...)
	httputil.WriteError(w, toDomainError(err))
}

// toDomainError translates character query failures into domain error codes.
func toDomainError(err error) error {
	var (
		notFound    *models.NotFoundError
		upstreamErr *models.UpstreamError
		decodeErr   *models.DecodeError
	)
	switch {
	case errors.As(err, &notFound):
		return dErrors.Wrap(err, dErrors.CodeNotFound, notFound.Error())
	case errors.As(err, &decodeErr):
		return dErrors.Wrap(err, dErrors.CodeUpstreamBadData, "upstream returned an unexpected payload")
	case errors.As(err, &upstreamErr) && upstreamErr.Timeout:
		return dErrors.Wrap(err, dErrors.CodeTimeout, "upstream character API timed out")
	case errors.As(err, &upstreamErr):
		return dErrors.Wrap(err, dErrors.CodeUpstream, "upstream character API unavailable")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "")
	}
}
