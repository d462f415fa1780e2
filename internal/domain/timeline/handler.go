package timeline

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"petpals/internal/domain/pets"
	"petpals/internal/platform/respond"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Get("/pets/{petID}/timeline", listTimelineHandler(svc, petsSvc))
}

// entryResponse representa un cambio de status en la historia de la mascota.
type entryResponse struct {
	ID         string      `json:"id"`
	PetID      string      `json:"petId"`
	From       pets.Status `json:"from"`
	To         pets.Status `json:"to"`
	ActorID    string      `json:"actorId"`
	ActorRole  pets.Role   `json:"actorRole"`
	OccurredAt time.Time   `json:"occurredAt"`
	Note       string      `json:"note,omitempty"`
}

// listTimelineHandler godoc
// @Summary Historia de status
// @Description Cambios de status aplicados a la mascota, del más viejo al más nuevo. Solo dueño o finder.
// @Tags timeline
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param limit query int false "Máximo de entradas (1-200). Por defecto 50"
// @Param to query string false "CSV de status destino (ej: lost,reunited)"
// @Param from query string false "Fecha/hora mínima (RFC3339)"
// @Param until query string false "Fecha/hora máxima (RFC3339)"
// @Success 200 {array} entryResponse
// @Failure 400 {object} map[string]any "validation"
// @Failure 401 {object} map[string]any "unauthenticated"
// @Failure 403 {object} map[string]any "authorization"
// @Failure 404 {object} map[string]any "not_found"
// @Router /pets/{petID}/timeline [get]
func listTimelineHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := pets.ActorFromRequest(r)

		p, err := petsSvc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			respond.Error(w, err)
			return
		}
		if err := pets.CanViewHistory(actor, p); err != nil {
			respond.Error(w, err)
			return
		}

		filter, field, ok := parseListFilter(r)
		if !ok {
			respond.BadRequest(w, field, "invalid filter")
			return
		}

		items, err := svc.ListByPet(r.Context(), p.ID, filter)
		if err != nil {
			respond.Error(w, err)
			return
		}

		out := make([]entryResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEntryResponse(e))
		}
		respond.JSON(w, http.StatusOK, out)
	}
}

func parseListFilter(r *http.Request) (ListFilter, string, bool) {
	q := r.URL.Query()

	limit := 50
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	filter := ListFilter{Limit: limit}

	// to=lost,reunited
	if v := strings.TrimSpace(q.Get("to")); v != "" {
		for _, part := range strings.Split(v, ",") {
			st := pets.Status(strings.TrimSpace(part))
			if st == "" {
				continue
			}
			if !st.Valid() {
				return ListFilter{}, "to", false
			}
			filter.To = append(filter.To, st)
		}
	}

	if v := strings.TrimSpace(q.Get("from")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ListFilter{}, "from", false
		}
		filter.From = &t
	}
	if v := strings.TrimSpace(q.Get("until")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ListFilter{}, "until", false
		}
		filter.Until = &t
	}

	return filter, "", true
}

func toEntryResponse(e Entry) entryResponse {
	return entryResponse{
		ID:         e.ID,
		PetID:      e.PetID,
		From:       e.From,
		To:         e.To,
		ActorID:    e.ActorID,
		ActorRole:  e.ActorRole,
		OccurredAt: e.OccurredAt,
		Note:       e.Note,
	}
}
