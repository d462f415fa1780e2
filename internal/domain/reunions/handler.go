package reunions

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"petpals/internal/domain/pets"
	"petpals/internal/platform/respond"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/pets/{petID}/reunion-requests", listByPetHandler(svc))

	r.Route("/reunion-requests/{requestID}", func(rr chi.Router) {
		rr.Get("/", getRequestHandler(svc))
		rr.Post("/approve", approveHandler(svc))
		rr.Post("/reject", rejectHandler(svc))
	})

	r.Get("/me/reunion-requests", listMineHandler(svc))
}

type rejectRequest struct {
	Note string `json:"note"`
}

type requestResponse struct {
	ID              string     `json:"id"`
	PetID           string     `json:"petId"`
	OriginalOwnerID string     `json:"originalOwnerId"`
	FinderID        string     `json:"finderId"`
	FinderName      string     `json:"finderName,omitempty"`
	FinderEmail     string     `json:"finderEmail,omitempty"`
	FinderPhone     string     `json:"finderPhone,omitempty"`
	Status          Status     `json:"status"`
	FoundDate       string     `json:"foundDate,omitempty"`
	FoundTime       string     `json:"foundTime,omitempty"`
	FoundLocation   string     `json:"foundLocation,omitempty"`
	CurrentLocation string     `json:"currentLocation,omitempty"`
	Message         string     `json:"message"`
	RequestedAt     time.Time  `json:"requestedAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	ResolvedAt      *time.Time `json:"resolvedAt,omitempty"`
	ResolvedBy      string     `json:"resolvedBy,omitempty"`
	ResolutionNote  string     `json:"resolutionNote,omitempty"`
}

// listByPetHandler godoc
// @Summary Pedidos de reencuentro de una mascota
// @Description El dueño ve todos los pedidos; cualquier otro usuario solo los que abrió él.
// @Tags reunions
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Success 200 {array} requestResponse
// @Failure 401 {object} map[string]any "unauthenticated"
// @Failure 404 {object} map[string]any "not_found"
// @Router /pets/{petID}/reunion-requests [get]
func listByPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByPet(r.Context(), chi.URLParam(r, "petID"), pets.ActorFromRequest(r))
		if err != nil {
			respond.Error(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, toResponses(items))
	}
}

// getRequestHandler godoc
// @Summary Ver pedido de reencuentro
// @Tags reunions
// @Produce json
// @Param requestID path string true "ID del pedido"
// @Success 200 {object} requestResponse
// @Failure 401 {object} map[string]any "unauthenticated"
// @Failure 403 {object} map[string]any "authorization"
// @Failure 404 {object} map[string]any "not_found"
// @Router /reunion-requests/{requestID} [get]
func getRequestHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := svc.Get(r.Context(), chi.URLParam(r, "requestID"), pets.ActorFromRequest(r))
		if err != nil {
			respond.Error(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, toResponse(req))
	}
}

// approveHandler godoc
// @Summary Aprobar pedido
// @Description Solo el dueño original. El pedido pasa a `approved`, la mascota a `reunited` y los demás pedidos pendientes se rechazan.
// @Tags reunions
// @Produce json
// @Param requestID path string true "ID del pedido"
// @Success 200 {object} requestResponse
// @Failure 401 {object} map[string]any "unauthenticated"
// @Failure 403 {object} map[string]any "authorization"
// @Failure 404 {object} map[string]any "not_found"
// @Failure 409 {object} map[string]any "conflict (ya resuelto)"
// @Router /reunion-requests/{requestID}/approve [post]
func approveHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := svc.Approve(r.Context(), chi.URLParam(r, "requestID"), pets.ActorFromRequest(r))
		if err != nil {
			respond.Error(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, toResponse(req))
	}
}

// rejectHandler godoc
// @Summary Rechazar pedido
// @Description Solo el dueño original. La mascota no cambia.
// @Tags reunions
// @Accept json
// @Produce json
// @Param requestID path string true "ID del pedido"
// @Param payload body rejectRequest false "Nota opcional para el finder"
// @Success 200 {object} requestResponse
// @Failure 401 {object} map[string]any "unauthenticated"
// @Failure 403 {object} map[string]any "authorization"
// @Failure 404 {object} map[string]any "not_found"
// @Failure 409 {object} map[string]any "conflict (ya resuelto)"
// @Router /reunion-requests/{requestID}/reject [post]
func rejectHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// El body es opcional.
		var body rejectRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			respond.BadRequest(w, "", "invalid json")
			return
		}

		req, err := svc.Reject(r.Context(), chi.URLParam(r, "requestID"), pets.ActorFromRequest(r), body.Note)
		if err != nil {
			respond.Error(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, toResponse(req))
	}
}

// listMineHandler godoc
// @Summary Mis pedidos de reencuentro
// @Description role=owner (default): pedidos recibidos. role=finder: pedidos que abrí.
// @Tags reunions
// @Produce json
// @Param role query string false "owner | finder"
// @Success 200 {array} requestResponse
// @Failure 400 {object} map[string]any "validation"
// @Failure 401 {object} map[string]any "unauthenticated"
// @Router /me/reunion-requests [get]
func listMineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role := Role(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("role"))))

		items, err := svc.ListMine(r.Context(), pets.ActorFromRequest(r), role)
		if err != nil {
			respond.Error(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, toResponses(items))
	}
}

func toResponses(items []Request) []requestResponse {
	out := make([]requestResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toResponse(it))
	}
	return out
}

func toResponse(r Request) requestResponse {
	return requestResponse{
		ID:              r.ID,
		PetID:           r.PetID,
		OriginalOwnerID: r.OriginalOwnerID,
		FinderID:        r.FinderID,
		FinderName:      r.FinderName,
		FinderEmail:     r.FinderEmail,
		FinderPhone:     r.FinderPhone,
		Status:          r.Status,
		FoundDate:       r.FoundDate,
		FoundTime:       r.FoundTime,
		FoundLocation:   r.FoundLocation,
		CurrentLocation: r.CurrentLocation,
		Message:         r.Message,
		RequestedAt:     r.RequestedAt,
		UpdatedAt:       r.UpdatedAt,
		ResolvedAt:      r.ResolvedAt,
		ResolvedBy:      r.ResolvedBy,
		ResolutionNote:  r.ResolutionNote,
	}
}
