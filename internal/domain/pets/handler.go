package pets

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"petpals/internal/middleware"
	"petpals/internal/platform/respond"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", registerPetHandler(svc))
		pr.Post("/found", reportFoundHandler(svc))
		pr.Get("/", listPetsHandler(svc))

		pr.Get("/{petID}", getPetHandler(svc))
		pr.Patch("/{petID}", updatePetHandler(svc))
		pr.Delete("/{petID}", deletePetHandler(svc))
		pr.Post("/{petID}/status", transitionHandler(svc))
	})

	r.Get("/me/pets", listMyPetsHandler(svc))
}

// ActorFromRequest arma el actor desde los claims (anónimo si no hay).
func ActorFromRequest(r *http.Request) Actor {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		return Actor{}
	}
	return Actor{
		ID:    strings.TrimSpace(claims.UserID),
		Name:  strings.TrimSpace(claims.DisplayName),
		Email: strings.TrimSpace(claims.Email),
	}
}

type reportFoundRequest struct {
	Profile
	FoundReport FoundReport `json:"foundReport"`
}

type updatePetRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Type            *string `json:"type"`
	Name            *string `json:"name"`
	Breed           *string `json:"breed"`
	Age             *string `json:"age"`
	Gender          *string `json:"gender"`
	Color           *string `json:"color"`
	Size            *string `json:"size"`
	MicrochipID     *string `json:"microchipId"`
	Collar          *string `json:"collar"`
	Description     *string `json:"description"`
	SpecialFeatures *string `json:"specialFeatures"`
	ImageURL        *string `json:"imageUrl"`
}

// transitionRequest es el cuerpo de POST /pets/{petID}/status.
type transitionRequest struct {
	Status      Status       `json:"status" enums:"registered,lost,found,found_by_community,reunited"`
	LostReport  *LostReport  `json:"lostReport,omitempty"`
	FoundReport *FoundReport `json:"foundReport,omitempty"`
	Note        string       `json:"note,omitempty"`
}

// petResponse es la vista pública (ya proyectada) de una mascota.
type petResponse struct {
	ID     string `json:"id"`
	Status Status `json:"status"`

	OwnerID    string `json:"ownerId"`
	OwnerName  string `json:"ownerName,omitempty"`
	OwnerEmail string `json:"ownerEmail,omitempty"`
	FinderID   string `json:"finderId,omitempty"`

	Profile

	LostReport  *LostReport  `json:"lostReport,omitempty"`
	FoundReport *FoundReport `json:"foundReport,omitempty"`
	Claim       *Claim       `json:"claim,omitempty"`

	OriginalPetID   string `json:"originalPetId,omitempty"`
	OriginalOwnerID string `json:"originalOwnerId,omitempty"`

	AllowedTransitions []Status `json:"allowedTransitions"`

	ReunitedAt *time.Time `json:"reunitedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// registerPetHandler godoc
// @Summary Registrar mascota
// @Description Crea una mascota en status `registered`; el usuario autenticado queda como dueño. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body Profile true "Perfil de la mascota"
// @Success 201 {object} petResponse
// @Failure 400 {object} map[string]any "validation"
// @Failure 401 {object} map[string]any "unauthenticated"
// @Failure 503 {object} map[string]any "storage"
// @Router /pets [post]
func registerPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := ActorFromRequest(r)

		var req Profile
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.BadRequest(w, "", "invalid json")
			return
		}

		p, err := svc.Register(r.Context(), actor, req)
		if err != nil {
			respond.Error(w, err)
			return
		}
		respond.JSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// reportFoundHandler godoc
// @Summary Reportar mascota encontrada
// @Description Publica una mascota encontrada (status `found`). Quien reporta queda como dueño y finder del registro.
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body reportFoundRequest true "Perfil + foundReport"
// @Success 201 {object} petResponse
// @Failure 400 {object} map[string]any "validation"
// @Failure 401 {object} map[string]any "unauthenticated"
// @Router /pets/found [post]
func reportFoundHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := ActorFromRequest(r)

		var req reportFoundRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.BadRequest(w, "", "invalid json")
			return
		}

		p, err := svc.ReportFound(r.Context(), actor, ReportFoundInput{
			Profile: req.Profile,
			Found:   req.FoundReport,
		})
		if err != nil {
			respond.Error(w, err)
			return
		}
		respond.JSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// listPetsHandler godoc
// @Summary Listado público por status
// @Description Lista mascotas en un status público. Filtros opcionales por raza, ubicación y texto libre (substring, sin distinguir mayúsculas). Si el store falla se sirve el mirror con header `X-Served-From: mirror`.
// @Tags pets
// @Produce json
// @Param status query string true "lost | found | found_by_community | reunited"
// @Param breed query string false "Filtro por raza"
// @Param location query string false "Filtro por ubicación"
// @Param q query string false "Texto libre en nombre/raza/color/descripción"
// @Success 200 {array} petResponse
// @Failure 400 {object} map[string]any "validation"
// @Failure 503 {object} map[string]any "storage"
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := ActorFromRequest(r)
		q := r.URL.Query()

		items, src, err := svc.List(r.Context(), ListFilter{
			Status:   Status(strings.TrimSpace(q.Get("status"))),
			Breed:    q.Get("breed"),
			Location: q.Get("location"),
			Query:    q.Get("q"),
		})
		if err != nil {
			respond.Error(w, err)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(Project(p, viewer)))
		}
		markSource(w, src)
		respond.JSON(w, http.StatusOK, out)
	}
}

// getPetHandler godoc
// @Summary Ver mascota
// @Description Lectura pública. Identidad del finder, claim y fecha de reencuentro solo se ven como dueño o finder.
// @Tags pets
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} petResponse
// @Failure 404 {object} map[string]any "not_found"
// @Failure 503 {object} map[string]any "storage"
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := ActorFromRequest(r)

		p, src, err := svc.GetForViewer(r.Context(), chi.URLParam(r, "petID"), viewer)
		if err != nil {
			respond.Error(w, err)
			return
		}
		markSource(w, src)
		respond.JSON(w, http.StatusOK, toPetResponse(p))
	}
}

// updatePetHandler godoc
// @Summary Actualizar perfil
// @Description Solo el dueño. Cambia datos descriptivos; el status no se toca por acá.
// @Tags pets
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body updatePetRequest true "Campos a cambiar"
// @Success 200 {object} petResponse
// @Failure 400 {object} map[string]any "validation"
// @Failure 401 {object} map[string]any "unauthenticated"
// @Failure 403 {object} map[string]any "authorization"
// @Failure 404 {object} map[string]any "not_found"
// @Router /pets/{petID} [patch]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := ActorFromRequest(r)

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updatePetRequest
		if err := dec.Decode(&req); err != nil {
			respond.BadRequest(w, "", "invalid json or field not editable")
			return
		}

		updated, err := svc.UpdateProfile(r.Context(), chi.URLParam(r, "petID"), actor, ProfilePatch{
			Type:            req.Type,
			Name:            req.Name,
			Breed:           req.Breed,
			Age:             req.Age,
			Gender:          req.Gender,
			Color:           req.Color,
			Size:            req.Size,
			MicrochipID:     req.MicrochipID,
			Collar:          req.Collar,
			Description:     req.Description,
			SpecialFeatures: req.SpecialFeatures,
			ImageURL:        req.ImageURL,
		})
		if err != nil {
			respond.Error(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, toPetResponse(updated))
	}
}

// deletePetHandler godoc
// @Summary Borrar mascota
// @Description Solo el dueño. Borrado definitivo.
// @Tags pets
// @Param petID path string true "ID de la mascota"
// @Success 204
// @Failure 401 {object} map[string]any "unauthenticated"
// @Failure 403 {object} map[string]any "authorization"
// @Failure 404 {object} map[string]any "not_found"
// @Router /pets/{petID} [delete]
func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "petID"), ActorFromRequest(r)); err != nil {
			respond.Error(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// transitionHandler godoc
// @Summary Cambiar status
// @Description Aplica una transición de la tabla de estados. `lost` exige `lostReport`; `found` y `found_by_community` exigen `foundReport`. `found_by_community` solo lo puede marcar alguien que no sea el dueño y abre un pedido de reencuentro.
// @Tags pets
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body transitionRequest true "Status destino + reporte"
// @Success 200 {object} petResponse
// @Failure 400 {object} map[string]any "validation (transición inexistente o campo faltante)"
// @Failure 401 {object} map[string]any "unauthenticated"
// @Failure 403 {object} map[string]any "authorization"
// @Failure 404 {object} map[string]any "not_found"
// @Failure 503 {object} map[string]any "storage"
// @Router /pets/{petID}/status [post]
func transitionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := ActorFromRequest(r)

		var req transitionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.BadRequest(w, "", "invalid json")
			return
		}

		p, err := svc.Transition(r.Context(), chi.URLParam(r, "petID"), actor, TransitionRequest{
			To:          Status(strings.TrimSpace(string(req.Status))),
			LostReport:  req.LostReport,
			FoundReport: req.FoundReport,
			Note:        req.Note,
		})
		if err != nil {
			respond.Error(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, toPetResponse(Project(p, actor)))
	}
}

// listMyPetsHandler godoc
// @Summary Mis mascotas
// @Description Mascotas donde el usuario autenticado es dueño (incluye reportes de encontrados propios).
// @Tags pets
// @Produce json
// @Success 200 {array} petResponse
// @Failure 401 {object} map[string]any "unauthenticated"
// @Router /me/pets [get]
func listMyPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := ActorFromRequest(r)

		items, err := svc.ListByOwner(r.Context(), actor.ID)
		if err != nil {
			respond.Error(w, err)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		respond.JSON(w, http.StatusOK, out)
	}
}

func markSource(w http.ResponseWriter, src Source) {
	if src == SourceMirror {
		w.Header().Set(respond.HeaderServedFrom, string(SourceMirror))
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:                 p.ID,
		Status:             p.Status,
		OwnerID:            p.OwnerID,
		OwnerName:          p.OwnerName,
		OwnerEmail:         p.OwnerEmail,
		FinderID:           p.FinderID,
		Profile:            p.Profile,
		LostReport:         p.Lost,
		FoundReport:        p.Found,
		Claim:              p.Claim,
		OriginalPetID:      p.OriginalPetID,
		OriginalOwnerID:    p.OriginalOwnerID,
		AllowedTransitions: Allowed(p.Status),
		ReunitedAt:         p.ReunitedAt,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}
