package pets

import (
	"fmt"
	"time"

	"petpals/internal/platform/apperr"
	"petpals/internal/platform/validation"
)

// TransitionRequest es el evento de cambio de status pedido por un actor.
type TransitionRequest struct {
	To          Status
	LostReport  *LostReport
	FoundReport *FoundReport
	Note        string
}

type actorRule int

const (
	ownerOnly actorRule = iota
	communityOnly
)

type requirement int

const (
	needsNothing requirement = iota
	needsLostReport
	needsFoundReport
)

type edge struct {
	from Status
	to   Status
}

type rule struct {
	actor actorRule
	needs requirement
}

// transitions es la tabla completa. Cualquier par fuera de acá se rechaza.
var transitions = map[edge]rule{
	{StatusRegistered, StatusLost}:           {ownerOnly, needsLostReport},
	{StatusRegistered, StatusFound}:          {ownerOnly, needsFoundReport},
	{StatusLost, StatusFoundByCommunity}:     {communityOnly, needsFoundReport},
	{StatusLost, StatusReunited}:             {ownerOnly, needsNothing},
	{StatusFound, StatusReunited}:            {ownerOnly, needsNothing},
	{StatusFoundByCommunity, StatusReunited}: {ownerOnly, needsNothing},
	{StatusReunited, StatusLost}:             {ownerOnly, needsNothing},
	{StatusReunited, StatusFound}:            {ownerOnly, needsNothing},
}

// Allowed devuelve los destinos posibles desde from (para UI y docs).
func Allowed(from Status) []Status {
	out := make([]Status, 0, 2)
	for _, to := range []Status{StatusRegistered, StatusLost, StatusFound, StatusFoundByCommunity, StatusReunited} {
		if _, ok := transitions[edge{from, to}]; ok {
			out = append(out, to)
		}
	}
	return out
}

// Apply valida y aplica la transición sobre una copia de p. Orden de chequeo:
// destino válido, arista existente, actor, campos requeridos.
// Si devuelve error, p no se modifica.
func Apply(p Pet, actor Actor, req TransitionRequest, now time.Time) (Pet, error) {
	if !req.To.Valid() {
		return p, apperr.Validation("status", fmt.Sprintf("unknown status %q", req.To))
	}
	if !p.Status.Valid() {
		return p, apperr.Validation("status", fmt.Sprintf("record has unknown status %q", p.Status))
	}

	r, ok := transitions[edge{p.Status, req.To}]
	if !ok {
		return p, apperr.Validation("status", fmt.Sprintf("no transition from %s to %s", p.Status, req.To))
	}

	if err := CanTransition(actor, p, p.Status, req.To); err != nil {
		return p, err
	}

	next := p
	switch r.needs {
	case needsLostReport:
		if req.LostReport == nil {
			return p, apperr.Validation("lostReport", "is required")
		}
		if err := validation.Struct(*req.LostReport, "lostReport"); err != nil {
			return p, err
		}
		lr := *req.LostReport
		next.Lost = &lr
	case needsFoundReport:
		if req.FoundReport == nil {
			return p, apperr.Validation("foundReport", "is required")
		}
		if err := validation.Struct(*req.FoundReport, "foundReport"); err != nil {
			return p, err
		}
		fr := *req.FoundReport
		next.Found = &fr
	}

	if req.To == StatusFoundByCommunity {
		next.FinderID = actor.ID
		next.Claim = &Claim{
			FinderID:    actor.ID,
			FinderName:  actor.Name,
			FinderEmail: actor.Email,
			ClaimedAt:   now,
		}
	}
	if req.To == StatusReunited {
		t := now
		next.ReunitedAt = &t
	}

	next.Status = req.To
	next.UpdatedAt = now
	return next, nil
}

// roleFor: quién aplicó la arista, para el timeline.
func roleFor(to Status) Role {
	if to == StatusFoundByCommunity {
		return RoleCommunity
	}
	return RoleOwner
}
