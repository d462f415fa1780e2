package pets

import "petpals/internal/platform/apperr"

// CanTransition decide si actor puede mover pet de from a to.
// No valida que la arista exista; eso lo hace Apply antes.
func CanTransition(actor Actor, pet Pet, from, to Status) error {
	if !actor.Authenticated() {
		return apperr.Unauthenticated("login required to change status")
	}

	r, ok := transitions[edge{from, to}]
	if !ok {
		// Sin arista no hay a quién permitir.
		return apperr.Forbidden("transition not permitted")
	}

	switch r.actor {
	case communityOnly:
		if actor.ID == pet.OwnerID {
			return apperr.Forbidden("owners cannot mark their own pet as found by the community")
		}
	default:
		if actor.ID != pet.OwnerID {
			return apperr.Forbidden("only the owner can perform this transition")
		}
	}
	return nil
}

// CanEdit: perfil y borrado son solo del owner.
func CanEdit(actor Actor, pet Pet) error {
	if !actor.Authenticated() {
		return apperr.Unauthenticated("login required")
	}
	if actor.ID != pet.OwnerID {
		return apperr.Forbidden("only the owner can modify this pet")
	}
	return nil
}

// CanViewHistory: owner o finder.
func CanViewHistory(actor Actor, pet Pet) error {
	if !actor.Authenticated() {
		return apperr.Unauthenticated("login required")
	}
	if actor.ID != pet.OwnerID && !pet.IsFinder(actor.ID) {
		return apperr.Forbidden("only the owner or the finder can view this history")
	}
	return nil
}

// Project arma la vista para viewer. Identidad del finder, claim y fecha de
// reencuentro solo para owner o finder; email del owner solo para usuarios logueados.
func Project(p Pet, viewer Actor) Pet {
	out := p
	privileged := viewer.Authenticated() && (viewer.ID == p.OwnerID || p.IsFinder(viewer.ID))
	if !privileged {
		out.FinderID = ""
		out.Claim = nil
		out.ReunitedAt = nil
	}
	if !viewer.Authenticated() {
		out.OwnerEmail = ""
	}
	return out
}
