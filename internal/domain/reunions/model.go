package reunions

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Resolved() bool {
	return s == StatusApproved || s == StatusRejected
}

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// Request es el pedido de reencuentro que abre un finder sobre una mascota perdida.
// Una vez resuelto no vuelve a cambiar.
type Request struct {
	ID    string
	PetID string

	OriginalOwnerID string // único que puede resolver
	FinderID        string
	FinderName      string
	FinderEmail     string
	FinderPhone     string

	Status Status

	FoundDate       string
	FoundTime       string
	FoundLocation   string
	CurrentLocation string
	Message         string

	RequestedAt    time.Time
	UpdatedAt      time.Time
	ResolvedAt     *time.Time
	ResolvedBy     string
	ResolutionNote string
}
