package pets

import "time"

// Status define el estado del caso de la mascota.
// @Enum registered, lost, found, found_by_community, reunited
type Status string

const (
	StatusRegistered       Status = "registered"
	StatusLost             Status = "lost"
	StatusFound            Status = "found"
	StatusFoundByCommunity Status = "found_by_community"
	StatusReunited         Status = "reunited"
)

// Valid es el guard que corre antes de cualquier escritura de status.
func (s Status) Valid() bool {
	switch s {
	case StatusRegistered, StatusLost, StatusFound, StatusFoundByCommunity, StatusReunited:
		return true
	}
	return false
}

// Public indica si el status tiene listado público.
func (s Status) Public() bool {
	return s.Valid() && s != StatusRegistered
}

// PublicStatuses son los listados que refresca el job del mirror.
var PublicStatuses = []Status{StatusLost, StatusFound, StatusFoundByCommunity, StatusReunited}

// Profile son los datos descriptivos; solo los cambia el owner.
type Profile struct {
	Type            string `json:"type,omitempty"` // dog, cat, ...
	Name            string `json:"name" validate:"required,max=120"`
	Breed           string `json:"breed,omitempty"`
	Age             string `json:"age,omitempty"`
	Gender          string `json:"gender,omitempty"`
	Color           string `json:"color,omitempty"`
	Size            string `json:"size,omitempty"`
	MicrochipID     string `json:"microchipId,omitempty"`
	Collar          string `json:"collar,omitempty"`
	Description     string `json:"description,omitempty" validate:"max=2000"`
	SpecialFeatures string `json:"specialFeatures,omitempty"`
	ImageURL        string `json:"imageUrl,omitempty"`
}

// LostReport se exige en registered -> lost.
type LostReport struct {
	LastSeenDate     string `json:"lastSeenDate" validate:"required,datetime=2006-01-02"`
	LastSeenTime     string `json:"lastSeenTime" validate:"required,datetime=15:04"`
	LastSeenLocation string `json:"lastSeenLocation" validate:"required"`
	Reward           string `json:"reward,omitempty"`
	ContactName      string `json:"contactName" validate:"required"`
	ContactPhone     string `json:"contactPhone" validate:"required"`
	ContactEmail     string `json:"contactEmail,omitempty" validate:"omitempty,email"`
}

// FoundReport se exige en registered -> found y lost -> found_by_community.
type FoundReport struct {
	FoundDate       string `json:"foundDate" validate:"required,datetime=2006-01-02"`
	FoundTime       string `json:"foundTime" validate:"required,datetime=15:04"`
	FoundLocation   string `json:"foundLocation" validate:"required"`
	CurrentLocation string `json:"currentLocation" validate:"required"`
	ContactName     string `json:"contactName" validate:"required"`
	ContactPhone    string `json:"contactPhone" validate:"required"`
	ContactEmail    string `json:"contactEmail,omitempty" validate:"omitempty,email"`
}

// Claim queda sobre el registro original cuando la comunidad lo marca encontrado.
type Claim struct {
	FinderID    string    `json:"finderId"`
	FinderName  string    `json:"finderName,omitempty"`
	FinderEmail string    `json:"finderEmail,omitempty"`
	ClaimedAt   time.Time `json:"claimedAt"`
	RequestID   string    `json:"requestId"`
}

// Pet es el documento completo; se lee y escribe entero.
// Los campos de reportes previos no se limpian al cambiar de status.
type Pet struct {
	ID     string `json:"id"`
	Status Status `json:"status"`

	OwnerID    string `json:"ownerId"`
	OwnerName  string `json:"ownerName,omitempty"`
	OwnerEmail string `json:"ownerEmail,omitempty"`
	FinderID   string `json:"finderId,omitempty"`

	Profile

	Lost  *LostReport  `json:"lostReport,omitempty"`
	Found *FoundReport `json:"foundReport,omitempty"`
	Claim *Claim       `json:"claim,omitempty"`

	// Solo en la copia legacy del finder.
	OriginalPetID   string `json:"originalPetId,omitempty"`
	OriginalOwnerID string `json:"originalOwnerId,omitempty"`

	ReunitedAt *time.Time `json:"reunitedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// IsFinder: finder directo o autor del claim.
func (p Pet) IsFinder(userID string) bool {
	if userID == "" {
		return false
	}
	if p.FinderID == userID {
		return true
	}
	return p.Claim != nil && p.Claim.FinderID == userID
}

// Actor es quien dispara la operación. ID vacío = anónimo.
type Actor struct {
	ID    string
	Name  string
	Email string
}

func (a Actor) Authenticated() bool {
	return a.ID != ""
}

// Role con el que quedó registrado un cambio en el timeline.
type Role string

const (
	RoleOwner     Role = "owner"
	RoleCommunity Role = "community"
	RoleSystem    Role = "system"
)
