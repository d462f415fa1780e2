package pets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petpals/internal/platform/apperr"
)

var allStatuses = []Status{StatusRegistered, StatusLost, StatusFound, StatusFoundByCommunity, StatusReunited}

func validLost() *LostReport {
	return &LostReport{
		LastSeenDate:     "2026-01-10",
		LastSeenTime:     "18:30",
		LastSeenLocation: "Main St",
		ContactName:      "Ana",
		ContactPhone:     "555-0100",
	}
}

func validFound() *FoundReport {
	return &FoundReport{
		FoundDate:       "2026-01-11",
		FoundTime:       "09:15",
		FoundLocation:   "Park Ave",
		CurrentLocation: "Shelter",
		ContactName:     "Bob",
		ContactPhone:    "555-0199",
	}
}

func TestApply_AllPairsAndActors(t *testing.T) {
	owner := Actor{ID: "owner-1", Name: "Ana"}
	stranger := Actor{ID: "stranger-1", Name: "Bob"}
	anon := Actor{}
	now := time.Date(2026, 1, 12, 10, 0, 0, 0, time.UTC)

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			for _, actor := range []Actor{owner, stranger, anon} {
				from, to, actor := from, to, actor
				name := string(from) + "->" + string(to) + "/" + actor.ID
				t.Run(name, func(t *testing.T) {
					p := Pet{ID: "pet-1", Status: from, OwnerID: owner.ID, Profile: Profile{Name: "Rex"}}
					req := TransitionRequest{To: to, LostReport: validLost(), FoundReport: validFound()}

					got, err := Apply(p, actor, req, now)

					r, isEdge := transitions[edge{from, to}]
					switch {
					case !isEdge:
						require.Error(t, err)
						assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
					case !actor.Authenticated():
						assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
					case r.actor == ownerOnly && actor.ID != owner.ID,
						r.actor == communityOnly && actor.ID == owner.ID:
						assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))
					default:
						require.NoError(t, err)
						assert.Equal(t, to, got.Status)
						assert.Equal(t, now, got.UpdatedAt)
						return
					}
					assert.Equal(t, p, got, "failed transition must not mutate the pet")
				})
			}
		}
	}
}

func TestApply_RequiresReports(t *testing.T) {
	owner := Actor{ID: "owner-1"}
	p := Pet{ID: "pet-1", Status: StatusRegistered, OwnerID: owner.ID}

	_, err := Apply(p, owner, TransitionRequest{To: StatusLost}, time.Now())
	require.Error(t, err)
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "lostReport", ae.Field)

	bad := validLost()
	bad.LastSeenLocation = ""
	_, err = Apply(p, owner, TransitionRequest{To: StatusLost, LostReport: bad}, time.Now())
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "lostReport.lastSeenLocation", ae.Field)

	_, err = Apply(p, owner, TransitionRequest{To: StatusFound}, time.Now())
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "foundReport", ae.Field)
}

func TestApply_CommunityClaim(t *testing.T) {
	now := time.Date(2026, 1, 12, 10, 0, 0, 0, time.UTC)
	p := Pet{ID: "pet-1", Status: StatusLost, OwnerID: "owner-1"}
	finder := Actor{ID: "finder-1", Name: "Bob", Email: "bob@example.com"}

	got, err := Apply(p, finder, TransitionRequest{To: StatusFoundByCommunity, FoundReport: validFound()}, now)
	require.NoError(t, err)

	assert.Equal(t, StatusFoundByCommunity, got.Status)
	assert.Equal(t, "owner-1", got.OwnerID, "owner must not change on a community claim")
	assert.Equal(t, "finder-1", got.FinderID)
	require.NotNil(t, got.Claim)
	assert.Equal(t, "bob@example.com", got.Claim.FinderEmail)
	assert.Equal(t, now, got.Claim.ClaimedAt)
	assert.Equal(t, "Park Ave", got.Found.FoundLocation)
}

func TestApply_ReunitedSetsTimestamp(t *testing.T) {
	now := time.Date(2026, 1, 12, 10, 0, 0, 0, time.UTC)
	p := Pet{ID: "pet-1", Status: StatusLost, OwnerID: "owner-1"}

	got, err := Apply(p, Actor{ID: "owner-1"}, TransitionRequest{To: StatusReunited}, now)
	require.NoError(t, err)
	require.NotNil(t, got.ReunitedAt)
	assert.Equal(t, now, *got.ReunitedAt)
}

func TestApply_UnknownStatus(t *testing.T) {
	owner := Actor{ID: "owner-1"}

	_, err := Apply(Pet{Status: StatusRegistered, OwnerID: owner.ID}, owner, TransitionRequest{To: "adopted"}, time.Now())
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = Apply(Pet{Status: "archived", OwnerID: owner.ID}, owner, TransitionRequest{To: StatusLost, LostReport: validLost()}, time.Now())
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestAllowed(t *testing.T) {
	assert.ElementsMatch(t, []Status{StatusLost, StatusFound}, Allowed(StatusRegistered))
	assert.ElementsMatch(t, []Status{StatusFoundByCommunity, StatusReunited}, Allowed(StatusLost))
	assert.ElementsMatch(t, []Status{StatusReunited}, Allowed(StatusFound))
	assert.ElementsMatch(t, []Status{StatusLost, StatusFound}, Allowed(StatusReunited))
}

func TestProject(t *testing.T) {
	reunited := time.Now()
	p := Pet{
		ID:         "pet-1",
		OwnerID:    "owner-1",
		OwnerEmail: "ana@example.com",
		FinderID:   "finder-1",
		Claim:      &Claim{FinderID: "finder-1"},
		ReunitedAt: &reunited,
	}

	anon := Project(p, Actor{})
	assert.Empty(t, anon.FinderID)
	assert.Nil(t, anon.Claim)
	assert.Nil(t, anon.ReunitedAt)
	assert.Empty(t, anon.OwnerEmail)

	stranger := Project(p, Actor{ID: "stranger"})
	assert.Empty(t, stranger.FinderID)
	assert.Equal(t, "ana@example.com", stranger.OwnerEmail)

	finder := Project(p, Actor{ID: "finder-1"})
	assert.Equal(t, "finder-1", finder.FinderID)
	assert.NotNil(t, finder.Claim)

	owner := Project(p, Actor{ID: "owner-1"})
	assert.NotNil(t, owner.ReunitedAt)
}
