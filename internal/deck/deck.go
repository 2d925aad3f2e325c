// Package deck holds the deck model and the state store that owns it.
// All mutations funnel through the store, which re-validates against
// the placement rules before touching state and keeps the point
// accounting consistent.
package deck

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/gearbox-games/garage/internal/card"
)

// DivisionCustom marks a deck whose point limits were set by hand
// rather than derived from a division tier.
const DivisionCustom = "custom"

// Deck is a single vehicle's loadout plus point accounting.
type Deck struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Division        string          `json:"division"`
	BackgroundImage string          `json:"backgroundImage,omitempty"`
	Cards           []card.Instance `json:"cards"`
	PointLimits     card.Points     `json:"pointLimits"`
	PointsUsed      card.Points     `json:"pointsUsed"`
}

// New returns an empty deck for the given division. Numeric divisions
// derive their point limits; anything else starts at zero limits and is
// treated as custom.
func New(name, division string) Deck {
	d := Deck{
		ID:       uuid.NewString(),
		Name:     name,
		Division: division,
		Cards:    []card.Instance{},
	}
	if limits, ok := LimitsForDivision(division); ok {
		d.PointLimits = limits
	} else {
		d.Division = DivisionCustom
	}
	return d
}

// LimitsForDivision derives point limits from a numeric division tier:
// four build points and one crew point per division. The second return
// is false for "custom" or non-numeric divisions.
func LimitsForDivision(division string) (card.Points, bool) {
	n, err := strconv.Atoi(division)
	if err != nil || n <= 0 {
		return card.Points{}, false
	}
	return card.Points{Build: n * 4, Crew: n}, true
}

// findCard returns the index of the instance with the given id, or -1.
func (d *Deck) findCard(instanceID string) int {
	for i := range d.Cards {
		if d.Cards[i].InstanceID == instanceID {
			return i
		}
	}
	return -1
}

// clone returns a deep copy of the deck, so snapshots handed to callers
// cannot alias store state.
func (d *Deck) clone() Deck {
	out := *d
	out.Cards = make([]card.Instance, len(d.Cards))
	copy(out.Cards, d.Cards)
	return out
}
