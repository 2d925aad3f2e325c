package deck

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gearbox-games/garage/internal/card"
	"github.com/gearbox-games/garage/internal/rules"
)

// CardResolver looks up catalog cards by id. The catalog store
// satisfies it.
type CardResolver interface {
	CardByID(id string) (card.Card, bool)
}

// Store owns one deck and mediates every mutation through the
// validation rules. Each mutating operation is a single atomic
// validate-then-apply step: when it returns a non-nil Violation the
// deck is untouched. Stores are plain injected values, not globals, so
// tests and multi-deck callers can run isolated instances.
type Store struct {
	catalog CardResolver
	log     zerolog.Logger
	deck    Deck
}

// NewStore wraps an existing deck in a store.
func NewStore(catalog CardResolver, log zerolog.Logger, d Deck) *Store {
	if d.Cards == nil {
		d.Cards = []card.Instance{}
	}
	return &Store{catalog: catalog, log: log, deck: d}
}

// Deck returns a snapshot copy of the current deck.
func (s *Store) Deck() Deck {
	return s.deck.clone()
}

// CanAdd reports whether the card could be added to the given area
// right now, without mutating anything. An empty area means "infer from
// type", matching AddCard.
func (s *Store) CanAdd(c card.Card, area card.Area) rules.Violation {
	if area == "" {
		area = card.DefaultArea(c.Type)
	}
	return rules.CanAddToDeck(c, area, s.deck.Cards, s.deck.PointLimits, s.deck.PointsUsed)
}

// NumberAllowedWarning returns the advisory owned-copies warning for a
// catalog card, or nil.
func (s *Store) NumberAllowedWarning(catalogID string) (*rules.NumberAllowedWarning, error) {
	c, ok := s.catalog.CardByID(catalogID)
	if !ok {
		return nil, fmt.Errorf("catalog card %s not found", catalogID)
	}
	return rules.CheckNumberAllowed(c, s.deck.Cards), nil
}

// AddCard purchases a catalog card into the deck. The cost is charged
// once; a card granting multiple copies adds the extra instances in the
// same operation with no further charge. An empty area infers placement
// from the card type. A non-nil Violation means the deck was not
// changed.
func (s *Store) AddCard(catalogID string, area card.Area) (rules.Violation, error) {
	c, ok := s.catalog.CardByID(catalogID)
	if !ok {
		return nil, fmt.Errorf("catalog card %s not found", catalogID)
	}
	if area == "" {
		area = card.DefaultArea(c.Type)
	}

	if v := rules.CanAddToDeck(c, area, s.deck.Cards, s.deck.PointLimits, s.deck.PointsUsed); v != nil {
		s.log.Debug().
			Str("card", c.Name).
			Str("area", string(area)).
			Str("reason", string(v.Reason())).
			Msg("add denied")
		return v, nil
	}

	copies := c.Copies
	if copies < 1 {
		copies = 1
	}
	for i := 0; i < copies; i++ {
		s.deck.Cards = append(s.deck.Cards, card.Instance{
			Card:        c,
			InstanceID:  uuid.NewString(),
			OriginID:    c.ID,
			Area:        area,
			CostCharged: i == 0,
		})
	}
	s.deck.PointsUsed.Build += c.BuildPointCost
	s.deck.PointsUsed.Crew += c.CrewPointCost

	s.log.Info().
		Str("card", c.Name).
		Str("area", string(area)).
		Int("copies", copies).
		Msg("card added")
	return nil, nil
}

// RemoveCard removes a deck card and up to copies-1 of its sibling
// instances from the same purchase origin. Cost is refunded only for
// removed instances that actually charged it, so the point totals stay
// equal to the sum of charged costs. Removal is blocked while another
// card depends on the target as a prerequisite.
func (s *Store) RemoveCard(instanceID string, copies int) (rules.Violation, error) {
	idx := s.deck.findCard(instanceID)
	if idx < 0 {
		return nil, fmt.Errorf("deck card %s not found", instanceID)
	}
	target := s.deck.Cards[idx]

	if v := rules.CanRemoveFromDeck(target, s.deck.Cards); v != nil {
		s.log.Debug().
			Str("card", target.Name).
			Str("reason", string(v.Reason())).
			Msg("remove denied")
		return v, nil
	}

	if copies < 1 {
		copies = 1
	}

	// The targeted instance goes first, then siblings from the same
	// catalog origin until the requested count is reached.
	removed := map[string]bool{instanceID: true}
	for _, dc := range s.deck.Cards {
		if len(removed) >= copies {
			break
		}
		if dc.InstanceID != instanceID && dc.OriginID == target.OriginID {
			removed[dc.InstanceID] = true
		}
	}

	kept := s.deck.Cards[:0]
	for _, dc := range s.deck.Cards {
		if !removed[dc.InstanceID] {
			kept = append(kept, dc)
			continue
		}
		if dc.CostCharged {
			s.deck.PointsUsed.Build -= dc.BuildPointCost
			s.deck.PointsUsed.Crew -= dc.CrewPointCost
		}
	}
	s.deck.Cards = kept

	s.log.Info().Str("card", target.Name).Int("removed", len(removed)).Msg("card removed")
	return nil, nil
}

// RemoveAllOfOrigin removes every instance cloned from the given
// catalog card and refunds each charged purchase. It is the cascade
// hook for catalog deletions and bypasses the prerequisite guard, since
// the card no longer exists to depend on. Returns how many instances
// were removed.
func (s *Store) RemoveAllOfOrigin(originID string) int {
	kept := s.deck.Cards[:0]
	removed := 0
	for _, dc := range s.deck.Cards {
		if dc.OriginID != originID {
			kept = append(kept, dc)
			continue
		}
		if dc.CostCharged {
			s.deck.PointsUsed.Build -= dc.BuildPointCost
			s.deck.PointsUsed.Crew -= dc.CrewPointCost
		}
		removed++
	}
	s.deck.Cards = kept
	if removed > 0 {
		s.log.Info().Str("origin", originID).Int("removed", removed).Msg("origin purged")
	}
	return removed
}

// MoveCard relocates a deck card to another area. The side restriction
// and the one-structure-per-location rule are re-checked against the
// target; points never change on a move.
func (s *Store) MoveCard(instanceID string, area card.Area) (rules.Violation, error) {
	idx := s.deck.findCard(instanceID)
	if idx < 0 {
		return nil, fmt.Errorf("deck card %s not found", instanceID)
	}
	dc := s.deck.Cards[idx]
	if dc.Area == area {
		return nil, nil
	}

	if v := rules.ValidateSidePlacement(dc.Card, area); v != nil {
		return v, nil
	}
	if dc.Type == card.TypeStructure {
		others := make([]card.Instance, 0, len(s.deck.Cards)-1)
		for _, other := range s.deck.Cards {
			if other.InstanceID != instanceID {
				others = append(others, other)
			}
		}
		if v := rules.ValidateStructurePlacement(dc.Card, area, others); v != nil {
			return v, nil
		}
	}

	s.deck.Cards[idx].Area = area
	return nil, nil
}

// ReorderCard moves a deck card to a new index in the card list. Pure
// presentation ordering, no rule checks.
func (s *Store) ReorderCard(instanceID string, newIndex int) error {
	idx := s.deck.findCard(instanceID)
	if idx < 0 {
		return fmt.Errorf("deck card %s not found", instanceID)
	}
	if newIndex < 0 {
		newIndex = 0
	}
	if newIndex >= len(s.deck.Cards) {
		newIndex = len(s.deck.Cards) - 1
	}
	dc := s.deck.Cards[idx]
	s.deck.Cards = append(s.deck.Cards[:idx], s.deck.Cards[idx+1:]...)
	s.deck.Cards = append(s.deck.Cards[:newIndex], append([]card.Instance{dc}, s.deck.Cards[newIndex:]...)...)
	return nil
}

// SetDamage sets the damage counter on a deck card, clamped at zero.
// Damage is gameplay tracking and is never validated against cost.
func (s *Store) SetDamage(instanceID string, damage int) error {
	idx := s.deck.findCard(instanceID)
	if idx < 0 {
		return fmt.Errorf("deck card %s not found", instanceID)
	}
	if damage < 0 {
		damage = 0
	}
	s.deck.Cards[idx].Damage = damage
	return nil
}

// SetPointLimits replaces the deck's point limits and marks the deck
// custom. No validation runs; existing cards stay.
func (s *Store) SetPointLimits(limits card.Points) {
	s.deck.PointLimits = limits
	s.deck.Division = DivisionCustom
}

// SetDivision sets a numeric division and derives its point limits.
func (s *Store) SetDivision(division string) error {
	limits, ok := LimitsForDivision(division)
	if !ok {
		return fmt.Errorf("invalid division %q", division)
	}
	s.deck.Division = division
	s.deck.PointLimits = limits
	return nil
}

// SetName renames the deck.
func (s *Store) SetName(name string) {
	s.deck.Name = name
}

// SetBackground replaces the deck's background image.
func (s *Store) SetBackground(imageURL string) {
	s.deck.BackgroundImage = imageURL
}

// Reset replaces the deck with a fresh one for the same division,
// optionally seeded with a starter card whose cost is applied through
// the normal add path. Seeding failures are logged and ignored so a
// reset always yields a usable deck.
func (s *Store) Reset(name, division, starterCatalogID string) {
	s.deck = New(name, division)
	if starterCatalogID == "" {
		return
	}
	if v, err := s.AddCard(starterCatalogID, ""); err != nil || v != nil {
		s.log.Warn().Str("starter", starterCatalogID).Msg("starter card not seeded")
	}
}
