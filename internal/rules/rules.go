package rules

import (
	"strings"

	"github.com/gearbox-games/garage/internal/card"
)

// Weapons costing at least weaponCostThreshold build points are only
// legal in decks whose build-point limit is at least weaponCostMinLimit.
const (
	weaponCostThreshold = 6
	weaponCostMinLimit  = 24
)

// maxStructures is the deck-wide structure limit; each vehicle location
// additionally holds at most one.
const maxStructures = 4

// ValidateCardForDeck decides whether a candidate card may join the
// deck, independent of the target area. Checks run in a fixed order and
// the first failure wins; a nil result means the card is allowed.
//
// The full raw cost of the card is checked against the remaining
// budget. A purchase is charged once no matter how many copies it
// grants, so affordability never divides by the copy count.
func ValidateCardForDeck(c card.Card, deckCards []card.Instance, limits, used card.Points) Violation {
	if v := checkPrerequisite(c, deckCards); v != nil {
		return v
	}
	if v := checkPoints(c, limits, used); v != nil {
		return v
	}
	if v := checkExclusive(c, deckCards); v != nil {
		return v
	}
	if v := checkWeaponCost(c, limits); v != nil {
		return v
	}
	if len(deckCards) > 0 {
		if v := checkSameType(c, deckCards); v != nil {
			return v
		}
	}
	if v := checkCrewLimit(c, deckCards); v != nil {
		return v
	}
	if v := checkStructureTotal(c, deckCards); v != nil {
		return v
	}
	return nil
}

// CanAddToDeck is the full admissibility check for adding a card to a
// specific area: the deck-wide rules, the one-structure-per-location
// rule, and the side restriction. An empty area skips the area-aware
// checks, for callers that have not resolved placement yet.
func CanAddToDeck(c card.Card, area card.Area, deckCards []card.Instance, limits, used card.Points) Violation {
	if v := ValidateCardForDeck(c, deckCards, limits, used); v != nil {
		return v
	}
	if area == "" {
		return nil
	}
	if v := ValidateStructurePlacement(c, area, deckCards); v != nil {
		return v
	}
	return ValidateSidePlacement(c, area)
}

// ValidateSidePlacement checks a card's side restriction against a
// target area, independent of deck contents. The turret only accepts
// cards that explicitly list T; for the other vehicle locations an
// empty restriction means unrestricted.
func ValidateSidePlacement(c card.Card, area card.Area) Violation {
	letter := card.AreaLetter(area)
	if letter == "" {
		// Crew and GearUpgrade areas carry no side restriction.
		return nil
	}
	if area == card.AreaTurret {
		if !strings.Contains(strings.ToUpper(c.Sides), "T") {
			return InvalidSide{Sides: c.Sides, Area: area}
		}
		return nil
	}
	if c.Sides == "" {
		return nil
	}
	if !c.HasSide(letter) {
		return InvalidSide{Sides: c.Sides, Area: area}
	}
	return nil
}

// CheckNumberAllowed reports a warning when the deck already holds as
// many copies of the card as the player owns. Crew cards are counted by
// name and subtype, everything else by name alone. A nil result means
// no warning.
func CheckNumberAllowed(c card.Card, deckCards []card.Instance) *NumberAllowedWarning {
	if c.NumberAllowed <= 0 {
		return nil
	}
	count := 0
	for _, dc := range deckCards {
		if !card.SameName(dc.Name, c.Name) {
			continue
		}
		if c.Type == card.TypeCrew && !strings.EqualFold(dc.Subtype, c.Subtype) {
			continue
		}
		count++
	}
	if count >= c.NumberAllowed {
		return &NumberAllowedWarning{CurrentCount: count, MaxAllowed: c.NumberAllowed}
	}
	return nil
}

// CanRemoveFromDeck decides whether a deck card may be removed. Removal
// is blocked while any other deck card names it as a prerequisite.
func CanRemoveFromDeck(target card.Instance, deckCards []card.Instance) Violation {
	for _, dc := range deckCards {
		if dc.InstanceID == target.InstanceID {
			continue
		}
		if dc.Prerequisite != "" && card.SameName(dc.Prerequisite, target.Name) {
			return HasDependentCards{ConflictingCard: dc.Card}
		}
	}
	return nil
}

func checkPrerequisite(c card.Card, deckCards []card.Instance) Violation {
	if c.Prerequisite == "" {
		return nil
	}
	for _, dc := range deckCards {
		if card.SameName(dc.Name, c.Prerequisite) {
			return nil
		}
	}
	// The conflicting card is the candidate renamed to the missing
	// prerequisite, so the caller can render it like any other card.
	missing := c
	missing.Name = c.Prerequisite
	return MissingPrerequisite{Prerequisite: c.Prerequisite, ConflictingCard: missing}
}

func checkPoints(c card.Card, limits, used card.Points) Violation {
	if avail := limits.Build - used.Build; c.BuildPointCost > avail {
		return NotEnoughPoints{Pool: card.PoolBuild, Cost: c.BuildPointCost, Available: avail}
	}
	if avail := limits.Crew - used.Crew; c.CrewPointCost > avail {
		return NotEnoughPoints{Pool: card.PoolCrew, Cost: c.CrewPointCost, Available: avail}
	}
	return nil
}

func checkExclusive(c card.Card, deckCards []card.Instance) Violation {
	if !c.Exclusive {
		return nil
	}
	for _, dc := range deckCards {
		if dc.Exclusive {
			return ExclusiveLimit{ConflictingCard: dc.Card}
		}
	}
	return nil
}

func checkWeaponCost(c card.Card, limits card.Points) Violation {
	if c.Type != card.TypeWeapon {
		return nil
	}
	if c.BuildPointCost >= weaponCostThreshold && limits.Build < weaponCostMinLimit {
		return WeaponCostLimit{WeaponCost: c.BuildPointCost, PointLimit: limits.Build}
	}
	return nil
}

// checkSameType enforces the per-type duplicate rules: Gear and Sidearm
// cards may not repeat a name or (real) image, Accessory cards may not
// repeat a name, Upgrade cards may not repeat a name or subtype. Gear
// and Sidearm additionally reject a subtype collision.
func checkSameType(c card.Card, deckCards []card.Instance) Violation {
	switch c.Type {
	case card.TypeGear, card.TypeSidearm:
		for _, dc := range deckCards {
			if dc.Type != c.Type {
				continue
			}
			if card.SameName(dc.Name, c.Name) {
				return Duplicate{CardType: c.Type, ConflictingCard: dc.Card}
			}
			if !card.IsPlaceholderImage(c.ImageURL) &&
				!card.IsPlaceholderImage(dc.ImageURL) &&
				dc.ImageURL == c.ImageURL {
				return Duplicate{CardType: c.Type, ConflictingCard: dc.Card}
			}
		}
		for _, dc := range deckCards {
			if dc.Type == c.Type && card.SameSubtype(dc.Subtype, c.Subtype) {
				return SameSubtype{Subtype: c.Subtype, ConflictingCard: dc.Card}
			}
		}
	case card.TypeAccessory:
		for _, dc := range deckCards {
			if dc.Type == card.TypeAccessory && card.SameName(dc.Name, c.Name) {
				return Duplicate{CardType: c.Type, ConflictingCard: dc.Card}
			}
		}
	case card.TypeUpgrade:
		for _, dc := range deckCards {
			if dc.Type == card.TypeUpgrade && card.SameName(dc.Name, c.Name) {
				return Duplicate{CardType: c.Type, ConflictingCard: dc.Card}
			}
		}
		for _, dc := range deckCards {
			if dc.Type == card.TypeUpgrade && card.SameSubtype(dc.Subtype, c.Subtype) {
				return SameSubtype{Subtype: c.Subtype, ConflictingCard: dc.Card}
			}
		}
	}
	return nil
}

func checkCrewLimit(c card.Card, deckCards []card.Instance) Violation {
	if c.Type != card.TypeCrew {
		return nil
	}
	sub := strings.ToLower(c.Subtype)
	if sub != "driver" && sub != "gunner" {
		return nil
	}
	for _, dc := range deckCards {
		if dc.Type == card.TypeCrew && strings.EqualFold(dc.Subtype, c.Subtype) {
			return CrewLimit{CrewType: c.Subtype, ConflictingCard: dc.Card}
		}
	}
	return nil
}

func checkStructureTotal(c card.Card, deckCards []card.Instance) Violation {
	if c.Type != card.TypeStructure {
		return nil
	}
	count := 0
	for _, dc := range deckCards {
		if dc.Type == card.TypeStructure {
			count++
		}
	}
	if count >= maxStructures {
		return StructureLimit{}
	}
	return nil
}

// ValidateStructurePlacement enforces at most one structure per vehicle
// location. Only Front/Back/Left/Right count as locations here.
func ValidateStructurePlacement(c card.Card, area card.Area, deckCards []card.Instance) Violation {
	if c.Type != card.TypeStructure {
		return nil
	}
	switch area {
	case card.AreaFront, card.AreaBack, card.AreaLeft, card.AreaRight:
	default:
		return nil
	}
	for _, dc := range deckCards {
		if dc.Type == card.TypeStructure && dc.Area == area {
			return StructureLimit{Area: area}
		}
	}
	return nil
}
