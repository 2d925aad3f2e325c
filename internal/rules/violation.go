// Package rules implements the card-placement validation engine: pure
// decision functions that report whether a card may be added to, kept
// in, or removed from a deck, and why not.
package rules

import "github.com/gearbox-games/garage/internal/card"

// Reason is the machine-readable code attached to a rule violation.
type Reason string

const (
	ReasonDuplicateGear         Reason = "duplicate_gear"
	ReasonDuplicateSidearm      Reason = "duplicate_sidearm"
	ReasonDuplicateAccessory    Reason = "duplicate_accessory"
	ReasonDuplicateUpgrade      Reason = "duplicate_upgrade"
	ReasonSameSubtype           Reason = "same_subtype"
	ReasonNotEnoughPoints       Reason = "not_enough_points"
	ReasonCrewLimitReached      Reason = "crew_limit_reached"
	ReasonStructureLimitReached Reason = "structure_limit_reached"
	ReasonWeaponCostLimit       Reason = "weapon_cost_limit"
	ReasonExclusiveLimitReached Reason = "exclusive_limit_reached"
	ReasonMissingPrerequisite   Reason = "missing_prerequisite"
	ReasonHasDependentCards     Reason = "has_dependent_cards"
	ReasonInvalidSide           Reason = "invalid_side"
)

// Violation is a rule denial. Each concrete violation carries only the
// context relevant to its reason, so callers can render a precise
// message with a type switch. A nil Violation means the operation is
// allowed. Violations are values, not errors: they describe a rule
// outcome, not a fault.
type Violation interface {
	Reason() Reason

	// isViolation keeps the set of variants closed to this package.
	isViolation()
}

// MissingPrerequisite denies a card whose prerequisite is not in the
// deck. ConflictingCard is the candidate re-labelled with the missing
// prerequisite's name, so callers can display it like any other card.
type MissingPrerequisite struct {
	Prerequisite    string
	ConflictingCard card.Card
}

func (MissingPrerequisite) Reason() Reason { return ReasonMissingPrerequisite }
func (MissingPrerequisite) isViolation()  {}

// NotEnoughPoints denies a card whose cost exceeds the remaining budget
// in one of the two point pools.
type NotEnoughPoints struct {
	Pool      card.Pool
	Cost      int
	Available int
}

func (NotEnoughPoints) Reason() Reason { return ReasonNotEnoughPoints }
func (NotEnoughPoints) isViolation()  {}

// ExclusiveLimit denies a second exclusive card.
type ExclusiveLimit struct {
	ConflictingCard card.Card
}

func (ExclusiveLimit) Reason() Reason { return ReasonExclusiveLimitReached }
func (ExclusiveLimit) isViolation()  {}

// WeaponCostLimit denies a high-cost weapon in a low-budget deck.
type WeaponCostLimit struct {
	WeaponCost int
	PointLimit int
}

func (WeaponCostLimit) Reason() Reason { return ReasonWeaponCostLimit }
func (WeaponCostLimit) isViolation()  {}

// Duplicate denies a second copy of a card whose type forbids
// duplicates (Gear, Sidearm, Accessory, Upgrade). The reason code
// depends on the card type.
type Duplicate struct {
	CardType        card.Type
	ConflictingCard card.Card
}

func (d Duplicate) Reason() Reason {
	switch d.CardType {
	case card.TypeSidearm:
		return ReasonDuplicateSidearm
	case card.TypeAccessory:
		return ReasonDuplicateAccessory
	case card.TypeUpgrade:
		return ReasonDuplicateUpgrade
	default:
		return ReasonDuplicateGear
	}
}
func (Duplicate) isViolation() {}

// SameSubtype denies a card whose subtype collides with a same-type
// card already in the deck.
type SameSubtype struct {
	Subtype         string
	ConflictingCard card.Card
}

func (SameSubtype) Reason() Reason { return ReasonSameSubtype }
func (SameSubtype) isViolation()  {}

// CrewLimit denies a second driver or gunner. CrewType is the
// candidate's subtype as given.
type CrewLimit struct {
	CrewType        string
	ConflictingCard card.Card
}

func (CrewLimit) Reason() Reason { return ReasonCrewLimitReached }
func (CrewLimit) isViolation()  {}

// StructureLimit denies a structure card, either because the deck
// already holds four structures (Area empty) or because the target
// vehicle location already has one (Area set).
type StructureLimit struct {
	Area card.Area
}

func (StructureLimit) Reason() Reason { return ReasonStructureLimitReached }
func (StructureLimit) isViolation()  {}

// InvalidSide denies placement into an area the card's side restriction
// does not cover. Sides is the card's restriction as written, possibly
// empty.
type InvalidSide struct {
	Sides string
	Area  card.Area
}

func (InvalidSide) Reason() Reason { return ReasonInvalidSide }
func (InvalidSide) isViolation()  {}

// HasDependentCards blocks removal of a card that another deck card
// lists as its prerequisite.
type HasDependentCards struct {
	ConflictingCard card.Card
}

func (HasDependentCards) Reason() Reason { return ReasonHasDependentCards }
func (HasDependentCards) isViolation()  {}

// NumberAllowedWarning reports that adding the card would exceed the
// number of physical copies the player owns. It is advisory only and
// never blocks an add.
type NumberAllowedWarning struct {
	CurrentCount int
	MaxAllowed   int
}
