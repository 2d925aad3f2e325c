// Package card defines the card data model shared by the catalog, the
// validation rules, and the deck store: card templates, placed deck
// instances, placement areas, point pools, and side restrictions.
package card

import "strings"

// Type identifies the game-rule category of a card.
type Type string

const (
	TypeWeapon    Type = "Weapon"
	TypeUpgrade   Type = "Upgrade"
	TypeAccessory Type = "Accessory"
	TypeStructure Type = "Structure"
	TypeCrew      Type = "Crew"
	TypeGear      Type = "Gear"
	TypeSidearm   Type = "Sidearm"
)

// Area identifies a placement zone on the vehicle.
type Area string

const (
	AreaFront       Area = "Front"
	AreaBack        Area = "Back"
	AreaLeft        Area = "Left"
	AreaRight       Area = "Right"
	AreaTurret      Area = "Turret"
	AreaCrew        Area = "Crew"
	AreaGearUpgrade Area = "GearUpgrade"
)

// Pool identifies which point budget a cost is drawn from.
type Pool string

const (
	PoolBuild Pool = "BuildPoints"
	PoolCrew  Pool = "CrewPoints"
)

// Points holds a build-point and crew-point pair, used both for deck
// limits and for running totals.
type Points struct {
	Build int `json:"buildPoints"`
	Crew  int `json:"crewPoints"`
}

// Card is a catalog entry: the immutable template a deck instance is
// cloned from.
type Card struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
	Type     Type   `json:"type"`

	// Subtype is free text, compared case-insensitively. Empty means
	// "no subtype".
	Subtype string `json:"subtype,omitempty"`

	BuildPointCost int `json:"buildPointCost"`
	CrewPointCost  int `json:"crewPointCost"`

	// NumberAllowed is the max physical copies a player owns. Exceeding
	// it produces a warning, never a hard denial.
	NumberAllowed int `json:"numberAllowed,omitempty"`

	// Copies is how many deck instances one purchase grants. The cost is
	// charged once for the whole purchase.
	Copies int `json:"copies,omitempty"`

	// Exclusive cards are limited to one per deck across all types.
	Exclusive bool `json:"exclusive,omitempty"`

	// Prerequisite names a card that must already be in the deck
	// (matched by name, case-insensitive) before this one can be added.
	Prerequisite string `json:"prerequisite,omitempty"`

	// Sides restricts which vehicle locations accept this card, as a
	// subset of the letters F, B, L, R, T. Empty means unrestricted.
	Sides string `json:"sides,omitempty"`

	Source string `json:"source,omitempty"`
}

// Instance is a card placed in a deck: the catalog template plus
// deck-scoped identity, placement, and gameplay state.
type Instance struct {
	Card

	// InstanceID is unique within the deck, so duplicates of the same
	// catalog card can coexist.
	InstanceID string `json:"instanceId"`

	// OriginID is the catalog id this instance was cloned from. It is
	// set at creation time and never derived from other fields.
	OriginID string `json:"originId"`

	Area   Area `json:"area"`
	Damage int  `json:"damage"`

	// CostCharged marks the instance whose purchase actually deducted
	// points. Extra copies granted by a multi-copy purchase carry false.
	CostCharged bool `json:"costCharged"`
}

// PoolForType returns the point pool a card type draws from. Crew and
// sidearms cost crew points; everything else costs build points.
func PoolForType(t Type) Pool {
	switch t {
	case TypeCrew, TypeSidearm:
		return PoolCrew
	default:
		return PoolBuild
	}
}

// DefaultArea returns the placement zone a card type lands in when the
// caller does not specify one.
func DefaultArea(t Type) Area {
	switch t {
	case TypeCrew, TypeSidearm:
		return AreaCrew
	case TypeGear, TypeUpgrade:
		return AreaGearUpgrade
	default:
		return AreaFront
	}
}

// AreaLetter maps a vehicle-location area to its side letter. Areas
// without a side restriction (Crew, GearUpgrade) return an empty string.
func AreaLetter(a Area) string {
	switch a {
	case AreaFront:
		return "F"
	case AreaBack:
		return "B"
	case AreaLeft:
		return "L"
	case AreaRight:
		return "R"
	case AreaTurret:
		return "T"
	default:
		return ""
	}
}

// HasSide reports whether the card's side restriction includes the given
// letter. An empty restriction allows every side.
func (c Card) HasSide(letter string) bool {
	if c.Sides == "" {
		return true
	}
	return strings.Contains(strings.ToUpper(c.Sides), strings.ToUpper(letter))
}

// IsPlaceholderImage reports whether an image URL points at generic
// stand-in art rather than uploaded card art. Placeholder images are
// ignored by duplicate detection.
func IsPlaceholderImage(url string) bool {
	return url == "" ||
		strings.Contains(url, "Blank_") ||
		strings.Contains(url, "placeholders/")
}

// Cost returns the card's single relevant cost: the build-point cost if
// set, otherwise the crew-point cost.
func (c Card) Cost() int {
	if c.BuildPointCost != 0 {
		return c.BuildPointCost
	}
	return c.CrewPointCost
}

// SameName compares two card names case-insensitively.
func SameName(a, b string) bool {
	return strings.EqualFold(a, b)
}

// SameSubtype compares two subtypes case-insensitively. Two empty
// subtypes do not count as matching.
func SameSubtype(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(a, b)
}
