package card

import (
	"sort"
	"strings"
)

// typeRank orders card types for display. Unknown types sort last.
var typeRank = map[Type]int{
	TypeCrew:      1,
	TypeSidearm:   3,
	TypeGear:      4,
	TypeAccessory: 5,
	TypeUpgrade:   6,
	TypeStructure: 7,
	TypeWeapon:    8,
}

const unknownTypeRank = 99

// rankOf returns the display rank for a card type.
func rankOf(t Type) int {
	if r, ok := typeRank[t]; ok {
		return r
	}
	return unknownTypeRank
}

// compareFold is a case-insensitive string compare used for subtype and
// name tie-breaks.
func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// Compare is the display ordering over cards: type precedence first,
// then per-type tie-breaks, then name. It returns a negative number if a
// sorts before b, zero if they compare equal, positive otherwise.
//
// Tie-breaks within a type:
//   - Crew: a "driver" subtype sorts before every other subtype.
//   - Upgrade: subtype, then cost ascending.
//   - All other types: cost ascending, then subtype.
func Compare(a, b Card) int {
	if ra, rb := rankOf(a.Type), rankOf(b.Type); ra != rb {
		return ra - rb
	}

	if a.Type == TypeCrew {
		aDriver := strings.EqualFold(a.Subtype, "driver")
		bDriver := strings.EqualFold(b.Subtype, "driver")
		if aDriver != bDriver {
			if aDriver {
				return -1
			}
			return 1
		}
	}

	if a.Type == TypeUpgrade {
		if c := compareFold(a.Subtype, b.Subtype); c != 0 {
			return c
		}
		if a.Cost() != b.Cost() {
			return a.Cost() - b.Cost()
		}
	} else {
		if a.Cost() != b.Cost() {
			return a.Cost() - b.Cost()
		}
		if c := compareFold(a.Subtype, b.Subtype); c != 0 {
			return c
		}
	}

	return compareFold(a.Name, b.Name)
}

// SortCards sorts a card list in place with the display ordering. The
// sort is stable, so equal-key cards keep their insertion order.
func SortCards(cards []Card) {
	sort.SliceStable(cards, func(i, j int) bool {
		return Compare(cards[i], cards[j]) < 0
	})
}

// SortInstances sorts placed deck cards with the same display ordering.
func SortInstances(cards []Instance) {
	sort.SliceStable(cards, func(i, j int) bool {
		return Compare(cards[i].Card, cards[j].Card) < 0
	})
}
