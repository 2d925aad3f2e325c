package card

import "testing"

func TestPoolForType(t *testing.T) {
	tests := []struct {
		typ  Type
		want Pool
	}{
		{TypeCrew, PoolCrew},
		{TypeSidearm, PoolCrew},
		{TypeWeapon, PoolBuild},
		{TypeUpgrade, PoolBuild},
		{TypeAccessory, PoolBuild},
		{TypeStructure, PoolBuild},
		{TypeGear, PoolBuild},
	}
	for _, tt := range tests {
		if got := PoolForType(tt.typ); got != tt.want {
			t.Errorf("PoolForType(%v) = %v, want %v", tt.typ, got, tt.want)
		}
	}
}

func TestDefaultArea(t *testing.T) {
	tests := []struct {
		typ  Type
		want Area
	}{
		{TypeCrew, AreaCrew},
		{TypeSidearm, AreaCrew},
		{TypeGear, AreaGearUpgrade},
		{TypeUpgrade, AreaGearUpgrade},
		{TypeWeapon, AreaFront},
		{TypeStructure, AreaFront},
		{TypeAccessory, AreaFront},
	}
	for _, tt := range tests {
		if got := DefaultArea(tt.typ); got != tt.want {
			t.Errorf("DefaultArea(%v) = %v, want %v", tt.typ, got, tt.want)
		}
	}
}

func TestAreaLetter(t *testing.T) {
	tests := []struct {
		area Area
		want string
	}{
		{AreaFront, "F"},
		{AreaBack, "B"},
		{AreaLeft, "L"},
		{AreaRight, "R"},
		{AreaTurret, "T"},
		{AreaCrew, ""},
		{AreaGearUpgrade, ""},
	}
	for _, tt := range tests {
		if got := AreaLetter(tt.area); got != tt.want {
			t.Errorf("AreaLetter(%v) = %q, want %q", tt.area, got, tt.want)
		}
	}
}

func TestHasSide(t *testing.T) {
	tests := []struct {
		name   string
		sides  string
		letter string
		want   bool
	}{
		{"empty restriction allows everything", "", "T", true},
		{"listed side", "FLR", "L", true},
		{"unlisted side", "FLR", "B", false},
		{"case-insensitive restriction", "flr", "F", true},
		{"case-insensitive query", "FLR", "r", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Card{Sides: tt.sides}
			if got := c.HasSide(tt.letter); got != tt.want {
				t.Errorf("HasSide(%q) with sides %q = %v, want %v", tt.letter, tt.sides, got, tt.want)
			}
		})
	}
}

func TestIsPlaceholderImage(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"", true},
		{"/images/placeholders/gear.png", true},
		{"/images/Blank_Weapon.png", true},
		{"/images/cards/machine-gun.png", false},
	}
	for _, tt := range tests {
		if got := IsPlaceholderImage(tt.url); got != tt.want {
			t.Errorf("IsPlaceholderImage(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestCost(t *testing.T) {
	tests := []struct {
		name string
		c    Card
		want int
	}{
		{"build cost", Card{BuildPointCost: 4}, 4},
		{"crew cost", Card{CrewPointCost: 2}, 2},
		{"build wins when both set", Card{BuildPointCost: 3, CrewPointCost: 1}, 3},
		{"free card", Card{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Cost(); got != tt.want {
				t.Errorf("Cost() = %d, want %d", got, tt.want)
			}
		})
	}
}
