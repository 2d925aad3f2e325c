package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gearbox-games/garage/internal/card"
	"github.com/gearbox-games/garage/internal/deck"
)

func testRepo(t *testing.T) DeckRepository {
	t.Helper()
	db, err := Open(DefaultConfig(":memory:"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewDeckRepository(db)
}

func sampleDeck() deck.Deck {
	d := deck.New("War Rig", "4")
	d.Cards = []card.Instance{
		{
			Card:        card.Card{ID: "mg", Name: "Machine Gun", Type: card.TypeWeapon, BuildPointCost: 2},
			InstanceID:  "inst-1",
			OriginID:    "mg",
			Area:        card.AreaFront,
			CostCharged: true,
		},
	}
	d.PointsUsed = card.Points{Build: 2}
	return d
}

func TestDeckRepository_SaveAndGet(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	d := sampleDeck()

	require.NoError(t, repo.SaveDeck(ctx, d))

	got, err := repo.GetDeck(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, d.Name, got.Name)
	assert.Equal(t, d.Division, got.Division)
	assert.Equal(t, d.PointLimits, got.PointLimits)
	assert.Equal(t, d.PointsUsed, got.PointsUsed)
	require.Len(t, got.Cards, 1)
	assert.Equal(t, d.Cards[0], got.Cards[0])
}

func TestDeckRepository_SaveIsUpsert(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	d := sampleDeck()

	require.NoError(t, repo.SaveDeck(ctx, d))

	d.Name = "Renamed Rig"
	d.PointsUsed.Build = 4
	require.NoError(t, repo.SaveDeck(ctx, d))

	got, err := repo.GetDeck(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Rig", got.Name)
	assert.Equal(t, 4, got.PointsUsed.Build)

	decks, err := repo.ListDecks(ctx)
	require.NoError(t, err)
	assert.Len(t, decks, 1)
}

func TestDeckRepository_GetMissing(t *testing.T) {
	repo := testRepo(t)

	_, err := repo.GetDeck(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrDeckNotFound), "err = %v, want ErrDeckNotFound", err)
}

func TestDeckRepository_List(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	first := sampleDeck()
	second := deck.New("Empty Rig", "2")
	require.NoError(t, repo.SaveDeck(ctx, first))
	require.NoError(t, repo.SaveDeck(ctx, second))

	decks, err := repo.ListDecks(ctx)
	require.NoError(t, err)
	require.Len(t, decks, 2)

	byID := map[string]DeckSummary{}
	for _, s := range decks {
		byID[s.ID] = s
	}
	assert.Equal(t, 1, byID[first.ID].CardCount)
	assert.Equal(t, 0, byID[second.ID].CardCount)
	assert.Equal(t, card.Points{Build: 8, Crew: 2}, byID[second.ID].PointLimits)
}

func TestDeckRepository_Delete(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	d := sampleDeck()

	require.NoError(t, repo.SaveDeck(ctx, d))
	require.NoError(t, repo.DeleteDeck(ctx, d.ID))

	_, err := repo.GetDeck(ctx, d.ID)
	assert.True(t, errors.Is(err, ErrDeckNotFound))

	err = repo.DeleteDeck(ctx, d.ID)
	assert.True(t, errors.Is(err, ErrDeckNotFound))
}
