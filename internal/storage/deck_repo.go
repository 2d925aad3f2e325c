package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gearbox-games/garage/internal/card"
	"github.com/gearbox-games/garage/internal/deck"
)

// ErrDeckNotFound is returned when a saved deck id does not exist.
var ErrDeckNotFound = errors.New("deck not found")

// DeckSummary is a saved deck's listing row, without the card payload.
type DeckSummary struct {
	ID          string
	Name        string
	Division    string
	PointLimits card.Points
	PointsUsed  card.Points
	CardCount   int
	UpdatedAt   time.Time
}

// DeckRepository stores whole decks, filling the role the browser's
// local storage played for saved vehicles.
type DeckRepository interface {
	// SaveDeck inserts or replaces a deck by id.
	SaveDeck(ctx context.Context, d deck.Deck) error

	// GetDeck retrieves a saved deck by id.
	GetDeck(ctx context.Context, id string) (deck.Deck, error)

	// ListDecks returns summaries of all saved decks, most recently
	// updated first.
	ListDecks(ctx context.Context) ([]DeckSummary, error)

	// DeleteDeck removes a saved deck by id.
	DeleteDeck(ctx context.Context, id string) error
}

type deckRepository struct {
	db *sql.DB
}

// NewDeckRepository creates a deck repository over the given database.
func NewDeckRepository(db *DB) DeckRepository {
	return &deckRepository{db: db.Conn()}
}

const timeLayout = "2006-01-02 15:04:05.999999"

// SaveDeck inserts or replaces a deck by id.
func (r *deckRepository) SaveDeck(ctx context.Context, d deck.Deck) error {
	cards, err := json.Marshal(d.Cards)
	if err != nil {
		return fmt.Errorf("marshal deck cards: %w", err)
	}

	now := time.Now().UTC().Format(timeLayout)
	query := `
		INSERT INTO decks (
			id, name, division, background_image,
			build_point_limit, crew_point_limit,
			build_points_used, crew_points_used,
			cards, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			division = excluded.division,
			background_image = excluded.background_image,
			build_point_limit = excluded.build_point_limit,
			crew_point_limit = excluded.crew_point_limit,
			build_points_used = excluded.build_points_used,
			crew_points_used = excluded.crew_points_used,
			cards = excluded.cards,
			updated_at = excluded.updated_at
	`
	_, err = r.db.ExecContext(ctx, query,
		d.ID, d.Name, d.Division, d.BackgroundImage,
		d.PointLimits.Build, d.PointLimits.Crew,
		d.PointsUsed.Build, d.PointsUsed.Crew,
		string(cards), now, now,
	)
	if err != nil {
		return fmt.Errorf("save deck: %w", err)
	}
	return nil
}

// GetDeck retrieves a saved deck by id.
func (r *deckRepository) GetDeck(ctx context.Context, id string) (deck.Deck, error) {
	query := `
		SELECT id, name, division, background_image,
			build_point_limit, crew_point_limit,
			build_points_used, crew_points_used, cards
		FROM decks
		WHERE id = ?
	`
	var d deck.Deck
	var cards string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&d.ID, &d.Name, &d.Division, &d.BackgroundImage,
		&d.PointLimits.Build, &d.PointLimits.Crew,
		&d.PointsUsed.Build, &d.PointsUsed.Crew,
		&cards,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return deck.Deck{}, ErrDeckNotFound
	}
	if err != nil {
		return deck.Deck{}, fmt.Errorf("get deck: %w", err)
	}

	if err := json.Unmarshal([]byte(cards), &d.Cards); err != nil {
		return deck.Deck{}, fmt.Errorf("unmarshal deck cards: %w", err)
	}
	if d.Cards == nil {
		d.Cards = []card.Instance{}
	}
	return d, nil
}

// ListDecks returns summaries of all saved decks.
func (r *deckRepository) ListDecks(ctx context.Context) ([]DeckSummary, error) {
	query := `
		SELECT id, name, division,
			build_point_limit, crew_point_limit,
			build_points_used, crew_points_used,
			json_array_length(cards), updated_at
		FROM decks
		ORDER BY updated_at DESC, name ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list decks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []DeckSummary
	for rows.Next() {
		var s DeckSummary
		var updated string
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Division,
			&s.PointLimits.Build, &s.PointLimits.Crew,
			&s.PointsUsed.Build, &s.PointsUsed.Crew,
			&s.CardCount, &updated,
		); err != nil {
			return nil, fmt.Errorf("scan deck summary: %w", err)
		}
		if t, err := time.Parse(timeLayout, updated); err == nil {
			s.UpdatedAt = t
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate decks: %w", err)
	}
	return out, nil
}

// DeleteDeck removes a saved deck by id.
func (r *deckRepository) DeleteDeck(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM decks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete deck: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete deck rows affected: %w", err)
	}
	if n == 0 {
		return ErrDeckNotFound
	}
	return nil
}
