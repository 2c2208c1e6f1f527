// Package sqlite provides the SQLite-backed document store for shared
// trails. Ordered waypoint/highlight sequences are stored as JSON documents
// of index-tagged objects, matching the storage form the persistence
// normalizer produces.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // driver
	"github.com/pathos-labs/pathos/backend/internal/core/domain"
	"github.com/pathos-labs/pathos/backend/internal/core/ports"
)

// pollInterval backs the change watch so rows written by another process
// are eventually observed; in-process writes notify immediately.
const pollInterval = 5 * time.Second

// Store implements ports.TrailRepository on SQLite.
type Store struct {
	db *sql.DB

	mu       sync.Mutex
	watchers map[chan struct{}]struct{}
}

var _ ports.TrailRepository = (*Store)(nil)

// NewStore opens the database and runs the schema migration.
func NewStore(storagePath string) (*Store, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	store := &Store{db: db, watchers: make(map[chan struct{}]struct{})}
	if err := store.migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return store, nil
}

// Close shuts the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Create persists a record and returns its id. Records are immutable once
// written; there is no update path.
func (s *Store) Create(ctx context.Context, record domain.SharedTrailRecord) (string, error) {
	id := uuid.NewString()

	waypoints, err := json.Marshal(record.Waypoints)
	if err != nil {
		return "", fmt.Errorf("failed to encode waypoints: %w", err)
	}
	highlights, err := json.Marshal(record.Highlights)
	if err != nil {
		return "", fmt.Errorf("failed to encode highlights: %w", err)
	}

	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO trails (
			id, description, recommended_distance, estimated_duration, recommended_pace,
			terrain_type, elevation_change, track_name, artist_name, album_art,
			start_lat, start_lng, waypoints, highlights, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		id, record.Description, record.RecommendedDistance, record.EstimatedDuration, record.RecommendedPace,
		record.TerrainType, record.ElevationChange, record.Song.TrackName, record.Song.ArtistName, record.Song.AlbumArt,
		record.StartLocation.Lat, record.StartLocation.Lng, string(waypoints), string(highlights), createdAt,
	)
	if err != nil {
		return "", &domain.ProviderError{Provider: "store", Op: "create", Err: err}
	}

	s.notify()
	return id, nil
}

// List returns the newest records first, capped at limit.
func (s *Store) List(ctx context.Context, limit int) ([]domain.SharedTrailRecord, error) {
	if limit < 1 {
		limit = 1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, description, recommended_distance, estimated_duration, recommended_pace,
			terrain_type, elevation_change, track_name, artist_name, album_art,
			start_lat, start_lng, waypoints, highlights, created_at
		FROM trails
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, &domain.ProviderError{Provider: "store", Op: "list", Err: err}
	}
	defer rows.Close()

	var records []domain.SharedTrailRecord
	for rows.Next() {
		var record domain.SharedTrailRecord
		var waypoints, highlights string
		if err := rows.Scan(
			&record.ID, &record.Description, &record.RecommendedDistance, &record.EstimatedDuration, &record.RecommendedPace,
			&record.TerrainType, &record.ElevationChange, &record.Song.TrackName, &record.Song.ArtistName, &record.Song.AlbumArt,
			&record.StartLocation.Lat, &record.StartLocation.Lng, &waypoints, &highlights, &record.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan trail row: %w", err)
		}
		if err := json.Unmarshal([]byte(waypoints), &record.Waypoints); err != nil {
			return nil, fmt.Errorf("failed to decode waypoints for %s: %w", record.ID, err)
		}
		if err := json.Unmarshal([]byte(highlights), &record.Highlights); err != nil {
			return nil, fmt.Errorf("failed to decode highlights for %s: %w", record.ID, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trail rows: %w", err)
	}

	return records, nil
}

// Watch delivers a signal whenever the store changes. In-process creates
// signal immediately; a poll ticker covers external writers. The channel is
// closed when ctx is cancelled.
func (s *Store) Watch(ctx context.Context) <-chan struct{} {
	ch := make(chan struct{}, 1)

	s.mu.Lock()
	s.watchers[ch] = struct{}{}
	s.mu.Unlock()

	go func() {
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				s.mu.Lock()
				delete(s.watchers, ch)
				s.mu.Unlock()
				close(ch)
				return
			case <-ticker.C:
				// Level trigger: consumers de-duplicate unchanged lists.
				select {
				case ch <- struct{}{}:
				default:
				}
			}
		}
	}()

	return ch
}

func (s *Store) notify() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.watchers {
		select {
		case ch <- struct{}{}:
		default:
			log.Printf("WARN store: watcher busy, change signal coalesced")
		}
	}
}

func (s *Store) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS trails (
		id TEXT PRIMARY KEY,
		description TEXT NOT NULL,
		recommended_distance REAL NOT NULL,
		estimated_duration INTEGER NOT NULL,
		recommended_pace REAL NOT NULL,
		terrain_type TEXT,
		elevation_change INTEGER,
		track_name TEXT,
		artist_name TEXT,
		album_art TEXT,
		start_lat REAL NOT NULL,
		start_lng REAL NOT NULL,
		waypoints TEXT NOT NULL,
		highlights TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_trails_created_at ON trails(created_at DESC);
	`
	if _, err := s.db.Exec(query); err != nil {
		return err
	}
	return nil
}
