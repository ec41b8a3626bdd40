package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Snapshot is a saved canvas image with the brush settings in effect
// when it was taken.
type Snapshot struct {
	ID        string
	Width     int
	Height    int
	Color     string
	Thickness int
	Image     []byte // PNG
	CreatedAt time.Time
}

// SnapshotRepository provides CRUD operations for snapshots.
type SnapshotRepository struct {
	db *sql.DB
}

// Snapshots returns the snapshot repository for this store.
func (s *Store) Snapshots() *SnapshotRepository {
	return &SnapshotRepository{db: s.db}
}

// Create inserts a new snapshot into the database.
func (r *SnapshotRepository) Create(sn *Snapshot) error {
	sn.CreatedAt = time.Now()

	_, err := r.db.Exec(
		`INSERT INTO snapshots (id, width, height, color, thickness, image, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sn.ID, sn.Width, sn.Height, sn.Color, sn.Thickness, sn.Image, sn.CreatedAt,
	)
	return err
}

// GetByID retrieves a snapshot, including its image, by ID.
func (r *SnapshotRepository) GetByID(id string) (*Snapshot, error) {
	sn := &Snapshot{}

	err := r.db.QueryRow(
		`SELECT id, width, height, color, thickness, image, created_at
		 FROM snapshots WHERE id = ?`,
		id,
	).Scan(&sn.ID, &sn.Width, &sn.Height, &sn.Color, &sn.Thickness, &sn.Image, &sn.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return sn, nil
}

// List retrieves snapshot metadata, newest first. Image is left nil.
func (r *SnapshotRepository) List() ([]*Snapshot, error) {
	rows, err := r.db.Query(
		`SELECT id, width, height, color, thickness, created_at
		 FROM snapshots ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []*Snapshot
	for rows.Next() {
		sn := &Snapshot{}
		if err := rows.Scan(&sn.ID, &sn.Width, &sn.Height, &sn.Color, &sn.Thickness, &sn.CreatedAt); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, sn)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return snapshots, nil
}

// Delete removes a snapshot by its ID.
func (r *SnapshotRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Count returns the number of stored snapshots.
func (r *SnapshotRepository) Count() (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM snapshots`).Scan(&n)
	return n, err
}
