package gallery

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"image/jpeg"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a requested photo does not exist.
var ErrNotFound = errors.New("not found")

// Photo is a saved photo's metadata. Pixel data is fetched separately
// so listings stay cheap.
type Photo struct {
	ID        string
	CreatedAt time.Time
	Width     int
	Height    int
}

// Save stores a captured JPEG together with a generated WebP thumbnail
// and returns the new photo's metadata.
func (s *Store) Save(data []byte) (*Photo, error) {
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode photo: %w", err)
	}

	thumb, err := makeThumbnail(img)
	if err != nil {
		return nil, fmt.Errorf("failed to build thumbnail: %w", err)
	}

	bounds := img.Bounds()
	p := &Photo{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
	}

	_, err = s.db.Exec(
		`INSERT INTO photos (id, created_at, width, height, jpeg, thumb)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.CreatedAt, p.Width, p.Height, data, thumb,
	)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// List retrieves all photo metadata, newest first.
func (s *Store) List() ([]*Photo, error) {
	rows, err := s.db.Query(
		`SELECT id, created_at, width, height
		 FROM photos ORDER BY created_at DESC, id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []*Photo
	for rows.Next() {
		p := &Photo{}
		if err := rows.Scan(&p.ID, &p.CreatedAt, &p.Width, &p.Height); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return photos, nil
}

// Get retrieves a photo's full-resolution JPEG by ID.
func (s *Store) Get(id string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT jpeg FROM photos WHERE id = ?`, id).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Thumb retrieves a photo's WebP thumbnail by ID.
func (s *Store) Thumb(id string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT thumb FROM photos WHERE id = ?`, id).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Delete removes a photo by ID.
func (s *Store) Delete(id string) error {
	result, err := s.db.Exec(`DELETE FROM photos WHERE id = ?`, id)
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
