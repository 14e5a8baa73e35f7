package gallery

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Photos table - full-resolution JPEG plus a WebP thumbnail
		`CREATE TABLE IF NOT EXISTS photos (
			id TEXT PRIMARY KEY,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			jpeg BLOB NOT NULL,
			thumb BLOB NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_photos_created_at ON photos(created_at)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
