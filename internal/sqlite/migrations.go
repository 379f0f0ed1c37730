package sqlite

func (s Storage) RunMigrations() error {
	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS sync_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		calendar_id VARCHAR NOT NULL,
		fingerprint VARCHAR NOT NULL,
		meeting_date VARCHAR NOT NULL DEFAULT '',
		location VARCHAR NOT NULL DEFAULT '',
		address VARCHAR NOT NULL DEFAULT '',
		meeting_time VARCHAR NOT NULL DEFAULT '',
		status VARCHAR NOT NULL,
		event_id VARCHAR NOT NULL DEFAULT '',
		error TEXT NOT NULL DEFAULT '',
		synced_at VARCHAR NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS sync_log_fingerprint ON sync_log (fingerprint)`,
}
