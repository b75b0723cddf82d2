package store

const (
	getKVValue = `
		SELECT value
		FROM kv
		WHERE key = $1;`

	setKVValue = `
		INSERT INTO kv (key, value, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET
			value      = excluded.value,
			updated_at = CURRENT_TIMESTAMP;`

	deleteKVValue = `
		DELETE FROM kv
		WHERE key = $1;`
)
