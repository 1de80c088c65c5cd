package postgres

const (
	querySchema = `
		CREATE TABLE IF NOT EXISTS vani_kv (
			key        TEXT PRIMARY KEY,
			value      BYTEA NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS vani_kv_list (
			id         BIGSERIAL PRIMARY KEY,
			key        TEXT NOT NULL,
			value      BYTEA NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS vani_kv_list_key_idx ON vani_kv_list (key, id);
	`

	queryGetValue = `
		SELECT value
		FROM vani_kv
		WHERE key = :key
	`

	queryUpsertValue = `
		INSERT INTO vani_kv (key, value, updated_at)
		VALUES (:key, :value, :updated_at)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`

	queryDeleteValue = `
		DELETE FROM vani_kv
		WHERE key = :key
	`

	queryDeleteList = `
		DELETE FROM vani_kv_list
		WHERE key = :key
	`

	queryLockList = `
		SELECT pg_advisory_xact_lock(hashtext(:key))
	`

	queryAppendList = `
		INSERT INTO vani_kv_list (key, value, created_at)
		VALUES (:key, :value, :created_at)
	`

	queryTrimList = `
		DELETE FROM vani_kv_list
		WHERE key = :key
		AND id NOT IN (
			SELECT id FROM vani_kv_list
			WHERE key = :key
			ORDER BY id DESC
			LIMIT :capacity
		)
	`

	queryGetList = `
		SELECT value
		FROM vani_kv_list
		WHERE key = :key
		ORDER BY id ASC
	`
)
