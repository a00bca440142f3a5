package sqlite

const schemaSQL = `
CREATE TABLE IF NOT EXISTS command_history (
	id           TEXT PRIMARY KEY,
	kind         TEXT NOT NULL,
	target       TEXT NOT NULL,
	phase        TEXT NOT NULL,
	synced_count INTEGER NOT NULL DEFAULT 0,
	error        TEXT NOT NULL DEFAULT '',
	started_at   TEXT NOT NULL,
	finished_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_command_history_finished_at ON command_history(finished_at);
`

const insertRecordSQL = `
INSERT INTO command_history (id, kind, target, phase, synced_count, error, started_at, finished_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	phase = excluded.phase,
	synced_count = excluded.synced_count,
	error = excluded.error,
	finished_at = excluded.finished_at
`

const listRecordsSQL = `
SELECT id, kind, target, phase, synced_count, error, started_at, finished_at
FROM command_history
ORDER BY finished_at DESC, rowid DESC
LIMIT ?
`

const pruneRecordsSQL = `
DELETE FROM command_history
WHERE id NOT IN (
	SELECT id FROM command_history ORDER BY finished_at DESC, rowid DESC LIMIT ?
)
`
