package storage

import (
	"database/sql"
	"errors"
	"time"

	"github.com/codewithboateng/stylint/internal/sym"
)

// ListRuns returns a lightweight list of runs with violation counts.
func (db *DB) ListRuns(limit, offset int) ([]RunRow, error) {
	const q = `
		SELECT r.id, r.started_at, r.source, r.schema_version,
		       (SELECT COUNT(1) FROM violations v WHERE v.run_id = r.id) AS violations
		  FROM runs r
		 ORDER BY r.started_at DESC, r.id DESC
		 LIMIT ? OFFSET ?`
	rows, err := db.conn.Query(q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var rr RunRow
		var startedAtStr string
		if err := rows.Scan(&rr.ID, &startedAtStr, &rr.Source, &rr.SchemaVersion, &rr.Violations); err != nil {
			return nil, err
		}
		rr.StartedAt = parseTS(startedAtStr)
		out = append(out, rr)
	}
	return out, rows.Err()
}

// LoadLatestRun returns the most recently started run.
func (db *DB) LoadLatestRun() (sym.Run, error) {
	rows, err := db.ListRuns(1, 0)
	if err != nil {
		return sym.Run{}, err
	}
	if len(rows) == 0 {
		return sym.Run{}, errors.New("no runs")
	}
	return db.LoadRun(rows[0].ID)
}

// ListViolations returns violations for a run at or above a minimum
// severity, in report order.
func (db *DB) ListViolations(runID, minSeverity string) ([]sym.Violation, error) {
	const q = `
		SELECT id, file, line, symbol, rule_id, severity, message, evidence
		  FROM violations
		 WHERE run_id = ?
		   AND (CASE severity WHEN 'ERROR' THEN 3 WHEN 'WARNING' THEN 2 ELSE 1 END)
		       >= (CASE ? WHEN 'ERROR' THEN 3 WHEN 'WARNING' THEN 2 ELSE 1 END)
		 ORDER BY
		       (CASE severity WHEN 'ERROR' THEN 3 WHEN 'WARNING' THEN 2 ELSE 1 END) DESC,
		       file, line, rule_id, symbol, id`
	rows, err := db.conn.Query(q, runID, minSeverity)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []sym.Violation
	for rows.Next() {
		var v sym.Violation
		if err := rows.Scan(&v.ID, &v.File, &v.Line, &v.Symbol, &v.RuleID, &v.Severity, &v.Message, &v.Evidence); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// HasRun reports whether a run id exists.
func (db *DB) HasRun(id string) (bool, error) {
	const q = `SELECT 1 FROM runs WHERE id = ? LIMIT 1`
	var one int
	err := db.conn.QueryRow(q, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

func parseTS(s string) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}
