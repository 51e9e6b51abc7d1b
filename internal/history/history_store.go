package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/trustscore/internal/contract"
	"github.com/huangsam/trustscore/schema"
)

// Table names for run history.
const (
	runsTable        = "trustscore_runs"
	evaluationsTable = "trustscore_evaluations"
)

// evaluationColumns is the insert and select order for evaluationsTable.
const evaluationColumns = `run_id, url, name, category, evaluated_at, net_score, net_score_binary,
	ramp_up_time, bus_factor, performance_claims, license, size_score,
	dataset_and_code_score, dataset_quality, code_quality, net_latency_ms`

const evaluationColumnCount = 16

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore creates a new HistoryStore with the specified backend.
// The none backend returns a store whose operations are no-ops.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (*HistoryStoreImpl, error) {
	if backend == schema.NoneBackend {
		return &HistoryStoreImpl{backend: backend}, nil
	}

	db, err := openDB(backend, connStr, false)
	if err != nil {
		return nil, err
	}

	// Create the table schemas
	if err := createHistoryTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}

	return &HistoryStoreImpl{db: db, backend: backend}, nil
}

// createHistoryTables creates the run and evaluation tables.
func createHistoryTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{runsTable, getCreateRunsQuery(backend)},
		{evaluationsTable, getCreateEvaluationsQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}

	return nil
}

// getCreateRunsQuery returns the CREATE TABLE query for trustscore_runs.
func getCreateRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(runsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				run_uuid CHAR(36) NOT NULL,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms INT,
				total_urls INT,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				run_uuid UUID NOT NULL,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms INT,
				total_urls INT,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				run_uuid TEXT NOT NULL,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				total_urls INTEGER,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreateEvaluationsQuery returns the CREATE TABLE query for trustscore_evaluations.
func getCreateEvaluationsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(evaluationsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				evaluation_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				run_id BIGINT NOT NULL,
				url VARCHAR(1024) NOT NULL,
				name VARCHAR(255) NOT NULL,
				category VARCHAR(16),
				evaluated_at DATETIME(6) NOT NULL,
				net_score DOUBLE,
				net_score_binary INT,
				ramp_up_time DOUBLE,
				bus_factor DOUBLE,
				performance_claims DOUBLE,
				license DOUBLE,
				size_score TEXT,
				dataset_and_code_score DOUBLE,
				dataset_quality DOUBLE,
				code_quality DOUBLE,
				net_latency_ms BIGINT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				evaluation_id BIGSERIAL PRIMARY KEY,
				run_id BIGINT NOT NULL,
				url TEXT NOT NULL,
				name TEXT NOT NULL,
				category TEXT,
				evaluated_at TIMESTAMPTZ NOT NULL,
				net_score DOUBLE PRECISION,
				net_score_binary INT,
				ramp_up_time DOUBLE PRECISION,
				bus_factor DOUBLE PRECISION,
				performance_claims DOUBLE PRECISION,
				license DOUBLE PRECISION,
				size_score TEXT,
				dataset_and_code_score DOUBLE PRECISION,
				dataset_quality DOUBLE PRECISION,
				code_quality DOUBLE PRECISION,
				net_latency_ms BIGINT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				evaluation_id INTEGER PRIMARY KEY AUTOINCREMENT,
				run_id INTEGER NOT NULL,
				url TEXT NOT NULL,
				name TEXT NOT NULL,
				category TEXT,
				evaluated_at TEXT NOT NULL,
				net_score REAL,
				net_score_binary INTEGER,
				ramp_up_time REAL,
				bus_factor REAL,
				performance_claims REAL,
				license REAL,
				size_score TEXT,
				dataset_and_code_score REAL,
				dataset_quality REAL,
				code_quality REAL,
				net_latency_ms INTEGER
			);
		`, quotedTableName)
	}
}

// disabled reports whether the store is a no-op.
func (hs *HistoryStoreImpl) disabled() bool {
	return hs.backend == schema.NoneBackend || hs.db == nil
}

// BeginRun creates a new run and returns its unique ID.
func (hs *HistoryStoreImpl) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	if hs.disabled() {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(runsTable, hs.backend)
	runUUID := uuid.NewString()

	var runID int64
	switch hs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (run_uuid, start_time, config_params) VALUES ($1, $2, $3) RETURNING run_id`, quotedTableName)
		err = hs.db.QueryRow(query, runUUID, startTime, string(configJSON)).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (run_uuid, start_time, config_params) VALUES (?, ?, ?)`, quotedTableName)
		var result sql.Result
		result, err = hs.db.Exec(query, runUUID, formatTime(startTime, hs.backend), string(configJSON))
		if err == nil {
			runID, err = result.LastInsertId()
		}
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	return runID, nil
}

// EndRun updates the run with completion data.
func (hs *HistoryStoreImpl) EndRun(runID int64, endTime time.Time, totalURLs int) error {
	if hs.disabled() {
		return nil
	}

	quotedTableName := quoteTableName(runsTable, hs.backend)

	// First, get the start_time to calculate duration
	query := fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = %s`, quotedTableName, placeholders(hs.backend, 1, 1))
	var raw any
	if err := hs.db.QueryRow(query, runID).Scan(&raw); err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}
	startTime, err := parseTime(raw)
	if err != nil {
		return fmt.Errorf("failed to parse start_time: %w", err)
	}

	durationMs := endTime.Sub(startTime).Milliseconds()

	var updateQuery string
	switch hs.backend {
	case schema.PostgreSQLBackend:
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = $1, run_duration_ms = $2, total_urls = $3 WHERE run_id = $4`, quotedTableName)
	default: // SQLite and MySQL
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = ?, run_duration_ms = ?, total_urls = ? WHERE run_id = ?`, quotedTableName)
	}

	if _, err := hs.db.Exec(updateQuery, formatTime(endTime, hs.backend), durationMs, totalURLs, runID); err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}

	return nil
}

// RecordEvaluation stores one scored URL for a run.
func (hs *HistoryStoreImpl) RecordEvaluation(runID int64, record schema.EvaluationRecord) error {
	if hs.disabled() {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		quoteTableName(evaluationsTable, hs.backend),
		evaluationColumns,
		placeholders(hs.backend, 1, evaluationColumnCount),
	)
	args := []any{
		runID, record.URL, record.Name, record.Category, formatTime(record.EvaluatedAt, hs.backend),
		record.NetScore, record.NetScoreBinary,
		record.RampUpTime, record.BusFactor, record.PerformanceClaims, record.License, record.SizeScore,
		record.DatasetAndCodeScore, record.DatasetQuality, record.CodeQuality, record.NetLatencyMs,
	}

	if _, err := hs.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to insert evaluation for %s: %w", record.URL, err)
	}

	return nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}

	if hs.disabled() {
		return status, nil
	}

	quotedRuns := quoteTableName(runsTable, hs.backend)

	if err := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedRuns)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		var lastRaw, oldestRaw any

		lastRunQuery := fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1", quotedRuns)
		if err := hs.db.QueryRow(lastRunQuery).Scan(&status.LastRunID, &lastRaw); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		lastRunTime, err := parseTime(lastRaw)
		if err != nil {
			return status, fmt.Errorf("failed to parse last run time: %w", err)
		}
		status.LastRunTime = lastRunTime

		oldestRunQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", quotedRuns)
		if err := hs.db.QueryRow(oldestRunQuery).Scan(&oldestRaw); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		oldestRunTime, err := parseTime(oldestRaw)
		if err != nil {
			return status, fmt.Errorf("failed to parse oldest run time: %w", err)
		}
		status.OldestRunTime = oldestRunTime
	}

	for _, table := range []string{runsTable, evaluationsTable} {
		var count int64
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, hs.backend))
		if err := hs.db.QueryRow(countQuery).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	status.TotalEvaluations = int(status.TableSizes[evaluationsTable])

	return status, nil
}

// GetAllRuns retrieves all runs ordered by id.
func (hs *HistoryStoreImpl) GetAllRuns() ([]schema.RunRecord, error) {
	if hs.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, run_uuid, start_time, end_time, run_duration_ms, COALESCE(total_urls, 0), config_params
		FROM %s ORDER BY run_id`, quoteTableName(runsTable, hs.backend))

	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord
	for rows.Next() {
		var record schema.RunRecord
		var startRaw, endRaw any
		if err := rows.Scan(&record.RunID, &record.RunUUID, &startRaw, &endRaw, &record.RunDurationMs, &record.TotalURLs, &record.ConfigParams); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if record.StartTime, err = parseTime(startRaw); err != nil {
			return nil, fmt.Errorf("failed to parse start_time: %w", err)
		}
		if endRaw != nil {
			endTime, err := parseTime(endRaw)
			if err != nil {
				return nil, fmt.Errorf("failed to parse end_time: %w", err)
			}
			record.EndTime = &endTime
		}
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return results, nil
}

// GetAllEvaluations retrieves all evaluations ordered by run and insertion.
func (hs *HistoryStoreImpl) GetAllEvaluations() ([]schema.EvaluationRecord, error) {
	if hs.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY run_id, evaluation_id`,
		evaluationColumns, quoteTableName(evaluationsTable, hs.backend))

	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query evaluations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.EvaluationRecord
	for rows.Next() {
		var r schema.EvaluationRecord
		var evaluatedRaw any
		if err := rows.Scan(&r.RunID, &r.URL, &r.Name, &r.Category, &evaluatedRaw, &r.NetScore, &r.NetScoreBinary,
			&r.RampUpTime, &r.BusFactor, &r.PerformanceClaims, &r.License, &r.SizeScore,
			&r.DatasetAndCodeScore, &r.DatasetQuality, &r.CodeQuality, &r.NetLatencyMs); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation: %w", err)
		}
		if r.EvaluatedAt, err = parseTime(evaluatedRaw); err != nil {
			return nil, fmt.Errorf("failed to parse evaluated_at: %w", err)
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating evaluations: %w", err)
	}

	return results, nil
}
