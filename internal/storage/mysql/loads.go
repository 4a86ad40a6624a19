package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"seguimiento-estructuras/internal/storage"
)

const schemaCargas = `
	CREATE TABLE IF NOT EXISTS estructuras_cargas (
		id            VARCHAR(36)  NOT NULL PRIMARY KEY,
		planning_file VARCHAR(255) NOT NULL DEFAULT '',
		fichajes_file VARCHAR(255) NOT NULL DEFAULT '',
		total_rows    INT          NOT NULL DEFAULT 0,
		processed     INT          NOT NULL DEFAULT 0,
		skipped       INT          NOT NULL DEFAULT 0,
		series_json   LONGTEXT     NOT NULL,
		created_at    DATETIME     NOT NULL,
		INDEX idx_cargas_created (created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

// Init создаёт таблицу истории загрузок, если её ещё нет.
func (s *Storage) Init(ctx context.Context) error {
	const op = "storage.mysql.Init"

	if _, err := s.db.ExecContext(ctx, schemaCargas); err != nil {
		return fmt.Errorf("%s: ошибка создания таблицы estructuras_cargas %w", op, err)
	}

	return nil
}

// SaveLoad сохраняет загрузку вместе со снимком серий (JSON), чтобы восстановить его после рестарта.
func (s *Storage) SaveLoad(ctx context.Context, load storage.Load, series []storage.SeriesRecord) error {
	const op = "storage.mysql.SaveLoad"

	seriesJSON, err := json.Marshal(series)
	if err != nil {
		return fmt.Errorf("%s: ошибка сериализации серий %w", op, err)
	}

	stmt := `INSERT INTO estructuras_cargas (id, planning_file, fichajes_file, total_rows, processed, skipped, series_json, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = s.db.ExecContext(ctx, stmt,
		load.ID,
		load.PlanningFile,
		load.FichajesFile,
		load.Summary.Total,
		load.Summary.Processed,
		load.Summary.Skipped,
		string(seriesJSON),
		load.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) GetLoads(ctx context.Context, limit int) ([]storage.Load, error) {
	const op = "storage.mysql.GetLoads"

	stmt := `SELECT id, planning_file, fichajes_file, total_rows, processed, skipped, created_at
			 FROM estructuras_cargas
			 ORDER BY created_at DESC
			 LIMIT ?`

	rows, err := s.db.QueryContext(ctx, stmt, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения истории загрузок %w", op, err)
	}
	defer rows.Close()

	loads := []storage.Load{}
	for rows.Next() {
		var load storage.Load
		err := rows.Scan(&load.ID, &load.PlanningFile, &load.FichajesFile,
			&load.Summary.Total, &load.Summary.Processed, &load.Summary.Skipped, &load.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		loads = append(loads, load)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка сканирования строк %w", op, err)
	}

	return loads, nil
}

// GetLastLoad последняя загрузка и её серии; storage.ErrLoadNotFound если истории нет.
func (s *Storage) GetLastLoad(ctx context.Context) (*storage.Load, []storage.SeriesRecord, error) {
	const op = "storage.mysql.GetLastLoad"

	stmt := `SELECT id, planning_file, fichajes_file, total_rows, processed, skipped, series_json, created_at
			 FROM estructuras_cargas
			 ORDER BY created_at DESC
			 LIMIT 1`

	var (
		load       storage.Load
		seriesJSON string
	)

	err := s.db.QueryRowContext(ctx, stmt).Scan(&load.ID, &load.PlanningFile, &load.FichajesFile,
		&load.Summary.Total, &load.Summary.Processed, &load.Summary.Skipped, &seriesJSON, &load.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, fmt.Errorf("%s: %w", op, storage.ErrLoadNotFound)
		}
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	var series []storage.SeriesRecord
	if err := json.Unmarshal([]byte(seriesJSON), &series); err != nil {
		return nil, nil, fmt.Errorf("%s: ошибка разбора series_json %w", op, err)
	}

	return &load, series, nil
}

func (s *Storage) DeleteLoad(ctx context.Context, id string) error {
	const op = "storage.mysql.DeleteLoad"

	res, err := s.db.ExecContext(ctx, `DELETE FROM estructuras_cargas WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: id=%s: %w", op, id, storage.ErrLoadNotFound)
	}

	return nil
}
