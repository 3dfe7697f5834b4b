package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"docreview/internal/domain"
	"docreview/internal/port"
)

type analysisResultRepo struct {
	db *sqlx.DB
}

// NewAnalysisResultRepo creates a new PostgreSQL-backed AnalysisRepository.
func NewAnalysisResultRepo(db *sqlx.DB) port.AnalysisRepository {
	return &analysisResultRepo{db: db}
}

func (r *analysisResultRepo) Create(ctx context.Context, rec *domain.AnalysisRecord) error {
	query := `INSERT INTO analyse_results (id, file_id, result, created_at)
		VALUES (:id, :file_id, :result, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, rec); err != nil {
		return fmt.Errorf("analysisResultRepo.Create: %w", err)
	}
	return nil
}

func (r *analysisResultRepo) GetByID(ctx context.Context, id string) (*domain.AnalysisRecord, error) {
	var rec domain.AnalysisRecord
	err := r.db.GetContext(ctx, &rec,
		"SELECT id, file_id, result, created_at FROM analyse_results WHERE id::text = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("analysisResultRepo.GetByID: %w", err)
	}
	return &rec, nil
}

func (r *analysisResultRepo) List(ctx context.Context, filter port.ListFilter) ([]domain.AnalysisRecord, error) {
	var records []domain.AnalysisRecord
	var err error
	if filter.FileID != "" {
		err = r.db.SelectContext(ctx, &records,
			`SELECT id, file_id, result, created_at FROM analyse_results
			WHERE file_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
			filter.FileID, filter.Limit, filter.Offset)
	} else {
		err = r.db.SelectContext(ctx, &records,
			`SELECT id, file_id, result, created_at FROM analyse_results
			ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
			filter.Limit, filter.Offset)
	}
	if err != nil {
		return nil, fmt.Errorf("analysisResultRepo.List: %w", err)
	}
	return records, nil
}

func (r *analysisResultRepo) ListByFileID(ctx context.Context, fileID string) ([]domain.AnalysisRecord, error) {
	var records []domain.AnalysisRecord
	err := r.db.SelectContext(ctx, &records,
		`SELECT id, file_id, result, created_at FROM analyse_results
		WHERE file_id = $1 ORDER BY created_at DESC`, fileID)
	if err != nil {
		return nil, fmt.Errorf("analysisResultRepo.ListByFileID: %w", err)
	}
	return records, nil
}

func (r *analysisResultRepo) Update(ctx context.Context, rec *domain.AnalysisRecord) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE analyse_results SET file_id = $1, result = $2 WHERE id::text = $3",
		rec.FileID, rec.Result, rec.ID)
	if err != nil {
		return fmt.Errorf("analysisResultRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *analysisResultRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM analyse_results WHERE id::text = $1", id)
	if err != nil {
		return fmt.Errorf("analysisResultRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
