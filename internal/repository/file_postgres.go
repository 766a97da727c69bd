package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tactohq/ingest-backend/internal/entity"
)

// FileRepository defines persistence for uploaded file metadata.
type FileRepository interface {
	Create(ctx context.Context, file entity.SourceFile) (*entity.SourceFile, error)
	GetByID(ctx context.Context, id string) (*entity.SourceFile, error)
	List(ctx context.Context) ([]*entity.SourceFile, error)
	MarkProcessed(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

var _ FileRepository = &FilePostgres{}

// FilePostgres implements FileRepository using PostgreSQL.
type FilePostgres struct {
	db *pgxpool.Pool
}

func NewFilePostgres(db *pgxpool.Pool) *FilePostgres {
	return &FilePostgres{db: db}
}

func (r *FilePostgres) Create(ctx context.Context, file entity.SourceFile) (*entity.SourceFile, error) {
	fileID, err := uuid.Parse(file.ID)
	if err != nil {
		return nil, fmt.Errorf("parse file ID: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO uploaded_files (id, file_name, file_type, storage_path, file_size)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, file_name, file_type, storage_path, file_size, rag_processed, created_at`,
		pgtype.UUID{Bytes: fileID, Valid: true}, file.FileName, file.FileType, file.StoragePath, file.Size,
	)

	saved, err := scanFile(row)
	if err != nil {
		return nil, fmt.Errorf("insert file: %w", err)
	}

	return saved, nil
}

func (r *FilePostgres) GetByID(ctx context.Context, id string) (*entity.SourceFile, error) {
	fileID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid file ID %q", entity.ErrFileNotFound, id)
	}

	row := r.db.QueryRow(ctx, `
		SELECT id, file_name, file_type, storage_path, file_size, rag_processed, created_at
		FROM uploaded_files
		WHERE id = $1`,
		pgtype.UUID{Bytes: fileID, Valid: true},
	)

	file, err := scanFile(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", entity.ErrFileNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	return file, nil
}

func (r *FilePostgres) List(ctx context.Context) ([]*entity.SourceFile, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, file_name, file_type, storage_path, file_size, rag_processed, created_at
		FROM uploaded_files
		ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	var files []*entity.SourceFile
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, file)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	return files, nil
}

func (r *FilePostgres) MarkProcessed(ctx context.Context, id string) error {
	fileID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: invalid file ID %q", entity.ErrFileNotFound, id)
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE uploaded_files
		SET rag_processed = TRUE
		WHERE id = $1`,
		pgtype.UUID{Bytes: fileID, Valid: true},
	)
	if err != nil {
		return fmt.Errorf("mark processed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", entity.ErrFileNotFound, id)
	}

	return nil
}

func (r *FilePostgres) Delete(ctx context.Context, id string) error {
	fileID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: invalid file ID %q", entity.ErrFileNotFound, id)
	}

	tag, err := r.db.Exec(ctx, `
		DELETE FROM uploaded_files
		WHERE id = $1`,
		pgtype.UUID{Bytes: fileID, Valid: true},
	)
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", entity.ErrFileNotFound, id)
	}

	return nil
}

func scanFile(row pgx.Row) (*entity.SourceFile, error) {
	var (
		id   pgtype.UUID
		file entity.SourceFile
	)

	err := row.Scan(&id, &file.FileName, &file.FileType, &file.StoragePath, &file.Size, &file.RAGProcessed, &file.CreatedAt)
	if err != nil {
		return nil, err
	}

	file.ID = uuid.UUID(id.Bytes).String()
	return &file, nil
}
