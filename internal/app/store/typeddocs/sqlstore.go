// internal/app/store/typeddocs/sqlstore.go
package typeddocs

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/dossierhub/internal/domain/models"
)

// SQLStore keeps typed-document records in the relational typed_documents
// table. Column names are snake_case with the owner under user_id; the
// mapping to models.TypedDocument never leaves this file.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// EnsureSchema creates the typed_documents table and its lookup index if
// they do not exist yet.
func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS typed_documents (
	id          BIGSERIAL PRIMARY KEY,
	user_id     TEXT NOT NULL,
	type        TEXT NOT NULL,
	category    TEXT NOT NULL DEFAULT '',
	file_name   TEXT NOT NULL DEFAULT '',
	file_path   TEXT NOT NULL DEFAULT '',
	file_type   TEXT NOT NULL DEFAULT '',
	file_size   BIGINT NOT NULL DEFAULT 0,
	upload_date TIMESTAMPTZ NOT NULL DEFAULT now()
)`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create typed_documents table: %w", err)
	}
	const idx = `
CREATE INDEX IF NOT EXISTS idx_typed_documents_user_type_date
	ON typed_documents (user_id, type, upload_date DESC)`
	if _, err := s.db.ExecContext(ctx, idx); err != nil {
		return fmt.Errorf("create typed_documents index: %w", err)
	}
	return nil
}

func (s *SQLStore) Relational() bool { return true }

const typedDocColumns = "id, user_id, type, category, file_name, file_path, file_type, file_size, upload_date"

func (s *SQLStore) Save(ctx context.Context, doc models.TypedDocument) (models.TypedDocument, error) {
	if strings.TrimSpace(doc.Type) == "" {
		return models.TypedDocument{}, ErrMissingType
	}
	if doc.UploadDate.IsZero() {
		doc.UploadDate = time.Now().UTC()
	}

	const q = `
INSERT INTO typed_documents (user_id, type, category, file_name, file_path, file_type, file_size, upload_date)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`
	var id int64
	err := s.db.QueryRowContext(ctx, q,
		doc.UserID, doc.Type, doc.Category,
		doc.FileName, doc.FilePath, doc.FileType, doc.FileSize,
		doc.UploadDate,
	).Scan(&id)
	if err != nil {
		return models.TypedDocument{}, fmt.Errorf("insert typed document: %w", err)
	}
	doc.ID = strconv.FormatInt(id, 10)
	return doc, nil
}

func (s *SQLStore) LatestPerType(ctx context.Context, userID string) ([]models.TypedDocument, error) {
	// DISTINCT ON keeps the first row per type under the inner ordering,
	// which puts the newest upload_date first and breaks ties toward the
	// highest id. The outer ordering matches the history views.
	const q = `
SELECT ` + typedDocColumns + ` FROM (
	SELECT DISTINCT ON (type) ` + typedDocColumns + `
	FROM typed_documents
	WHERE user_id = $1
	ORDER BY type, upload_date DESC, id DESC
) latest
ORDER BY upload_date DESC, id DESC`
	rows, err := s.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("query latest per type: %w", err)
	}
	defer rows.Close()
	return scanTypedDocs(rows)
}

func (s *SQLStore) AllByUser(ctx context.Context, userID string) ([]models.TypedDocument, error) {
	const q = `
SELECT ` + typedDocColumns + `
FROM typed_documents
WHERE user_id = $1
ORDER BY upload_date DESC, id DESC`
	rows, err := s.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("query typed documents: %w", err)
	}
	defer rows.Close()
	return scanTypedDocs(rows)
}

func (s *SQLStore) DeleteByTypeExact(ctx context.Context, userID, docType string) (int64, error) {
	if strings.TrimSpace(docType) == "" {
		return 0, ErrMissingType
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM typed_documents WHERE user_id = $1 AND type = $2`,
		userID, docType)
	if err != nil {
		return 0, fmt.Errorf("delete typed documents: %w", err)
	}
	return res.RowsAffected()
}

func scanTypedDocs(rows *sql.Rows) ([]models.TypedDocument, error) {
	var out []models.TypedDocument
	for rows.Next() {
		var (
			id  int64
			doc models.TypedDocument
		)
		if err := rows.Scan(&id, &doc.UserID, &doc.Type, &doc.Category,
			&doc.FileName, &doc.FilePath, &doc.FileType, &doc.FileSize,
			&doc.UploadDate); err != nil {
			return nil, fmt.Errorf("scan typed document: %w", err)
		}
		doc.ID = strconv.FormatInt(id, 10)
		out = append(out, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
