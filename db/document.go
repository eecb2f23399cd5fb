package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/CeraCharlesCC/wiki-ish-battlebox-generator/document"
)

// uniqueViolation is the Postgres error code for duplicate primary keys.
const uniqueViolation = "23505"

const createDocumentQuery = `
INSERT INTO documents (id, title, body, last_edited)
VALUES ($1, $2, $3, $4)
`

func (store *SQLStore) CreateDocument(ctx context.Context, doc document.Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}

	_, err = store.connPool.Exec(ctx, createDocumentQuery, doc.ID, doc.Title, body, doc.LastEdited)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateID
		}
		return err
	}
	return nil
}

const getDocumentQuery = `
SELECT body FROM documents WHERE id = $1
`

func (store *SQLStore) GetDocument(ctx context.Context, id string) (document.Document, error) {
	var body []byte
	err := store.connPool.QueryRow(ctx, getDocumentQuery, id).Scan(&body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return document.Document{}, ErrDocumentNotFound
		}
		return document.Document{}, err
	}

	var doc document.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return document.Document{}, fmt.Errorf("failed to parse document body: %w", err)
	}
	return doc, nil
}

const updateDocumentQuery = `
UPDATE documents
SET title = $2, body = $3, last_edited = $4
WHERE id = $1
`

func (store *SQLStore) UpdateDocument(ctx context.Context, doc document.Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}

	tag, err := store.connPool.Exec(ctx, updateDocumentQuery, doc.ID, doc.Title, body, doc.LastEdited)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

const deleteDocumentQuery = `
DELETE FROM documents WHERE id = $1
`

func (store *SQLStore) DeleteDocument(ctx context.Context, id string) error {
	tag, err := store.connPool.Exec(ctx, deleteDocumentQuery, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

const listDocumentsQuery = `
SELECT id, title, last_edited
FROM documents
ORDER BY last_edited DESC
LIMIT $1 OFFSET $2
`

func (store *SQLStore) ListDocuments(ctx context.Context, limit, offset int32) ([]DocumentSummary, error) {
	rows, err := store.connPool.Query(ctx, listDocumentsQuery, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []DocumentSummary{}
	for rows.Next() {
		var summary DocumentSummary
		var lastEdited time.Time
		if err := rows.Scan(&summary.ID, &summary.Title, &lastEdited); err != nil {
			return nil, err
		}
		summary.LastEdited = lastEdited.UTC().Format(time.RFC3339)
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}
