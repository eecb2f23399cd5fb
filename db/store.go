package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CeraCharlesCC/wiki-ish-battlebox-generator/document"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrDuplicateID      = errors.New("document id already exists")
)

// DocumentSummary is the listing projection: everything but the body.
type DocumentSummary struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	LastEdited string `json:"last_edited"`
}

type Store interface {
	CreateDocument(ctx context.Context, doc document.Document) error
	GetDocument(ctx context.Context, id string) (document.Document, error)
	UpdateDocument(ctx context.Context, doc document.Document) error
	DeleteDocument(ctx context.Context, id string) error
	ListDocuments(ctx context.Context, limit, offset int32) ([]DocumentSummary, error)
	Shutdown()
}

type SQLStore struct {
	connPool *pgxpool.Pool
}

func NewStore(connPool *pgxpool.Pool) Store {
	return &SQLStore{connPool: connPool}
}

func (store *SQLStore) Shutdown() {
	store.connPool.Close()
}
