package tmpstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/CeraCharlesCC/wiki-ish-battlebox-generator/document"
	"github.com/CeraCharlesCC/wiki-ish-battlebox-generator/util"
)

// Draft keys are namespaced so the same Redis instance can host other
// short-lived data later.
const DraftPrefix = "draft:"

var ErrDraftNotFound = errors.New("draft not found or expired")

// Draft is an unsaved working copy of a document, kept between editing
// sessions until the user commits it to the database or the TTL expires.
type Draft struct {
	Document document.Document `json:"document"`
	SavedAt  time.Time         `json:"saved_at"`
}

type Store interface {
	SaveDraft(ctx context.Context, docID string, draft Draft, ttl time.Duration) error
	GetDraft(ctx context.Context, docID string) (*Draft, error)
	DeleteDraft(ctx context.Context, docID string) error
}

type RedisStore struct {
	client *redis.Client
}

func NewStore(config *util.Config) Store {
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddress, //  default "localhost:6379"
		Password: "",                  // "" for no password, ok for now
		DB:       0,                   // 0 for default database
	})

	return &RedisStore{client: rdb}
}

// Function to keep the user's working copy between requests
// while they edit without committing.
func (store *RedisStore) SaveDraft(
	ctx context.Context,
	docID string,
	draft Draft,
	ttl time.Duration,
) error {
	jsonData, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to serialize draft: %w", err)
	}

	key := DraftPrefix + docID
	return store.client.Set(ctx, key, jsonData, ttl).Err()
}

// Function to retrieve the pending draft of a document.
// Returns ErrDraftNotFound if absent or expired.
func (store *RedisStore) GetDraft(ctx context.Context, docID string) (*Draft, error) {
	key := DraftPrefix + docID

	jsonData, err := store.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrDraftNotFound
		}
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}

	var draft Draft
	if err := json.Unmarshal([]byte(jsonData), &draft); err != nil {
		return nil, fmt.Errorf("failed to parse draft json: %w", err)
	}

	return &draft, nil
}

// Helper function to clean a committed or abandoned draft from Redis.
func (store *RedisStore) DeleteDraft(ctx context.Context, docID string) error {
	key := DraftPrefix + docID
	return store.client.Del(ctx, key).Err()
}
