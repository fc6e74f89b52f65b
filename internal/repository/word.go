package repository

import (
	"context"

	"github.com/eslsoft/charm/internal/entity"
)

// SessionRepository loads and persists the vocabulary and preferences of a session.
type SessionRepository interface {
	// Load fills session from storage. Words are recovered before preferences
	// because the derived version depends on the word count.
	Load(ctx context.Context, session *entity.Session) error
	Save(ctx context.Context, session *entity.Session) error
	// Restore saves like Save and also writes every user data line the store
	// lacks, so that all preferences survive the next Load.
	Restore(ctx context.Context, session *entity.Session) error
}

// WordMirror copies the vocabulary into an external store.
type WordMirror interface {
	Sync(ctx context.Context, words []*entity.Word) (int, error)
}

// ListWordQuery selects and orders words for listing.
type ListWordQuery struct {
	FilterOrder
}
