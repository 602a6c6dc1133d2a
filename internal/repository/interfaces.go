package repository

import (
	"context"

	"github.com/vytor/syncstore/internal/models"
)

// ProfileStore handles file-level persistence of single profile documents.
// It has no knowledge of the sub-profile hierarchy; the resolver pulls
// additional documents through Load to complete a tree.
//
// Load returns (nil, nil) when the document is absent or unusable; the
// caller owns any profile returned.
type ProfileStore interface {
	Load(ctx context.Context, name, typ string) (*models.Profile, error)
	Save(ctx context.Context, p *models.Profile) error
	Remove(ctx context.Context, name, typ string) error
	Rename(ctx context.Context, oldName, newName string) error
	ProfileNames(ctx context.Context, typ string) ([]string, error)
}

// LogStore handles persistence of sync log documents. Logs are replaceable
// history, not authoritative config: saves are plain truncate-and-write with
// no backup protocol. Load returns (nil, nil) when no log exists.
type LogStore interface {
	Load(ctx context.Context, profileName string) (*models.SyncLog, error)
	Save(ctx context.Context, log *models.SyncLog) error
}
