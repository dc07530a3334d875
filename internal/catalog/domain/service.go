package domain

import (
	"context"
	"errors"
)

// Service loads catalog snapshots for analytics.
type Service interface {
	Snapshot(ctx context.Context) (Snapshot, error)
}

var (
	ErrSnapshotUnavailable = errors.New("snapshot_unavailable")
)
