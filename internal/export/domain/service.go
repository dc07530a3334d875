package domain

import (
	"context"
	"errors"
	"time"

	analytics "github.com/smallbiznis/shopdesk/internal/analytics/domain"
	catalog "github.com/smallbiznis/shopdesk/internal/catalog/domain"
)

var (
	ErrInvalidCategory  = errors.New("invalid_category")
	ErrInvalidFormat    = errors.New("invalid_format")
	ErrNothingSelected  = errors.New("nothing_selected")
	ErrArtifactNotFound = errors.New("artifact_not_found")
	ErrInvalidSortKey   = errors.New("invalid_sort_key")
)

type Service interface {
	// Validate checks a request without touching any data, so callers can
	// reject it before loading a snapshot.
	Validate(req Request) error
	Run(ctx context.Context, snapshot catalog.Snapshot, req Request) Outcome
	List(ctx context.Context, req ListRequest) ([]ArtifactView, error)
	Download(ctx context.Context, id string) (*Download, error)
	Remove(ctx context.Context, id string) error
	RemoveMany(ctx context.Context, ids []string) BatchResult
	Clear(ctx context.Context) int
	DefaultRange() analytics.DateRange
}

type Request struct {
	Categories []Category
	Format     Format
	Range      analytics.DateRange
}

type Status string

const (
	StatusSucceeded       Status = "succeeded"
	StatusInvalidRange    Status = "invalid_range"
	StatusNothingSelected Status = "nothing_selected"
	StatusEmpty           Status = "empty"
	StatusFailed          Status = "failed"
)

// Outcome is the classified result of an export run. Err carries the cause for
// every status except StatusSucceeded.
type Outcome struct {
	Status   Status
	Message  string
	Artifact *ArtifactView
	Err      error
}

func (o Outcome) OK() bool { return o.Status == StatusSucceeded }

type ArtifactView struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Kind            Format    `json:"kind"`
	CreatedAt       time.Time `json:"created_at"`
	SizeBytes       int64     `json:"size_bytes"`
	SizeLabel       string    `json:"size_label"`
	ContentsSummary string    `json:"contents_summary"`
}

type Download struct {
	Filename    string
	ContentType string
	Payload     []byte
}

type SortKey string

const (
	SortByDate SortKey = "date"
	SortByName SortKey = "name"
	SortByKind SortKey = "kind"
	SortBySize SortKey = "size"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

type ListRequest struct {
	SortBy  SortKey
	OrderBy SortDirection
}

type BatchResult struct {
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	FailedIDs []string `json:"failed_ids,omitempty"`
}
