// Package registry keeps a bounded, insertion-ordered list of exported
// artifacts. Overflow evicts the oldest record; reads never refresh recency.
//
// Registry is not safe for concurrent use. Callers serialize access.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/smallbiznis/shopdesk/internal/export/domain"
)

const DefaultCapacity = 10

var (
	ErrNotFound      = domain.ErrArtifactNotFound
	ErrDuplicateID   = errors.New("duplicate_artifact_id")
	ErrInvalidRecord = errors.New("invalid_artifact_record")
)

type Record struct {
	ID              string
	Name            string
	Kind            domain.Format
	CreatedAt       time.Time
	Handle          Handle
	Size            int64
	SizeLabel       string
	ContentsSummary string
}

func (r Record) View() domain.ArtifactView {
	return domain.ArtifactView{
		ID:              r.ID,
		Name:            r.Name,
		Kind:            r.Kind,
		CreatedAt:       r.CreatedAt,
		SizeBytes:       r.Size,
		SizeLabel:       r.SizeLabel,
		ContentsSummary: r.ContentsSummary,
	}
}

type Registry struct {
	capacity int
	blobs    BlobStore
	records  []Record
}

func New(capacity int, blobs BlobStore) *Registry {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if blobs == nil {
		blobs = NewMemoryBlobStore()
	}
	return &Registry{
		capacity: capacity,
		blobs:    blobs,
		records:  make([]Record, 0, capacity),
	}
}

func (r *Registry) Capacity() int { return r.capacity }

func (r *Registry) Len() int { return len(r.records) }

// Insert stores payload in the arena and appends the record, evicting the
// oldest record first when the registry is full. The evicted record, if any,
// is returned with its handle already revoked.
func (r *Registry) Insert(rec Record, payload []byte) (Record, *Record, error) {
	if strings.TrimSpace(rec.ID) == "" {
		return Record{}, nil, fmt.Errorf("%w: blank id", ErrInvalidRecord)
	}
	if r.indexOf(rec.ID) >= 0 {
		return Record{}, nil, fmt.Errorf("%w: %s", ErrDuplicateID, rec.ID)
	}

	var evicted *Record
	if len(r.records) >= r.capacity {
		oldest := r.records[0]
		if err := r.blobs.Revoke(oldest.Handle); err != nil {
			return Record{}, nil, fmt.Errorf("evict %s: %w", oldest.ID, err)
		}
		r.records = append(r.records[:0], r.records[1:]...)
		evicted = &oldest
	}

	rec.Handle = r.blobs.Put(payload)
	rec.Size = int64(len(payload))
	rec.SizeLabel = SizeLabel(rec.Size)
	r.records = append(r.records, rec)
	return rec, evicted, nil
}

// Remove revokes the record's handle and drops it once the revoke succeeded.
// Absent ids are a no-op reported as false. A failed revoke keeps the record
// so its live handle stays reachable.
func (r *Registry) Remove(id string) (bool, error) {
	i := r.indexOf(id)
	if i < 0 {
		return false, nil
	}
	rec := r.records[i]
	if err := r.blobs.Revoke(rec.Handle); err != nil {
		return false, fmt.Errorf("revoke %s: %w", rec.ID, err)
	}
	r.records = append(r.records[:i], r.records[i+1:]...)
	return true, nil
}

// RemoveMany removes each id, counting absent ids and revoke failures
// instead of stopping at the first one.
func (r *Registry) RemoveMany(ids []string) domain.BatchResult {
	var result domain.BatchResult
	for _, id := range ids {
		removed, err := r.Remove(id)
		if !removed || err != nil {
			result.Failed++
			result.FailedIDs = append(result.FailedIDs, id)
			continue
		}
		result.Succeeded++
	}
	return result
}

// Clear revokes every handle and drops the records whose revoke succeeded.
// It returns how many records were dropped.
func (r *Registry) Clear() (int, error) {
	var errs []error
	kept := r.records[:0]
	dropped := 0
	for _, rec := range r.records {
		if err := r.blobs.Revoke(rec.Handle); err != nil {
			errs = append(errs, fmt.Errorf("revoke %s: %w", rec.ID, err))
			kept = append(kept, rec)
			continue
		}
		dropped++
	}
	clear(r.records[len(kept):])
	r.records = kept
	return dropped, errors.Join(errs...)
}

func (r *Registry) Get(id string) (Record, bool) {
	i := r.indexOf(id)
	if i < 0 {
		return Record{}, false
	}
	return r.records[i], true
}

// Open returns a copy of the record's payload.
func (r *Registry) Open(id string) (Record, []byte, error) {
	rec, ok := r.Get(id)
	if !ok {
		return Record{}, nil, ErrNotFound
	}
	payload, err := r.blobs.Open(rec.Handle)
	if err != nil {
		return Record{}, nil, fmt.Errorf("open %s: %w", id, err)
	}
	return rec, payload, nil
}

// List returns a sorted copy; insertion order is left untouched. Blank key
// and direction default to newest first.
func (r *Registry) List(key domain.SortKey, dir domain.SortDirection) ([]Record, error) {
	if key == "" {
		key = domain.SortByDate
	}
	if dir == "" {
		dir = domain.SortDesc
	}

	var less func(a, b Record) bool
	switch key {
	case domain.SortByDate:
		less = func(a, b Record) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case domain.SortByName:
		less = func(a, b Record) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case domain.SortByKind:
		less = func(a, b Record) bool { return a.Kind < b.Kind }
	case domain.SortBySize:
		less = func(a, b Record) bool { return a.Size < b.Size }
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidSortKey, key)
	}

	switch dir {
	case domain.SortAsc:
	case domain.SortDesc:
		asc := less
		less = func(a, b Record) bool { return asc(b, a) }
	default:
		return nil, fmt.Errorf("%w: direction %q", domain.ErrInvalidSortKey, dir)
	}

	out := append([]Record(nil), r.records...)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out, nil
}

func (r *Registry) indexOf(id string) int {
	for i, rec := range r.records {
		if rec.ID == id {
			return i
		}
	}
	return -1
}
