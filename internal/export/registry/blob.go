package registry

import (
	"errors"
	"sync"
)

var (
	ErrHandleRevoked = errors.New("handle_revoked")
	ErrUnknownHandle = errors.New("unknown_handle")
)

// Handle references a payload owned by a BlobStore.
type Handle uint64

// BlobStore is the arena that owns artifact payload bytes.
type BlobStore interface {
	Put(payload []byte) Handle
	Open(h Handle) ([]byte, error)
	Revoke(h Handle) error
}

type MemoryBlobStore struct {
	mu      sync.Mutex
	next    Handle
	blobs   map[Handle][]byte
	revoked map[Handle]struct{}
}

func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{
		blobs:   make(map[Handle][]byte),
		revoked: make(map[Handle]struct{}),
	}
}

// Put copies payload into the arena.
func (s *MemoryBlobStore) Put(payload []byte) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	s.blobs[s.next] = append([]byte(nil), payload...)
	return s.next
}

func (s *MemoryBlobStore) Open(h Handle) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, gone := s.revoked[h]; gone {
		return nil, ErrHandleRevoked
	}
	payload, ok := s.blobs[h]
	if !ok {
		return nil, ErrUnknownHandle
	}
	return append([]byte(nil), payload...), nil
}

// Revoke frees the payload. Revoking a handle twice returns ErrHandleRevoked.
func (s *MemoryBlobStore) Revoke(h Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, gone := s.revoked[h]; gone {
		return ErrHandleRevoked
	}
	if _, ok := s.blobs[h]; !ok {
		return ErrUnknownHandle
	}
	delete(s.blobs, h)
	s.revoked[h] = struct{}{}
	return nil
}

// Live reports how many payloads are still held.
func (s *MemoryBlobStore) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}
