// Package registry stores activities and their rosters in memory.
package registry

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"example.com/signup/internal/domain"
)

// InMemoryRepository is the process-local activity registry. Nothing is persisted;
// every instance starts from its seed and Reset returns it there.
type InMemoryRepository struct {
	mu         sync.RWMutex
	seed       []domain.Activity
	activities map[string]*domain.Activity
}

// NewInMemoryRepository constructs a repository populated with DefaultSeed.
func NewInMemoryRepository() *InMemoryRepository {
	return NewInMemoryRepositoryWithSeed(DefaultSeed())
}

// NewInMemoryRepositoryWithSeed constructs a repository populated with seed.
// Later entries win when two activities share a name.
func NewInMemoryRepositoryWithSeed(seed []domain.Activity) *InMemoryRepository {
	repo := &InMemoryRepository{seed: make([]domain.Activity, 0, len(seed))}
	for _, activity := range seed {
		repo.seed = append(repo.seed, activity.Clone())
	}
	repo.Reset()
	return repo
}

// Reset discards every roster change and restores the seed.
func (r *InMemoryRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.activities = make(map[string]*domain.Activity, len(r.seed))
	for _, activity := range r.seed {
		clone := activity.Clone()
		r.activities[clone.Name] = &clone
	}
}

// List implements domain.Repository. The returned map is a deep copy.
func (r *InMemoryRepository) List(ctx context.Context) (map[string]domain.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]domain.Activity, len(r.activities))
	for name, activity := range r.activities {
		out[name] = activity.Clone()
	}
	return out, nil
}

// AddParticipant implements domain.Repository. Duplicate emails are appended as-is.
func (r *InMemoryRepository) AddParticipant(ctx context.Context, activity, email string) (domain.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.activities[activity]
	if !ok {
		return domain.Activity{}, fmt.Errorf("signup %q: %w", activity, domain.ErrActivityNotFound)
	}
	entry.Participants = append(entry.Participants, email)
	return entry.Clone(), nil
}

// RemoveParticipant implements domain.Repository. Only the first occurrence of email is removed.
func (r *InMemoryRepository) RemoveParticipant(ctx context.Context, activity, email string) (domain.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.activities[activity]
	if !ok {
		return domain.Activity{}, fmt.Errorf("unregister %q: %w", activity, domain.ErrActivityNotFound)
	}
	idx := slices.Index(entry.Participants, email)
	if idx < 0 {
		return domain.Activity{}, fmt.Errorf("unregister %q from %q: %w", email, activity, domain.ErrParticipantNotFound)
	}
	entry.Participants = slices.Delete(entry.Participants, idx, idx+1)
	return entry.Clone(), nil
}
