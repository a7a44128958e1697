// Package domain defines the business logic for the activity signup service.
package domain

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"example.com/signup/internal/events"
	"example.com/signup/internal/observability"
)

var (
	// ErrActivityNotFound is returned when no activity is registered under the requested name.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrParticipantNotFound is returned when the email is not on the activity roster.
	ErrParticipantNotFound = errors.New("student not found in this activity")
)

// Repository captures the registry operations the service depends on.
type Repository interface {
	List(ctx context.Context) (map[string]Activity, error)
	AddParticipant(ctx context.Context, activity, email string) (Activity, error)
	RemoveParticipant(ctx context.Context, activity, email string) (Activity, error)
}

// Option configures optional behaviour for the Service.
type Option func(*Service)

// WithLogger overrides the logger used to report publish failures.
func WithLogger(logger *log.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithClock overrides the time source stamped on roster events.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// Service orchestrates signup workflows.
type Service struct {
	repo      Repository
	publisher events.Publisher
	logger    *log.Logger
	now       func() time.Time
}

// NewService constructs a Service. A nil publisher disables roster events.
func NewService(repo Repository, publisher events.Publisher, opts ...Option) *Service {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	s := &Service{
		repo:      repo,
		publisher: publisher,
		logger:    log.New(log.Writer(), "[domain] ", log.LstdFlags),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListActivities returns every registered activity keyed by name.
func (s *Service) ListActivities(ctx context.Context) (map[string]Activity, error) {
	activities, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for name, activity := range activities {
		observability.RecordRosterSize(name, len(activity.Participants))
	}
	return activities, nil
}

// Signup appends email to the activity roster. Repeated signups are kept as duplicates.
func (s *Service) Signup(ctx context.Context, activity, email string) (Activity, error) {
	updated, err := s.repo.AddParticipant(ctx, activity, email)
	if err != nil {
		s.recordFailure(err)
		return Activity{}, err
	}
	observability.RecordSignup(updated.Name, len(updated.Participants))
	s.publish(ctx, events.EventParticipantSignedUp, updated.Name, email)
	return updated, nil
}

// Unregister removes the first occurrence of email from the activity roster.
func (s *Service) Unregister(ctx context.Context, activity, email string) (Activity, error) {
	updated, err := s.repo.RemoveParticipant(ctx, activity, email)
	if err != nil {
		s.recordFailure(err)
		return Activity{}, err
	}
	observability.RecordUnregister(updated.Name, len(updated.Participants))
	s.publish(ctx, events.EventParticipantUnregistered, updated.Name, email)
	return updated, nil
}

func (s *Service) recordFailure(err error) {
	switch {
	case errors.Is(err, ErrActivityNotFound):
		observability.RecordNotFound("activity")
	case errors.Is(err, ErrParticipantNotFound):
		observability.RecordNotFound("participant")
	}
}

// publish emits a roster event. Failures are logged and never reach the caller.
func (s *Service) publish(ctx context.Context, eventType, activity, email string) {
	evt := events.RosterChanged{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		Activity:   activity,
		Email:      email,
		OccurredAt: s.now().UTC(),
	}
	if err := s.publisher.Publish(context.WithoutCancel(ctx), evt); err != nil {
		s.logger.Printf("publish %s for %q failed: %v", eventType, activity, err)
	}
}
