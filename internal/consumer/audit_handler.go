package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"example.com/signup/internal/events"
)

// AuditHandler writes every roster change to the audit log and tracks net roster movement.
type AuditHandler struct {
	logger *log.Logger
}

// NewAuditHandler constructs an AuditHandler writing to logger.
func NewAuditHandler(logger *log.Logger) *AuditHandler {
	if logger == nil {
		logger = log.New(log.Writer(), "[audit] ", log.LstdFlags)
	}
	return &AuditHandler{logger: logger}
}

// Handle implements Handler.
func (h *AuditHandler) Handle(ctx context.Context, msg Message) error {
	var evt events.RosterChanged
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		return fmt.Errorf("%w: decode roster event: %v", ErrRejected, err)
	}
	if evt.EventType == "" {
		evt.EventType = msg.EventType
	}
	if strings.TrimSpace(evt.Activity) == "" {
		return fmt.Errorf("%w: roster event %s has no activity", ErrRejected, evt.EventID)
	}

	delta := evt.Delta()
	if delta == 0 {
		return fmt.Errorf("%w: unsupported event_type %q", ErrRejected, evt.EventType)
	}

	h.logger.Printf("event=%s id=%s activity=%q email=%s at=%s",
		evt.EventType, evt.EventID, evt.Activity, evt.Email, evt.OccurredAt.Format(time.RFC3339))
	recordRosterDelta(evt.Activity, delta)
	return nil
}
