package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/brandloop/internal/core/domain"
	"github.com/custodia-labs/brandloop/internal/core/ports/driven"
)

// Ensure AuditLog implements the interface.
var _ driven.AuditLog = (*AuditLog)(nil)

// AuditLog is an in-memory implementation of driven.AuditLog.
type AuditLog struct {
	mu      sync.RWMutex
	records []domain.AuditRecord
}

// NewAuditLog creates a new in-memory audit log.
func NewAuditLog() *AuditLog {
	return &AuditLog{}
}

// Append adds a record.
func (l *AuditLog) Append(_ context.Context, record domain.AuditRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.records {
		if l.records[i].ID == record.ID {
			return domain.ErrAlreadyExists
		}
	}
	l.records = append(l.records, record.Clone())
	return nil
}

// ListByDeliverable returns a deliverable's records, oldest first.
func (l *AuditLog) ListByDeliverable(_ context.Context, deliverableID string) ([]domain.AuditRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var result []domain.AuditRecord
	for i := range l.records {
		if l.records[i].DeliverableID == deliverableID {
			result = append(result, l.records[i].Clone())
		}
	}
	return result, nil
}

// Len returns the total number of records.
func (l *AuditLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}
