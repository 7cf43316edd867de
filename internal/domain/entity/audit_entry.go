package entity

import "time"

// AuditEntry registro inmutable del histórico de operaciones sobre productos.
type AuditEntry struct {
	ID          int64
	Description string
	CreatedAt   time.Time
}
