package domain

import "time"

type AuditAction string

const (
	AuditCreate         AuditAction = "create"
	AuditUpdate         AuditAction = "update"
	AuditDelete         AuditAction = "delete"
	AuditPasswordChange AuditAction = "password_change"
)

// AuditEvent records a successful mutation and who performed it.
type AuditEvent struct {
	ID         string      `json:"id"`
	Action     AuditAction `json:"action"`
	Entity     string      `json:"entity"`
	EntityIDs  []int64     `json:"entityIds"`
	ActorID    int64       `json:"actorId"`
	ActorRole  Role        `json:"actorRole"`
	OccurredAt time.Time   `json:"occurredAt"`
}
