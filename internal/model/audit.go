package model

import "time"

type AuditActor struct {
	UserID   string `json:"userId,omitempty"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
	IP       string `json:"ip,omitempty"`
}

// AuditEntry records one admin mutation on the bus collection.
type AuditEntry struct {
	Action     string     `json:"action"`
	OccurredAt time.Time  `json:"occurredAt"`
	Actor      AuditActor `json:"actor"`
	Status     string     `json:"status"`
	Resource   string     `json:"resource,omitempty"`
	Error      string     `json:"error,omitempty"`
}
