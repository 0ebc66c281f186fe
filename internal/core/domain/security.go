package domain

import (
	"time"

	"github.com/google/uuid"
)

// SecurityEventKind classifies a recorded security or anomaly event.
type SecurityEventKind string

const (
	SecurityEventInvalidSignature SecurityEventKind = "INVALID_SIGNATURE"
	SecurityEventAmountMismatch   SecurityEventKind = "AMOUNT_MISMATCH"
	SecurityEventDuplicateLedger  SecurityEventKind = "DUPLICATE_LEDGER_REF"
)

// SecurityEvent records a rejected or anomalous interaction for later review.
type SecurityEvent struct {
	ID        uuid.UUID         `json:"id"`
	Kind      SecurityEventKind `json:"kind"`
	Detail    string            `json:"detail"` // JSON string
	ClientIP  string            `json:"client_ip"`
	CreatedAt time.Time         `json:"created_at"`
}
