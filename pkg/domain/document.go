package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// documentIDLength is the number of hex digits kept from the content hash.
const documentIDLength = 16

// SharedDocument is a compiled document stored for later retrieval by ID.
type SharedDocument struct {
	ID        string        `json:"id"`
	Machine   MachineConfig `json:"machine"`
	HTML      string        `json:"html"`
	CreatedAt time.Time     `json:"created_at"`
}

// NewSharedDocument addresses a document by the hash of its HTML.
// Compilation is deterministic, so the same machine always maps to the same ID.
func NewSharedDocument(m MachineConfig, html string) SharedDocument {
	return SharedDocument{
		ID:        DocumentID(html),
		Machine:   m,
		HTML:      html,
		CreatedAt: time.Now().UTC(),
	}
}

// DocumentID returns the content address of a compiled document.
func DocumentID(html string) string {
	sum := sha256.Sum256([]byte(html))
	return hex.EncodeToString(sum[:])[:documentIDLength]
}

// MachineSummary is a library listing entry.
type MachineSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	States      int    `json:"states"`
	TapeLength  int    `json:"tape_length"`
}
