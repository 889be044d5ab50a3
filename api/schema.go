package api

// Document is the normalized target document. Top-level documents carry
// ownership and provenance; embedded documents (actor items, journal pages,
// table results) reuse the same envelope.
type Document struct {
	// ID is derived from the source path (see internal/identity).
	ID string `json:"_id"`
	// Key is "!{collection}!{id}" for top-level documents.
	Key   string `json:"_key"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Image string `json:"img,omitempty"`
	// System holds the type-specific payload.
	System any `json:"system"`

	Items   []Document `json:"items,omitempty"`
	Pages   []Document `json:"pages,omitempty"`
	Results []Document `json:"results,omitempty"`

	Effects   []any      `json:"effects"`
	Sort      int        `json:"sort"`
	Ownership *Ownership `json:"ownership,omitempty"`
	Flags     *Flags     `json:"flags,omitempty"`
}

// Ownership is the default permission level for the document.
type Ownership struct {
	Default int `json:"default"`
}

// Ownership levels.
const (
	OwnershipNone     = 0
	OwnershipObserver = 2
)

// Flags carries module-scoped metadata.
type Flags struct {
	Provenance Provenance `json:"provenance"`
}

// Provenance links a document back to the record it was generated from.
type Provenance struct {
	// OriginalID is the record's own id field, or its sanitized file name.
	OriginalID string `json:"originalId"`
	// Source is the record's path relative to the source root.
	Source string `json:"source"`
	// Notes lists lossy decisions made during conversion (dropped tokens,
	// defaulted fields) for manual triage.
	Notes []string `json:"notes"`
}

// Collections.
const (
	CollectionActors  = "actors"
	CollectionItems   = "items"
	CollectionJournal = "journal"
	CollectionTables  = "tables"
)

// CollectionFor maps a document type to its collection. Every type belongs to
// exactly one collection.
func CollectionFor(docType string) string {
	switch docType {
	case "npc", "character", "vehicle":
		return CollectionActors
	case "journal":
		return CollectionJournal
	case "table":
		return CollectionTables
	}
	return CollectionItems
}

// EmbeddedName is the embedded collection name used in embedded keys.
func EmbeddedName(collection string) string {
	switch collection {
	case CollectionActors:
		return "items"
	case CollectionJournal:
		return "pages"
	case CollectionTables:
		return "results"
	}
	return "effects"
}

// Description is the common rich-text description block.
type Description struct {
	Value string `json:"value"`
	Chat  string `json:"chat"`
}

// Source identifies the publication a record comes from.
type Source struct {
	Book  string `json:"book"`
	Page  string `json:"page"`
	Rules string `json:"rules,omitempty"`
}
