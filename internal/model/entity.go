package model

// SearchResult is one entity or property returned by a knowledge-base search
type SearchResult struct {
	ID          string `json:"id"`                    // Wikidata identifier (Q... or P...)
	Label       string `json:"label"`                 // Display label
	Description string `json:"description,omitempty"` // Short description, when available
}

// Fact is a resolved property value for an entity, ready for display
type Fact struct {
	Entity   string `json:"entity"`   // Entity label
	Property string `json:"property"` // Property label
	Value    string `json:"value"`    // Resolved human-readable value
}
