package model

// ClaimKind identifies the shape of a Wikidata claim value
type ClaimKind string

const (
	ClaimQuantity ClaimKind = "quantity" // Numeric amount, optionally unit-suffixed
	ClaimTime     ClaimKind = "time"     // Point in time
	ClaimEntity   ClaimKind = "entity"   // Reference to another entity
	ClaimText     ClaimKind = "text"     // Plain string value
)

// ClaimValue is the decoded mainsnak datavalue of a Wikidata claim.
// Exactly one variant field group is meaningful, selected by Kind.
type ClaimValue struct {
	Kind ClaimKind `json:"kind"`

	// Quantity variant. Amount has the leading '+' already stripped.
	// Unit is an entity reference ("1" when the quantity is dimensionless).
	Amount string `json:"amount,omitempty"`
	Unit   string `json:"unit,omitempty"`

	// Time variant, in Wikidata's ISO-like notation.
	Time string `json:"time,omitempty"`

	// Entity variant. EntityID must be resolved to a label before it is
	// surfaced to a user - raw identifiers never leave the kb package.
	EntityID string `json:"entity_id,omitempty"`

	// Text variant.
	Text string `json:"text,omitempty"`
}

// HasUnit reports whether a quantity carries a resolvable unit reference
func (v ClaimValue) HasUnit() bool {
	return v.Kind == ClaimQuantity && v.Unit != "" && v.Unit != "1"
}
