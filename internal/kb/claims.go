package kb

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ppiankov/wikichat/internal/model"
)

// DecodeClaimValue decodes the datavalue of a Wikidata mainsnak into the
// explicit ClaimValue sum type. The wire shape is either a bare JSON
// string or an object keyed by amount (quantity), time, or id (entity).
func DecodeClaimValue(raw json.RawMessage) (model.ClaimValue, error) {
	if len(raw) == 0 {
		return model.ClaimValue{}, fmt.Errorf("%w: empty claim value", ErrMalformedResponse)
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return model.ClaimValue{Kind: model.ClaimText, Text: text}, nil
	}

	var v struct {
		Amount string `json:"amount"`
		Unit   string `json:"unit"`
		Time   string `json:"time"`
		ID     string `json:"id"`
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return model.ClaimValue{}, fmt.Errorf("%w: claim value: %v", ErrMalformedResponse, err)
	}

	switch {
	case v.Amount != "":
		return model.ClaimValue{
			Kind:   model.ClaimQuantity,
			Amount: strings.TrimPrefix(v.Amount, "+"),
			Unit:   NormalizeEntityRef(v.Unit),
		}, nil
	case v.Time != "":
		return model.ClaimValue{Kind: model.ClaimTime, Time: v.Time}, nil
	case v.ID != "":
		return model.ClaimValue{Kind: model.ClaimEntity, EntityID: v.ID}, nil
	default:
		return model.ClaimValue{}, fmt.Errorf("%w: unrecognized claim value shape", ErrMalformedResponse)
	}
}
