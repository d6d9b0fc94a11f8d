package kb

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/ppiankov/wikichat/internal/model"
)

func TestDecodeClaimValue(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want model.ClaimValue
	}{
		{
			name: "quantity strips leading plus",
			raw:  `{"amount":"+568360","unit":"http://www.wikidata.org/entity/Q613726"}`,
			want: model.ClaimValue{Kind: model.ClaimQuantity, Amount: "568360", Unit: "Q613726"},
		},
		{
			name: "dimensionless quantity",
			raw:  `{"amount":"+82","unit":"1"}`,
			want: model.ClaimValue{Kind: model.ClaimQuantity, Amount: "82", Unit: "1"},
		},
		{
			name: "negative quantity kept",
			raw:  `{"amount":"-273.15","unit":"1"}`,
			want: model.ClaimValue{Kind: model.ClaimQuantity, Amount: "-273.15", Unit: "1"},
		},
		{
			name: "time",
			raw:  `{"time":"+1942-01-01T00:00:00Z","precision":9}`,
			want: model.ClaimValue{Kind: model.ClaimTime, Time: "+1942-01-01T00:00:00Z"},
		},
		{
			name: "entity reference",
			raw:  `{"entity-type":"item","id":"Q30"}`,
			want: model.ClaimValue{Kind: model.ClaimEntity, EntityID: "Q30"},
		},
		{
			name: "plain string",
			raw:  `"NGC 7293"`,
			want: model.ClaimValue{Kind: model.ClaimText, Text: "NGC 7293"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeClaimValue(json.RawMessage(tt.raw))
			if err != nil {
				t.Fatalf("DecodeClaimValue failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("DecodeClaimValue = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDecodeClaimValue_Malformed(t *testing.T) {
	for _, raw := range []string{"", "{}", `{"globe":"earth"}`, `[1,2]`} {
		if _, err := DecodeClaimValue(json.RawMessage(raw)); !errors.Is(err, ErrMalformedResponse) {
			t.Errorf("DecodeClaimValue(%q): expected ErrMalformedResponse, got %v", raw, err)
		}
	}
}

func TestClaimValue_HasUnit(t *testing.T) {
	with := model.ClaimValue{Kind: model.ClaimQuantity, Amount: "5", Unit: "Q613726"}
	without := model.ClaimValue{Kind: model.ClaimQuantity, Amount: "5", Unit: "1"}

	if !with.HasUnit() {
		t.Error("expected HasUnit for unit entity reference")
	}
	if without.HasUnit() {
		t.Error("expected no unit for dimensionless quantity")
	}
}
