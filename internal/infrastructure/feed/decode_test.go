package feed

import (
	"errors"
	"reflect"
	"testing"

	"fxwatch/internal/domain"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    domain.QuoteMap
		wantErr bool
	}{
		{
			name: "string prices",
			raw:  `{"prices":{"USD/EUR":{"bid":"1.10","ask":"1.12"}}}`,
			want: domain.QuoteMap{"USD/EUR": {Bid: "1.10", Ask: "1.12"}},
		},
		{
			name: "numeric prices",
			raw:  `{"prices":{"USD/JPY":{"bid":150.25,"ask":150.3}}}`,
			want: domain.QuoteMap{"USD/JPY": {Bid: "150.25", Ask: "150.3"}},
		},
		{
			name: "case kept, extra fields ignored",
			raw:  `{"type":"prices","prices":{"usd/eur":{"bid":"1","ask":"2","ts":1}}}`,
			want: domain.QuoteMap{"usd/eur": {Bid: "1", Ask: "2"}},
		},
		{
			name: "empty set",
			raw:  `{"prices":{}}`,
			want: domain.QuoteMap{},
		},
		{
			name: "non-numeric bid kept, other quotes kept",
			raw:  `{"prices":{"USD/EUR":{"bid":true,"ask":{}},"GBP/USD":{"bid":"1.25","ask":"1.26"}}}`,
			want: domain.QuoteMap{
				"USD/EUR": {Bid: "true", Ask: "{}"},
				"GBP/USD": {Bid: "1.25", Ask: "1.26"},
			},
		},
		{name: "not json", raw: `prices`, wantErr: true},
		{name: "missing prices", raw: `{"quotes":{}}`, wantErr: true},
		{name: "null prices", raw: `{"prices":null}`, wantErr: true},
		{name: "prices not an object", raw: `{"prices":[1,2]}`, wantErr: true},
		{name: "quote not an object", raw: `{"prices":{"USD/EUR":"1.10"}}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.raw))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				var pe *ParseError
				if !errors.As(err, &pe) || !errors.Is(err, ErrMalformedMessage) {
					t.Errorf("error %v is not a ParseError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Decode = %v, want %v", got, tt.want)
			}
		})
	}
}
