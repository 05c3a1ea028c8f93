package feed

import (
	"encoding/json"
	"errors"
	"fmt"

	"fxwatch/internal/domain"
)

var ErrMalformedMessage = errors.New("malformed feed message")

// ParseError describes an inbound message that could not be decoded.
type ParseError struct {
	Raw []byte
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v", ErrMalformedMessage, e.Err)
}

func (e *ParseError) Unwrap() []error { return []error{ErrMalformedMessage, e.Err} }

type pricesMessage struct {
	Prices map[string]json.RawMessage `json:"prices"`
}

// Decode parses one feed message of the form
//
//	{"prices": {"USD/EUR": {"bid": "1.10", "ask": "1.12"}, ...}}
//
// and returns the complete quote map it carries.
func Decode(raw []byte) (domain.QuoteMap, error) {
	var msg pricesMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}
	if msg.Prices == nil {
		return nil, &ParseError{Raw: raw, Err: errors.New(`missing "prices"`)}
	}

	out := make(domain.QuoteMap, len(msg.Prices))
	for code, b := range msg.Prices {
		if len(b) == 0 || b[0] != '{' {
			return nil, &ParseError{Raw: raw, Err: fmt.Errorf("%s: quote is not an object", code)}
		}
		var q domain.Quote
		if err := json.Unmarshal(b, &q); err != nil {
			return nil, &ParseError{Raw: raw, Err: fmt.Errorf("%s: %w", code, err)}
		}
		out[code] = q
	}
	return out, nil
}
