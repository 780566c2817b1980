// Package classifier guesses the event type of a captured webhook.
//
// Providers encode the event type inconsistently (some in the body, some in
// headers), so a fixed priority list gives deterministic behavior without
// per-provider configuration.
package classifier

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hookscope/hookscope-be/internal/model"
)

// Unknown is returned when no known field or header carries an event type.
const Unknown = "unknown"

// Body fields checked first, in priority order.
var bodyFields = []string{"type", "event", "event_type", "action", "kind"}

// Headers checked when no body field matches, in priority order.
// Keys are lowercase; lookup is case-insensitive.
var typeHeaders = []string{"x-github-event", "x-shopify-topic", "x-event-type", "x-event-name"}

// Classify returns the best-effort event-type label for a captured request.
// It never fails: if nothing matches it returns Unknown.
func Classify(body model.Payload, headers map[string]string) string {
	if label, ok := fromBody(body); ok {
		return label
	}
	if label, ok := fromHeaders(headers); ok {
		return label
	}
	return Unknown
}

func fromBody(body model.Payload) (string, bool) {
	obj, ok := body.Object()
	if !ok {
		// A textual body may still be JSON (e.g. sent without a JSON
		// content type). Parse failure means no body fields to check.
		text, isText := body.Text()
		if !isText {
			return "", false
		}
		if err := json.Unmarshal([]byte(text), &obj); err != nil || obj == nil {
			return "", false
		}
	}

	for _, field := range bodyFields {
		v, present := obj[field]
		if !present || v == nil {
			continue
		}
		// Present-but-falsy values ("" or 0) still count.
		return stringify(v), true
	}
	return "", false
}

func fromHeaders(headers map[string]string) (string, bool) {
	lower := make(map[string]string, len(headers))
	for k, v := range headers {
		lower[strings.ToLower(k)] = v
	}
	for _, h := range typeHeaders {
		if v, ok := lower[h]; ok && v != "" {
			return v, true
		}
	}
	return "", false
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
