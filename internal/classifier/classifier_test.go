package classifier

import (
	"testing"

	"github.com/hookscope/hookscope-be/internal/model"
)

func TestClassifyBodyFieldPriority(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
		want string
	}{
		{
			name: "type beats event",
			body: map[string]any{"type": "payment.succeeded", "event": "push"},
			want: "payment.succeeded",
		},
		{
			name: "event beats event_type",
			body: map[string]any{"event": "push", "event_type": "other"},
			want: "push",
		},
		{
			name: "action when earlier fields absent",
			body: map[string]any{"action": "opened"},
			want: "opened",
		},
		{
			name: "kind is last resort body field",
			body: map[string]any{"kind": "order"},
			want: "order",
		},
		{
			name: "empty string still counts as present",
			body: map[string]any{"type": "", "event": "push"},
			want: "",
		},
		{
			name: "numeric values are stringified",
			body: map[string]any{"type": float64(0)},
			want: "0",
		},
		{
			name: "nil value is treated as absent",
			body: map[string]any{"type": nil, "event": "push"},
			want: "push",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(model.ObjectPayload(tt.body), nil)
			if got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifyHeaderPriority(t *testing.T) {
	headers := map[string]string{
		"x-github-event": "push",
		"x-event-type":   "generic",
	}
	if got := Classify(model.AbsentPayload(), headers); got != "push" {
		t.Errorf("expected github header to win, got %q", got)
	}

	// Header lookup is case-insensitive.
	headers = map[string]string{"X-Shopify-Topic": "orders/create"}
	if got := Classify(model.AbsentPayload(), headers); got != "orders/create" {
		t.Errorf("expected shopify topic, got %q", got)
	}
}

func TestClassifyBodyWinsOverHeaders(t *testing.T) {
	body := model.ObjectPayload(map[string]any{"event": "deploy"})
	headers := map[string]string{"x-github-event": "push"}
	if got := Classify(body, headers); got != "deploy" {
		t.Errorf("expected body field to win, got %q", got)
	}
}

func TestClassifyTextBody(t *testing.T) {
	// JSON sent as text is parsed before field lookup.
	body := model.TextPayload(`{"type":"invoice.paid"}`)
	if got := Classify(body, nil); got != "invoice.paid" {
		t.Errorf("expected parsed text body, got %q", got)
	}

	// Unparseable text falls through to headers.
	body = model.TextPayload("not json at all")
	headers := map[string]string{"x-event-name": "ping"}
	if got := Classify(body, headers); got != "ping" {
		t.Errorf("expected header fallback, got %q", got)
	}
}

func TestClassifyDefault(t *testing.T) {
	if got := Classify(model.AbsentPayload(), nil); got != Unknown {
		t.Errorf("expected %q, got %q", Unknown, got)
	}
	if got := Classify(model.ObjectPayload(map[string]any{"other": "x"}), map[string]string{"x-custom": "y"}); got != Unknown {
		t.Errorf("expected %q, got %q", Unknown, got)
	}
}
