package transcript

import (
	"testing"
	"time"
)

func TestParseLine_ToolCall(t *testing.T) {
	line := `{"type":"response_item","timestamp":"2025-08-01T10:00:00Z","payload":{"type":"function_call","name":"shell","arguments":"{}"}}`

	event, ok := ParseLine([]byte(line))
	if !ok {
		t.Fatal("Expected event, got skip")
	}
	if event.Kind != KindToolCall {
		t.Errorf("Expected tool_call, got %s", event.Kind)
	}
	if event.ToolName != "shell" {
		t.Errorf("Expected tool name 'shell', got %q", event.ToolName)
	}
	want := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	if !event.Timestamp.Equal(want) {
		t.Errorf("Expected timestamp %v, got %v", want, event.Timestamp)
	}
}

func TestParseLine_ToolCallWithoutName(t *testing.T) {
	line := `{"type":"response_item","payload":{"type":"function_call"}}`

	event, ok := ParseLine([]byte(line))
	if !ok {
		t.Fatal("Expected event, got skip")
	}
	if event.ToolName != "unknown" {
		t.Errorf("Expected default tool name 'unknown', got %q", event.ToolName)
	}
}

func TestParseLine_Kinds(t *testing.T) {
	cases := []struct {
		name string
		line string
		want EventKind
	}{
		{"reasoning", `{"type":"response_item","payload":{"type":"reasoning"}}`, KindReasoning},
		{"user message", `{"type":"response_item","payload":{"type":"message","role":"user"}}`, KindUserMessage},
		{"assistant message", `{"type":"response_item","payload":{"type":"message","role":"assistant"}}`, KindAssistantMessage},
		{"developer message", `{"type":"response_item","payload":{"type":"message","role":"developer"}}`, KindAssistantMessage},
		{"tool role ignored", `{"type":"response_item","payload":{"type":"message","role":"tool"}}`, KindOther},
		{"error", `{"type":"event_msg","payload":{"event_type":"error"}}`, KindError},
		{"tool error", `{"type":"event_msg","payload":{"event_type":"tool_error"}}`, KindError},
		{"other event_msg", `{"type":"event_msg","payload":{"event_type":"agent_message"}}`, KindOther},
		{"unrecognized type", `{"type":"session_meta","payload":{"id":"abc"}}`, KindOther},
		{"unrecognized payload type", `{"type":"response_item","payload":{"type":"function_call_output"}}`, KindOther},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			event, ok := ParseLine([]byte(tc.line))
			if !ok {
				t.Fatal("Expected event, got skip")
			}
			if event.Kind != tc.want {
				t.Errorf("Expected %s, got %s", tc.want, event.Kind)
			}
		})
	}
}

func TestParseLine_Skip(t *testing.T) {
	cases := []struct {
		name string
		line string
	}{
		{"empty", ""},
		{"whitespace only", "   \t  "},
		{"malformed json", `{"type":"response_item",`},
		{"not an object", `"just a string"`},
		{"missing type", `{"payload":{"type":"function_call"}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := ParseLine([]byte(tc.line)); ok {
				t.Errorf("Expected skip for %q", tc.line)
			}
		})
	}
}

func TestParseLine_TimestampOnUncategorizedEvent(t *testing.T) {
	line := `{"type":"session_meta","timestamp":"2025-08-01T09:30:00Z","payload":{}}`

	event, ok := ParseLine([]byte(line))
	if !ok {
		t.Fatal("Expected event, got skip")
	}
	if event.Timestamp.IsZero() {
		t.Error("Expected timestamp to be tracked on uncategorized event")
	}
}
