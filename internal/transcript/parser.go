// Package transcript parses agent session JSONL logs into domain events
// and folds them into per-session metrics.
package transcript

import (
	"encoding/json"
	"time"
)

// EventKind classifies a parsed transcript event.
type EventKind int

const (
	// KindOther is a well-formed event that belongs to no scored category.
	// It still counts toward the session total and duration tracking.
	KindOther EventKind = iota
	KindToolCall
	KindReasoning
	KindUserMessage
	KindAssistantMessage
	KindError
)

// String returns a short name for the kind, for logging.
func (k EventKind) String() string {
	switch k {
	case KindToolCall:
		return "tool_call"
	case KindReasoning:
		return "reasoning"
	case KindUserMessage:
		return "user_message"
	case KindAssistantMessage:
		return "assistant_message"
	case KindError:
		return "error"
	default:
		return "other"
	}
}

// Event is one parsed line of a session log.
type Event struct {
	Kind EventKind

	// ToolName is set for KindToolCall events.
	ToolName string

	// Timestamp is the event's own timestamp, zero if the line carried none.
	Timestamp time.Time
}

// ParseLine parses a single JSONL line into an Event. The second return
// value is false when the line is skipped: empty or whitespace-only input,
// malformed JSON, or a line with no recognizable "type" field. Skipping is
// never an error; a corrupt file still yields events for its valid lines.
func ParseLine(line []byte) (*Event, bool) {
	if isBlank(line) {
		return nil, false
	}

	var raw struct {
		Type      string                 `json:"type"`
		Timestamp string                 `json:"timestamp"`
		Payload   map[string]interface{} `json:"payload"`
	}
	if err := json.Unmarshal(line, &raw); err != nil {
		return nil, false
	}
	if raw.Type == "" {
		return nil, false
	}

	event := &Event{Kind: KindOther}
	if raw.Timestamp != "" {
		event.Timestamp, _ = time.Parse(time.RFC3339Nano, raw.Timestamp)
	}

	payloadType, _ := raw.Payload["type"].(string)

	switch raw.Type {
	case "response_item":
		switch payloadType {
		case "function_call":
			event.Kind = KindToolCall
			name, _ := raw.Payload["name"].(string)
			if name == "" {
				name = "unknown"
			}
			event.ToolName = name
		case "reasoning":
			event.Kind = KindReasoning
		case "message":
			role, _ := raw.Payload["role"].(string)
			switch role {
			case "user":
				event.Kind = KindUserMessage
			case "assistant", "developer":
				event.Kind = KindAssistantMessage
			}
		}
	case "event_msg":
		eventType, _ := raw.Payload["event_type"].(string)
		if eventType == "error" || eventType == "tool_error" {
			event.Kind = KindError
		}
	}

	return event, true
}

func isBlank(line []byte) bool {
	for _, b := range line {
		switch b {
		case ' ', '\t', '\r', '\n':
		default:
			return false
		}
	}
	return true
}
