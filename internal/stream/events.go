package stream

import (
	"encoding/json"
	"log/slog"
	"strings"
)

// Event is one interpreted record from the reply stream. The concrete
// types form a closed set: ContentEvent, UsageEvent and
// UnrecognizedEvent. A nil Event means the record carried nothing
// (keep-alive, missing prefix, or unparseable payload).
type Event interface {
	isEvent()
}

// ContentEvent carries the assistant's reply text. The text is the
// complete response composed so far, not an incremental delta: the
// server re-sends the whole body on every record, so consumers must
// replace, never append.
type ContentEvent struct {
	Text string
}

// UsageEvent carries timing and token telemetry for a completed turn,
// typically the terminal record of the stream.
type UsageEvent struct {
	ElapsedSeconds float64
	InputTokens    int
	OutputTokens   int
}

// UnrecognizedEvent is a record that parsed as JSON but matched no
// known payload shape. Consumers discard it.
type UnrecognizedEvent struct{}

func (ContentEvent) isEvent()      {}
func (UsageEvent) isEvent()        {}
func (UnrecognizedEvent) isEvent() {}

// dataPrefix frames every meaningful record; records without it are
// ignored.
const dataPrefix = "data:"

// wireFrame is the superset of payload shapes the service emits.
// Pointer fields distinguish absent from zero during classification.
type wireFrame struct {
	Chunk *struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"chunk"`
	InputTokens  *int     `json:"input_tokens"`
	OutputTokens int      `json:"output_tokens"`
	Time         *float64 `json:"time"`
}

// Interpreter classifies raw records into Events. A malformed record is
// logged and skipped; it never terminates the stream.
type Interpreter struct {
	log *slog.Logger
}

// NewInterpreter creates an Interpreter reporting parse failures to log.
// A nil log falls back to slog.Default().
func NewInterpreter(log *slog.Logger) *Interpreter {
	if log == nil {
		log = slog.Default()
	}
	return &Interpreter{log: log}
}

// Interpret parses one record. It returns nil for records without the
// data prefix, empty keep-alive payloads, and payloads that fail to
// parse; everything else maps onto exactly one Event variant.
func (in *Interpreter) Interpret(record string) Event {
	rest, ok := strings.CutPrefix(strings.TrimSpace(record), dataPrefix)
	if !ok {
		return nil
	}
	payload := strings.TrimSpace(rest)
	if payload == "" {
		return nil
	}

	var frame wireFrame
	if err := json.Unmarshal([]byte(payload), &frame); err != nil {
		in.log.Warn("skipping malformed stream record", "error", err, "len", len(payload))
		return nil
	}

	switch {
	case frame.Chunk != nil && frame.Chunk.Content != nil:
		var sb strings.Builder
		for _, part := range frame.Chunk.Content {
			if part.Type == "text" {
				sb.WriteString(part.Text)
			}
		}
		return ContentEvent{Text: sb.String()}
	case frame.Time != nil && frame.InputTokens != nil:
		return UsageEvent{
			ElapsedSeconds: *frame.Time,
			InputTokens:    *frame.InputTokens,
			OutputTokens:   frame.OutputTokens,
		}
	default:
		return UnrecognizedEvent{}
	}
}
