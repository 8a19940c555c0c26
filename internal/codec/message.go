package codec

import (
	"encoding/json"
	"errors"

	"github.com/apexlang/apex-lsp/internal/rpc"
)

var errNoID = errors.New("response frame without id")

// Kind classifies a parsed LSP frame (spec.md §4.1).
type Kind int

const (
	// KindRequest is a message with both an id and a method: a call
	// expecting a response.
	KindRequest Kind = iota
	// KindNotification is a message with a method but no id.
	KindNotification
	// KindResponseSuccess is an inbound reply carrying a result.
	KindResponseSuccess
	// KindResponseError is an inbound reply carrying an error object.
	KindResponseError
	// KindParseError marks a frame whose body failed to parse as JSON; it
	// carries the would-be id (or nil) so the dispatcher can still reply.
	KindParseError
)

// Message is a single parsed LSP frame, classified into one of the Kind
// variants above.
type Message struct {
	Kind    Kind
	ID      any // nil for notifications; comparable JSON scalar otherwise
	Method  string
	Params  json.RawMessage
	Result  json.RawMessage
	Err     *rpc.Error
	ParseErr error // set only for KindParseError
}

// envelope is the superset of fields any JSON-RPC 2.0 frame might carry;
// every inbound frame unmarshals into this first so the reader can classify
// it before deciding how to interpret the rest.
type envelope struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      *any            `json:"id,omitempty"`
	Method  *string         `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpc.Error      `json:"error,omitempty"`
}

func classify(raw []byte) Message {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		var id any
		if env.ID != nil {
			id = *env.ID
		}
		return Message{Kind: KindParseError, ID: id, ParseErr: err}
	}

	var id any
	if env.ID != nil {
		id = *env.ID
	}

	switch {
	case env.Method != nil && env.ID != nil:
		return Message{Kind: KindRequest, ID: id, Method: *env.Method, Params: env.Params}
	case env.Method != nil:
		return Message{Kind: KindNotification, Method: *env.Method, Params: env.Params}
	case env.ID == nil:
		// A response without an id is meaningless per spec.md §4.1 and is
		// silently dropped by the reader before it ever reaches here, but
		// guard anyway for direct callers of classify.
		return Message{Kind: KindParseError, ParseErr: errNoID}
	case env.Error != nil:
		return Message{Kind: KindResponseError, ID: id, Err: env.Error}
	default:
		return Message{Kind: KindResponseSuccess, ID: id, Result: env.Result}
	}
}
