package common

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ValentinKolb/dConf/lib/store"
)

// --------------------------------------------------------------------------
// Message Structure
// --------------------------------------------------------------------------

// Message represents a single message used for both requests and responses.
// Which fields are used depends on the type of message.
type Message struct {
	// Type of message
	MsgType MessageType `json:"msg_type"`

	// General fields
	Key   string `json:"key,omitempty"`   // Used for: Get, Set, Delete, Has
	Value []byte `json:"value,omitempty"` // JSON encoded config value. Used for: Set (request), Get (response)

	// Response only fields
	Ok      bool   `json:"ok,omitempty"`      // Used for: Get (found), Set (accepted), Delete (removed), Has (found)
	Err     string `json:"err,omitempty"`     // Empty if no error, otherwise contains the error message
	ErrKind string `json:"errKind,omitempty"` // Kind of a store error, empty for other errors
}

// ResponseError returns the error carried by a response, or nil.
// Store errors are rebuilt with their original kind.
func (m *Message) ResponseError() error {
	if m.MsgType != MsgTError && m.Err == "" {
		return nil
	}
	if kind, ok := parseKind(m.ErrKind); ok {
		return store.NewError(kind, m.Err)
	}
	return errors.New(m.Err)
}

// setErr stores err in the message, keeping the kind of store errors
func (m *Message) setErr(err error) {
	if err == nil {
		return
	}
	var storeErr *store.Error
	if errors.As(err, &storeErr) {
		m.ErrKind = storeErr.Kind.String()
		m.Err = storeErr.Msg
		if storeErr.Err != nil {
			m.Err = fmt.Sprintf("%s: %v", storeErr.Msg, storeErr.Err)
		}
		return
	}
	m.Err = err.Error()
}

// parseKind is the inverse of store.Kind.String
func parseKind(s string) (store.Kind, bool) {
	for _, k := range []store.Kind{store.KindConfigStore, store.KindConnection, store.KindSerialization} {
		if k.String() == s {
			return k, true
		}
	}
	return store.KindConfigStore, false
}

// --------------------------------------------------------------------------
// Message Factory Functions
// --------------------------------------------------------------------------

// NewGetRequest creates a new Get request
func NewGetRequest(key string) *Message {
	return &Message{
		MsgType: MsgTCfgGet,
		Key:     key,
	}
}

// NewGetResponse creates a new Get response
func NewGetResponse(value []byte, ok bool, err error) *Message {
	msg := &Message{
		MsgType: MsgTCfgGet,
		Ok:      ok,
		Value:   value,
	}
	msg.setErr(err)
	return msg
}

// NewSetRequest creates a new Set request
func NewSetRequest(key string, value []byte) *Message {
	return &Message{
		MsgType: MsgTCfgSet,
		Key:     key,
		Value:   value,
	}
}

// NewSetResponse creates a new Set response
func NewSetResponse(ok bool, err error) *Message {
	msg := &Message{
		MsgType: MsgTCfgSet,
		Ok:      ok,
	}
	msg.setErr(err)
	return msg
}

// NewDeleteRequest creates a new Delete request
func NewDeleteRequest(key string) *Message {
	return &Message{
		MsgType: MsgTCfgDelete,
		Key:     key,
	}
}

// NewDeleteResponse creates a new Delete response
func NewDeleteResponse(ok bool, err error) *Message {
	msg := &Message{
		MsgType: MsgTCfgDelete,
		Ok:      ok,
	}
	msg.setErr(err)
	return msg
}

// NewHasRequest creates a new Has request
func NewHasRequest(key string) *Message {
	return &Message{
		MsgType: MsgTCfgHas,
		Key:     key,
	}
}

// NewHasResponse creates a new Has response
func NewHasResponse(ok bool, err error) *Message {
	msg := &Message{
		MsgType: MsgTCfgHas,
		Ok:      ok,
	}
	msg.setErr(err)
	return msg
}

// NewErrorResponse creates a new Error response
func NewErrorResponse(err error) *Message {
	msg := &Message{
		MsgType: MsgTError,
	}
	msg.setErr(err)
	return msg
}

// --------------------------------------------------------------------------
// Message Type Definition
// --------------------------------------------------------------------------

// MessageType defines the type of message used in RPC communication.
type MessageType uint8

// String returns the string representation of a MessageType.
func (t MessageType) String() string {
	switch t {
	case MsgTSuccess:
		return "success"
	case MsgTError:
		return "error"
	case MsgTCfgGet:
		return "get"
	case MsgTCfgSet:
		return "set"
	case MsgTCfgDelete:
		return "delete"
	case MsgTCfgHas:
		return "has"
	default:
		return "unknown"
	}
}

// MarshalJSON implements the json.Marshaller interface for MessageType.
// This allows MessageType to be serialized as a string in JSON.
func (t MessageType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for MessageType.
func (t *MessageType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	switch s {
	case "success":
		*t = MsgTSuccess
	case "error":
		*t = MsgTError
	case "get":
		*t = MsgTCfgGet
	case "set":
		*t = MsgTCfgSet
	case "delete":
		*t = MsgTCfgDelete
	case "has":
		*t = MsgTCfgHas
	default:
		return fmt.Errorf("unknown message type: %s", s)
	}

	return nil
}

// --------------------------------------------------------------------------
// Message Type Constants
// --------------------------------------------------------------------------

const (
	// General message types

	MsgTUnknown MessageType = iota
	MsgTSuccess             // Indicates a successful operation
	MsgTError               // Indicates an error occurred

	// IStore operations

	MsgTCfgGet    // Get a config value by key
	MsgTCfgSet    // Set a config value
	MsgTCfgDelete // Delete a config value
	MsgTCfgHas    // Check if a key exists
)
