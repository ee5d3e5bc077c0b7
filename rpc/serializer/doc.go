// Package serializer converts RPC messages to bytes and back.
//
// Two implementations of IRPCSerializer are available:
//
//   - JSON: human readable, the default. Useful for debugging with curl.
//   - GOB: Go's binary gob encoding, smaller for large values.
//
// Client and server must use the same serializer. All implementations are
// stateless and safe for concurrent use.
//
// Usage:
//
//	s, err := serializer.New("json")
//	data, err := s.Serialize(*common.NewGetRequest("theme"))
//	var msg common.Message
//	err = s.Deserialize(data, &msg)
package serializer
