package serializer

import (
	"fmt"

	"github.com/ValentinKolb/dConf/rpc/common"
)

// IRPCSerializer is the interface for all Message serializers
type IRPCSerializer interface {
	// Serialize converts a Message into a byte array
	Serialize(msg common.Message) ([]byte, error)
	// Deserialize fills msg from a byte array produced by Serialize
	Deserialize(b []byte, msg *common.Message) error
}

// New returns the serializer with the given name (json or gob).
func New(name string) (IRPCSerializer, error) {
	switch name {
	case "json", "":
		return NewJSONSerializer(), nil
	case "gob":
		return NewGOBSerializer(), nil
	default:
		return nil, fmt.Errorf("unknown serializer %q, must be one of json, gob", name)
	}
}
