package serializer

import (
	"reflect"
	"testing"

	"github.com/ValentinKolb/dConf/rpc/common"
)

// testSerializers is a map of serializer name to factory function
var testSerializers = map[string]func() IRPCSerializer{
	"JSON": NewJSONSerializer,
	"GOB":  NewGOBSerializer,
}

// testMessages creates a set of test messages with different fields filled
func testMessages() []common.Message {
	return []common.Message{
		// Basic message with just a type
		{MsgType: common.MsgTSuccess},

		// Set request
		{
			MsgType: common.MsgTCfgSet,
			Key:     "api.rateLimit",
			Value:   []byte(`{"rps":100}`),
		},

		// Get response
		{
			MsgType: common.MsgTCfgGet,
			Key:     "theme",
			Value:   []byte(`"dark"`),
			Ok:      true,
		},

		// Error response
		{
			MsgType: common.MsgTError,
			Err:     "test error message",
			ErrKind: "SerializationError",
		},

		// Message with all fields filled
		{
			MsgType: common.MsgTCfgHas,
			Key:     "feature.beta",
			Value:   []byte("true"),
			Ok:      true,
			Err:     "store is closed",
			ErrKind: "ConfigStoreError",
		},
	}
}

// TestSerializerRoundTrip tests that messages can be serialized and deserialized correctly
func TestSerializerRoundTrip(t *testing.T) {
	messages := testMessages()

	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			serializer := factory()

			for i, msg := range messages {
				data, err := serializer.Serialize(msg)
				if err != nil {
					t.Errorf("Failed to serialize message %d: %v", i, err)
					continue
				}

				var result common.Message
				if err := serializer.Deserialize(data, &result); err != nil {
					t.Errorf("Failed to deserialize message %d: %v", i, err)
					continue
				}

				if !reflect.DeepEqual(msg, result) {
					t.Errorf("Message %d doesn't match after round trip:\nOriginal: %+v\nResult: %+v",
						i, msg, result)
				}
			}
		})
	}
}

// TestMessageTypes tests each message type with each serializer
func TestMessageTypes(t *testing.T) {
	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			serializer := factory()

			for msgType := common.MsgTSuccess; msgType <= common.MsgTCfgHas; msgType++ {
				msg := common.Message{MsgType: msgType, Key: "k"}

				data, err := serializer.Serialize(msg)
				if err != nil {
					t.Errorf("Failed to serialize message type %s: %v", msgType, err)
					continue
				}

				var result common.Message
				if err := serializer.Deserialize(data, &result); err != nil {
					t.Errorf("Failed to deserialize message type %s: %v", msgType, err)
					continue
				}

				if result.MsgType != msgType {
					t.Errorf("Message type doesn't match after round trip: Expected %s, got %s", msgType, result.MsgType)
				}
			}
		})
	}
}

// TestInvalidData checks that garbage input is rejected
func TestInvalidData(t *testing.T) {
	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			var msg common.Message
			if err := factory().Deserialize([]byte("not a message"), &msg); err == nil {
				t.Errorf("Expected invalid data to fail")
			}
		})
	}
}

func TestNew(t *testing.T) {
	for _, name := range []string{"", "json", "gob"} {
		if _, err := New(name); err != nil {
			t.Errorf("Expected serializer %q to exist, got %v", name, err)
		}
	}
	if _, err := New("binary"); err == nil {
		t.Errorf("Expected an unknown serializer to fail")
	}
}
