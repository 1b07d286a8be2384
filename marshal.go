package usdt

import jsoniter "github.com/json-iterator/go"

// json is the encoding/json-compatible serializer used to render
// serializable-compound probe arguments.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// MarshalArg renders v as a JSON string for a serializable-compound probe
// argument. Serialization failure is not fatal: the argument value becomes
// the serializer's error message instead, and the probe still fires.
// Generated unpack blocks (internal/marshal) call this directly; callers
// never observe the failure as a distinct control-flow event.
func MarshalArg(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return err.Error()
	}
	return string(b)
}
