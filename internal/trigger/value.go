package trigger

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// FieldValue is one typed Firestore value, e.g. {"booleanValue": true}.
// Kind is the JSON key ("stringValue", "arrayValue", ...).
type FieldValue struct {
	Kind string
	raw  json.RawMessage
}

// UnmarshalJSON keeps the single kind key and its raw payload.
func (f *FieldValue) UnmarshalJSON(data []byte) error {
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return fmt.Errorf("firestore value: %w", err)
	}
	if len(wrapper) != 1 {
		return fmt.Errorf("firestore value must carry exactly one kind, got %d", len(wrapper))
	}
	for kind, payload := range wrapper {
		f.Kind = kind
		f.raw = payload
	}
	return nil
}

type arrayPayload struct {
	Values []FieldValue `json:"values"`
}

type mapPayload struct {
	Fields map[string]FieldValue `json:"fields"`
}

type geoPointPayload struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Native converts the value to a plain Go value: string, bool, int64,
// float64, nil, time.Time, []byte, []interface{} or map[string]interface{}.
// References come back as their resource name string and geo points as a
// map with "latitude" and "longitude".
func (f FieldValue) Native() (interface{}, error) {
	switch f.Kind {
	case "nullValue":
		return nil, nil
	case "stringValue", "referenceValue":
		var s string
		if err := json.Unmarshal(f.raw, &s); err != nil {
			return nil, fmt.Errorf("%s: %w", f.Kind, err)
		}
		return s, nil
	case "booleanValue":
		var b bool
		if err := json.Unmarshal(f.raw, &b); err != nil {
			return nil, fmt.Errorf("%s: %w", f.Kind, err)
		}
		return b, nil
	case "integerValue":
		// int64 values are sent as decimal strings; tolerate bare numbers too.
		var s string
		if err := json.Unmarshal(f.raw, &s); err != nil {
			s = string(f.raw)
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Kind, err)
		}
		return n, nil
	case "doubleValue":
		var d float64
		if err := json.Unmarshal(f.raw, &d); err != nil {
			return nil, fmt.Errorf("%s: %w", f.Kind, err)
		}
		return d, nil
	case "timestampValue":
		var s string
		if err := json.Unmarshal(f.raw, &s); err != nil {
			return nil, fmt.Errorf("%s: %w", f.Kind, err)
		}
		ts, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Kind, err)
		}
		return ts, nil
	case "bytesValue":
		var s string
		if err := json.Unmarshal(f.raw, &s); err != nil {
			return nil, fmt.Errorf("%s: %w", f.Kind, err)
		}
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Kind, err)
		}
		return b, nil
	case "geoPointValue":
		var gp geoPointPayload
		if err := json.Unmarshal(f.raw, &gp); err != nil {
			return nil, fmt.Errorf("%s: %w", f.Kind, err)
		}
		return map[string]interface{}{"latitude": gp.Latitude, "longitude": gp.Longitude}, nil
	case "arrayValue":
		var arr arrayPayload
		if err := json.Unmarshal(f.raw, &arr); err != nil {
			return nil, fmt.Errorf("%s: %w", f.Kind, err)
		}
		out := make([]interface{}, 0, len(arr.Values))
		for i, v := range arr.Values {
			nv, err := v.Native()
			if err != nil {
				return nil, fmt.Errorf("arrayValue[%d]: %w", i, err)
			}
			out = append(out, nv)
		}
		return out, nil
	case "mapValue":
		var m mapPayload
		if err := json.Unmarshal(f.raw, &m); err != nil {
			return nil, fmt.Errorf("%s: %w", f.Kind, err)
		}
		return nativeFields(m.Fields)
	case "":
		return nil, errors.New("firestore value has no kind")
	default:
		return nil, fmt.Errorf("unsupported firestore value kind %q", f.Kind)
	}
}

func nativeFields(fields map[string]FieldValue) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(fields))
	for name, v := range fields {
		nv, err := v.Native()
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		out[name] = nv
	}
	return out, nil
}
