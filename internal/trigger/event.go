package trigger

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// Document path patterns the service is subscribed to.
const (
	MatchDocumentPattern   = "matches/{matchId}"
	PaymentDocumentPattern = "matches/{matchId}/payments/{userId}"
)

// ErrMalformedEvent is returned when an event body cannot be decoded.
var ErrMalformedEvent = errors.New("malformed firestore event")

// Event is the payload of a Firestore document-change event.
type Event struct {
	OldValue   Value      `json:"oldValue"`
	Value      Value      `json:"value"`
	UpdateMask UpdateMask `json:"updateMask"`
}

// UpdateMask lists the field paths changed by an update.
type UpdateMask struct {
	FieldPaths []string `json:"fieldPaths"`
}

// Value is one document snapshot. A zero Value means the snapshot is absent,
// e.g. oldValue on a create or value on a delete.
type Value struct {
	CreateTime time.Time             `json:"createTime"`
	Fields     map[string]FieldValue `json:"fields"`
	Name       string                `json:"name"`
	UpdateTime time.Time             `json:"updateTime"`
}

// Decode reads one event from r.
func Decode(r io.Reader) (*Event, error) {
	var e Event
	if err := json.NewDecoder(r).Decode(&e); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if !e.OldValue.Exists() && !e.Value.Exists() {
		return nil, fmt.Errorf("%w: neither oldValue nor value carries a document name", ErrMalformedEvent)
	}
	return &e, nil
}

// Exists reports whether the snapshot is present.
func (v Value) Exists() bool {
	return v.Name != ""
}

// Data returns the snapshot fields as plain Go values.
func (v Value) Data() (map[string]interface{}, error) {
	return nativeFields(v.Fields)
}

// DecodeInto fills out, a pointer to a struct, from the snapshot fields using
// the struct's `firestore` tags.
func (v Value) DecodeInto(out interface{}) error {
	data, err := v.Data()
	if err != nil {
		return err
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "firestore",
		Result:  out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(data); err != nil {
		return fmt.Errorf("decode %s: %w", v.Name, err)
	}
	return nil
}

// Document returns the most recent snapshot: value, or oldValue when the
// document was deleted.
func (e *Event) Document() Value {
	if e.Value.Exists() {
		return e.Value
	}
	return e.OldValue
}

// TransitionKey identifies the write that produced this event. Redeliveries
// of the same event share the key, later writes to the document do not.
// It is empty when the snapshot carries no updateTime, since such events
// cannot be told apart.
func (e *Event) TransitionKey() string {
	doc := e.Document()
	if doc.Name == "" || doc.UpdateTime.IsZero() {
		return ""
	}
	return doc.Name + "@" + doc.UpdateTime.UTC().Format(time.RFC3339Nano)
}

// Params extracts the path parameters of the event's document for pattern.
func (e *Event) Params(pattern string) (map[string]string, error) {
	return ParamsFor(pattern, e.Document().Name)
}

// ParamsFor matches a document resource name such as
// "projects/p/databases/(default)/documents/matches/m1/payments/u9" against a
// pattern such as "matches/{matchId}/payments/{userId}" and returns the
// wildcard values. A bare relative path ("matches/m1") is accepted as well.
func ParamsFor(pattern, name string) (map[string]string, error) {
	path := name
	if i := strings.Index(name, "/documents/"); i >= 0 {
		path = name[i+len("/documents/"):]
	}
	path = strings.Trim(path, "/")

	want := strings.Split(pattern, "/")
	got := strings.Split(path, "/")
	if len(want) != len(got) {
		return nil, fmt.Errorf("document %q does not match %q", name, pattern)
	}

	params := make(map[string]string)
	for i, seg := range want {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			if got[i] == "" {
				return nil, fmt.Errorf("document %q has an empty %s segment", name, seg)
			}
			params[strings.Trim(seg, "{}")] = got[i]
			continue
		}
		if seg != got[i] {
			return nil, fmt.Errorf("document %q does not match %q", name, pattern)
		}
	}
	return params, nil
}
