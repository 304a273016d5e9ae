package freebase

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/custodia-labs/gdata-go/internal/gdata"
)

// ImageURIPrefix is where topic images are served from.
const ImageURIPrefix = "https://usercontent.googleapis.com/freebase/v1/image"

// ValueType is the type of a topic property's values.
type ValueType int

const (
	ValueNone ValueType = iota
	ValueKey
	ValueURI
	ValueCompound
	ValueObject
	ValueFloat
	ValueString
	ValueInt
	ValueBool
	ValueDatetime
)

var valueTypes = map[string]ValueType{
	"key":      ValueKey,
	"uri":      ValueURI,
	"compound": ValueCompound,
	"object":   ValueObject,
	"float":    ValueFloat,
	"string":   ValueString,
	"int":      ValueInt,
	"bool":     ValueBool,
	"datetime": ValueDatetime,
}

func (t ValueType) String() string {
	for name, v := range valueTypes {
		if v == t {
			return name
		}
	}
	return "none"
}

// TopicValue is one value of a topic property. Value holds a bool, int64,
// float64 or string for simple types, Unix seconds for datetimes and a
// *TopicObject for objects and compounds.
type TopicValue struct {
	Property  string
	Type      ValueType
	Text      string
	Lang      string
	Creator   string
	Timestamp int64
	Value     any
}

// Object returns the value as an object, or nil for simple values.
func (v *TopicValue) Object() *TopicObject {
	o, _ := v.Value.(*TopicObject)
	return o
}

// ImageURI returns the URI of the image an object value refers to, scaled
// to fit the given bounds when they are non-zero. Non-object values have
// no image.
func (v *TopicValue) ImageURI(maxWidth, maxHeight uint) string {
	o := v.Object()
	if o == nil {
		return ""
	}
	w := gdata.NewURIWriter(ImageURIPrefix + o.ID)
	if maxWidth > 0 {
		w.UintParam("maxwidth", maxWidth)
	}
	if maxHeight > 0 {
		w.UintParam("maxheight", maxHeight)
	}
	return w.String()
}

// TopicObject is a topic or compound value and its properties.
type TopicObject struct {
	ID     string
	values map[string][]*TopicValue
	counts map[string]int64
}

func newTopicObject(id string) *TopicObject {
	return &TopicObject{
		ID:     id,
		values: make(map[string][]*TopicValue),
		counts: make(map[string]int64),
	}
}

// Properties returns the property names in sorted order.
func (o *TopicObject) Properties() []string {
	names := make([]string, 0, len(o.values))
	for name := range o.values {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Values returns the values of property, or nil.
func (o *TopicObject) Values(property string) []*TopicValue { return o.values[property] }

// ValueCount returns the total number of values property has on the server,
// which may exceed the number returned.
func (o *TopicObject) ValueCount(property string) int64 { return o.counts[property] }

type rawValueArray struct {
	ValueType string            `json:"valuetype"`
	Count     float64           `json:"count"`
	Values    []json.RawMessage `json:"values"`
}

type rawValue struct {
	Text      *string                    `json:"text"`
	Lang      *string                    `json:"lang"`
	Creator   string                     `json:"creator"`
	Timestamp string                     `json:"timestamp"`
	Value     json.RawMessage            `json:"value"`
	ID        *string                    `json:"id"`
	Property  map[string]json.RawMessage `json:"property"`
}

// readProperties fills o from a property object. Reverse properties lose
// their leading '!'; members that are not Freebase ids are skipped.
func readProperties(o *TopicObject, props map[string]json.RawMessage) error {
	for name, data := range props {
		property := strings.TrimPrefix(name, "!")
		if !strings.HasPrefix(property, "/") {
			continue
		}
		var arr rawValueArray
		if err := json.Unmarshal(data, &arr); err != nil {
			return gdata.InvalidJSON(property, fmt.Sprintf("JSON node ‘%s’ is not an object.", property))
		}
		if arr.Count <= 0 {
			continue
		}
		t, ok := valueTypes[arr.ValueType]
		if !ok {
			return gdata.RequiredJSONContentMissing("valuetype")
		}
		if t == ValueKey || t == ValueURI {
			continue
		}
		values := make([]*TopicValue, 0, len(arr.Values))
		for _, raw := range arr.Values {
			v, err := readValue(property, t, raw)
			if err != nil {
				return err
			}
			if v != nil {
				values = append(values, v)
			}
		}
		o.values[property] = values
		o.counts[property] = int64(arr.Count)
	}
	return nil
}

// readValue decodes one value. Values whose payload does not match the
// declared type are dropped with a nil result.
func readValue(property string, t ValueType, data json.RawMessage) (*TopicValue, error) {
	var raw rawValue
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, gdata.InvalidJSON(property, "JSON node is not an object.")
	}
	if raw.Text == nil {
		return nil, gdata.RequiredJSONContentMissing("text")
	}
	if raw.Lang == nil {
		return nil, gdata.RequiredJSONContentMissing("lang")
	}

	v := &TopicValue{
		Property:  property,
		Type:      t,
		Text:      *raw.Text,
		Lang:      *raw.Lang,
		Creator:   raw.Creator,
		Timestamp: gdata.Unset,
	}
	if ts, ok := gdata.ParseISO8601(raw.Timestamp); ok {
		v.Timestamp = ts
	}

	switch t {
	case ValueBool:
		var b bool
		if json.Unmarshal(raw.Value, &b) != nil {
			return nil, nil
		}
		v.Value = b
	case ValueInt:
		var n int64
		if json.Unmarshal(raw.Value, &n) != nil {
			return nil, nil
		}
		v.Value = n
	case ValueFloat:
		var f float64
		if json.Unmarshal(raw.Value, &f) != nil {
			return nil, nil
		}
		v.Value = f
	case ValueString:
		var s string
		if json.Unmarshal(raw.Value, &s) != nil {
			return nil, nil
		}
		v.Value = s
	case ValueDatetime:
		var s string
		if json.Unmarshal(raw.Value, &s) != nil {
			return nil, nil
		}
		ts, ok := gdata.ParseISO8601(s)
		if !ok {
			ts, ok = gdata.ParseDate(s)
		}
		if !ok {
			return nil, nil
		}
		v.Value = ts
	case ValueObject:
		if raw.ID == nil {
			return nil, nil
		}
		v.Value = newTopicObject(*raw.ID)
	case ValueCompound:
		if raw.ID == nil || raw.Property == nil {
			return nil, nil
		}
		o := newTopicObject(*raw.ID)
		if err := readProperties(o, raw.Property); err != nil {
			return nil, err
		}
		v.Value = o
	default:
		return nil, nil
	}
	return v, nil
}

// TopicResult is the reply to a topic query.
type TopicResult struct {
	gdata.Entry

	object *TopicObject
}

// NewTopicResult returns an empty topic result.
func NewTopicResult() *TopicResult {
	r := &TopicResult{}
	r.InitEntry("")
	return r
}

// ContentType implements gdata.JSONParsable.
func (r *TopicResult) ContentType() string { return gdata.ContentTypeJSON }

func (r *TopicResult) ensureObject() *TopicObject {
	if r.object == nil {
		r.object = newTopicObject("")
	}
	return r.object
}

// ParseJSONMember reads the topic id and its property tree.
func (r *TopicResult) ParseJSONMember(name string, value json.RawMessage) (bool, error) {
	switch name {
	case "id":
		var id string
		if _, err := gdata.StringFromJSON(name, value, name, gdata.OptRequired|gdata.OptNonEmpty, &id); err != nil {
			return true, err
		}
		r.ensureObject().ID = id
		r.SetID(id)
		return true, nil
	case "property":
		var props map[string]json.RawMessage
		if err := json.Unmarshal(value, &props); err != nil {
			return true, gdata.InvalidJSON(name, "JSON node ‘property’ is not an object.")
		}
		return true, readProperties(r.ensureObject(), props)
	}
	return r.Entry.ParseJSONMember(name, value)
}

// GetJSON writes the topic id. The property tree is read-only.
func (r *TopicResult) GetJSON(j *gdata.JSONBuilder) {
	if id := r.ID(); id != "" {
		j.String("id", id)
	}
}

// Object returns the topic, or nil when the reply was empty.
func (r *TopicResult) Object() *TopicObject { return r.object }
