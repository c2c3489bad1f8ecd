package entities

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ReadingsKind enumerates the shapes a record's readings can take.
type ReadingsKind int

const (
	ReadingsNone    ReadingsKind = iota // no usable readings
	ReadingsGrouped                     // {"on": [...], "kun": [...]}
	ReadingsFlat                        // ["...", ...]
)

// Readings is the normalized form of a record's pronunciations.
// The shape is resolved once while decoding; callers switch on Kind.
type Readings struct {
	Kind ReadingsKind
	On   []string
	Kun  []string
	Flat []string
}

// GroupedReadings builds grouped on/kun readings.
func GroupedReadings(on, kun []string) Readings {
	on, kun = cleanStrings(on), cleanStrings(kun)
	if len(on) == 0 && len(kun) == 0 {
		return Readings{}
	}
	return Readings{Kind: ReadingsGrouped, On: on, Kun: kun}
}

// FlatReadings builds a flat reading list.
func FlatReadings(readings ...string) Readings {
	readings = cleanStrings(readings)
	if len(readings) == 0 {
		return Readings{}
	}
	return Readings{Kind: ReadingsFlat, Flat: readings}
}

// First returns the representative reading: the first on reading, then the
// first kun reading, then the first flat reading, otherwise NoReading.
func (r Readings) First() string {
	switch r.Kind {
	case ReadingsGrouped:
		if len(r.On) > 0 {
			return r.On[0]
		}
		if len(r.Kun) > 0 {
			return r.Kun[0]
		}
	case ReadingsFlat:
		if len(r.Flat) > 0 {
			return r.Flat[0]
		}
	}
	return NoReading
}

// All returns every reading in display order.
func (r Readings) All() []string {
	switch r.Kind {
	case ReadingsGrouped:
		out := make([]string, 0, len(r.On)+len(r.Kun))
		out = append(out, r.On...)
		return append(out, r.Kun...)
	case ReadingsFlat:
		return append([]string(nil), r.Flat...)
	default:
		return nil
	}
}

// IsEmpty reports whether no reading is available.
func (r Readings) IsEmpty() bool {
	return r.Kind == ReadingsNone
}

// UnmarshalJSON resolves the grouped, flat and missing shapes.
func (r *Readings) UnmarshalJSON(data []byte) error {
	*r = Readings{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '{':
		var grouped struct {
			On  []json.RawMessage `json:"on"`
			Kun []json.RawMessage `json:"kun"`
		}
		if err := json.Unmarshal(data, &grouped); err != nil {
			return nil
		}
		*r = GroupedReadings(rawStrings(grouped.On), rawStrings(grouped.Kun))
	case '[':
		var flat []json.RawMessage
		if err := json.Unmarshal(data, &flat); err != nil {
			return nil
		}
		*r = FlatReadings(rawStrings(flat)...)
	}

	return nil
}

// MarshalJSON writes the shape the record was decoded from.
func (r Readings) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case ReadingsGrouped:
		return json.Marshal(struct {
			On  []string `json:"on"`
			Kun []string `json:"kun"`
		}{On: nonNil(r.On), Kun: nonNil(r.Kun)})
	case ReadingsFlat:
		return json.Marshal(r.Flat)
	default:
		return []byte("null"), nil
	}
}

// ExampleKind enumerates the legacy shapes of example sentences.
type ExampleKind int

const (
	ExampleLong  ExampleKind = iota // {"japanese": "...", "russian": "..."}
	ExampleShort                    // {"jp": "...", "ru": "..."}
	ExampleText                     // bare string, no translation
	ExampleRaw                      // anything else, kept as its JSON text
)

// Example is a source-language sentence with its translation.
type Example struct {
	Kind        ExampleKind
	Japanese    string
	Translation string
}

// UnmarshalJSON resolves the supported example shapes.
func (e *Example) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*e = Example{Kind: ExampleText, Japanese: text}
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err == nil {
		if jp, ru := decodeString(fields["japanese"]), decodeString(fields["russian"]); jp != "" && ru != "" {
			*e = Example{Kind: ExampleLong, Japanese: jp, Translation: ru}
			return nil
		}
		if jp, ru := decodeString(fields["jp"]), decodeString(fields["ru"]); jp != "" && ru != "" {
			*e = Example{Kind: ExampleShort, Japanese: jp, Translation: ru}
			return nil
		}
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, data); err != nil {
		*e = Example{Kind: ExampleRaw, Japanese: string(data)}
		return nil
	}
	*e = Example{Kind: ExampleRaw, Japanese: compact.String()}
	return nil
}

// MarshalJSON always writes the long form.
func (e Example) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Japanese string `json:"japanese"`
		Russian  string `json:"russian"`
	}{Japanese: e.Japanese, Russian: e.Translation})
}

func rawStrings(items []json.RawMessage) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, decodeString(item))
	}
	return out
}

func cleanStrings(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
