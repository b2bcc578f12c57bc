package types

import "encoding/json"

// RawItem is one issue exactly as the source tracker returned it. Field
// shapes are not fixed, so access goes through typed accessors that report
// absence instead of failing.
type RawItem map[string]any

func ParseItems(data []byte) ([]RawItem, error) {
	var items []RawItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func ParseItem(data []byte) (RawItem, error) {
	var item RawItem
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, err
	}
	return item, nil
}

// ID returns the human-readable issue identifier, or "" when the item
// carries none.
func (item RawItem) ID() string {
	if id, ok := item.StringField("idReadable"); ok && id != "" {
		return id
	}
	if id, ok := item.StringField("id"); ok {
		return id
	}
	return ""
}

func (item RawItem) StringField(name string) (string, bool) {
	value, ok := item[name].(string)
	return value, ok
}

func (item RawItem) Int64Field(name string) (int64, bool) {
	switch value := item[name].(type) {
	case float64:
		return int64(value), true
	case int64:
		return value, true
	case int:
		return int64(value), true
	case json.Number:
		parsed, err := value.Int64()
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// NestedString reads key from an object-valued field, e.g. the name of a
// priority or the email of a reporter.
func (item RawItem) NestedString(field, key string) (string, bool) {
	nested, ok := item[field].(map[string]any)
	if !ok {
		return "", false
	}
	value, ok := nested[key].(string)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// StringList collects key from every object in a list-valued field, e.g.
// the names of all tags. Entries without the key are skipped.
func (item RawItem) StringList(field, key string) []string {
	raw, ok := item[field].([]any)
	if !ok {
		return nil
	}
	values := []string{}
	for _, entry := range raw {
		entryMap, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if value, ok := entryMap[key].(string); ok && value != "" {
			values = append(values, value)
		}
	}
	if len(values) == 0 {
		return nil
	}
	return values
}

// TargetItem is one issue remapped into the shape the destination tracker's
// import tool expects. Title and Description are always present; the rest is
// populated only when the source carried a value.
type TargetItem struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	CreatedAt     string   `json:"createdAt,omitempty"`
	UpdatedAt     string   `json:"updatedAt,omitempty"`
	Identifier    string   `json:"identifier,omitempty"`
	CreatorEmail  string   `json:"creatorEmail,omitempty"`
	AssigneeEmail string   `json:"assigneeEmail,omitempty"`
	Priority      string   `json:"priority,omitempty"`
	State         string   `json:"state,omitempty"`
	Labels        []string `json:"labels,omitempty"`
}
