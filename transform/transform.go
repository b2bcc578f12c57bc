package transform

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/issuetools/youtrack-to-linear/types"
)

type ITransformer interface {
	TransformAll(items []types.RawItem) ([]types.TargetItem, types.TransformStats)
}

type Transformer struct {
	FieldMapping    types.FieldMapping
	DefaultState    string
	StateMapping    map[string]string
	PriorityMapping map[string]string
	Logger          *logrus.Logger
}

func NewTransformer(fieldMapping types.FieldMapping, defaultState string, stateMapping map[string]string, priorityMapping map[string]string, logger *logrus.Logger) *Transformer {
	return &Transformer{
		FieldMapping:    fieldMapping,
		DefaultState:    defaultState,
		StateMapping:    normalizeMapping(stateMapping),
		PriorityMapping: normalizeMapping(priorityMapping),
		Logger:          logger,
	}
}

// TransformAll converts every item in input order. Items failing the
// validity check are dropped and counted, never emitted with placeholder
// text; one bad record never aborts the batch.
func (transformer *Transformer) TransformAll(items []types.RawItem) ([]types.TargetItem, types.TransformStats) {
	stats := types.TransformStats{Input: len(items)}
	targets := make([]types.TargetItem, 0, len(items))

	for _, item := range items {
		target, err := transformer.TransformOne(item)
		if err != nil {
			stats.AddSkip(item.ID(), err.Error())
			transformer.Logger.Debugf("Skipping issue %q: %v", item.ID(), err)
			continue
		}
		targets = append(targets, target)
	}

	stats.Emitted = len(targets)
	return targets, stats
}

// TransformOne remaps a single item into the target schema. The returned
// error is a per-item skip reason, not a failure of the run.
func (transformer *Transformer) TransformOne(item types.RawItem) (types.TargetItem, error) {
	mapping := transformer.FieldMapping
	target := types.TargetItem{}

	title, _ := item.StringField(mapping.Title)
	title = strings.TrimSpace(title)
	if title == "" {
		return target, fmt.Errorf("missing %s field", mapping.Title)
	}
	target.Title = title

	// description is always present in the output, empty when the source
	// carried none
	description, _ := item.StringField(mapping.Description)
	target.Description = CleanMarkup(description)

	if millis, ok := item.Int64Field(mapping.CreatedAt); ok {
		target.CreatedAt = formatTimestamp(millis)
	}
	if millis, ok := item.Int64Field(mapping.UpdatedAt); ok {
		target.UpdatedAt = formatTimestamp(millis)
	}

	target.Identifier, _ = item.StringField(mapping.Identifier)
	target.CreatorEmail, _ = item.NestedString(mapping.Creator, "email")
	target.AssigneeEmail, _ = item.NestedString(mapping.Assignee, "email")

	if priority, ok := item.NestedString(mapping.Priority, "name"); ok {
		target.Priority = mapValue(transformer.PriorityMapping, priority)
	}
	if state, ok := item.NestedString(mapping.State, "name"); ok {
		target.State = mapValue(transformer.StateMapping, state)
	} else if transformer.DefaultState != "" {
		target.State = transformer.DefaultState
	}

	target.Labels = item.StringList(mapping.Labels, "name")
	return target, nil
}

// Mapping keys are matched case-insensitively; unmapped values pass through
// unchanged.
func mapValue(mapping map[string]string, value string) string {
	if mapped, ok := mapping[strings.ToLower(value)]; ok {
		return mapped
	}
	return value
}

func normalizeMapping(mapping map[string]string) map[string]string {
	if len(mapping) == 0 {
		return nil
	}
	normalized := make(map[string]string, len(mapping))
	for key, value := range mapping {
		normalized[strings.ToLower(key)] = value
	}
	return normalized
}

// Source timestamps are epoch milliseconds; the import tool wants RFC 3339.
func formatTimestamp(millis int64) string {
	return time.UnixMilli(millis).UTC().Format(time.RFC3339)
}
