package transform

import (
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/issuetools/youtrack-to-linear/types"
)

func newTestTransformer() *Transformer {
	return NewTransformer(types.DefaultFieldMapping(), "", nil, nil, logrus.New())
}

func TestTransformer_TransformOne_MapsAllFields(t *testing.T) {
	transformer := newTestTransformer()
	item := types.RawItem{
		"idReadable":  "DEMO-7",
		"summary":     "Fix login crash",
		"description": "*important* note",
		"created":     float64(1700000000000),
		"updated":     float64(1700003600000),
		"reporter":    map[string]any{"name": "Jane", "email": "jane@example.com"},
		"assignee":    map[string]any{"name": "Joe", "email": "joe@example.com"},
		"priority":    map[string]any{"name": "Critical"},
		"state":       map[string]any{"name": "In Progress"},
		"tags": []any{
			map[string]any{"name": "backend"},
			map[string]any{"name": "urgent"},
		},
	}

	target, err := transformer.TransformOne(item)

	require.NoError(t, err)
	assert.Equal(t, "Fix login crash", target.Title)
	assert.Equal(t, "**important** note", target.Description)
	assert.Equal(t, "2023-11-14T22:13:20Z", target.CreatedAt)
	assert.Equal(t, "2023-11-14T23:13:20Z", target.UpdatedAt)
	assert.Equal(t, "DEMO-7", target.Identifier)
	assert.Equal(t, "jane@example.com", target.CreatorEmail)
	assert.Equal(t, "joe@example.com", target.AssigneeEmail)
	assert.Equal(t, "Critical", target.Priority)
	assert.Equal(t, "In Progress", target.State)
	assert.Equal(t, []string{"backend", "urgent"}, target.Labels)
}

func TestTransformer_TransformOne_BlankTitleDropped(t *testing.T) {
	transformer := newTestTransformer()

	_, err := transformer.TransformOne(types.RawItem{"summary": "  ", "description": "x"})

	assert.Error(t, err)
}

func TestTransformer_TransformOne_MissingTitleDropped(t *testing.T) {
	transformer := newTestTransformer()

	_, err := transformer.TransformOne(types.RawItem{"description": "x"})

	assert.Error(t, err)
}

func TestTransformer_TransformOne_MissingDescriptionBecomesEmpty(t *testing.T) {
	transformer := newTestTransformer()

	target, err := transformer.TransformOne(types.RawItem{"summary": "Fix bug"})

	require.NoError(t, err)
	assert.Equal(t, "", target.Description)
}

func TestTransformer_TransformOne_MalformedNestedFieldsSkippedNotFatal(t *testing.T) {
	transformer := newTestTransformer()
	item := types.RawItem{
		"summary":  "Odd shapes",
		"reporter": "not an object",
		"priority": float64(3),
		"tags":     "not a list",
		"created":  "not a number",
	}

	target, err := transformer.TransformOne(item)

	require.NoError(t, err)
	assert.Equal(t, "Odd shapes", target.Title)
	assert.Empty(t, target.CreatorEmail)
	assert.Empty(t, target.Priority)
	assert.Empty(t, target.CreatedAt)
	assert.Nil(t, target.Labels)
}

func TestTransformer_TransformOne_DefaultState(t *testing.T) {
	transformer := NewTransformer(types.DefaultFieldMapping(), "backlog", nil, nil, logrus.New())

	target, err := transformer.TransformOne(types.RawItem{"summary": "No state"})

	require.NoError(t, err)
	assert.Equal(t, "backlog", target.State)
}

func TestTransformer_TransformOne_DefaultStateNotAppliedOverSourceState(t *testing.T) {
	transformer := NewTransformer(types.DefaultFieldMapping(), "backlog", nil, nil, logrus.New())
	item := types.RawItem{
		"summary": "Has state",
		"state":   map[string]any{"name": "Done"},
	}

	target, err := transformer.TransformOne(item)

	require.NoError(t, err)
	assert.Equal(t, "Done", target.State)
}

func TestTransformer_TransformOne_StateMappingCaseInsensitive(t *testing.T) {
	stateMapping := map[string]string{"In Progress": "started", "done": "completed"}
	transformer := NewTransformer(types.DefaultFieldMapping(), "", stateMapping, nil, logrus.New())

	item := types.RawItem{"summary": "A", "state": map[string]any{"name": "in progress"}}
	target, err := transformer.TransformOne(item)
	require.NoError(t, err)
	assert.Equal(t, "started", target.State)

	item = types.RawItem{"summary": "B", "state": map[string]any{"name": "Done"}}
	target, err = transformer.TransformOne(item)
	require.NoError(t, err)
	assert.Equal(t, "completed", target.State)

	// unmapped states pass through unchanged
	item = types.RawItem{"summary": "C", "state": map[string]any{"name": "Blocked"}}
	target, err = transformer.TransformOne(item)
	require.NoError(t, err)
	assert.Equal(t, "Blocked", target.State)
}

func TestTransformer_TransformOne_PriorityMapping(t *testing.T) {
	priorityMapping := map[string]string{"critical": "1", "major": "2"}
	transformer := NewTransformer(types.DefaultFieldMapping(), "", nil, priorityMapping, logrus.New())

	item := types.RawItem{"summary": "A", "priority": map[string]any{"name": "Critical"}}
	target, err := transformer.TransformOne(item)
	require.NoError(t, err)
	assert.Equal(t, "1", target.Priority)
}

func TestTransformer_TransformOne_CustomFieldMapping(t *testing.T) {
	mapping := types.DefaultFieldMapping()
	mapping.Title = "name"
	transformer := NewTransformer(mapping, "", nil, nil, logrus.New())

	target, err := transformer.TransformOne(types.RawItem{"name": "Renamed source"})

	require.NoError(t, err)
	assert.Equal(t, "Renamed source", target.Title)
}

func TestTransformer_TransformAll_PreservesOrderAndCountsSkips(t *testing.T) {
	transformer := newTestTransformer()
	items := []types.RawItem{
		{"idReadable": "DEMO-1", "summary": "A"},
		{"idReadable": "DEMO-2", "summary": ""},
		{"idReadable": "DEMO-3", "summary": "C"},
	}

	targets, stats := transformer.TransformAll(items)

	require.Len(t, targets, 2)
	assert.Equal(t, "A", targets[0].Title)
	assert.Equal(t, "C", targets[1].Title)
	assert.Equal(t, 3, stats.Input)
	assert.Equal(t, 2, stats.Emitted)
	assert.Equal(t, 1, stats.Skipped)
	require.Len(t, stats.Diagnostics, 1)
	assert.Equal(t, "DEMO-2", stats.Diagnostics[0].Identifier)
}

func TestTransformer_TransformAll_EmptyInput(t *testing.T) {
	transformer := newTestTransformer()

	targets, stats := transformer.TransformAll([]types.RawItem{})

	assert.Empty(t, targets)
	assert.Equal(t, 0, stats.Input)
	assert.Equal(t, 0, stats.Skipped)
}

func TestTransformer_TransformAll_DiagnosticSampleIsCapped(t *testing.T) {
	transformer := newTestTransformer()
	items := []types.RawItem{}
	for i := 0; i < types.MaxDiagnostics+10; i++ {
		items = append(items, types.RawItem{"idReadable": fmt.Sprintf("DEMO-%d", i), "summary": ""})
	}

	targets, stats := transformer.TransformAll(items)

	assert.Empty(t, targets)
	assert.Equal(t, types.MaxDiagnostics+10, stats.Skipped)
	assert.Len(t, stats.Diagnostics, types.MaxDiagnostics)
}
