package types

// FieldMapping names the source field feeding each target field. It is fixed
// at configuration time and never derived from the data itself.
type FieldMapping struct {
	Title       string
	Description string
	CreatedAt   string
	UpdatedAt   string
	Identifier  string
	Creator     string
	Assignee    string
	Priority    string
	State       string
	Labels      string
}

func DefaultFieldMapping() FieldMapping {
	return FieldMapping{
		Title:       "summary",
		Description: "description",
		CreatedAt:   "created",
		UpdatedAt:   "updated",
		Identifier:  "idReadable",
		Creator:     "reporter",
		Assignee:    "assignee",
		Priority:    "priority",
		State:       "state",
		Labels:      "tags",
	}
}
