package domain

// ActionKind tells the client what a quick action does when triggered.
type ActionKind string

const (
	ActionNavigate ActionKind = "navigate"
	ActionModal    ActionKind = "modal"
	ActionStub     ActionKind = "stub"
)

type StatTile struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// QuickAction is a dumb dispatch entry: the composer does not validate
// that the target is meaningful.
type QuickAction struct {
	Title  string     `json:"title"`
	Icon   string     `json:"icon"`
	Kind   ActionKind `json:"kind"`
	Target string     `json:"target,omitempty"`
}

// Dashboard is the role-specific composition rendered inside the common
// portal shell.
type Dashboard struct {
	Title        string        `json:"title"`
	Role         Role          `json:"role"`
	Stats        []StatTile    `json:"stats"`
	QuickActions []QuickAction `json:"quick_actions"`
}
