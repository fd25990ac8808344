// Package library defines the prompt library document, its seed content and
// the shape validator applied to every document read from disk or imported.
package library

// Kind selects one of the two independent category namespaces.
type Kind string

const (
	KindPrompt     Kind = "prompt"
	KindCheckpoint Kind = "checkpoint"
)

// ParseKind maps user input to a Kind. Empty input defaults to KindPrompt.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "", "prompt", "prompts":
		return KindPrompt, true
	case "checkpoint", "checkpoints":
		return KindCheckpoint, true
	}
	return "", false
}

// Category is a named bucket for prompts or checkpoints.
type Category struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Prompt is a reusable text template.
type Prompt struct {
	ID         string `json:"id" yaml:"id"`
	CategoryID string `json:"categoryId" yaml:"categoryId"`
	Title      string `json:"title" yaml:"title"`
	Body       string `json:"body" yaml:"body"`
}

// Checkpoint is a saved snippet with a description and save time.
type Checkpoint struct {
	ID          string `json:"id" yaml:"id"`
	CategoryID  string `json:"categoryId" yaml:"categoryId"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Body        string `json:"body" yaml:"body"`
	SavedAt     string `json:"savedAt" yaml:"savedAt"`
}

// Library is the whole on-disk document.
//
// CheckpointCategories and Checkpoints are nil after decoding a legacy
// document that lacks those keys; Backfill fills them in.
type Library struct {
	Categories           []Category   `json:"categories" yaml:"categories"`
	Prompts              []Prompt     `json:"prompts" yaml:"prompts"`
	CheckpointCategories []Category   `json:"checkpointCategories" yaml:"checkpointCategories"`
	Checkpoints          []Checkpoint `json:"checkpoints" yaml:"checkpoints"`
}

// Counts summarizes the size of each collection.
type Counts struct {
	Categories           int `json:"categories" yaml:"categories"`
	Prompts              int `json:"prompts" yaml:"prompts"`
	CheckpointCategories int `json:"checkpoint_categories" yaml:"checkpoint_categories"`
	Checkpoints          int `json:"checkpoints" yaml:"checkpoints"`
}

// Counts returns the collection sizes of l.
func (l *Library) Counts() Counts {
	return Counts{
		Categories:           len(l.Categories),
		Prompts:              len(l.Prompts),
		CheckpointCategories: len(l.CheckpointCategories),
		Checkpoints:          len(l.Checkpoints),
	}
}

// Clone returns a deep copy of l. All fields are strings, so copying the
// slices is enough to make the result independent.
func (l *Library) Clone() *Library {
	if l == nil {
		return nil
	}
	return &Library{
		Categories:           cloneSlice(l.Categories),
		Prompts:              cloneSlice(l.Prompts),
		CheckpointCategories: cloneSlice(l.CheckpointCategories),
		Checkpoints:          cloneSlice(l.Checkpoints),
	}
}

// Backfill materializes the optional checkpoint fields of a legacy document.
// It reports whether anything changed; calling it again is a no-op.
func (l *Library) Backfill() bool {
	changed := false
	if l.CheckpointCategories == nil {
		l.CheckpointCategories = cloneSlice(l.Categories)
		if l.CheckpointCategories == nil {
			l.CheckpointCategories = []Category{}
		}
		changed = true
	}
	if l.Checkpoints == nil {
		l.Checkpoints = []Checkpoint{}
		changed = true
	}
	return changed
}

// normalized returns a shallow copy whose collections are never nil, so that
// encoding always writes arrays.
func (l *Library) normalized() *Library {
	out := *l
	if out.Categories == nil {
		out.Categories = []Category{}
	}
	if out.Prompts == nil {
		out.Prompts = []Prompt{}
	}
	if out.CheckpointCategories == nil {
		out.CheckpointCategories = []Category{}
	}
	if out.Checkpoints == nil {
		out.Checkpoints = []Checkpoint{}
	}
	return &out
}

// CategorySet returns the categories of the given namespace.
func (l *Library) CategorySet(kind Kind) []Category {
	if kind == KindCheckpoint {
		return l.CheckpointCategories
	}
	return l.Categories
}

// SetCategorySet replaces the categories of the given namespace.
func (l *Library) SetCategorySet(kind Kind, cats []Category) {
	if kind == KindCheckpoint {
		l.CheckpointCategories = cats
		return
	}
	l.Categories = cats
}

// FindCategory returns the index of the category with id in kind's set, or -1.
func (l *Library) FindCategory(kind Kind, id string) int {
	for i, c := range l.CategorySet(kind) {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// CategoryRefs counts the items that reference category id in kind's namespace.
func (l *Library) CategoryRefs(kind Kind, id string) int {
	n := 0
	if kind == KindCheckpoint {
		for _, c := range l.Checkpoints {
			if c.CategoryID == id {
				n++
			}
		}
		return n
	}
	for _, p := range l.Prompts {
		if p.CategoryID == id {
			n++
		}
	}
	return n
}

// FindPrompt returns the index of the prompt with id, or -1.
func (l *Library) FindPrompt(id string) int {
	for i, p := range l.Prompts {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// FindCheckpoint returns the index of the checkpoint with id, or -1.
func (l *Library) FindCheckpoint(id string) int {
	for i, c := range l.Checkpoints {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// PromptsIn returns the prompts in categoryID, or all prompts when it is empty.
func (l *Library) PromptsIn(categoryID string) []Prompt {
	out := make([]Prompt, 0, len(l.Prompts))
	for _, p := range l.Prompts {
		if categoryID == "" || p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out
}

// CheckpointsIn returns the checkpoints in categoryID, or all when it is empty.
func (l *Library) CheckpointsIn(categoryID string) []Checkpoint {
	out := make([]Checkpoint, 0, len(l.Checkpoints))
	for _, c := range l.Checkpoints {
		if categoryID == "" || c.CategoryID == categoryID {
			out = append(out, c)
		}
	}
	return out
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
