package library

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hpungsan/promptlib/internal/errors"
)

func mustParse(t *testing.T, s string) any {
	t.Helper()
	v, err := Parse([]byte(s))
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", s, err)
	}
	return v
}

func TestValidate_SeedAccepted(t *testing.T) {
	if err := ValidateLibrary(Seed()); err != nil {
		t.Fatalf("seed should validate, got %v", err)
	}
}

func TestValidate_EmptyAccepted(t *testing.T) {
	if err := ValidateLibrary(Empty()); err != nil {
		t.Fatalf("empty library should validate, got %v", err)
	}
}

func TestValidate_LegacyShapeAccepted(t *testing.T) {
	doc := mustParse(t, `{
		"categories": [{"id": "c1", "name": "One"}],
		"prompts": [{"id": "p1", "categoryId": "c1", "title": "T", "body": ""}]
	}`)
	if err := Validate(doc); err != nil {
		t.Fatalf("legacy document should validate, got %v", err)
	}
}

func TestValidate_LegacyCheckpointUsesPromptCategories(t *testing.T) {
	doc := mustParse(t, `{
		"categories": [{"id": "c1", "name": "One"}],
		"prompts": [],
		"checkpoints": [{"id": "cp1", "categoryId": "c1", "title": "T", "description": "", "body": "", "savedAt": "2024-03-02T14:05:30+0000"}]
	}`)
	if err := Validate(doc); err != nil {
		t.Fatalf("checkpoint should resolve against categories when checkpointCategories is absent, got %v", err)
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantMsg string
	}{
		{
			name:    "non-object root",
			doc:     `[1, 2, 3]`,
			wantMsg: "Root must be an object.",
		},
		{
			name:    "string root",
			doc:     `"library"`,
			wantMsg: "Root must be an object.",
		},
		{
			name:    "missing categories",
			doc:     `{"prompts": []}`,
			wantMsg: `Missing "categories" array.`,
		},
		{
			name:    "categories not array",
			doc:     `{"categories": {}, "prompts": []}`,
			wantMsg: `Missing "categories" array.`,
		},
		{
			name:    "missing prompts",
			doc:     `{"categories": []}`,
			wantMsg: `Missing "prompts" array.`,
		},
		{
			name:    "category not object",
			doc:     `{"categories": ["c1"], "prompts": []}`,
			wantMsg: "Category entries must be objects.",
		},
		{
			name:    "category blank id",
			doc:     `{"categories": [{"id": "  ", "name": "x"}], "prompts": []}`,
			wantMsg: "Each category must have a non-empty string id.",
		},
		{
			name:    "category missing name",
			doc:     `{"categories": [{"id": "c1"}], "prompts": []}`,
			wantMsg: "Each category must have a non-empty string name.",
		},
		{
			name:    "duplicate category id",
			doc:     `{"categories": [{"id": "c1", "name": "a"}, {"id": "c1", "name": "b"}], "prompts": []}`,
			wantMsg: "Duplicate category id: c1",
		},
		{
			name:    "prompt not object",
			doc:     `{"categories": [], "prompts": [42]}`,
			wantMsg: "Prompt entries must be objects.",
		},
		{
			name:    "prompt missing id",
			doc:     `{"categories": [{"id": "c1", "name": "a"}], "prompts": [{"categoryId": "c1", "title": "t", "body": ""}]}`,
			wantMsg: "Each prompt must have a non-empty string id.",
		},
		{
			name: "duplicate prompt id",
			doc: `{"categories": [{"id": "c1", "name": "a"}], "prompts": [
				{"id": "p1", "categoryId": "c1", "title": "t", "body": ""},
				{"id": "p1", "categoryId": "c1", "title": "u", "body": ""}]}`,
			wantMsg: "Duplicate prompt id: p1",
		},
		{
			name:    "prompt unknown category",
			doc:     `{"categories": [{"id": "c1", "name": "a"}], "prompts": [{"id": "p1", "categoryId": "nope", "title": "Hello", "body": ""}]}`,
			wantMsg: "Prompt 'Hello' references missing categoryId 'nope'.",
		},
		{
			name:    "prompt non-string title",
			doc:     `{"categories": [{"id": "c1", "name": "a"}], "prompts": [{"id": "p1", "categoryId": "c1", "title": 7, "body": ""}]}`,
			wantMsg: "Each prompt must have a non-empty string title.",
		},
		{
			name:    "prompt non-string body",
			doc:     `{"categories": [{"id": "c1", "name": "a"}], "prompts": [{"id": "p1", "categoryId": "c1", "title": "t", "body": null}]}`,
			wantMsg: "Each prompt must have a string body.",
		},
		{
			name:    "checkpoint categories not array",
			doc:     `{"categories": [], "prompts": [], "checkpointCategories": null}`,
			wantMsg: `Missing "checkpointCategories" array.`,
		},
		{
			name:    "duplicate checkpoint category id",
			doc:     `{"categories": [], "prompts": [], "checkpointCategories": [{"id": "k", "name": "a"}, {"id": "k", "name": "b"}]}`,
			wantMsg: "Duplicate checkpoint category id: k",
		},
		{
			name:    "checkpoints not array",
			doc:     `{"categories": [], "prompts": [], "checkpoints": "none"}`,
			wantMsg: "Checkpoints must be an array when provided.",
		},
		{
			name: "checkpoint unknown category",
			doc: `{"categories": [{"id": "c1", "name": "a"}], "prompts": [], "checkpointCategories": [{"id": "k1", "name": "a"}],
				"checkpoints": [{"id": "cp1", "categoryId": "c1", "title": "Snap", "description": "", "body": "", "savedAt": "x"}]}`,
			wantMsg: "Checkpoint 'Snap' references missing categoryId 'c1'.",
		},
		{
			name: "duplicate checkpoint id",
			doc: `{"categories": [], "prompts": [], "checkpointCategories": [{"id": "k1", "name": "a"}], "checkpoints": [
				{"id": "cp1", "categoryId": "k1", "title": "a", "description": "", "body": "", "savedAt": "x"},
				{"id": "cp1", "categoryId": "k1", "title": "b", "description": "", "body": "", "savedAt": "x"}]}`,
			wantMsg: "Duplicate checkpoint id: cp1",
		},
		{
			name: "checkpoint missing description",
			doc: `{"categories": [], "prompts": [], "checkpointCategories": [{"id": "k1", "name": "a"}],
				"checkpoints": [{"id": "cp1", "categoryId": "k1", "title": "a", "body": "", "savedAt": "x"}]}`,
			wantMsg: "Each checkpoint must have a string description.",
		},
		{
			name: "checkpoint missing savedAt",
			doc: `{"categories": [], "prompts": [], "checkpointCategories": [{"id": "k1", "name": "a"}],
				"checkpoints": [{"id": "cp1", "categoryId": "k1", "title": "a", "description": "", "body": ""}]}`,
			wantMsg: "Each checkpoint must have a savedAt ISO string.",
		},
		{
			name: "checkpoint blank savedAt",
			doc: `{"categories": [], "prompts": [], "checkpointCategories": [{"id": "k1", "name": "a"}],
				"checkpoints": [{"id": "cp1", "categoryId": "k1", "title": "a", "description": "", "body": "", "savedAt": " "}]}`,
			wantMsg: "Each checkpoint must have a savedAt ISO string.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(mustParse(t, tt.doc))
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !errors.Is(err, errors.ErrValidation) {
				t.Fatalf("expected VALIDATION_ERROR, got %v", err)
			}
			libErr := err.(*errors.LibError)
			if strings.TrimSpace(libErr.Message) == "" {
				t.Fatal("expected a non-empty reason")
			}
			if libErr.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", libErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestValidate_ShortCircuitsOnFirstFailure(t *testing.T) {
	// Both the category and the prompt are broken; the category check runs first.
	doc := mustParse(t, `{"categories": [{"id": "", "name": "a"}], "prompts": [{"id": ""}]}`)
	err := Validate(doc)
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.(*errors.LibError).Message; got != "Each category must have a non-empty string id." {
		t.Errorf("Message = %q", got)
	}
}

func TestValidate_DoesNotMutate(t *testing.T) {
	doc := mustParse(t, `{"categories": [{"id": "c1", "name": "a"}], "prompts": []}`)
	before := mustParse(t, `{"categories": [{"id": "c1", "name": "a"}], "prompts": []}`)

	if err := Validate(doc); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if diff := cmp.Diff(before, doc); diff != "" {
		t.Errorf("Validate mutated its input (-before +after):\n%s", diff)
	}
}

func TestValidate_CategoryNamespacesIndependent(t *testing.T) {
	// The same id may appear once in each namespace.
	doc := mustParse(t, `{
		"categories": [{"id": "shared", "name": "a"}],
		"prompts": [],
		"checkpointCategories": [{"id": "shared", "name": "b"}],
		"checkpoints": []
	}`)
	if err := Validate(doc); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
}

func TestValidateLibrary_Nil(t *testing.T) {
	if err := ValidateLibrary(nil); err == nil {
		t.Fatal("expected error for nil library")
	}
}
