package ops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hpungsan/promptlib/internal/errors"
	"github.com/hpungsan/promptlib/internal/library"
	"github.com/hpungsan/promptlib/internal/store"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    library.Kind
		wantErr bool
	}{
		{"", library.KindPrompt, false},
		{"Prompt", library.KindPrompt, false},
		{" checkpoints ", library.KindCheckpoint, false},
		{"snippet", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseKind(tc.in)
			if tc.wantErr {
				if !errors.Is(err, errors.ErrInvalidRequest) {
					t.Errorf("ParseKind(%q) err = %v, want INVALID_REQUEST", tc.in, err)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Errorf("ParseKind(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
			}
		})
	}
}

func TestListCategories_CountsItems(t *testing.T) {
	s := newStore(t)

	out, err := ListCategories(s, ListCategoriesInput{})
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if len(out.Items) != 3 {
		t.Fatalf("len(Items) = %d, want 3", len(out.Items))
	}
	want := map[string]int{"cat_work": 2, "cat_science": 1, "cat_scratch": 1}
	for _, c := range out.Items {
		if c.Items != want[c.ID] {
			t.Errorf("%s items = %d, want %d", c.ID, c.Items, want[c.ID])
		}
	}

	cp, err := ListCategories(s, ListCategoriesInput{Kind: "checkpoint"})
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	for _, c := range cp.Items {
		if c.Items != 0 {
			t.Errorf("checkpoint category %s items = %d, want 0", c.ID, c.Items)
		}
	}
}

func TestAddCategory_EmptyNameRejected(t *testing.T) {
	s := newStore(t)
	_, err := AddCategory(s, AddCategoryInput{Name: "   "})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("AddCategory = %v, want INVALID_REQUEST", err)
	}
}

func TestAddCategory_NamespacesIndependent(t *testing.T) {
	s := newStore(t)
	out, err := AddCategory(s, AddCategoryInput{Kind: "prompt", Name: "Ops"})
	if err != nil {
		t.Fatalf("AddCategory failed: %v", err)
	}
	lib := s.Library()
	if lib.FindCategory(library.KindPrompt, out.ID) < 0 {
		t.Error("category missing from prompt namespace")
	}
	if lib.FindCategory(library.KindCheckpoint, out.ID) >= 0 {
		t.Error("category leaked into checkpoint namespace")
	}
}

func TestRenameCategory(t *testing.T) {
	s := newStore(t)
	out, err := RenameCategory(s, RenameCategoryInput{Kind: "checkpoint", ID: "cat_work", Name: "Job"})
	if err != nil {
		t.Fatalf("RenameCategory failed: %v", err)
	}
	if out.OldName != "Work / InfoSec" {
		t.Errorf("OldName = %q", out.OldName)
	}
	lib := s.Library()
	if lib.CheckpointCategories[0].Name != "Job" {
		t.Errorf("checkpoint category name = %q, want Job", lib.CheckpointCategories[0].Name)
	}
	if lib.Categories[0].Name != "Work / InfoSec" {
		t.Error("renaming a checkpoint category renamed the prompt category")
	}

	_, err = RenameCategory(s, RenameCategoryInput{ID: "nope", Name: "x"})
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("RenameCategory(missing) = %v, want NOT_FOUND", err)
	}
}

func TestDeleteCategory_GuardLeavesCollectionsUntouched(t *testing.T) {
	s := newStore(t)
	before := s.Library()

	_, err := DeleteCategory(s, DeleteCategoryInput{Kind: "prompt", ID: "cat_work"})
	if !errors.Is(err, errors.ErrCategoryInUse) {
		t.Fatalf("DeleteCategory = %v, want CATEGORY_IN_USE", err)
	}
	lErr := err.(*errors.LibError)
	if lErr.Details["references"] != 2 {
		t.Errorf("references = %v, want 2", lErr.Details["references"])
	}

	after := s.Library()
	if after.Counts() != before.Counts() {
		t.Errorf("counts changed: %+v -> %+v", before.Counts(), after.Counts())
	}
}

func TestDeleteCategory_CheckpointNamespaceIgnoresPrompts(t *testing.T) {
	s := newStore(t)
	// cat_work has prompts, but its checkpoint twin has no checkpoints.
	if _, err := DeleteCategory(s, DeleteCategoryInput{Kind: "checkpoint", ID: "cat_work"}); err != nil {
		t.Fatalf("DeleteCategory failed: %v", err)
	}
	lib := s.Library()
	if lib.FindCategory(library.KindCheckpoint, "cat_work") >= 0 {
		t.Error("checkpoint category still present")
	}
	if lib.FindCategory(library.KindPrompt, "cat_work") < 0 {
		t.Error("prompt category was removed")
	}
}

func TestCreatePrompt_Defaults(t *testing.T) {
	s := newStore(t)
	out, err := CreatePrompt(s, CreatePromptInput{})
	if err != nil {
		t.Fatalf("CreatePrompt failed: %v", err)
	}
	if out.Title != DefaultPromptTitle {
		t.Errorf("Title = %q, want %q", out.Title, DefaultPromptTitle)
	}
	if out.CategoryID != "cat_work" {
		t.Errorf("CategoryID = %q, want first category", out.CategoryID)
	}

	got, err := GetPrompt(s, GetPromptInput{ID: out.ID})
	if err != nil {
		t.Fatalf("GetPrompt failed: %v", err)
	}
	if got.Body != "" {
		t.Errorf("Body = %q, want empty", got.Body)
	}
}

func TestCreatePrompt_CategoryChecks(t *testing.T) {
	s := newStore(t)
	_, err := CreatePrompt(s, CreatePromptInput{CategoryID: "missing"})
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("CreatePrompt(missing category) = %v, want NOT_FOUND", err)
	}

	if _, err := Reset(s, ResetInput{Mode: ResetClear}); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	_, err = CreatePrompt(s, CreatePromptInput{Title: "x"})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("CreatePrompt(no categories) = %v, want INVALID_REQUEST", err)
	}
}

func TestUpdatePrompt(t *testing.T) {
	s := newStore(t)

	out, err := UpdatePrompt(s, UpdatePromptInput{
		ID:         "p_risk_summary",
		Title:      strPtr(""),
		Body:       strPtr("new body\n"),
		CategoryID: strPtr("cat_scratch"),
	})
	if err != nil {
		t.Fatalf("UpdatePrompt failed: %v", err)
	}
	if out.Title != "Risk summary (1 page)" {
		t.Errorf("blank title replaced the old one: %q", out.Title)
	}
	if out.CategoryID != "cat_scratch" {
		t.Errorf("CategoryID = %q", out.CategoryID)
	}
	got, _ := GetPrompt(s, GetPromptInput{ID: "p_risk_summary"})
	if got.Body != "new body" {
		t.Errorf("Body = %q", got.Body)
	}

	tests := []struct {
		name  string
		input UpdatePromptInput
		code  errors.ErrorCode
	}{
		{"missing id", UpdatePromptInput{Title: strPtr("x")}, errors.ErrInvalidRequest},
		{"nothing to update", UpdatePromptInput{ID: "p_risk_summary"}, errors.ErrInvalidRequest},
		{"unknown prompt", UpdatePromptInput{ID: "nope", Title: strPtr("x")}, errors.ErrNotFound},
		{"unknown category", UpdatePromptInput{ID: "p_risk_summary", CategoryID: strPtr("nope")}, errors.ErrNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := UpdatePrompt(s, tc.input); !errors.Is(err, tc.code) {
				t.Errorf("UpdatePrompt = %v, want %s", err, tc.code)
			}
		})
	}
}

func TestListPrompts(t *testing.T) {
	s := newStore(t)

	all, err := ListPrompts(s, ListPromptsInput{})
	if err != nil {
		t.Fatalf("ListPrompts failed: %v", err)
	}
	if len(all.Items) != 4 {
		t.Errorf("len(all) = %d, want 4", len(all.Items))
	}

	work, err := ListPrompts(s, ListPromptsInput{CategoryID: "cat_work"})
	if err != nil {
		t.Fatalf("ListPrompts failed: %v", err)
	}
	if len(work.Items) != 2 || work.Items[0].ID != "p_risk_summary" {
		t.Errorf("work items = %+v", work.Items)
	}

	_, err = ListPrompts(s, ListPromptsInput{CategoryID: "nope"})
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("ListPrompts(missing) = %v, want NOT_FOUND", err)
	}
}

func TestGetPrompt_Stats(t *testing.T) {
	s := newStore(t)
	created, err := CreatePrompt(s, CreatePromptInput{
		CategoryID: "cat_scratch",
		Body:       "# Review\n\nCheck the diff.\n\n## Output\nA list.",
	})
	if err != nil {
		t.Fatalf("CreatePrompt failed: %v", err)
	}

	got, err := GetPrompt(s, GetPromptInput{ID: created.ID})
	if err != nil {
		t.Fatalf("GetPrompt failed: %v", err)
	}
	if len(got.Stats.Outline) != 2 || got.Stats.Outline[1].Text != "Output" {
		t.Errorf("outline = %+v", got.Stats.Outline)
	}
	if got.Stats.Chars != len([]rune(got.Body)) {
		t.Errorf("chars = %d, want %d", got.Stats.Chars, len([]rune(got.Body)))
	}
	if got.Stats.TokensEstimate == 0 {
		t.Error("expected a token estimate")
	}
}

func TestDeletePrompt(t *testing.T) {
	s := newStore(t)
	if _, err := DeletePrompt(s, DeletePromptInput{ID: "p_blank_scaffold"}); err != nil {
		t.Fatalf("DeletePrompt failed: %v", err)
	}
	if _, err := DeletePrompt(s, DeletePromptInput{ID: "p_blank_scaffold"}); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("second DeletePrompt = %v, want NOT_FOUND", err)
	}
	if n := s.Library().Counts().Prompts; n != 3 {
		t.Errorf("prompts = %d, want 3", n)
	}
}

func TestUpdateCheckpoint_RefreshesSavedAt(t *testing.T) {
	s := newStore(t)
	saved, err := SaveCheckpoint(s, SaveCheckpointInput{Title: "keep"})
	if err != nil {
		t.Fatalf("SaveCheckpoint failed: %v", err)
	}

	// Pretend it was saved long ago.
	err = s.Update(func(l *library.Library) error {
		l.Checkpoints[0].SavedAt = "2000-01-01T00:00:00+0000"
		return nil
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	out, err := UpdateCheckpoint(s, UpdateCheckpointInput{ID: saved.ID, Description: strPtr("d")})
	if err != nil {
		t.Fatalf("UpdateCheckpoint failed: %v", err)
	}
	if out.SavedAt == "2000-01-01T00:00:00+0000" {
		t.Error("savedAt was not refreshed")
	}
	if out.Title != "keep" {
		t.Errorf("Title = %q, want keep", out.Title)
	}
}

func TestListCheckpoints(t *testing.T) {
	s := newStore(t)
	if _, err := SaveCheckpoint(s, SaveCheckpointInput{CategoryID: "cat_science", Title: "a"}); err != nil {
		t.Fatalf("SaveCheckpoint failed: %v", err)
	}
	if _, err := SaveCheckpoint(s, SaveCheckpointInput{CategoryID: "cat_work", Title: "b"}); err != nil {
		t.Fatalf("SaveCheckpoint failed: %v", err)
	}

	out, err := ListCheckpoints(s, ListCheckpointsInput{CategoryID: "cat_science"})
	if err != nil {
		t.Fatalf("ListCheckpoints failed: %v", err)
	}
	if len(out.Items) != 1 || out.Items[0].Title != "a" {
		t.Errorf("items = %+v", out.Items)
	}
}

func TestReset(t *testing.T) {
	s := newStore(t)

	out, err := Reset(s, ResetInput{Mode: "clear"})
	if err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if out.Previous.Prompts != 4 || out.Current != (library.Counts{}) {
		t.Errorf("Reset counts previous=%+v current=%+v", out.Previous, out.Current)
	}
	if out.SnapshotID == "" {
		t.Error("SnapshotID is empty")
	}

	out, err = Reset(s, ResetInput{})
	if err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if out.Mode != ResetSample || out.Current.Prompts != 4 {
		t.Errorf("Reset(sample) = %+v", out)
	}

	if _, err := Reset(s, ResetInput{Mode: "wipe"}); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("Reset(wipe) = %v, want INVALID_REQUEST", err)
	}
}

func TestSnapshots_NoJournal(t *testing.T) {
	s, err := store.Open(store.Options{Paths: store.PathsIn(t.TempDir())})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := ListSnapshots(s, ListSnapshotsInput{}); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("ListSnapshots = %v, want INVALID_REQUEST", err)
	}
	if _, err := RestoreSnapshot(s, RestoreSnapshotInput{ID: "x"}); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("RestoreSnapshot = %v, want INVALID_REQUEST", err)
	}
}

func TestRestoreSnapshot_NotFound(t *testing.T) {
	s := newStore(t)
	_, err := RestoreSnapshot(s, RestoreSnapshotInput{ID: "01ARZ3NDEKTSV4RRFFQ69G5FAV"})
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("RestoreSnapshot = %v, want NOT_FOUND", err)
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	bad := filepath.Join(dir, "bad.json")
	broken := filepath.Join(dir, "broken.json")
	for path, content := range map[string]string{
		good:   `{"categories": [], "prompts": []}`,
		bad:    `{"categories": []}`,
		broken: `{`,
	} {
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}

	out, err := Validate(ValidateInput{Path: good})
	if err != nil || !out.Valid || out.Counts == nil {
		t.Errorf("Validate(good) = %+v, %v", out, err)
	}

	out, err = Validate(ValidateInput{Path: bad})
	if err != nil {
		t.Fatalf("Validate(bad) error = %v", err)
	}
	if out.Valid || out.Reason != `Missing "prompts" array.` || out.Code != "VALIDATION_ERROR" {
		t.Errorf("Validate(bad) = %+v", out)
	}

	out, err = Validate(ValidateInput{Path: broken})
	if err != nil || out.Valid || out.Code != "PARSE_ERROR" {
		t.Errorf("Validate(broken) = %+v, %v", out, err)
	}

	if _, err := Validate(ValidateInput{Path: filepath.Join(dir, "nope.json")}); !errors.Is(err, errors.ErrFileNotFound) {
		t.Errorf("Validate(missing) = %v, want FILE_NOT_FOUND", err)
	}
}

func TestStats(t *testing.T) {
	s := newStore(t)
	out, err := Stats(s)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if out.Counts.Prompts != 4 || out.Counts.CheckpointCategories != 3 {
		t.Errorf("Counts = %+v", out.Counts)
	}
	if out.FileBytes == 0 {
		t.Error("FileBytes = 0")
	}
	if out.Snapshots == nil || *out.Snapshots != 0 {
		t.Errorf("Snapshots = %v, want 0", out.Snapshots)
	}
}

func TestImport_RestrictedRejectsOutsidePath(t *testing.T) {
	s := newStore(t)
	outside := filepath.Join(t.TempDir(), "lib.json")
	if err := os.WriteFile(outside, []byte(`{"categories": [], "prompts": []}`), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	_, err := Import(s, nil, ImportInput{Path: outside, Restricted: true})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("restricted Import = %v, want INVALID_REQUEST", err)
	}

	if _, err := Import(s, nil, ImportInput{Path: outside}); err != nil {
		t.Errorf("unrestricted Import failed: %v", err)
	}
}
