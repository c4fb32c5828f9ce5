package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
)

func sampleRows() []Row {
	return []Row{
		{Label: "South America ", Depth: 0, Expandable: true, Mark: Partial, Branch: true},
		{Label: "Venezuela", Depth: 1, Expandable: true, Selected: true, Mark: Checked, Branch: true},
		{Label: "Caracas", Depth: 2, Selected: true, Mark: Checked},
		{Label: "Maracaibo", Depth: 2, Selected: true, Mark: Checked},
		{Label: "Brazil", Depth: 1, Expandable: true, Mark: Unchecked, Branch: true},
		{Label: "Sao Paulo", Depth: 2, Mark: Unchecked},
	}
}

func TestGenerateMarkdownSummary(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	md := GenerateMarkdown(sampleRows(), "Places", now)

	for _, want := range []string{
		"# Places",
		"Generated: " + now.Format(time.RFC1123),
		"- **Places**: 6",
		"- **Selected**: 3",
		"- **Fully selected branches**: 1",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("expected markdown to contain %q\n%s", want, md)
		}
	}
}

func TestGenerateMarkdownSelectionList(t *testing.T) {
	md := GenerateMarkdown(sampleRows(), "Places", time.Now())

	for _, want := range []string{
		"- [-] South America \n",
		"  - [x] Venezuela\n",
		"    - [x] Caracas\n",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("expected markdown to contain %q\n%s", want, md)
		}
	}
	if strings.Contains(md, "Brazil") || strings.Contains(md, "Sao Paulo") {
		t.Errorf("expected unchecked rows to be omitted\n%s", md)
	}
}

func TestGenerateMarkdownNothingSelected(t *testing.T) {
	rows := []Row{{Label: "USA", Depth: 0}}
	md := GenerateMarkdown(rows, "Places", time.Now())
	if !strings.Contains(md, "_Nothing selected._") {
		t.Errorf("expected empty selection note\n%s", md)
	}
}

func TestGenerateMarkdownEscapesAndPlaceholder(t *testing.T) {
	rows := []Row{
		{Label: "St_Kitts *", Selected: true, Mark: Checked},
		{Label: "", Depth: 1, Selected: true, Mark: Checked},
	}
	md := GenerateMarkdown(rows, "Places", time.Now())
	if !strings.Contains(md, `St\_Kitts \*`) {
		t.Errorf("expected markdown specials escaped\n%s", md)
	}
	if !strings.Contains(md, "(new place)") {
		t.Errorf("expected placeholder for empty label\n%s", md)
	}
}

func TestSaveMarkdownToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	if err := SaveMarkdownToFile(sampleRows(), "Places", path); err != nil {
		t.Fatalf("SaveMarkdownToFile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# Places") {
		t.Errorf("unexpected file contents:\n%s", data)
	}

}

func TestSaveMarkdownToFileCreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".placetree", "nested", "report.md")
	if err := SaveMarkdownToFile(sampleRows(), "Places", path); err != nil {
		t.Fatalf("SaveMarkdownToFile failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected report in a freshly created dir: %v", err)
	}
}

func TestSaveMarkdownToFileParentIsFile(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if err := SaveMarkdownToFile(nil, "x", filepath.Join(blocker, "r.md")); err == nil {
		t.Error("expected error when the parent path is a file")
	}
}

func TestSelectedLabels(t *testing.T) {
	got := SelectedLabels(sampleRows())
	want := "  Venezuela\n    Caracas\n    Maracaibo"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestWriteRowsJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRowsJSON(&buf, sampleRows()); err != nil {
		t.Fatalf("WriteRowsJSON failed: %v", err)
	}

	var doc struct {
		Rows []struct {
			Label      string `json:"label"`
			Depth      int    `json:"depth"`
			Expandable bool   `json:"expandable"`
			Selected   bool   `json:"selected"`
			Mark       string `json:"mark"`
		} `json:"rows"`
		Total    int `json:"total"`
		Selected int `json:"selected"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if doc.Total != 6 || doc.Selected != 3 {
		t.Errorf("expected total 6 / selected 3, got %d / %d", doc.Total, doc.Selected)
	}
	if doc.Rows[0].Mark != "partial" || doc.Rows[2].Mark != "checked" || doc.Rows[5].Mark != "unchecked" {
		t.Errorf("unexpected marks: %+v", doc.Rows)
	}
}

func TestWriteRowsJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRowsJSON(&buf, nil); err != nil {
		t.Fatalf("WriteRowsJSON failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"rows": []`) {
		t.Errorf("expected empty array, got %s", buf.String())
	}
}
