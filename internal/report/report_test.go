package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/swingft/swiftexclude/internal/analysis"
)

func sampleResults() []analysis.Result {
	return []analysis.Result{
		{ID: "n1", Name: "Zebra", Kind: "class", Reasons: []analysis.Reason{{RuleID: "R1", Description: "d1"}}},
		{ID: "n2", Name: "Apple", Kind: "struct", Reasons: []analysis.Reason{{RuleID: "R1", Description: "d1"}, {RuleID: "R2", Description: "d2"}}},
	}
}

func TestAssemble_Names_SortedAndDeduplicated(t *testing.T) {
	results := append(sampleResults(), analysis.Result{ID: "n3", Name: "Apple", Kind: "struct"})
	r := Assemble(results, 10)

	got := r.Names()
	want := []string{"Apple", "Zebra"}
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestWriteJSON_AtomicWriteRoundTrips(t *testing.T) {
	r := Assemble(sampleResults(), 10)
	dir := t.TempDir()
	path := filepath.Join(dir, "exclusions.json")

	if err := r.WriteJSON(path); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "\"name\": \"Zebra\"") {
		t.Errorf("output missing expected entry: %s", data)
	}

	// No leftover temp files in the directory.
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want exactly the final file", len(entries))
	}
}

func TestWriteNameList_SortedWithTrailingNewline(t *testing.T) {
	r := Assemble(sampleResults(), 10)
	dir := t.TempDir()
	path := filepath.Join(dir, "names.txt")

	if err := r.WriteNameList(path); err != nil {
		t.Fatalf("WriteNameList() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	want := "Apple\nZebra\n"
	if string(data) != want {
		t.Errorf("names.txt = %q, want %q", data, want)
	}
}

func TestPrintSummary_TotalsAndTopRules(t *testing.T) {
	r := Assemble(sampleResults(), 10)
	var buf bytes.Buffer
	r.PrintSummary(&buf)

	out := buf.String()
	for _, want := range []string{"Analyzed:  10 symbols", "Excluded:  2 symbols (20.0%)", "Remaining: 8 symbols", "R1"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q, got:\n%s", want, out)
		}
	}
}

func TestPrintSummary_NoRulesMatchedOmitsTopSection(t *testing.T) {
	r := Assemble(nil, 5)
	var buf bytes.Buffer
	r.PrintSummary(&buf)

	if strings.Contains(buf.String(), "Top rules") {
		t.Errorf("summary should omit top-rules section when nothing matched, got:\n%s", buf.String())
	}
}
