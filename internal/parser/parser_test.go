package parser_test

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/revlens-cli/internal/parser"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestReadFileCSV(t *testing.T) {
	p := writeFile(t, "reviews.csv", "\ufeffReviewer,Rating,Date,Review Text,Source\n"+
		"Ann,FIVE,2024-01-01,\"Great, thorough work\",google\n"+
		"\n"+
		"Bo,ONE,2024-06-01\n")
	recs, err := parser.ReadFile(p, parser.Options{})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("records = %d, want 2 (blank line skipped)", len(recs))
	}
	if recs[0]["Reviewer"] != "Ann" || recs[0]["Review Text"] != "Great, thorough work" {
		t.Fatalf("unexpected first record: %#v", recs[0])
	}
	if recs[0]["Source"] != "google" {
		t.Fatalf("unknown column not passed through: %#v", recs[0])
	}
	if v, ok := recs[1]["Review Text"]; !ok || v != "" {
		t.Fatalf("short row not padded: %#v", recs[1])
	}
}

func TestReadFileTSVAndForcedDelimiter(t *testing.T) {
	p := writeFile(t, "reviews.tsv", "Reviewer\tRating\nAnn\tTWO\n")
	recs, err := parser.ReadFile(p, parser.Options{})
	if err != nil {
		t.Fatalf("read tsv: %v", err)
	}
	if recs[0]["Rating"] != "TWO" {
		t.Fatalf("tsv record = %#v", recs[0])
	}

	p = writeFile(t, "reviews.csv", "Reviewer;Rating\nAnn;FOUR\n")
	recs, err = parser.ReadFile(p, parser.Options{Delimiter: ';'})
	if err != nil {
		t.Fatalf("read semicolon: %v", err)
	}
	if recs[0]["Rating"] != "FOUR" {
		t.Fatalf("semicolon record = %#v", recs[0])
	}
}

func TestReadFileJSON(t *testing.T) {
	p := writeFile(t, "reviews.json", `[
  {"Reviewer": "Ann", "Rating": "FIVE", "Date": "2024-01-01", "Review Text": "Great", "Stars": 5, "Reply": null}
]`)
	recs, err := parser.ReadFile(p, parser.Options{})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(recs) != 1 || recs[0]["Stars"] != "5" || recs[0]["Reply"] != "" {
		t.Fatalf("unexpected records: %#v", recs)
	}
}

func TestReadFileXLSX(t *testing.T) {
	p := filepath.Join(t.TempDir(), "reviews.xlsx")
	f, err := os.Create(p)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	zw := zip.NewWriter(f)
	files := map[string]string{
		"xl/workbook.xml": `<workbook xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><sheets>` +
			`<sheet name="Summary" sheetId="1" r:id="rId1"/><sheet name="Reviews" sheetId="2" r:id="rId2"/></sheets></workbook>`,
		"xl/_rels/workbook.xml.rels": `<Relationships><Relationship Id="rId1" Target="worksheets/sheet1.xml"/>` +
			`<Relationship Id="rId2" Target="/xl/worksheets/sheet2.xml"/></Relationships>`,
		"xl/sharedStrings.xml":     `<sst><si><t>Reviewer</t></si><si><t>Rating</t></si><si><t>Ann</t></si><si><r><t>FI</t></r><r><t>VE</t></r></si></sst>`,
		"xl/worksheets/sheet1.xml": `<worksheet><sheetData><row r="1"><c r="A1" t="inlineStr"><is><t>Other</t></is></c></row></sheetData></worksheet>`,
		"xl/worksheets/sheet2.xml": `<worksheet><sheetData>` +
			`<row r="1"><c r="A1" t="s"><v>0</v></c><c r="B1" t="s"><v>1</v></c><c r="C1" t="inlineStr"><is><t>Date</t></is></c></row>` +
			`<row r="2"><c r="A2" t="s"><v>2</v></c><c r="C2" t="inlineStr"><is><t>2024-01-01</t></is></c></row>` +
			`<row r="3"><c r="B3" t="s"><v>3</v></c></row>` +
			`</sheetData></worksheet>`,
	}
	for name, body := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create: %v", err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("zip write: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	recs, err := parser.ReadFile(p, parser.Options{SheetName: "reviews"})
	if err != nil {
		t.Fatalf("read by name: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("records = %d, want 2", len(recs))
	}
	if recs[0]["Reviewer"] != "Ann" || recs[0]["Rating"] != "" || recs[0]["Date"] != "2024-01-01" {
		t.Fatalf("first record = %#v", recs[0])
	}
	if recs[1]["Rating"] != "FIVE" || recs[1]["Reviewer"] != "" {
		t.Fatalf("second record = %#v", recs[1])
	}

	byIndex, err := parser.ReadFile(p, parser.Options{SheetIndex: 2})
	if err != nil {
		t.Fatalf("read by index: %v", err)
	}
	if len(byIndex) != 2 {
		t.Fatalf("records by index = %d, want 2", len(byIndex))
	}

	if _, err := parser.ReadFile(p, parser.Options{SheetName: "Missing"}); err == nil {
		t.Fatalf("expected error for missing sheet")
	}
}

func TestReadFileErrors(t *testing.T) {
	var ie *parser.IngestError

	_, err := parser.ReadFile(filepath.Join(t.TempDir(), "nope.csv"), parser.Options{})
	if !errors.As(err, &ie) || ie.Op != "read file" {
		t.Fatalf("missing file: got %v", err)
	}

	_, err = parser.ReadFile(writeFile(t, "notes.docx", "x"), parser.Options{})
	if !errors.Is(err, parser.ErrUnsupported) {
		t.Fatalf("unsupported: got %v", err)
	}

	_, err = parser.ReadFile(writeFile(t, "empty.csv", ""), parser.Options{})
	if !errors.Is(err, parser.ErrNoHeader) {
		t.Fatalf("empty: got %v", err)
	}

	_, err = parser.ReadFile(writeFile(t, "bad.json", `{"not": "an array"}`), parser.Options{})
	if !errors.As(err, &ie) || ie.Op != "parse" {
		t.Fatalf("bad json: got %v", err)
	}
}

func TestParseDelimiter(t *testing.T) {
	for in, want := range map[string]rune{"": 0, ",": ',', "tab": '\t', ";": ';', "pipe": '|'} {
		got, err := parser.ParseDelimiter(in)
		if err != nil || got != want {
			t.Errorf("ParseDelimiter(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := parser.ParseDelimiter(":"); err == nil {
		t.Errorf("expected error for ':'")
	}
}
