package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/holla2040/synanalyze/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func seedRun(t *testing.T, s *store.Store, id, sourcePath, verdict, diagnostic string) {
	t.Helper()
	if err := s.StartRun(id, sourcePath); err != nil {
		t.Fatalf("StartRun(%s): %v", id, err)
	}
	if err := s.RecordRun(id, verdict, diagnostic); err != nil {
		t.Fatalf("RecordRun(%s): %v", id, err)
	}
}

func TestExportCSVHeaderAndRows(t *testing.T) {
	s := newTestStore(t)
	seedRun(t, s, "run-1", "a.src", "success", "")
	seedRun(t, s, "run-2", "b.src", "syntax_error", "<1,1> Error sintactico: se encontro: \"x\"; se esperaba: \"y\".")

	var buf bytes.Buffer
	if err := ExportCSV(&buf, s); err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}

	r := csv.NewReader(&buf)
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("parsing CSV output: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d records", len(records))
	}
	wantHeader := []string{"id", "source_path", "verdict", "diagnostic", "started_at", "finished_at"}
	for i, h := range wantHeader {
		if records[0][i] != h {
			t.Errorf("header[%d]: got %q, want %q", i, records[0][i], h)
		}
	}
}

func TestExportJSONRoundTrips(t *testing.T) {
	s := newTestStore(t)
	seedRun(t, s, "run-1", "a.src", "success", "")

	var buf bytes.Buffer
	if err := ExportJSON(&buf, s); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	var records []RunJSON
	if err := json.Unmarshal(buf.Bytes(), &records); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].ID != "run-1" || records[0].Verdict != "success" {
		t.Errorf("unexpected record: %+v", records[0])
	}
}

func TestExportJSONOmitsEmptyDiagnostic(t *testing.T) {
	s := newTestStore(t)
	seedRun(t, s, "run-1", "a.src", "success", "")

	var buf bytes.Buffer
	if err := ExportJSON(&buf, s); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	if strings.Contains(buf.String(), `"diagnostic"`) {
		t.Error("expected diagnostic field to be omitted when empty")
	}
}

func TestExportPDFForSuccessfulRun(t *testing.T) {
	s := newTestStore(t)
	seedRun(t, s, "run-1", "a.src", "success", "")

	var buf bytes.Buffer
	if err := ExportPDF(&buf, s, "run-1"); err != nil {
		t.Fatalf("ExportPDF: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("expected non-empty PDF output")
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Error("expected output to start with the PDF magic header")
	}
}

func TestExportPDFForFailedRun(t *testing.T) {
	s := newTestStore(t)
	seedRun(t, s, "run-1", "a.src", "syntax_error", "<1,1> Error sintactico: se encontro: \"x\"; se esperaba: \"y\".")

	var buf bytes.Buffer
	if err := ExportPDF(&buf, s, "run-1"); err != nil {
		t.Fatalf("ExportPDF: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("expected non-empty PDF output")
	}
}

func TestExportPDFUnknownRunErrors(t *testing.T) {
	s := newTestStore(t)

	var buf bytes.Buffer
	if err := ExportPDF(&buf, s, "missing"); err == nil {
		t.Fatal("expected an error for an unknown run ID")
	}
}
