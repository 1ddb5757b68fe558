// Package report renders analysis run history and single-run certificates
// as CSV, JSON, or a one-page PDF built with go-pdf/fpdf.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/holla2040/synanalyze/internal/refsets"
	"github.com/holla2040/synanalyze/internal/store"
)

// RunJSON is the JSON representation of a run for export.
type RunJSON struct {
	ID         string `json:"id"`
	SourcePath string `json:"source_path"`
	Verdict    string `json:"verdict"`
	Diagnostic string `json:"diagnostic,omitempty"`
	StartedAt  string `json:"started_at"`
	FinishedAt string `json:"finished_at,omitempty"`
}

// ExportCSV writes run history as CSV to w.
// Headers: id,source_path,verdict,diagnostic,started_at,finished_at
func ExportCSV(w io.Writer, s *store.Store) error {
	runs, err := s.ListRuns()
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "source_path", "verdict", "diagnostic", "started_at", "finished_at"}); err != nil {
		return err
	}

	for _, r := range runs {
		finished := ""
		if r.FinishedAt != nil {
			finished = r.FinishedAt.Format(time.RFC3339)
		}
		record := []string{
			r.ID,
			r.SourcePath,
			r.Verdict,
			r.Diagnostic,
			r.StartedAt.Format(time.RFC3339),
			finished,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportJSON writes run history as a JSON array to w.
func ExportJSON(w io.Writer, s *store.Store) error {
	runs, err := s.ListRuns()
	if err != nil {
		return err
	}

	records := make([]RunJSON, len(runs))
	for i, r := range runs {
		rec := RunJSON{
			ID:         r.ID,
			SourcePath: r.SourcePath,
			Verdict:    r.Verdict,
			Diagnostic: r.Diagnostic,
			StartedAt:  r.StartedAt.Format(time.RFC3339),
		}
		if r.FinishedAt != nil {
			rec.FinishedAt = r.FinishedAt.Format(time.RFC3339)
		}
		records[i] = rec
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}

	_, err = w.Write(data)
	return err
}

// ExportPDF writes a one-page analysis certificate for a single run to w:
// source path, verdict, the diagnostic or success line, and the
// reference-set block's section titles.
func ExportPDF(w io.Writer, s *store.Store, runID string) error {
	run, err := s.GetRun(runID)
	if err != nil {
		return fmt.Errorf("failed to get run: %w", err)
	}
	if run == nil {
		return fmt.Errorf("run %q not found", runID)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdfHeader(pdf, run)
	pdfVerdict(pdf, run)
	pdfReferenceSets(pdf, run)
	pdfFooter(pdf)

	if pdf.Err() {
		return fmt.Errorf("PDF generation error: %w", pdf.Error())
	}
	return pdf.Output(w)
}

func pdfHeader(pdf *fpdf.Fpdf, run *store.Run) {
	pdf.SetFillColor(33, 37, 41)
	pdf.Rect(15, 15, 180, 20, "F")
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 14, "SYNTACTIC ANALYSIS CERTIFICATE", "", 0, "L", false, 0, "")

	pdf.Ln(25)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(30, 6, "Run ID:", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, run.ID, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(30, 6, "Source:", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, run.SourcePath, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(30, 6, "Generated:", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, time.Now().UTC().Format("2006-01-02 15:04:05 UTC"), "", 1, "L", false, 0, "")

	pdf.Ln(4)
}

func pdfVerdict(pdf *fpdf.Fpdf, run *store.Run) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Verdict", "", 1, "L", false, 0, "")
	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(15, pdf.GetY(), 195, pdf.GetY())
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(30, 6, "Status:", "", 0, "L", false, 0, "")
	switch run.Verdict {
	case "success":
		pdf.SetFillColor(40, 167, 69)
		pdf.SetTextColor(255, 255, 255)
		pdf.CellFormat(30, 6, "[SUCCESS]", "", 0, "C", true, 0, "")
	default:
		pdf.SetFillColor(220, 53, 69)
		pdf.SetTextColor(255, 255, 255)
		pdf.CellFormat(30, 6, "[FAILED]", "", 0, "C", true, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Ln(8)

	pdf.CellFormat(30, 6, "Started:", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, run.StartedAt.Format("2006-01-02 15:04:05 UTC"), "", 1, "L", false, 0, "")

	pdf.CellFormat(30, 6, "Finished:", "", 0, "L", false, 0, "")
	if run.FinishedAt != nil {
		pdf.CellFormat(0, 6, run.FinishedAt.Format("2006-01-02 15:04:05 UTC"), "", 1, "L", false, 0, "")
	} else {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(0, 6, "In progress", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
	}

	pdf.Ln(3)
	line := run.Diagnostic
	if run.Verdict == "success" {
		line = "El analisis sintactico ha finalizado exitosamente."
	}
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, line, "", "L", false)
	pdf.Ln(4)
}

func pdfReferenceSets(pdf *fpdf.Fpdf, run *store.Run) {
	if run.Verdict != "success" {
		return
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Reference Sets", "", 1, "L", false, 0, "")
	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(15, pdf.GetY(), 195, pdf.GetY())
	pdf.Ln(3)

	// The certificate carries the section titles only; the full PRIMEROS/
	// SIGUIENTES/PREDICCION tables are in the written output text, not
	// duplicated cell-by-cell here.
	pdf.SetFont("Helvetica", "", 9)
	for _, line := range strings.Split(refsets.Render(), "\n") {
		if strings.HasSuffix(line, ":") || line == "PREDICCION" {
			pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
		}
	}
}

func pdfFooter(pdf *fpdf.Fpdf) {
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 6, "Generated by synanalyze", "", 0, "C", false, 0, "")
}
