package export

import (
	"fmt"
	"io"
	"itinerary-planner-service/internal/domain"
	"strings"

	"github.com/phpdave11/gofpdf"
)

// WritePDF renders a printable itinerary: one section per day listing each
// entry's time, title, notes and the travel leg to the next stop.
func WritePDF(w io.Writer, title string, agenda domain.Agenda) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	// Core fonts are cp1252; translate the UTF-8 text we feed them.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, tr(title))
	pdf.Ln(14)

	for _, day := range agenda.Days {
		pdf.SetFont("Helvetica", "B", 13)
		header := fmt.Sprintf("Day %d - %s", day.Number, day.Label)
		if f := day.Forecast; f != nil {
			header += fmt.Sprintf("   %d°F, %s", f.TempF, f.Description)
		}
		pdf.Cell(0, 8, tr(header))
		pdf.Ln(9)

		if len(day.Entries) == 0 {
			pdf.SetFont("Helvetica", "I", 11)
			pdf.Cell(0, 6, "Nothing planned")
			pdf.Ln(8)
			continue
		}

		for _, entry := range day.Entries {
			pdf.SetFont("Helvetica", "B", 11)
			pdf.CellFormat(20, 6, tr(entry.Time), "", 0, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 11)
			pdf.MultiCell(0, 6, tr(entry.Title()), "", "L", false)

			if notes := entryNotes(entry); notes != "" {
				pdf.SetFont("Helvetica", "I", 9)
				pdf.SetX(pdf.GetX() + 20)
				pdf.MultiCell(0, 5, tr(notes), "", "L", false)
			}
		}

		if day.TotalTravelText != "" {
			pdf.SetFont("Helvetica", "", 9)
			pdf.Cell(0, 6, tr("Total travel: "+day.TotalTravelText))
			pdf.Ln(6)
		}
		pdf.Ln(4)
	}

	if len(agenda.Orphans) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Pinned outside the trip dates")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
		for _, p := range agenda.Orphans {
			pdf.Cell(0, 6, tr(fmt.Sprintf("%s: day %d at %s", p.ActivityID, p.Day, p.Time)))
			pdf.Ln(6)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: %w", err)
	}
	return nil
}

func entryNotes(entry domain.Entry) string {
	var parts []string
	if entry.Placement != nil && entry.Placement.Note != "" {
		parts = append(parts, entry.Placement.Note)
	}
	if entry.Kind == domain.EntryFlight && entry.Flight != nil {
		if nums := flightNumbers(*entry.Flight); nums != "" {
			parts = append(parts, nums)
		}
	}
	if leg := entry.TravelToNext; leg != nil {
		parts = append(parts, fmt.Sprintf("%s to next stop by %s, %s", leg.DurationText, leg.Mode, leg.DistanceText))
	}
	return strings.Join(parts, " • ")
}
