package render

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/gyeh/schedboard/internal/model"
)

// PDFOptions controls the PDF chart.
type PDFOptions struct {
	// FontPath is a TTF file with Hangul glyphs. Core fonts cannot render
	// Korean labels, so they only suit ASCII sheets.
	FontPath string
	Title    string
}

const (
	pdfMargin     = 10.0
	pdfLabelWidth = 60.0
	pdfAnnWidth   = 18.0
	pdfRowHeight  = 8.0
	pdfBarHeight  = 5.0
	pdfTop        = 28.0
)

// PDF writes the chart as a landscape A4 document.
func PDF(w io.Writer, chart *model.Chart, opts PDFOptions) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, pdfMargin)

	family := "Arial"
	if opts.FontPath != "" {
		pdf.AddUTF8Font("hangul", "", opts.FontPath)
		pdf.AddUTF8Font("hangul", "B", opts.FontPath)
		family = "hangul"
	}
	title := opts.Title
	if title == "" {
		title = "Project schedule"
	}
	pdf.SetTitle(title, true)

	pageW, pageH := pdf.GetPageSize()
	x0 := pdfMargin + pdfLabelWidth
	plotW := pageW - x0 - pdfAnnWidth - pdfMargin
	perPage := int((pageH - pdfTop - 2*pdfMargin - pdfRowHeight) / pdfRowHeight)
	if perPage < 1 {
		perPage = 1
	}

	tl := newTimeline(chart)
	xOf := func(frac float64) float64 { return x0 + frac*plotW }

	newPage := func(rows int) {
		pdf.AddPage()
		pdf.SetFont(family, "B", 14)
		pdf.SetTextColor(0, 0, 0)
		pdf.Text(pdfMargin, pdfMargin+6, title)
		pdf.SetFont(family, "", 8)
		pdf.Text(pdfMargin, pdfMargin+12, fmt.Sprintf("%s - %d rows", chart.Now.Format("2006-01-02 15:04"), len(chart.Tasks)))

		bottom := pdfTop + float64(rows)*pdfRowHeight
		drawGrid(pdf, tl, xOf, pdfTop, bottom)

		// Today line.
		tx := xOf(tl.fraction(tl.today))
		pdf.SetDrawColor(255, 0, 0)
		pdf.SetLineWidth(0.5)
		pdf.SetDashPattern([]float64{2, 1}, 0)
		pdf.Line(tx, pdfTop-2, tx, bottom)
		pdf.SetDashPattern([]float64{}, 0)
		pdf.SetLineWidth(0.2)
	}

	if len(chart.Tasks) == 0 {
		newPage(0)
		pdf.SetFont(family, "", 10)
		pdf.Text(pdfMargin, pdfTop+6, "no dated rows to chart")
		return output(pdf, w)
	}

	for i, task := range chart.Tasks {
		slot := i % perPage
		if slot == 0 {
			newPage(min(perPage, len(chart.Tasks)-i))
		}
		y := pdfTop + float64(slot)*pdfRowHeight
		row := chart.Rows[i]

		pdf.SetFont(family, "", 8)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetXY(pdfMargin, y)
		pdf.CellFormat(pdfLabelWidth-2, pdfRowHeight, fitText(pdf, task.Label, pdfLabelWidth-2), "", 0, "L", false, 0, "")

		c := chart.Colors[task.Category]
		pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
		bx := xOf(tl.fraction(*row.Start))
		bw := xOf(tl.fraction(*row.End)) - bx
		if bw < 0.5 {
			bw = 0.5
		}
		pdf.Rect(bx, y+(pdfRowHeight-pdfBarHeight)/2, bw, pdfBarHeight, "F")

		ann := chart.Annotations[i]
		pdf.Text(bx+bw+1, y+pdfRowHeight/2+1, ann.Text)
	}

	drawLegend(pdf, chart, family, pageH-pdfMargin)
	return output(pdf, w)
}

func drawGrid(pdf *fpdf.Fpdf, tl timeline, xOf func(float64) float64, top, bottom float64) {
	n := tl.days()
	step := 1
	for n/step > 31 {
		step *= 2
	}
	pdf.SetDrawColor(220, 220, 220)
	pdf.SetLineWidth(0.1)
	pdf.SetFont("", "", 6)
	pdf.SetTextColor(90, 90, 90)
	for d := 0; d < n; d += step {
		t := tl.from.AddDate(0, 0, d)
		x := xOf(tl.fraction(t))
		pdf.Line(x, top, x, bottom)
		pdf.Text(x-3, top-2, t.Format("Jan 02"))
	}
	pdf.SetLineWidth(0.2)
}

func drawLegend(pdf *fpdf.Fpdf, chart *model.Chart, family string, y float64) {
	pdf.SetFont(family, "", 8)
	pdf.SetTextColor(0, 0, 0)
	x := pdfMargin
	for _, cat := range chart.Categories {
		c := chart.Colors[cat]
		pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
		pdf.Rect(x, y-3, 3, 3, "F")
		pdf.Text(x+4, y, cat)
		x += 8 + pdf.GetStringWidth(cat)
	}
}

// fitText shortens s with an ellipsis until it fits in width.
func fitText(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > width {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}

func output(pdf *fpdf.Fpdf, w io.Writer) error {
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("build pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
