// Package pdf turns an invoice into a paginated A4 document: a fixed
// header block, a flowing item table that continues across pages, a shaded
// summary block below the last row and a closing footer on the last page.
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/elitekitchen/invoicer/internal/invoice"
)

// ErrNoItems is returned when an invoice without line items is rendered.
// Callers must validate before rendering; there is nothing to tabulate.
var ErrNoItems = errors.New("invoice has no line items")

// Page geometry in millimetres, A4 portrait.
const (
	marginLeft    = 14.0
	rightEdge     = 150.0 // right-alignment anchor for the header info column
	titleY        = 22.0
	headerRow1Y   = 35.0
	headerRow2Y   = 42.0
	tableTopY     = 55.0
	contTableTopY = 20.0 // table restart position on continuation pages
	bodyLimitY    = 270.0
	footerY       = 285.0

	rowHeight = 8.0
	descColW  = 80.0
	numColW   = 34.0 // price, quantity and subtotal columns

	summaryX      = 140.0
	summaryWidth  = 60.0
	summaryHeight = 30.0
	summaryGap    = 10.0
)

// Renderer produces invoice documents for a single issuer.
type Renderer struct {
	issuer string
}

func NewRenderer(issuer string) *Renderer {
	return &Renderer{issuer: issuer}
}

// Render encodes the invoice as PDF bytes. generatedAt is stamped into the
// header and the document metadata, so two calls with the same timestamp
// produce byte-identical output; callers normally pass time.Now().
func (r *Renderer) Render(inv *invoice.Invoice, generatedAt time.Time) ([]byte, error) {
	doc, err := r.build(inv, generatedAt)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("encoding pdf: %w", err)
	}

	return buf.Bytes(), nil
}

func (r *Renderer) build(inv *invoice.Invoice, generatedAt time.Time) (*gofpdf.Fpdf, error) {
	if len(inv.Items) == 0 {
		return nil, ErrNoItems
	}

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetCreationDate(generatedAt)
	// Page breaks are decided per row below, by measured height.
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	r.drawHeader(doc, inv, generatedAt)

	doc.SetY(tableTopY)
	drawColumnHeader(doc)

	for _, item := range inv.Items {
		if doc.GetY()+rowHeight > bodyLimitY {
			doc.AddPage()
			doc.SetY(contTableTopY)
			drawColumnHeader(doc)
		}

		drawRow(doc, item)
	}

	drawSummary(doc, inv)

	// Closing message, last page only.
	doc.SetFont("Times", "I", 10)
	doc.SetTextColor(0, 0, 0)
	doc.Text(marginLeft, footerY, "Thank you for your business")

	if doc.Err() {
		return nil, fmt.Errorf("building pdf: %w", doc.Error())
	}

	return doc, nil
}

func (r *Renderer) drawHeader(doc *gofpdf.Fpdf, inv *invoice.Invoice, generatedAt time.Time) {
	doc.SetFont("Times", "B", 26)
	doc.SetTextColor(40, 40, 40)
	doc.Text(marginLeft, titleY, "INVOICE")

	doc.SetFont("Helvetica", "", 12)
	textRight(doc, rightEdge, titleY, "Invoice from: "+r.issuer)

	doc.Text(marginLeft, headerRow1Y, "Invoice to: "+inv.CustomerName)
	doc.Text(marginLeft, headerRow2Y, "Email: "+inv.CustomerEmail)

	textRight(doc, rightEdge, headerRow1Y, "Invoice Date: "+generatedAt.Format("02/01/2006"))
	textRight(doc, rightEdge, headerRow2Y, "Invoice Number: "+inv.ID)
}

func drawColumnHeader(doc *gofpdf.Fpdf) {
	doc.SetFont("Helvetica", "B", 10)
	doc.SetFillColor(255, 204, 229)
	doc.SetTextColor(0, 0, 0)
	doc.SetDrawColor(180, 180, 180)

	doc.SetX(marginLeft)
	doc.CellFormat(descColW, rowHeight, "DESCRIPTION", "1", 0, "L", true, 0, "")
	doc.CellFormat(numColW, rowHeight, "PRICE", "1", 0, "C", true, 0, "")
	doc.CellFormat(numColW, rowHeight, "QUANTITY", "1", 0, "C", true, 0, "")
	doc.CellFormat(numColW, rowHeight, "SUBTOTAL", "1", 1, "C", true, 0, "")
}

func drawRow(doc *gofpdf.Fpdf, item invoice.LineItem) {
	doc.SetFont("Helvetica", "", 10)
	doc.SetFillColor(255, 229, 242)
	doc.SetTextColor(50, 50, 50)

	doc.SetX(marginLeft)
	doc.CellFormat(descColW, rowHeight, item.Description, "1", 0, "L", true, 0, "")
	doc.CellFormat(numColW, rowHeight, item.UnitPrice.Display(), "1", 0, "C", true, 0, "")
	doc.CellFormat(numColW, rowHeight, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", true, 0, "")
	doc.CellFormat(numColW, rowHeight, item.Subtotal().Display(), "1", 1, "C", true, 0, "")
}

// drawSummary places the shaded totals block below the final row's measured
// end position, flowing to a fresh page when it would not fit.
func drawSummary(doc *gofpdf.Fpdf, inv *invoice.Invoice) {
	y := doc.GetY() + summaryGap
	if y+summaryHeight > bodyLimitY {
		doc.AddPage()
		y = contTableTopY
	}

	doc.SetFillColor(255, 204, 229)
	doc.Rect(summaryX, y, summaryWidth, summaryHeight, "F")

	doc.SetFont("Helvetica", "", 12)
	doc.SetTextColor(0, 0, 0)
	doc.Text(summaryX+5, y+8, "Sub-total: "+inv.TotalAmount.Display())
	doc.Text(summaryX+5, y+24, "Total: "+inv.TotalAmount.Display())
}

func textRight(doc *gofpdf.Fpdf, edge, y float64, s string) {
	doc.Text(edge-doc.GetStringWidth(s), y, s)
}
