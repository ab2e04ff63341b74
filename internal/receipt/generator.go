// Package receipt renders payment receipts as PDF documents.
//
// Rendering is pure: the output depends only on the company profile and the
// ReceiptData passed in. Every date printed or embedded in the file is the
// payment timestamp, so the same input always yields the same bytes.
package receipt

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"buildquote/internal/domain/entities"
	"buildquote/internal/domain/money"
	"buildquote/internal/usecase/interfaces"

	"github.com/go-pdf/fpdf"
)

const (
	ContentType = "application/pdf"

	pageMargin  = 18.0
	lineHeight  = 6.0
	labelWidth  = 45.0
	headerColor = 0x1f
)

var ErrInvalidReceiptData = errors.New("invalid receipt data")

// Company is the branding printed in the header and footer.
type Company struct {
	Name    string
	Address string
	Phone   string
	Email   string
	Website string
}

type Generator struct {
	company Company
}

var _ interfaces.IReceiptGenerator = (*Generator)(nil)

func NewGenerator(company Company) *Generator {
	if strings.TrimSpace(company.Name) == "" {
		company.Name = "BuildQuote Construction"
	}
	return &Generator{company: company}
}

// FileName follows Receipt_<invoice>_<YYYY-MM-DD>.pdf using the UTC paid date.
func FileName(data entities.ReceiptData) string {
	return fmt.Sprintf("Receipt_%s_%s.pdf", data.InvoiceNumber, data.PaidAt.UTC().Format("2006-01-02"))
}

func validate(data entities.ReceiptData) error {
	if strings.TrimSpace(data.InvoiceNumber) == "" {
		return fmt.Errorf("%w: missing invoice number", ErrInvalidReceiptData)
	}
	if data.Amount.IsNegative() {
		return fmt.Errorf("%w: negative amount %s", ErrInvalidReceiptData, data.Amount.String())
	}
	if data.PaidAt.IsZero() {
		return fmt.Errorf("%w: missing payment timestamp", ErrInvalidReceiptData)
	}
	return nil
}

func (g *Generator) Generate(data entities.ReceiptData) (entities.ReceiptDocument, error) {
	if err := validate(data); err != nil {
		return entities.ReceiptDocument{}, err
	}
	paidAt := data.PaidAt.UTC()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(false)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(paidAt)
	pdf.SetModificationDate(paidAt)
	pdf.SetCreator("buildquote", false)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, 30)
	pdf.AliasNbPages("")

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr("Payment Receipt "+data.InvoiceNumber), false)
	pdf.SetAuthor(tr(g.company.Name), false)

	pdf.SetFooterFunc(func() { g.footer(pdf, tr) })
	pdf.AddPage()

	g.header(pdf, tr)
	receiptBlock(pdf, tr, data)
	projectBlock(pdf, tr, data)
	summaryBlock(pdf, tr, data)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return entities.ReceiptDocument{}, fmt.Errorf("render receipt %s: %w", data.InvoiceNumber, err)
	}
	return entities.ReceiptDocument{
		FileName:    FileName(data),
		ContentType: ContentType,
		Content:     buf.Bytes(),
	}, nil
}

func (g *Generator) header(pdf *fpdf.Fpdf, tr func(string) string) {
	pageW, _ := pdf.GetPageSize()
	pdf.SetFillColor(headerColor, 0x3a, 0x5f)
	pdf.Rect(0, 0, pageW, 32, "F")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetXY(pageMargin, 9)
	pdf.CellFormat(0, 9, tr(g.company.Name), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetX(pageMargin)
	pdf.CellFormat(0, 5, tr(joinNonEmpty(" | ", g.company.Address, g.company.Website)), "", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	pdf.SetY(42)
}

func receiptBlock(pdf *fpdf.Fpdf, tr func(string) string, data entities.ReceiptData) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "PAYMENT RECEIPT", "", 1, "L", false, 0, "")
	rule(pdf)

	paidAt := data.PaidAt.UTC()
	row(pdf, tr, "Invoice Number:", data.InvoiceNumber)
	row(pdf, tr, "Date:", paidAt.Format("January 2, 2006"))
	row(pdf, tr, "Time:", paidAt.Format("3:04 PM")+" UTC")
	row(pdf, tr, "Customer Name:", data.CustomerName)
	row(pdf, tr, "Customer Email:", data.CustomerEmail)
	pdf.Ln(4)
}

func projectBlock(pdf *fpdf.Fpdf, tr func(string) string, data entities.ReceiptData) {
	section(pdf, "Project Details")
	desc := strings.TrimSpace(data.ProjectDescription)
	if desc == "" {
		desc = "No project description provided."
	}
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, lineHeight, tr(desc), "", "L", false)
	pdf.Ln(4)
}

func summaryBlock(pdf *fpdf.Fpdf, tr func(string) string, data entities.ReceiptData) {
	section(pdf, "Payment Summary")
	row(pdf, tr, "Amount Paid:", money.Format(data.Amount, money.Symbol(data.Currency)))
	if method := strings.TrimSpace(data.PaymentMethod); method != "" {
		row(pdf, tr, "Payment Method:", method)
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(labelWidth, lineHeight, "Status:", "", 0, "L", false, 0, "")
	pdf.SetTextColor(0x15, 0x80, 0x3d)
	pdf.CellFormat(0, lineHeight, "Paid", "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func (g *Generator) footer(pdf *fpdf.Fpdf, tr func(string) string) {
	pdf.SetY(-26)
	rule(pdf)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(0x55, 0x55, 0x55)
	contact := joinNonEmpty(" | ", g.company.Name, g.company.Phone, g.company.Email)
	pdf.CellFormat(0, 4, tr(contact), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 4, "This receipt was generated electronically and is valid without a signature.", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 4, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func section(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	rule(pdf)
}

func row(pdf *fpdf.Fpdf, tr func(string) string, label, value string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(labelWidth, lineHeight, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, lineHeight, tr(value), "", "L", false)
}

func rule(pdf *fpdf.Fpdf) {
	pageW, _ := pdf.GetPageSize()
	y := pdf.GetY()
	pdf.SetDrawColor(0xcc, 0xcc, 0xcc)
	pdf.Line(pageMargin, y, pageW-pageMargin, y)
	pdf.Ln(3)
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
