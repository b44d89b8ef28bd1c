package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/sjperalta/debtbook-api/internal/ledger"
	"github.com/sjperalta/debtbook-api/internal/models"
	"github.com/xuri/excelize/v2"
)

// Export formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

var contentTypes = map[string]string{
	FormatCSV:  "text/csv",
	FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	FormatPDF:  "application/pdf",
}

// ExportFile is a rendered report
type ExportFile struct {
	Data        []byte
	Filename    string
	ContentType string
}

// UnknownCustomerLabel names the report row for records whose customer no
// longer exists
const UnknownCustomerLabel = "Unknown customer"

const pdfFontFamily = "report"

// ExportService renders the worker's customer balances as a downloadable report
type ExportService struct {
	dashboard *DashboardService
	now       Clock
	pdfFont   []byte
}

func NewExportService(dashboard *DashboardService, now Clock) *ExportService {
	return &ExportService{dashboard: dashboard, now: now}
}

// SetPDFFont sets a TrueType font used for PDF text. Without one, PDFs use
// the core Arial font, which only covers Windows-1252 characters.
func (s *ExportService) SetPDFFont(ttf []byte) {
	s.pdfFont = ttf
}

var balanceHeader = []string{"Customer", "Phone", "Promise to pay", "Blocked", "Total debt", "Total paid", "Outstanding"}

func balanceRow(b ledger.CustomerBalance) []string {
	promise := ""
	if b.Customer.PromiseToPayDate != nil {
		promise = b.Customer.PromiseToPayDate.Format(models.DateLayout)
	}
	blocked := "no"
	if b.Customer.Blocked {
		blocked = "yes"
	}
	return []string{
		b.Customer.FullName,
		b.Customer.PhoneNumber,
		promise,
		blocked,
		b.TotalDebt.StringFixed(2),
		b.TotalPaid.StringFixed(2),
		b.Outstanding.StringFixed(2),
	}
}

func balanceTotals(balances []ledger.CustomerBalance) (debt, paid, outstanding decimal.Decimal) {
	for _, b := range balances {
		debt = debt.Add(b.TotalDebt)
		paid = paid.Add(b.TotalPaid)
	}
	return debt, paid, debt.Sub(paid)
}

// ExportBalances renders the balances of workerID in format
func (s *ExportService) ExportBalances(ctx context.Context, workerID, format string) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatCSV
	}
	if _, ok := contentTypes[format]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	report, err := s.dashboard.Report(ctx, workerID)
	if err != nil {
		return nil, err
	}
	balances := report.Rows
	if report.HasUnassigned() {
		unassigned := report.Unassigned
		unassigned.Customer.FullName = UnknownCustomerLabel
		balances = append(balances, unassigned)
	}

	var data []byte
	switch format {
	case FormatCSV:
		data, err = s.renderCSV(balances)
	case FormatXLSX:
		data, err = s.renderXLSX(balances)
	case FormatPDF:
		data, err = s.renderPDF(workerID, balances)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}

	return &ExportFile{
		Data:        data,
		Filename:    fmt.Sprintf("balances_%s_%s.%s", workerID, formatDate(s.now()), format),
		ContentType: contentTypes[format],
	}, nil
}

func (s *ExportService) renderCSV(balances []ledger.CustomerBalance) ([]byte, error) {
	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	_ = writer.Write(balanceHeader)
	for _, b := range balances {
		_ = writer.Write(balanceRow(b))
	}
	debt, paid, outstanding := balanceTotals(balances)
	_ = writer.Write([]string{"Total", "", "", "", debt.StringFixed(2), paid.StringFixed(2), outstanding.StringFixed(2)})

	writer.Flush()
	return buf.Bytes(), writer.Error()
}

func (s *ExportService) renderXLSX(balances []ledger.CustomerBalance) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Balances"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	for col, title := range balanceHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheet, cell, title)
	}
	_ = f.SetCellStyle(sheet, "A1", "G1", headerStyle)

	row := 2
	for _, b := range balances {
		values := balanceRow(b)
		for col := 0; col < 4; col++ {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(sheet, cell, values[col])
		}
		for col, amount := range []decimal.Decimal{b.TotalDebt, b.TotalPaid, b.Outstanding} {
			cell, _ := excelize.CoordinatesToCellName(col+5, row)
			_ = f.SetCellValue(sheet, cell, amount.InexactFloat64())
		}
		row++
	}

	debt, paid, outstanding := balanceTotals(balances)
	totalCell, _ := excelize.CoordinatesToCellName(1, row)
	_ = f.SetCellValue(sheet, totalCell, "Total")
	for col, amount := range []decimal.Decimal{debt, paid, outstanding} {
		cell, _ := excelize.CoordinatesToCellName(col+5, row)
		_ = f.SetCellValue(sheet, cell, amount.InexactFloat64())
	}
	_ = f.SetColWidth(sheet, "A", "A", 28)
	_ = f.SetColWidth(sheet, "B", "C", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *ExportService) renderPDF(workerID string, balances []ledger.CustomerBalance) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	family, tr := "Arial", pdf.UnicodeTranslatorFromDescriptor("")
	if len(s.pdfFont) > 0 {
		pdf.AddUTF8FontFromBytes(pdfFontFamily, "", s.pdfFont)
		pdf.AddUTF8FontFromBytes(pdfFontFamily, "B", s.pdfFont)
		family, tr = pdfFontFamily, func(text string) string { return text }
	}
	pdf.AddPage()

	pdf.SetFont(family, "B", 16)
	pdf.Cell(40, 10, "Customer balances")
	pdf.Ln(10)

	pdf.SetFont(family, "", 10)
	pdf.Cell(40, 8, tr(fmt.Sprintf("Worker %s - %s", workerID, formatDate(s.now()))))
	pdf.Ln(10)

	widths := []float64{50, 35, 25, 25, 25}
	pdf.SetFont(family, "B", 10)
	for i, title := range []string{"Customer", "Phone", "Debt", "Paid", "Outstanding"} {
		pdf.CellFormat(widths[i], 8, title, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(family, "", 9)
	for _, b := range balances {
		cells := []string{
			b.Customer.FullName,
			b.Customer.PhoneNumber,
			b.TotalDebt.StringFixed(2),
			b.TotalPaid.StringFixed(2),
			b.Outstanding.StringFixed(2),
		}
		for i, text := range cells {
			align := "R"
			if i < 2 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 7, tr(text), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	debt, paid, outstanding := balanceTotals(balances)
	pdf.SetFont(family, "B", 9)
	pdf.CellFormat(widths[0]+widths[1], 7, "Total", "1", 0, "L", false, 0, "")
	for i, amount := range []decimal.Decimal{debt, paid, outstanding} {
		pdf.CellFormat(widths[i+2], 7, amount.StringFixed(2), "1", 0, "R", false, 0, "")
	}
	pdf.Ln(-1)

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
