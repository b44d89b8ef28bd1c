package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"go/build"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/debtbook-api/internal/models"
	"github.com/sjperalta/debtbook-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newQuery() *repository.ListQuery {
	return repository.NewListQuery()
}

func newTestExportService(t *testing.T) *ExportService {
	svc, _ := newTestExportEnv(t)
	return svc
}

func newTestExportEnv(t *testing.T) (*ExportService, testEnv) {
	env := newTestEnv(t, true)
	clock := fixedClock(time.Date(2025, 1, 17, 9, 0, 0, 0, time.UTC))
	return NewExportService(NewDashboardService(env.reader, clock, 3), clock), env
}

// utf8TestFont returns a TrueType font with Arabic glyphs, from PDF_FONT_PATH
// or the gofpdf module cache
func utf8TestFont(t *testing.T) []byte {
	t.Helper()
	path := os.Getenv("PDF_FONT_PATH")
	if path == "" {
		path = filepath.Join(build.Default.GOPATH, "pkg", "mod", "github.com", "jung-kurt", "gofpdf@v1.16.2", "font", "DejaVuSansCondensed.ttf")
	}
	ttf, err := os.ReadFile(path)
	if err != nil {
		t.Skipf("no TrueType font available: %v", err)
	}
	return ttf
}

func TestExportBalancesCSV(t *testing.T) {
	svc := newTestExportService(t)

	file, err := svc.ExportBalances(context.Background(), workerID, "")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.Equal(t, "balances_1_2025-01-17.csv", file.Filename)

	rows, err := csv.NewReader(bytes.NewReader(file.Data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, balanceHeader, rows[0])
	assert.Equal(t, "Sara Ahmed", rows[1][0])
	assert.Equal(t, "300.00", rows[1][6])
	assert.Equal(t, []string{"Total", "", "", "", "900.00", "280.00", "620.00"}, rows[5])
}

func TestExportBalancesXLSX(t *testing.T) {
	svc := newTestExportService(t)

	file, err := svc.ExportBalances(context.Background(), workerID, "XLSX")
	require.NoError(t, err)
	assert.Equal(t, "balances_1_2025-01-17.xlsx", file.Filename)

	f, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer f.Close()

	name, err := f.GetCellValue("Balances", "A4")
	require.NoError(t, err)
	assert.Equal(t, "Fatima Hassan", name)

	outstanding, err := f.GetCellValue("Balances", "G4")
	require.NoError(t, err)
	assert.Equal(t, "320", outstanding)
}

func TestExportBalancesPDF(t *testing.T) {
	svc := newTestExportService(t)

	file, err := svc.ExportBalances(context.Background(), workerID, "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF")))
}

func TestExportBalancesTotalsMatchDashboard(t *testing.T) {
	ctx := context.Background()
	svc, env := newTestExportEnv(t)
	require.NoError(t, env.repos.Debt.Create(ctx, &models.Debt{
		ID: "orphan", CustomerID: "gone", CreatedByUserID: workerID,
		CreatedAt: time.Date(2025, 1, 11, 8, 0, 0, 0, time.UTC), DebtAmount: decimal.NewFromInt(40),
	}))

	file, err := svc.ExportBalances(ctx, workerID, FormatCSV)
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(file.Data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 7)
	assert.Equal(t, []string{UnknownCustomerLabel, "", "", "no", "40.00", "0.00", "40.00"}, rows[5])

	dash, err := svc.dashboard.Dashboard(ctx, workerID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Total", "", "", "", dash.TotalDebts.StringFixed(2), dash.TotalPayments.StringFixed(2), dash.Outstanding.StringFixed(2)}, rows[6])
	assert.Equal(t, "660.00", rows[6][6])
}

func TestExportBalancesPDFFonts(t *testing.T) {
	ctx := context.Background()
	svc, env := newTestExportEnv(t)
	customer, err := env.repos.Customer.FindByID(ctx, "1")
	require.NoError(t, err)
	customer.FullName = "سارة أحمد"
	require.NoError(t, env.repos.Customer.Update(ctx, customer))

	t.Run("core font", func(t *testing.T) {
		file, err := svc.ExportBalances(ctx, workerID, FormatPDF)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF")))
		assert.False(t, bytes.Contains(file.Data, []byte("/FontFile2")))
	})

	t.Run("embedded UTF-8 font", func(t *testing.T) {
		svc.SetPDFFont(utf8TestFont(t))
		file, err := svc.ExportBalances(ctx, workerID, FormatPDF)
		require.NoError(t, err)
		assert.True(t, bytes.Contains(file.Data, []byte("/FontFile2")))
	})
}

func TestExportBalancesUnknownFormat(t *testing.T) {
	svc := newTestExportService(t)

	_, err := svc.ExportBalances(context.Background(), workerID, "docx")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
