package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go-shop-pos/internal/apperr"
	"go-shop-pos/internal/export"
	"go-shop-pos/internal/model"
	"go-shop-pos/internal/repository"
	"go-shop-pos/internal/testutil"
	"go-shop-pos/internal/ws"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type reportFixture struct {
	db      *gorm.DB
	dir     string
	reports ReportService
	ledger  LedgerService
	catalog CatalogService
	user    *model.User
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()

	db := testutil.OpenDB(t)
	dir := t.TempDir()

	productRepo := repository.NewProductRepo(db, 10)
	saleRepo := repository.NewSaleRepo(db)
	purchaseRepo := repository.NewPurchaseRepo(db)
	journalRepo := repository.NewJournalRepo(db)
	hub := ws.NewHub()

	ledger := NewLedgerService(db, productRepo, saleRepo, purchaseRepo, journalRepo, hub)
	catalog := NewCatalogService(db, productRepo, repository.NewCategoryRepo(db), DeletePolicySoft, hub)
	renderer := export.NewRenderer("AGIB", dir)

	user := &model.User{Name: "till", Role: model.RoleSeller}
	require.NoError(t, user.SetPassword("pass"))
	require.NoError(t, db.Create(user).Error)

	return &reportFixture{
		db:      db,
		dir:     dir,
		reports: NewReportService(renderer, ledger, catalog, journalRepo, saleRepo),
		ledger:  ledger,
		catalog: catalog,
		user:    user,
	}
}

func (f *reportFixture) seedProduct(t *testing.T, code, name string, quantity int, salePrice float64) *model.Product {
	t.Helper()
	product, err := f.catalog.CreateProduct(&ProductRequest{
		Name:          name,
		Code:          code,
		PurchasePrice: salePrice / 2,
		SalePrice:     salePrice,
		Quantity:      quantity,
	})
	require.NoError(t, err)
	return product
}

func TestInventoryReport(t *testing.T) {
	f := newReportFixture(t)
	f.seedProduct(t, "R001", "Rice", 20, 4.0)
	f.seedProduct(t, "R002", "Beans", 5, 6.0)

	report, err := f.reports.InventoryReport()
	require.NoError(t, err)

	wideRule := strings.Repeat("=", 80)
	require.True(t, strings.HasPrefix(report.Content, wideRule+"\n"))
	require.Contains(t, report.Content, "AGIB - FULL INVENTORY")
	require.Contains(t, report.Content, "Generated: ")
	require.Contains(t, report.Content, "CODE\tNAME\tQTY")
	require.Contains(t, report.Content, "R001\tRice\t20\t4.00\t2.00\tN/A\tN/A")
	require.Contains(t, report.Content, "TOTAL PRODUCTS: 2")
	require.Contains(t, report.Content, "TOTAL STOCK VALUE: 55.00")

	// The artifact landed on disk with the rendered content.
	written, err := os.ReadFile(report.Path)
	require.NoError(t, err)
	require.Equal(t, report.Content, string(written))
	require.Equal(t, f.dir, filepath.Dir(report.Path))
	require.True(t, strings.HasPrefix(filepath.Base(report.Path), "INVENTORY_"))
}

func TestDailySalesReport(t *testing.T) {
	f := newReportFixture(t)
	product := f.seedProduct(t, "S001", "Cola", 30, 1.5)

	_, err := f.ledger.RecordSale(product.ID, 4, 1.5, f.user.ID)
	require.NoError(t, err)
	_, err = f.ledger.RecordSale(product.ID, 2, 1.5, f.user.ID)
	require.NoError(t, err)

	today := time.Now()
	report, err := f.reports.DailySalesReport(today)
	require.NoError(t, err)

	require.Contains(t, report.Content, "SALES OF "+today.Format("2006-01-02"))
	require.Contains(t, report.Content, "Cola")
	require.Contains(t, report.Content, "till")
	require.Contains(t, report.Content, "SALE COUNT: 2")
	require.Contains(t, report.Content, "SALES TOTAL: 9.00")
	require.Equal(t, "SALES_"+today.Format("20060102")+".txt", filepath.Base(report.Path))

	// An empty day still renders, with zero totals.
	empty, err := f.reports.DailySalesReport(today.AddDate(0, 0, -1))
	require.NoError(t, err)
	require.Contains(t, empty.Content, "SALE COUNT: 0")
	require.Contains(t, empty.Content, "SALES TOTAL: 0.00")
}

func TestLowStockReport(t *testing.T) {
	f := newReportFixture(t)
	f.seedProduct(t, "L001", "Matches", 2, 0.5)
	f.seedProduct(t, "L002", "Candles", 80, 1.0)

	report, err := f.reports.LowStockReport(10)
	require.NoError(t, err)
	require.Contains(t, report.Content, "LOW STOCK (threshold: 10)")
	require.Contains(t, report.Content, "Matches")
	require.NotContains(t, report.Content, "Candles")
	require.Contains(t, report.Content, "TOTAL LOW-STOCK PRODUCTS: 1")
}

func TestJournalReport(t *testing.T) {
	f := newReportFixture(t)
	product := f.seedProduct(t, "J001", "Tea", 10, 2.0)

	_, err := f.ledger.RecordSale(product.ID, 1, 2.0, f.user.ID)
	require.NoError(t, err)
	_, err = f.ledger.RecordPurchase(product.ID, 5, "Depot", f.user.ID)
	require.NoError(t, err)

	report, err := f.reports.JournalReport(nil, nil)
	require.NoError(t, err)
	require.Contains(t, report.Content, "OPERATIONS JOURNAL")
	require.Contains(t, report.Content, model.ActionSale)
	require.Contains(t, report.Content, model.ActionPurchase)
	require.Contains(t, report.Content, "till")
	require.Contains(t, report.Content, "TOTAL OPERATIONS: 2")

	// A window in the past sees nothing.
	start := time.Now().AddDate(0, 0, -7)
	end := time.Now().AddDate(0, 0, -6)
	windowed, err := f.reports.JournalReport(&start, &end)
	require.NoError(t, err)
	require.Contains(t, windowed.Content, "TOTAL OPERATIONS: 0")
}

func TestSaleReceipt(t *testing.T) {
	f := newReportFixture(t)
	product := f.seedProduct(t, "T001", "Bread", 10, 0.8)

	sale, err := f.ledger.RecordSale(product.ID, 3, 0.8, f.user.ID)
	require.NoError(t, err)

	receipt, err := f.reports.SaleReceipt(sale.ID)
	require.NoError(t, err)

	narrowRule := strings.Repeat("=", 50)
	require.True(t, strings.HasPrefix(receipt.Content, narrowRule+"\n"))
	require.Contains(t, receipt.Content, "SALES RECEIPT")
	require.Contains(t, receipt.Content, "Receipt N°: "+sale.ID.String())
	require.Contains(t, receipt.Content, "Product: Bread")
	require.Contains(t, receipt.Content, "Quantity: 3")
	require.Contains(t, receipt.Content, "TOTAL: 2.40")
	require.Contains(t, receipt.Content, "Thank you for your visit!")

	_, err = f.reports.SaleReceipt(uuid.New())
	require.True(t, apperr.IsNotFound(err))
}

func TestCartReceipt(t *testing.T) {
	f := newReportFixture(t)
	first := f.seedProduct(t, "C001", "Juice", 10, 2.5)
	second := f.seedProduct(t, "C002", "Water", 10, 1.0)

	sales, err := f.ledger.RecordCartSale([]SaleLine{
		{ProductID: first.ID, Quantity: 2, UnitPrice: 2.5},
		{ProductID: second.ID, Quantity: 3, UnitPrice: 1.0},
	}, f.user.ID)
	require.NoError(t, err)

	ids := []uuid.UUID{sales[0].ID, sales[1].ID}
	receipt, err := f.reports.CartReceipt(ids)
	require.NoError(t, err)

	require.Contains(t, receipt.Content, "Items: 2")
	require.Contains(t, receipt.Content, "Juice x2 @ 2.50 = 5.00")
	require.Contains(t, receipt.Content, "Water x3 @ 1.00 = 3.00")
	require.Contains(t, receipt.Content, "TOTAL: 8.00")
	require.Contains(t, receipt.Content, "Thank you for your visit!")

	_, err = f.reports.CartReceipt(nil)
	require.True(t, apperr.IsValidation(err))
	_, err = f.reports.CartReceipt([]uuid.UUID{uuid.New()})
	require.True(t, apperr.IsNotFound(err))
}

// Receipts for soft-deleted products keep rendering with placeholder fields.
func TestSaleReceiptAfterProductDeleted(t *testing.T) {
	f := newReportFixture(t)
	product := f.seedProduct(t, "X001", "Ephemeral", 5, 1.0)

	sale, err := f.ledger.RecordSale(product.ID, 1, 1.0, f.user.ID)
	require.NoError(t, err)
	require.NoError(t, f.catalog.DeleteProduct(product.ID))

	receipt, err := f.reports.SaleReceipt(sale.ID)
	require.NoError(t, err)
	require.Contains(t, receipt.Content, "Product: N/A")
	require.Contains(t, receipt.Content, "TOTAL: 1.00")
}
