package service

import (
	"testing"
	"time"

	"go-shop-pos/internal/apperr"
	"go-shop-pos/internal/model"
	"go-shop-pos/internal/repository"
	"go-shop-pos/internal/testutil"
	"go-shop-pos/internal/ws"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type ledgerFixture struct {
	db          *gorm.DB
	ledger      LedgerService
	productRepo repository.ProductRepository
	journalRepo repository.JournalRepository
	user        *model.User
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()

	db := testutil.OpenDB(t)
	productRepo := repository.NewProductRepo(db, 10)
	saleRepo := repository.NewSaleRepo(db)
	purchaseRepo := repository.NewPurchaseRepo(db)
	journalRepo := repository.NewJournalRepo(db)

	user := &model.User{Name: "seller", Role: model.RoleSeller}
	require.NoError(t, user.SetPassword("s3cret"))
	require.NoError(t, db.Create(user).Error)

	return &ledgerFixture{
		db:          db,
		ledger:      NewLedgerService(db, productRepo, saleRepo, purchaseRepo, journalRepo, ws.NewHub()),
		productRepo: productRepo,
		journalRepo: journalRepo,
		user:        user,
	}
}

func (f *ledgerFixture) createProduct(t *testing.T, code string, quantity int, salePrice float64) *model.Product {
	t.Helper()
	product := &model.Product{
		Code:          code,
		Name:          "Product " + code,
		PurchasePrice: salePrice / 2,
		SalePrice:     salePrice,
		Quantity:      quantity,
	}
	require.NoError(t, f.db.Create(product).Error)
	return product
}

func (f *ledgerFixture) reload(t *testing.T, id uuid.UUID) *model.Product {
	t.Helper()
	product, err := f.productRepo.FindByID(id)
	require.NoError(t, err)
	return product
}

func TestRecordSaleDecrementsStockAndJournals(t *testing.T) {
	f := newLedgerFixture(t)
	product := f.createProduct(t, "P001", 5, 6.0)

	sale, err := f.ledger.RecordSale(product.ID, 3, 10.0, f.user.ID)
	require.NoError(t, err)
	require.Equal(t, 3, sale.Quantity)
	require.InDelta(t, 30.0, sale.Total, 1e-9)

	require.Equal(t, 2, f.reload(t, product.ID).Quantity)

	entries, err := f.journalRepo.FindAll()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, model.ActionSale, entries[0].Action)
	require.Contains(t, entries[0].Details, "Product P001")
	require.Contains(t, entries[0].Details, "Qty: 3")
}

func TestRecordSaleInsufficientStock(t *testing.T) {
	f := newLedgerFixture(t)
	product := f.createProduct(t, "P002", 2, 5.0)

	_, err := f.ledger.RecordSale(product.ID, 3, 5.0, f.user.ID)
	require.Error(t, err)

	stockErr, ok := apperr.AsInsufficientStock(err)
	require.True(t, ok)
	require.Equal(t, 3, stockErr.Requested)
	require.Equal(t, 2, stockErr.Available)

	// Nothing was written.
	require.Equal(t, 2, f.reload(t, product.ID).Quantity)
	entries, err := f.journalRepo.FindAll()
	require.NoError(t, err)
	require.Empty(t, entries)

	var saleCount int64
	require.NoError(t, f.db.Model(&model.Sale{}).Count(&saleCount).Error)
	require.Zero(t, saleCount)
}

func TestRecordSaleRejectsBadInput(t *testing.T) {
	f := newLedgerFixture(t)
	product := f.createProduct(t, "P003", 5, 5.0)

	_, err := f.ledger.RecordSale(product.ID, 0, 5.0, f.user.ID)
	require.True(t, apperr.IsValidation(err))

	_, err = f.ledger.RecordSale(product.ID, 1, -1.0, f.user.ID)
	require.True(t, apperr.IsValidation(err))

	_, err = f.ledger.RecordSale(uuid.New(), 1, 5.0, f.user.ID)
	require.True(t, apperr.IsNotFound(err))
}

func TestRecordPurchaseIncrementsStock(t *testing.T) {
	f := newLedgerFixture(t)
	product := f.createProduct(t, "P004", 10, 8.0)

	purchase, err := f.ledger.RecordPurchase(product.ID, 2, "ACME Ltd", f.user.ID)
	require.NoError(t, err)
	require.Equal(t, "ACME Ltd", purchase.Supplier)

	require.Equal(t, 12, f.reload(t, product.ID).Quantity)

	entries, err := f.journalRepo.FindAll()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, model.ActionPurchase, entries[0].Action)
	require.Contains(t, entries[0].Details, "ACME Ltd")
}

func TestRecordCartSaleCombinedLinesExceedStock(t *testing.T) {
	f := newLedgerFixture(t)
	product := f.createProduct(t, "P005", 5, 4.0)

	// Each line fits on its own; together they do not.
	lines := []SaleLine{
		{ProductID: product.ID, Quantity: 3, UnitPrice: 4.0},
		{ProductID: product.ID, Quantity: 3, UnitPrice: 4.0},
	}
	_, err := f.ledger.RecordCartSale(lines, f.user.ID)
	require.True(t, apperr.IsInsufficientStock(err))

	require.Equal(t, 5, f.reload(t, product.ID).Quantity)

	var saleCount int64
	require.NoError(t, f.db.Model(&model.Sale{}).Count(&saleCount).Error)
	require.Zero(t, saleCount)
	entries, err := f.journalRepo.FindAll()
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestRecordCartSaleCommitsAllLines(t *testing.T) {
	f := newLedgerFixture(t)
	first := f.createProduct(t, "P006", 5, 3.0)
	second := f.createProduct(t, "P007", 4, 7.0)

	lines := []SaleLine{
		{ProductID: first.ID, Quantity: 2, UnitPrice: 3.0},
		{ProductID: second.ID, Quantity: 4, UnitPrice: 7.0},
		{ProductID: first.ID, Quantity: 1, UnitPrice: 3.0},
	}
	sales, err := f.ledger.RecordCartSale(lines, f.user.ID)
	require.NoError(t, err)
	require.Len(t, sales, 3)

	require.Equal(t, 2, f.reload(t, first.ID).Quantity)
	require.Equal(t, 0, f.reload(t, second.ID).Quantity)

	entries, err := f.journalRepo.FindAll()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for _, entry := range entries {
		require.Equal(t, model.ActionSale, entry.Action)
	}
}

func TestRecordCartSaleRejectsEmptyCart(t *testing.T) {
	f := newLedgerFixture(t)

	_, err := f.ledger.RecordCartSale(nil, f.user.ID)
	require.True(t, apperr.IsValidation(err))
}

func TestDailyTotal(t *testing.T) {
	f := newLedgerFixture(t)
	product := f.createProduct(t, "P008", 20, 5.0)

	today := time.Now()
	total, err := f.ledger.DailyTotal(today)
	require.NoError(t, err)
	require.Zero(t, total)

	_, err = f.ledger.RecordSale(product.ID, 2, 5.0, f.user.ID)
	require.NoError(t, err)
	_, err = f.ledger.RecordSale(product.ID, 1, 4.0, f.user.ID)
	require.NoError(t, err)

	total, err = f.ledger.DailyTotal(today)
	require.NoError(t, err)
	require.InDelta(t, 14.0, total, 1e-9)

	sales, err := f.ledger.SalesForDay(today)
	require.NoError(t, err)
	require.Len(t, sales, 2)

	// A different day sees none of it.
	yesterday := today.AddDate(0, 0, -1)
	total, err = f.ledger.DailyTotal(yesterday)
	require.NoError(t, err)
	require.Zero(t, total)
}

// Stock plus recorded movements must always reconcile with the starting
// quantity, whatever mix of operations ran.
func TestStockConservation(t *testing.T) {
	f := newLedgerFixture(t)
	product := f.createProduct(t, "P009", 10, 2.0)

	_, err := f.ledger.RecordSale(product.ID, 4, 2.0, f.user.ID)
	require.NoError(t, err)
	_, err = f.ledger.RecordPurchase(product.ID, 7, "ACME Ltd", f.user.ID)
	require.NoError(t, err)
	_, err = f.ledger.RecordCartSale([]SaleLine{
		{ProductID: product.ID, Quantity: 2, UnitPrice: 2.0},
		{ProductID: product.ID, Quantity: 3, UnitPrice: 2.0},
	}, f.user.ID)
	require.NoError(t, err)
	_, err = f.ledger.RecordSale(product.ID, 100, 2.0, f.user.ID) // fails, must not count
	require.True(t, apperr.IsInsufficientStock(err))

	var sold, bought int64
	require.NoError(t, f.db.Model(&model.Sale{}).Select("COALESCE(SUM(quantity), 0)").Scan(&sold).Error)
	require.NoError(t, f.db.Model(&model.Purchase{}).Select("COALESCE(SUM(quantity), 0)").Scan(&bought).Error)

	final := f.reload(t, product.ID).Quantity
	require.Equal(t, 10-int(sold)+int(bought), final)
	require.Equal(t, 8, final)
}

func TestInventoryStats(t *testing.T) {
	f := newLedgerFixture(t)
	f.createProduct(t, "P010", 3, 10.0)  // below threshold
	f.createProduct(t, "P011", 50, 2.0)  // healthy
	f.createProduct(t, "P012", 0, 1.0)   // out of stock

	stats, err := f.ledger.InventoryStats()
	require.NoError(t, err)
	require.EqualValues(t, 3, stats.TotalProducts)
	require.EqualValues(t, 2, stats.LowStockCount)
	// Stock value uses the purchase price (half the sale price in the fixture).
	require.InDelta(t, 3*5.0+50*1.0, stats.StockValue, 1e-9)
}
