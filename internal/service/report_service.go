package service

import (
	"fmt"
	"time"

	"go-shop-pos/internal/apperr"
	"go-shop-pos/internal/export"
	"go-shop-pos/internal/repository"

	"github.com/google/uuid"
)

// Report carries a rendered artifact and the path it was written to.
type Report struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// ReportService is pure read-side aggregation: it never mutates the store.
type ReportService interface {
	InventoryReport() (*Report, error)
	DailySalesReport(date time.Time) (*Report, error)
	LowStockReport(threshold int) (*Report, error)
	JournalReport(start, end *time.Time) (*Report, error)
	SaleReceipt(saleID uuid.UUID) (*Report, error)
	CartReceipt(saleIDs []uuid.UUID) (*Report, error)
}

type reportService struct {
	renderer    *export.Renderer
	ledger      LedgerService
	catalog     CatalogService
	journalRepo repository.JournalRepository
	saleRepo    repository.SaleRepository
}

func NewReportService(
	renderer *export.Renderer,
	ledger LedgerService,
	catalog CatalogService,
	journalRepo repository.JournalRepository,
	saleRepo repository.SaleRepository,
) ReportService {
	return &reportService{
		renderer:    renderer,
		ledger:      ledger,
		catalog:     catalog,
		journalRepo: journalRepo,
		saleRepo:    saleRepo,
	}
}

func (s *reportService) write(name, content string) (*Report, error) {
	path, err := s.renderer.WriteFile(name, content)
	if err != nil {
		return nil, apperr.Storage("write report", err)
	}
	return &Report{Path: path, Content: content}, nil
}

func (s *reportService) InventoryReport() (*Report, error) {
	products, err := s.catalog.ListProducts()
	if err != nil {
		return nil, err
	}
	stats, err := s.ledger.InventoryStats()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	content := s.renderer.Inventory(products, stats, now)
	return s.write(export.TimestampName("INVENTORY", now), content)
}

func (s *reportService) DailySalesReport(date time.Time) (*Report, error) {
	sales, err := s.ledger.SalesForDay(date)
	if err != nil {
		return nil, err
	}
	total, err := s.ledger.DailyTotal(date)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	content := s.renderer.DailySales(date, sales, total, now)
	name := fmt.Sprintf("SALES_%s.txt", date.Format("20060102"))
	return s.write(name, content)
}

func (s *reportService) LowStockReport(threshold int) (*Report, error) {
	products, err := s.catalog.LowStock(threshold)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	content := s.renderer.LowStock(threshold, products, now)
	return s.write(export.TimestampName("LOW_STOCK", now), content)
}

func (s *reportService) JournalReport(start, end *time.Time) (*Report, error) {
	now := time.Now()
	if start != nil && end != nil {
		rows, err := s.journalRepo.ForPeriod(*start, *end)
		if err != nil {
			return nil, apperr.Storage("load journal", err)
		}
		return s.write(export.TimestampName("JOURNAL", now), s.renderer.Journal(rows, now))
	}
	rows, err := s.journalRepo.FindAll()
	if err != nil {
		return nil, apperr.Storage("load journal", err)
	}
	return s.write(export.TimestampName("JOURNAL", now), s.renderer.Journal(rows, now))
}

func (s *reportService) SaleReceipt(saleID uuid.UUID) (*Report, error) {
	sale, err := s.ledger.GetSale(saleID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	content := s.renderer.SaleReceipt(sale)
	name := fmt.Sprintf("RECEIPT_%s_%s.txt", sale.ID, now.Format("20060102_150405"))
	return s.write(name, content)
}

func (s *reportService) CartReceipt(saleIDs []uuid.UUID) (*Report, error) {
	if len(saleIDs) == 0 {
		return nil, &apperr.ValidationError{Field: "sale_ids", Reason: "must not be empty"}
	}
	sales, err := s.saleRepo.FindByIDs(saleIDs)
	if err != nil {
		return nil, apperr.Storage("load sales", err)
	}
	if len(sales) == 0 {
		return nil, &apperr.NotFoundError{Entity: "sales"}
	}
	now := time.Now()
	content := s.renderer.CartReceipt(sales, now)
	return s.write(export.TimestampName("RECEIPT_CART", now), content)
}
