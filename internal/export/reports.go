package export

import (
	"fmt"
	"strings"
	"time"

	"go-shop-pos/internal/model"
	"go-shop-pos/internal/repository"
)

func formatExpiry(p *model.Product) string {
	if p.ExpiryDate == nil {
		return "N/A"
	}
	return p.ExpiryDate.Format("2006-01-02")
}

func productName(p *model.Product) string {
	if p == nil {
		return "N/A"
	}
	return p.Name
}

func productCode(p *model.Product) string {
	if p == nil {
		return "N/A"
	}
	return p.Code
}

func sellerName(u *model.User) string {
	if u == nil {
		return "N/A"
	}
	return u.Name
}

// Inventory renders the full catalog with the computed stock value.
func (r *Renderer) Inventory(products []model.Product, stats *repository.InventoryStats, now time.Time) string {
	var b strings.Builder
	r.header(&b, "FULL INVENTORY", now)
	columns(&b, "CODE", "NAME", "QTY", "SALE_PRICE", "PURCHASE_PRICE", "CATEGORY", "EXPIRY")
	for i := range products {
		p := &products[i]
		row := []string{
			p.Code,
			p.Name,
			fmt.Sprintf("%d", p.Quantity),
			fmt.Sprintf("%.2f", p.SalePrice),
			fmt.Sprintf("%.2f", p.PurchasePrice),
			p.CategoryName(),
			formatExpiry(p),
		}
		b.WriteString(strings.Join(row, separator) + "\n")
	}
	summary(&b,
		fmt.Sprintf("TOTAL PRODUCTS: %d", len(products)),
		fmt.Sprintf("TOTAL STOCK VALUE: %.2f", stats.StockValue),
	)
	return b.String()
}

// DailySales renders one day's sales with the day total.
func (r *Renderer) DailySales(date time.Time, sales []model.Sale, total float64, now time.Time) string {
	var b strings.Builder
	r.header(&b, fmt.Sprintf("SALES OF %s", date.Format("2006-01-02")), now)
	columns(&b, "TIME", "CODE", "PRODUCT", "QTY", "UNIT_PRICE", "TOTAL", "SELLER")
	for i := range sales {
		s := &sales[i]
		row := []string{
			s.CreatedAt.Format("15:04:05"),
			productCode(s.Product),
			productName(s.Product),
			fmt.Sprintf("%d", s.Quantity),
			fmt.Sprintf("%.2f", s.UnitPrice),
			fmt.Sprintf("%.2f", s.Total),
			sellerName(s.User),
		}
		b.WriteString(strings.Join(row, separator) + "\n")
	}
	summary(&b,
		fmt.Sprintf("SALE COUNT: %d", len(sales)),
		fmt.Sprintf("SALES TOTAL: %.2f", total),
	)
	return b.String()
}

// LowStock renders the products at or below the threshold.
func (r *Renderer) LowStock(threshold int, products []model.Product, now time.Time) string {
	var b strings.Builder
	r.header(&b, fmt.Sprintf("LOW STOCK (threshold: %d)", threshold), now)
	columns(&b, "CODE", "NAME", "QTY", "CATEGORY")
	for i := range products {
		p := &products[i]
		row := []string{p.Code, p.Name, fmt.Sprintf("%d", p.Quantity), p.CategoryName()}
		b.WriteString(strings.Join(row, separator) + "\n")
	}
	summary(&b, fmt.Sprintf("TOTAL LOW-STOCK PRODUCTS: %d", len(products)))
	return b.String()
}

// Journal renders the audit trail.
func (r *Renderer) Journal(entries []model.JournalEntry, now time.Time) string {
	var b strings.Builder
	r.header(&b, "OPERATIONS JOURNAL", now)
	columns(&b, "DATE", "TIME", "ACTION", "USER", "DETAILS")
	for i := range entries {
		e := &entries[i]
		row := []string{
			e.CreatedAt.Format("2006-01-02"),
			e.CreatedAt.Format("15:04:05"),
			e.Action,
			e.UserName(),
			e.Details,
		}
		b.WriteString(strings.Join(row, separator) + "\n")
	}
	summary(&b, fmt.Sprintf("TOTAL OPERATIONS: %d", len(entries)))
	return b.String()
}

func (r *Renderer) receiptHeader(b *strings.Builder) {
	b.WriteString(rule(narrowRule) + "\n")
	b.WriteString(r.ShopName + "\n")
	b.WriteString("SALES RECEIPT\n")
	b.WriteString(rule(narrowRule) + "\n\n")
}

func (r *Renderer) receiptFooter(b *strings.Builder) {
	b.WriteString(rule(narrowRule) + "\n")
	b.WriteString("Thank you for your visit!\n")
	b.WriteString(rule(narrowRule) + "\n")
}

// SaleReceipt renders a single-sale receipt.
func (r *Renderer) SaleReceipt(sale *model.Sale) string {
	var b strings.Builder
	r.receiptHeader(&b)

	fmt.Fprintf(&b, "Date: %s\n", sale.CreatedAt.Format("02/01/2006"))
	fmt.Fprintf(&b, "Time: %s\n", sale.CreatedAt.Format("15:04:05"))
	fmt.Fprintf(&b, "Seller: %s\n", sellerName(sale.User))
	fmt.Fprintf(&b, "Receipt N°: %s\n\n", sale.ID)

	b.WriteString(strings.Repeat("-", narrowRule) + "\n")
	fmt.Fprintf(&b, "Product: %s\n", productName(sale.Product))
	fmt.Fprintf(&b, "Code: %s\n", productCode(sale.Product))
	fmt.Fprintf(&b, "Quantity: %d\n", sale.Quantity)
	fmt.Fprintf(&b, "Unit price: %.2f\n", sale.UnitPrice)
	b.WriteString(strings.Repeat("-", narrowRule) + "\n\n")

	fmt.Fprintf(&b, "TOTAL: %.2f\n\n", sale.Total)
	r.receiptFooter(&b)
	return b.String()
}

// CartReceipt renders one receipt covering several sale lines.
func (r *Renderer) CartReceipt(sales []model.Sale, now time.Time) string {
	var b strings.Builder
	r.receiptHeader(&b)

	fmt.Fprintf(&b, "Date: %s\n", now.Format("02/01/2006"))
	fmt.Fprintf(&b, "Time: %s\n", now.Format("15:04:05"))
	if len(sales) > 0 {
		fmt.Fprintf(&b, "Seller: %s\n", sellerName(sales[0].User))
	}
	fmt.Fprintf(&b, "Items: %d\n\n", len(sales))

	b.WriteString(strings.Repeat("-", narrowRule) + "\n")
	var grandTotal float64
	for i := range sales {
		s := &sales[i]
		fmt.Fprintf(&b, "%s x%d @ %.2f = %.2f\n",
			productName(s.Product), s.Quantity, s.UnitPrice, s.Total)
		grandTotal += s.Total
	}
	b.WriteString(strings.Repeat("-", narrowRule) + "\n\n")

	fmt.Fprintf(&b, "TOTAL: %.2f\n\n", grandTotal)
	r.receiptFooter(&b)
	return b.String()
}
