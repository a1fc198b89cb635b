// Package export renders procurement data into downloadable documents:
// XLSX workbooks for the comparison and inventory screens and a PDF
// rendition of a purchase order for sending to suppliers.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/procurechef/procurechef-backend/internal/comparison"
	"github.com/procurechef/procurechef-backend/internal/inventory"
)

// WriteComparisonXLSX renders the per-product price rollup as a workbook.
// One row per product and supplier offer; the cheapest offer is flagged.
func WriteComparisonXLSX(w io.Writer, comparisons []*comparison.ProductComparison) error {
	file := excelize.NewFile()
	defer file.Close()

	const sheet = "Comparison"
	if err := file.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headers := []any{"Product", "Category", "Quantity", "Unit", "Supplier", "Price", "In Stock", "Best Price"}
	if err := file.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := 2
	for _, entry := range comparisons {
		best := entry.BestPrice()
		if len(entry.Offers) == 0 {
			cells := []any{entry.ProductName, entry.Category, entry.Quantity.String(), string(entry.Unit), "no quotes", "", "", ""}
			if err := file.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &cells); err != nil {
				return fmt.Errorf("write row %d: %w", row, err)
			}
			row++
			continue
		}
		for _, offer := range entry.Offers {
			flag := ""
			if best != nil && offer.SupplierID == best.SupplierID {
				flag = "yes"
			}
			cells := []any{
				entry.ProductName,
				entry.Category,
				entry.Quantity.String(),
				string(entry.Unit),
				offer.SupplierName,
				offer.Price.String(),
				offer.InStock,
				flag,
			}
			if err := file.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &cells); err != nil {
				return fmt.Errorf("write row %d: %w", row, err)
			}
			row++
		}
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// WriteInventoryXLSX renders the current stock position as a workbook.
func WriteInventoryXLSX(w io.Writer, products []*inventory.ProductDTO) error {
	file := excelize.NewFile()
	defer file.Close()

	const sheet = "Inventory"
	if err := file.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headers := []any{"SKU", "Name", "Category", "Unit", "Current Stock", "Min Stock", "Max Stock", "Stock Level", "Location"}
	if err := file.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, product := range products {
		location := ""
		if product.StorageLocation != nil {
			location = *product.StorageLocation
		}
		cells := []any{
			product.SKU,
			product.Name,
			product.Category,
			string(product.Unit),
			product.CurrentStock.String(),
			product.MinStock.String(),
			product.MaxStock.String(),
			string(product.StockLevel),
			location,
		}
		if err := file.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &cells); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
