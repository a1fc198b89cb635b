package export

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/procurechef/procurechef-backend/internal/orders"
)

// WriteOrderPDF renders a purchase order as an A4 document suitable for
// attaching to the email that goes out to the supplier.
func WriteOrderPDF(w io.Writer, order *orders.PurchaseOrderDTO) error {
	if order == nil {
		return fmt.Errorf("order is required")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetMargins(10, 10, 10)

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(190, 10, "PURCHASE ORDER")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(95, 6, fmt.Sprintf("Order No: %s", order.OrderNumber))
	pdf.Cell(95, 6, fmt.Sprintf("Status: %s", order.Status))
	pdf.Ln(6)
	pdf.Cell(95, 6, fmt.Sprintf("Supplier: %s", order.SupplierName))
	pdf.Cell(95, 6, fmt.Sprintf("Date: %s", order.CreatedAt.Format("2006-01-02")))
	pdf.Ln(6)
	if order.ExpectedDelivery != nil {
		pdf.Cell(190, 6, fmt.Sprintf("Expected delivery: %s", order.ExpectedDelivery.Format("2006-01-02")))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(70, 7, "Product", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "Quantity", "1", 0, "R", false, 0, "")
	pdf.CellFormat(20, 7, "Unit", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, "Unit Price", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, "Line Total", "1", 0, "R", false, 0, "")
	pdf.Ln(7)

	pdf.SetFont("Arial", "", 10)
	for _, item := range order.Items {
		lineTotal := item.PricePerUnit.Mul(item.Quantity).Round(2)
		pdf.CellFormat(70, 7, item.ProductName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, item.Quantity.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 7, string(item.Unit), "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, item.PricePerUnit.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, lineTotal.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.Ln(7)
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(150, 7, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, order.Total.StringFixed(2), "1", 0, "R", false, 0, "")
	pdf.Ln(12)

	if order.Notes != nil && *order.Notes != "" {
		pdf.SetFont("Arial", "", 9)
		pdf.MultiCell(190, 5, fmt.Sprintf("Notes: %s", *order.Notes), "", "L", false)
	}

	pdf.SetFont("Arial", "I", 8)
	pdf.SetY(-20)
	pdf.Cell(190, 5, fmt.Sprintf("Generated %s", time.Now().UTC().Format(time.RFC3339)))

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}
