package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// --- GET: /api/reports ---
// Revenue, order count, top sellers, a daily series and the most
// recent sales in one payload for the dashboard.
func (h *Handler) GetSalesReport(c *gin.Context) {
	summary, err := h.reports.Summary()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build sales report"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// --- GET: /api/reports/export ---
// Streams the transaction history as an xlsx workbook.
func (h *Handler) ExportSalesReport(c *gin.Context) {
	transactions, err := h.ledger.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Transaksi"
	index, err := f.NewSheet(sheet)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build workbook"})
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"ID", "Tanggal", "Total", "Pembayaran", "Kembalian", "HPP", "Laba", "Pelanggan", "Telepon", "Barang"}
	for i, head := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, head)
	}

	for row, t := range transactions {
		items := ""
		for i, it := range t.Items {
			if i > 0 {
				items += "; "
			}
			items += fmt.Sprintf("%s x%d", it.Name, it.Quantity)
		}

		values := []interface{}{
			t.ID,
			t.Date.Format("2006-01-02 15:04"),
			t.Total,
			t.Payment,
			t.Change,
			t.Cogs,
			t.Profit,
			t.CustomerName,
			t.CustomerPhone,
			items,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	filename := fmt.Sprintf("laporan-penjualan-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write workbook"})
	}
}
