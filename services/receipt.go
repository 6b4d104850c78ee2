package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/yeremiapane/enterprise-pos/checkout"
	"github.com/yeremiapane/enterprise-pos/models"
	"github.com/yeremiapane/enterprise-pos/utils"
)

const receiptWidth = 80.0

// RenderReceipt writes a narrow printable receipt for order as PDF.
func RenderReceipt(w io.Writer, order models.Order, branch models.Branch, settings models.Settings) error {
	height := 90.0 + float64(len(order.Items))*10
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: receiptWidth, Ht: height},
	})
	pdf.SetMargins(5, 5, 5)
	pdf.SetAutoPageBreak(false, 5)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	money := func(v float64) string { return tr(utils.FormatMoney(settings.CurrencySymbol, v)) }
	inner := receiptWidth - 10

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(inner, 6, tr(settings.AppName), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	if branch.Name != "" {
		pdf.CellFormat(inner, 4, tr(branch.Name), "", 1, "C", false, 0, "")
	}
	if branch.Address != "" {
		pdf.CellFormat(inner, 4, tr(branch.Address), "", 1, "C", false, 0, "")
	}
	pdf.Ln(2)
	pdf.CellFormat(inner, 4, "Order #"+checkout.ShortOrderNumber(order.ID), "", 1, "L", false, 0, "")
	pdf.CellFormat(inner, 4, order.CreatedAt.Format("02 Jan 2006 15:04"), "", 1, "L", false, 0, "")
	customer := order.CustomerName
	if customer == "" {
		customer = checkout.DefaultGuestName
	}
	pdf.CellFormat(inner, 4, tr("Customer: "+customer), "", 1, "L", false, 0, "")
	pdf.Line(5, pdf.GetY()+1, receiptWidth-5, pdf.GetY()+1)
	pdf.Ln(3)

	for _, line := range order.Items {
		name := fmt.Sprintf("%dx %s", line.Quantity, line.Name)
		pdf.CellFormat(inner-25, 4, tr(name), "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 4, money(line.UnitTotal()*float64(line.Quantity)), "", 1, "R", false, 0, "")
		if len(line.AddOns) > 0 {
			names := make([]string, 0, len(line.AddOns))
			for _, a := range line.AddOns {
				names = append(names, a.Name)
			}
			pdf.SetFont("Helvetica", "I", 7)
			pdf.CellFormat(inner, 4, tr("  + "+strings.Join(names, ", ")), "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 8)
		}
	}

	pdf.Line(5, pdf.GetY()+1, receiptWidth-5, pdf.GetY()+1)
	pdf.Ln(3)
	row := func(label, value string) {
		pdf.CellFormat(inner-25, 4, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 4, value, "", 1, "R", false, 0, "")
	}
	row("Subtotal", money(order.Subtotal))
	row("VAT", money(order.VAT))
	if order.Discount > 0 {
		row("Discount", "-"+money(order.Discount))
	}
	pdf.SetFont("Helvetica", "B", 9)
	row("Total", money(order.Total))
	pdf.SetFont("Helvetica", "", 8)
	row("Payment", order.PaymentMethod)
	pdf.Ln(4)
	pdf.CellFormat(inner, 4, "Thank you!", "", 1, "C", false, 0, "")

	return pdf.Output(w)
}
