// Package view turns the record snapshot into display rows and renders them
// as a terminal table.
package view

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dmitrijs2005/ledgerbook/internal/client/catalog"
	"github.com/dmitrijs2005/ledgerbook/internal/client/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DateLayout is how record timestamps appear in the list.
const DateLayout = "2006-01-02 15:04"

// UnknownCategory is shown for category codes missing from the catalog.
const UnknownCategory = "?"

var ErrNoSuchRow = errors.New("no such row")

var headers = []string{"#", "Date", "Type", "Category", "Payment", "Content", "Detail", "Amount"}

var printer = message.NewPrinter(language.English)

// Row is one displayed record. Record keeps the source for the editor.
type Row struct {
	Index    int
	Date     string
	Type     string
	Category string
	Payment  string
	Content  string
	Detail   string
	Amount   string
	Record   models.Record
}

// Project maps records to rows in snapshot order, numbering them from 1.
func Project(records []models.Record, cat *catalog.Catalog) []Row {
	rows := make([]Row, 0, len(records))
	for i, r := range records {
		rows = append(rows, Row{
			Index:    i + 1,
			Date:     r.Date.Format(DateLayout),
			Type:     typeLabel(cat, r.Type),
			Category: categoryLabel(cat, r.Category),
			Payment:  paymentLabel(cat, r),
			Content:  r.Content,
			Detail:   r.Detail,
			Amount:   FormatAmount(r.Amount),
			Record:   r.Clone(),
		})
	}
	return rows
}

// FormatAmount groups thousands: 1234567 -> "1,234,567".
func FormatAmount(v int64) string {
	return printer.Sprintf("%d", v)
}

// Select returns the record of the 1-based row n.
func Select(rows []Row, n int) (models.Record, error) {
	if n < 1 || n > len(rows) {
		return models.Record{}, fmt.Errorf("%w: %d", ErrNoSuchRow, n)
	}
	return rows[n-1].Record.Clone(), nil
}

// Totals sums amounts per record type.
type Totals struct {
	Expense int64
	Income  int64
}

func (t Totals) Net() int64 {
	return t.Income - t.Expense
}

func (t Totals) String() string {
	return fmt.Sprintf("Income %s  Expense %s  Net %s",
		FormatAmount(t.Income), FormatAmount(t.Expense), FormatAmount(t.Net()))
}

func Total(records []models.Record) Totals {
	var t Totals
	for _, r := range records {
		switch r.Type {
		case models.RecordTypeExpense:
			t.Expense += r.Amount
		case models.RecordTypeIncome:
			t.Income += r.Amount
		}
	}
	return t
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	amountStyle = cellStyle.Align(lipgloss.Right)
)

// Render writes the rows as a table. A width of 0 or less leaves the table
// at its natural size.
func Render(w io.Writer, rows []Row, width int) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No records for this period.")
		return err
	}

	amountCol := len(headers) - 1
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == amountCol || col == 0:
				return amountStyle
			default:
				return cellStyle
			}
		})
	for _, r := range rows {
		t.Row(fmt.Sprint(r.Index), r.Date, r.Type, r.Category, r.Payment, r.Content, r.Detail, r.Amount)
	}
	if width > 0 {
		t.Width(width)
	}

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func typeLabel(cat *catalog.Catalog, t models.RecordType) string {
	if l, ok := cat.RecordTypeLabel(t); ok {
		return l
	}
	return string(t)
}

func categoryLabel(cat *catalog.Catalog, code string) string {
	if l, ok := cat.CategoryLabel(code); ok {
		return l
	}
	return UnknownCategory
}

func paymentLabel(cat *catalog.Catalog, r models.Record) string {
	if r.PaymentType == models.PaymentTypeCard && r.InstrumentAlias != "" {
		return r.InstrumentAlias
	}
	if l, ok := cat.PaymentTypeLabel(r.PaymentType); ok {
		return l
	}
	return string(r.PaymentType)
}
