// Package report renders the entry fields and monthly summary for the terminal.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/twoloonies/loonies/internal/budget"
	"github.com/twoloonies/loonies/internal/model"
)

// Source is the read side of the engine the views need.
type Source interface {
	Fields(cat model.Category) []model.FieldDefinition
	Value(key string) (string, bool)
	Summary() budget.Summary
}

type Styles struct {
	Heading lipgloss.Style
	Income  lipgloss.Style
	Expense lipgloss.Style
	Muted   lipgloss.Style
	Box     lipgloss.Style
}

func DefaultStyles() Styles {
	return newStyles(lipgloss.DefaultRenderer())
}

// StylesFor returns styles whose color profile matches w.
func StylesFor(w io.Writer) Styles {
	return newStyles(lipgloss.NewRenderer(w))
}

func newStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Heading: r.NewStyle().Bold(true),
		Income:  r.NewStyle().Foreground(lipgloss.Color("#00ff00")),
		Expense: r.NewStyle().Foreground(lipgloss.Color("#ff0000")),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("#828282")),
		Box:     r.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2),
	}
}

func (s Styles) category(cat model.Category) lipgloss.Style {
	if cat == model.CategoryIncome {
		return s.Income
	}
	return s.Expense
}

func (s Styles) signed(d decimal.Decimal) lipgloss.Style {
	if d.IsNegative() {
		return s.Expense
	}
	return s.Income
}

// Fields lists every field of both categories with its raw and monthly value.
// Custom fields show their key so they can be removed by it.
func Fields(src Source, st Styles) string {
	var blocks []string
	for _, cat := range model.Categories {
		blocks = append(blocks, fieldBlock(src, st, cat))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func fieldBlock(src Source, st Styles, cat model.Category) string {
	var b strings.Builder
	b.WriteString(st.Heading.Render(heading(cat)))
	b.WriteString("\n")
	for _, f := range src.Fields(cat) {
		raw, _ := src.Value(f.Key)
		line := fmt.Sprintf("  %-22s %-20s", f.Label, st.Muted.Render(f.Key))
		if raw != "" {
			monthly := budget.MonthlyEquivalent(f, raw)
			line += " " + st.category(cat).Render(Money(monthly))
			if f.IsBiweekly() {
				line += st.Muted.Render(fmt.Sprintf(" (%s bi-weekly)", Money(budget.ParseAmount(raw))))
			}
		}
		b.WriteString(strings.TrimRight(line, " "))
		b.WriteString("\n")
	}
	return b.String()
}

func heading(cat model.Category) string {
	if cat == model.CategoryIncome {
		return "Income"
	}
	return "Expenses"
}

// Summary renders the monthly totals and ratios in a box.
func Summary(s budget.Summary, st Styles) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Monthly Income:   %s\n", st.Income.Render(Money(s.Income)))
	fmt.Fprintf(&b, "Monthly Expenses: %s\n", st.Expense.Render(Money(s.Expenses)))
	fmt.Fprintf(&b, "Net:              %s\n", st.signed(s.Net).Render(Money(s.Net)))
	fmt.Fprintf(&b, "Expense Ratio:    %s\n", Percent(s.ExpenseRatio))
	fmt.Fprintf(&b, "Savings Rate:     %s", st.signed(s.SavingsRate).Render(Percent(s.SavingsRate)))
	return st.Box.Render(b.String())
}

// Preview lists the entries of a submission followed by its totals.
func Preview(doc model.Submission, st Styles) string {
	var b strings.Builder
	for _, e := range doc.Entries {
		fmt.Fprintf(&b, "%-8s %-22s %s\n", e.Category, e.Label, st.category(e.Category).Render(Money(e.MonthlyAmount)))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Submitted at %s\n", doc.SubmittedAt.UTC().Format(model.TimestampFormat))
	fmt.Fprintf(&b, "Income %s  Expenses %s  Net %s",
		st.Income.Render(Money(doc.Totals.Income)),
		st.Expense.Render(Money(doc.Totals.Expenses)),
		st.signed(doc.Totals.Net).Render(Money(doc.Totals.Net)))
	return st.Box.Render(b.String())
}

// Money formats d as dollars with thousands separators, e.g. -$1,234.50.
func Money(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(s, ".")

	var g strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			g.WriteByte(',')
		}
		g.WriteRune(r)
	}

	sign := ""
	if d.Round(2).IsNegative() {
		sign = "-"
	}
	return sign + "$" + g.String() + "." + frac
}

// Percent formats a percentage with one decimal place.
func Percent(d decimal.Decimal) string {
	return d.StringFixed(1) + "%"
}
