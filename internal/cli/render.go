package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"subtrack/internal/ui"
)

func renderSidebar(w io.Writer, items []ui.SidebarItem) {
	fmt.Fprintln(w, titleStyle.Render("Categories"))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, item := range items {
		marker := " "
		name := item.Name
		if item.Selected {
			marker = "›"
			name = selectedStyle.Render(name)
		}
		fmt.Fprintf(tw, "%s %s\t%d\t%s\n", marker, name, item.Count, subtleStyle.Render(item.ID))
	}
	_ = tw.Flush()
}

func renderTable(w io.Writer, rows []ui.Row) {
	if len(rows) == 0 {
		fmt.Fprintln(w, subtleStyle.Render("No subscriptions"))
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := []string{"ID", "COMPANY", "AMOUNT", "CYCLE", "NEXT PAYMENT", "METHOD", "CATEGORY", "TYPE", "RECURRING"}
	styled := make([]string, len(header))
	for i, h := range header {
		styled[i] = headerStyle.Render(h)
	}
	fmt.Fprintln(tw, strings.Join(styled, "\t"))
	for _, r := range rows {
		recurring := "no"
		if r.Recurring {
			recurring = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			subtleStyle.Render(r.ID), r.Company, r.Amount, r.Cycle, r.NextPayment,
			r.PaymentMethod, r.Category, r.Type, recurring)
	}
	_ = tw.Flush()
}

// printNotifications выводит накопленные тосты и очищает их
func printNotifications(w io.Writer, rec *ui.Recorder) {
	for _, n := range rec.Drain() {
		switch n.Level {
		case ui.LevelError:
			fmt.Fprintln(w, errorStyle.Render("✗ "+n.Message))
		default:
			fmt.Fprintln(w, successStyle.Render("✓ "+n.Message))
		}
	}
}

func printFieldErrors(w io.Writer, errs map[string]string) {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		fmt.Fprintf(w, "  %s %s\n", errorStyle.Render(field+":"), errs[field])
	}
}
