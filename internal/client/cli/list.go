package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/lockbox/internal/records"
)

func (a *App) list(ctx context.Context, keyword string) error {
	col, err := a.api.List(ctx, keyword)
	if err != nil {
		return err
	}

	if col.Total == 0 {
		fmt.Fprintln(a.out, "No records.")
		return nil
	}

	a.printSection("Accounts", col.Accounts)
	a.printSection("Banks", col.Banks)
	a.printSection("Insurance", col.Insurance)
	a.printSection("Extras", col.Extras)
	a.printSection("WiFi", col.Wifi)

	fmt.Fprintf(a.out, "%d record(s)\n", col.Total)
	return nil
}

func (a *App) printSection(title string, recs []records.Record) {
	if len(recs) == 0 {
		return
	}
	fmt.Fprintf(a.out, "%s:\n", title)
	for _, rec := range recs {
		fmt.Fprintf(a.out, "  %s\n", formatRecord(rec))
	}
}

// formatRecord renders one line per record. Passwords are shown: this is a
// vault client, hiding them here would only push users to copy them from
// exports instead.
func formatRecord(rec records.Record) string {
	switch rec.Kind {
	case records.KindBank:
		return fmt.Sprintf("[%s] %s acct %s pw %s", rec.ID, rec.ServiceName, rec.Username, rec.Password)
	case records.KindInsurance:
		s := fmt.Sprintf("[%s] %s id %s", rec.ID, rec.ServiceName, rec.Username)
		if rec.InsuranceCompany != "" {
			s += " (" + rec.InsuranceCompany + ")"
		}
		return s
	case records.KindExtra:
		name := rec.ServiceName
		if name == "" {
			name = "(note)"
		}
		return fmt.Sprintf("[%s] %s %s", rec.ID, name, rec.Notes)
	case records.KindWifi:
		return fmt.Sprintf("[%s] SSID %s pw %s", rec.ID, rec.ServiceName, rec.Password)
	default:
		s := fmt.Sprintf("[%s] %s user %s pw %s", rec.ID, rec.ServiceName, rec.Username, rec.Password)
		if rec.SiteURL != "" {
			s += " " + rec.SiteURL
		}
		return s
	}
}

func (a *App) groups(ctx context.Context) error {
	groups, err := a.api.Groups(ctx)
	if err != nil {
		return err
	}

	if len(groups) == 0 {
		fmt.Fprintln(a.out, "No account groups.")
		return nil
	}

	for _, g := range groups {
		fmt.Fprintf(a.out, "%s (%d account(s))\n", g.DisplayKey, len(g.Accounts))
		for _, rec := range g.Accounts {
			fmt.Fprintf(a.out, "  %s\n", formatRecord(rec))
		}
	}
	return nil
}
