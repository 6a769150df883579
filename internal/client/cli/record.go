package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/lockbox/internal/records"
)

// add walks the user through one record. The prompts per kind mirror the
// validator's required fields so a completed dialog normally saves cleanly.
func (a *App) add(ctx context.Context) error {
	kindStr, err := GetSimpleText(a.reader, "Kind (account, bank, insurance, extra, wifi)", a.out)
	if err != nil {
		return err
	}
	kind := records.Kind(kindStr)
	if !kind.Valid() {
		return fmt.Errorf("unknown kind %q", kindStr)
	}

	var in records.Input

	switch kind {
	case records.KindAccount:
		if in.ServiceName, err = GetSimpleText(a.reader, "Service name", a.out); err != nil {
			return err
		}
		if in.Username, err = GetSimpleText(a.reader, "Username (email)", a.out); err != nil {
			return err
		}
		if in.SiteURL, err = GetSimpleText(a.reader, "Site URL (optional)", a.out); err != nil {
			return err
		}
		if err = a.promptPassword(&in); err != nil {
			return err
		}
	case records.KindBank:
		if in.ServiceName, err = GetSimpleText(a.reader, "Bank name", a.out); err != nil {
			return err
		}
		if in.Username, err = GetSimpleText(a.reader, "Account number", a.out); err != nil {
			return err
		}
		if err = a.promptPassword(&in); err != nil {
			return err
		}
	case records.KindInsurance:
		if in.ServiceName, err = GetSimpleText(a.reader, "Service name", a.out); err != nil {
			return err
		}
		if in.Username, err = GetSimpleText(a.reader, "Policy holder id", a.out); err != nil {
			return err
		}
		if in.InsuranceCompany, err = GetSimpleText(a.reader, "Insurance company (optional)", a.out); err != nil {
			return err
		}
		if in.InsuranceNumber, err = GetSimpleText(a.reader, "Policy number (optional)", a.out); err != nil {
			return err
		}
	case records.KindExtra:
		if in.ServiceName, err = GetSimpleText(a.reader, "Item name (optional if notes given)", a.out); err != nil {
			return err
		}
		if in.Notes, err = GetMultiline(a.reader, "Notes", a.out); err != nil {
			return err
		}
	case records.KindWifi:
		if in.ServiceName, err = GetSimpleText(a.reader, "WiFi name (SSID)", a.out); err != nil {
			return err
		}
		if err = a.promptPassword(&in); err != nil {
			return err
		}
	}

	rec, err := a.api.Save(ctx, "", kind, in)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Saved %s record %s\n", rec.Kind, rec.ID)
	return nil
}

func (a *App) promptPassword(in *records.Input) error {
	pw, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	in.Password = string(pw)
	return nil
}

func (a *App) delete(ctx context.Context, id string) error {
	if id == "" {
		var err error
		if id, err = GetSimpleText(a.reader, "Record id", a.out); err != nil {
			return err
		}
	}

	if err := a.api.Delete(ctx, id); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Deleted %s\n", id)
	return nil
}
