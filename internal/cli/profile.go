package cli

import (
	"bytes"
	"context"
	"flag"

	"github.com/google/subcommands"
	md "github.com/nao1215/markdown"

	"github.com/mmynk/zeipilote/internal/service"
)

type profileCmd struct {
	app        *App
	name       string
	profession string
}

func (*profileCmd) Name() string     { return "profile" }
func (*profileCmd) Synopsis() string { return "show or update the business profile" }
func (*profileCmd) Usage() string {
	return `zeipilote profile [-name <name>] [-profession <profession>]

  Without flags, prints the profile. With flags, updates the given fields.
`
}

func (c *profileCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Business owner name")
	f.StringVar(&c.profession, "profession", "", "Profession shown on the dashboard")
}

func (c *profileCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	dash, closeStore, err := c.app.open()
	if err != nil {
		return fail("%v", err)
	}
	defer closeStore()

	var upd service.ProfileUpdate
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "name":
			upd.Name = &c.name
		case "profession":
			upd.Profession = &c.profession
		}
	})

	info := dash.Snapshot(ctx).BusinessInfo
	if upd.Name != nil || upd.Profession != nil {
		if info.Name == "" && upd.Name != nil && upd.Profession != nil {
			info, err = dash.CreateProfile(ctx, c.name, c.profession)
		} else {
			info, err = dash.UpdateProfile(ctx, upd)
		}
		if err != nil {
			return fail("%v", err)
		}
	}

	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Profil")
	doc.Table(md.TableSet{
		Header: []string{"Champ", "Valeur"},
		Rows: [][]string{
			{"Nom", info.Name},
			{"Profession", info.Profession},
			{"Mis à jour", info.LastUpdated},
		},
	})
	c.app.printMarkdown(doc.String())
	return subcommands.ExitSuccess
}

type settingsCmd struct {
	app      *App
	currency string
	format   string
}

func (*settingsCmd) Name() string     { return "settings" }
func (*settingsCmd) Synopsis() string { return "show or update the currency settings" }
func (*settingsCmd) Usage() string {
	return `zeipilote settings [-currency <ISO 4217>] [-format <BCP 47 locale>]

  Without flags, prints the settings. An empty value resets a field to its default.

Usage Examples:
$ zeipilote settings -currency USD -format en-US
`
}

func (c *settingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "currency", "", "Currency code, e.g. EUR")
	f.StringVar(&c.format, "format", "", "Locale used to format amounts, e.g. fr-FR")
}

func (c *settingsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	dash, closeStore, err := c.app.open()
	if err != nil {
		return fail("%v", err)
	}
	defer closeStore()

	var upd service.SettingsUpdate
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "currency":
			upd.Currency = &c.currency
		case "format":
			upd.CurrencyFormat = &c.format
		}
	})
	if upd.Currency != nil || upd.CurrencyFormat != nil {
		if _, err := dash.UpdateSettings(ctx, upd); err != nil {
			return fail("%v", err)
		}
	}

	settings := dash.Snapshot(ctx).Settings.Resolved()
	formatter := dash.Formatter(ctx)
	c.app.printf("Devise : %s\nFormat : %s\nExemple : %s\n", settings.Currency, settings.CurrencyFormat, formatter.Currency(1234.5))
	return subcommands.ExitSuccess
}
