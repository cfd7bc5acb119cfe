package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/rwapools/fixedpoint/format"
	"github.com/rwapools/fixedpoint/internal/config"
	"github.com/rwapools/fixedpoint/quote"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	titleStyle = lipgloss.NewStyle().
			Foreground(highlight).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(special)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(highlight).
			Padding(0, 1)

	noteStyle = lipgloss.NewStyle().
			Foreground(subtle)
)

func renderQuote(q quote.Quote, class config.ShareClass, f *format.Formatter, opts []format.Option) string {
	shares := class.Name + " shares"
	inUnit, outUnit := class.AssetSymbol, shares
	if q.Kind == quote.KindRedeem {
		inUnit, outUnit = shares, class.AssetSymbol
	}
	priceOpts := append(append([]format.Option{}, opts...), format.WithPrecision(6), format.WithTrim())

	rows := []string{
		titleStyle.Render(strings.ToUpper(string(q.Kind)) + " " + q.Class),
		fmt.Sprintf("%-8s %s %s", "pay", valueStyle.Render(f.Format(q.In, opts...)), inUnit),
		fmt.Sprintf("%-8s %s %s", "receive", valueStyle.Render(f.Format(q.Out, opts...)), outUnit),
		fmt.Sprintf("%-8s %s %s per share", "price", f.Format(q.Price, priceOpts...), class.AssetSymbol),
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// depositValidator checks the amount input against the deposit bounds of
// the class selected earlier in the same form.
func depositValidator(cfg config.Config, className *string) func(string) error {
	return func(s string) error {
		class, err := cfg.Class(*className)
		if err != nil {
			return err
		}
		return class.DepositField().Check(s)
	}
}

// runInvest asks for a share class and an amount, then prints the quote
// and the contract argument of the deposit.
func runInvest(args []string, out io.Writer, logger *zap.Logger) error {
	fs := newFlagSet("invest", out)
	path := fs.String("config", "config.yaml", "path to yaml config")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := config.Load(*path, envFile)
	if err != nil {
		return err
	}
	if len(cfg.ShareClasses) == 0 {
		return errors.New("no share classes configured")
	}

	var (
		className = cfg.ShareClasses[0].Name
		amount    string
		confirm   bool
	)
	options := make([]huh.Option[string], 0, len(cfg.ShareClasses))
	for _, sc := range cfg.ShareClasses {
		options = append(options, huh.NewOption(fmt.Sprintf("%s (%s)", sc.Name, sc.AssetSymbol), sc.Name))
	}

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Share class").
				Options(options...).
				Value(&className),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Deposit amount").
				Description("Amount of the pool asset to invest").
				Value(&amount).
				Validate(depositValidator(cfg, &className)),
			huh.NewConfirm().
				Title("Request quote?").
				Affirmative("Yes").
				Negative("No").
				Value(&confirm),
		),
	).Run()
	if err != nil {
		return err
	}
	if !confirm {
		return errors.New("investment cancelled by user")
	}

	class, err := cfg.Class(className)
	if err != nil {
		return err
	}
	assets, err := class.DepositField().Parse(amount)
	if err != nil {
		return err
	}
	q, err := class.Deposit(assets)
	if err != nil {
		return err
	}
	arg, err := assets.Uint256()
	if err != nil {
		return errors.Wrap(err, "deposit argument")
	}
	logger.Info("investment quoted", zap.String("class", class.Name),
		zap.Stringer("assets", assets), zap.Stringer("shares", q.Out))

	fmt.Fprintln(out, renderQuote(q, class, format.New(logger), cfg.Display.Options()))
	fmt.Fprintln(out, noteStyle.Render(fmt.Sprintf("deposit(%s) %s", arg.Dec(), assets.Hex())))
	return nil
}
