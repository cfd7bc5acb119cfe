package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rwapools/fixedpoint"
	"github.com/rwapools/fixedpoint/format"
	"github.com/rwapools/fixedpoint/internal/config"
	"github.com/rwapools/fixedpoint/quote"
)

// envFile is loaded by commands reading a config, when present.
const envFile = ".env"

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

func singleArg(fs *flag.FlagSet, what string) (string, error) {
	if fs.NArg() != 1 {
		return "", errors.Errorf("%s expects exactly one %s", fs.Name(), what)
	}
	return fs.Arg(0), nil
}

// runConvert prints the raw integer of a human amount.
func runConvert(args []string, out io.Writer, logger *zap.Logger) error {
	fs := newFlagSet("convert", out)
	decimals := fs.Int("decimals", 18, "number of decimals of the token")
	rounding := fs.String("rounding", fixedpoint.DefaultRounding.String(), "rounding mode, e.g. half-ceil, down, half-even")
	if err := fs.Parse(args); err != nil {
		return err
	}
	value, err := singleArg(fs, "VALUE")
	if err != nil {
		return err
	}
	mode, err := fixedpoint.ParseRoundingMode(*rounding)
	if err != nil {
		return err
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return errors.Wrapf(fixedpoint.ErrInvalidAmount, "%q", value)
	}
	b, err := fixedpoint.BalanceFromDecimalMode(d, *decimals, mode)
	if err != nil {
		return err
	}
	logger.Debug("converted", zap.String("value", value), zap.Int("decimals", *decimals), zap.Stringer("rounding", mode))

	fmt.Fprintf(out, "raw     %s\n", b.Raw())
	fmt.Fprintf(out, "hex     %s\n", b.Hex())
	fmt.Fprintf(out, "balance %s\n", b)
	return nil
}

// runFormat prints a raw integer, decimal or hex, as a human amount.
func runFormat(args []string, out io.Writer, logger *zap.Logger) error {
	fs := newFlagSet("format", out)
	decimals := fs.Int("decimals", 18, "number of decimals of the raw value")
	precision := fs.Int("precision", format.DefaultPrecision, "fractional digits to show")
	compact := fs.Bool("compact", false, "use K/M/B/T/Q suffixes")
	grouping := fs.Bool("grouping", false, "use thousands separators")
	trim := fs.Bool("trim", false, "strip trailing fractional zeros")
	percent := fs.Bool("percent", false, "format the value as a percentage")
	if err := fs.Parse(args); err != nil {
		return err
	}
	raw, err := singleArg(fs, "RAW")
	if err != nil {
		return err
	}
	b, err := fixedpoint.ParseRaw(raw, *decimals)
	if err != nil {
		return err
	}

	opts := []format.Option{format.WithPrecision(*precision)}
	if *compact {
		opts = append(opts, format.WithCompact())
	}
	if *grouping {
		opts = append(opts, format.WithGrouping())
	}
	if *trim {
		opts = append(opts, format.WithTrim())
	}
	f := format.New(logger)
	if *percent {
		fmt.Fprintln(out, f.FormatPercent(b, opts...))
		return nil
	}
	fmt.Fprintln(out, f.Format(b, opts...))
	return nil
}

// runQuote prints a deposit or redemption quote for a configured class.
func runQuote(args []string, out io.Writer, logger *zap.Logger) error {
	fs := newFlagSet("quote", out)
	path := fs.String("config", "config.yaml", "path to yaml config")
	className := fs.String("class", "", "share class name")
	deposit := fs.String("deposit", "", "assets to deposit")
	redeem := fs.String("redeem", "", "shares to redeem")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if (*deposit == "") == (*redeem == "") {
		return errors.New("quote expects exactly one of -deposit and -redeem")
	}
	cfg, err := config.Load(*path, envFile)
	if err != nil {
		return err
	}
	class, err := cfg.Class(*className)
	if err != nil {
		return err
	}

	var q quote.Quote
	if *deposit != "" {
		assets, err := class.DepositField().Parse(*deposit)
		if err != nil {
			return err
		}
		q, err = class.Deposit(assets)
		if err != nil {
			return err
		}
	} else {
		shares, err := fixedpoint.ParseBalance(*redeem, class.ShareDecimals)
		if err != nil {
			return err
		}
		q, err = class.Redeem(shares)
		if err != nil {
			return err
		}
	}
	logger.Debug("quoted", zap.String("class", q.Class), zap.String("kind", string(q.Kind)),
		zap.Stringer("in", q.In), zap.Stringer("out", q.Out))

	fmt.Fprintln(out, renderQuote(q, class, format.New(logger), cfg.Display.Options()))
	return nil
}
