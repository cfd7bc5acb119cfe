// Package format renders balances, prices and plain numbers for display.
//
// Formatting never fails: nil input and any internal error produce
// [Fallback] ("0.00").
package format

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rwapools/fixedpoint"
)

// Fallback is returned for nil input and whenever formatting fails.
const Fallback = "0.00"

// DefaultPrecision is the number of fractional digits shown by default.
const DefaultPrecision = 2

// compactUnits are the suffixes of the compact notation, largest first.
var compactUnits = []struct {
	exp    int32
	suffix string
}{
	{15, "Q"},
	{12, "T"},
	{9, "B"},
	{6, "M"},
	{3, "K"},
}

// Options controls how a value is rendered.
type Options struct {
	Precision int
	Grouping  bool
	Compact   bool
	Trim      bool
	Rounding  fixedpoint.RoundingMode
}

// Option configures a single Format call.
type Option func(*Options)

// WithPrecision sets the number of fractional digits.
func WithPrecision(n int) Option {
	return func(o *Options) {
		o.Precision = n
	}
}

// WithGrouping enables thousands separators: 1,234,567.00.
func WithGrouping() Option {
	return func(o *Options) {
		o.Grouping = true
	}
}

// WithCompact enables K/M/B/T/Q suffixes for values from 1e3 upwards.
func WithCompact() Option {
	return func(o *Options) {
		o.Compact = true
	}
}

// WithTrim strips trailing fractional zeros: 1.50 -> 1.5, 2.00 -> 2.
func WithTrim() Option {
	return func(o *Options) {
		o.Trim = true
	}
}

// WithRounding sets the rounding mode used to cut fractional digits.
func WithRounding(mode fixedpoint.RoundingMode) Option {
	return func(o *Options) {
		o.Rounding = mode
	}
}

// Formatter formats values with a set of default options.
// The zero value is not usable, create one with New.
type Formatter struct {
	defaults Options
	logger   *zap.Logger
}

// New returns a formatter with the given defaults.
// A nil logger disables logging of fallbacks.
func New(logger *zap.Logger, defaults ...Option) *Formatter {
	if logger == nil {
		logger = zap.NewNop()
	}
	o := Options{Precision: DefaultPrecision, Rounding: fixedpoint.DefaultRounding}
	for _, opt := range defaults {
		opt(&o)
	}
	return &Formatter{defaults: o, logger: logger}
}

var std = New(nil)

// Format formats v with the package defaults, see [Formatter.Format].
func Format(v any, opts ...Option) string {
	return std.Format(v, opts...)
}

// FormatPercent formats v with the package defaults, see [Formatter.FormatPercent].
func FormatPercent(v any, opts ...Option) string {
	return std.FormatPercent(v, opts...)
}

// Format renders v, which may be a [fixedpoint.Balance], a [fixedpoint.Price],
// a raw *big.Int, a decimal.Decimal, a decimal string, any integer or float type,
// or nil.
// It never panics and returns [Fallback] on failure.
func (f *Formatter) Format(v any, opts ...Option) (s string) {
	defer func() {
		if r := recover(); r != nil {
			f.logger.Debug("formatting panicked", zap.String("panic", fmt.Sprint(r)))
			s = Fallback
		}
	}()
	o := f.options(opts)
	d, ok, err := prepare(v, o)
	if err != nil {
		f.logger.Debug("formatting failed", zap.Error(err))
		return Fallback
	}
	if !ok {
		return Fallback
	}
	return render(d, o)
}

// FormatPercent renders a ratio as a percentage: 0.0525 -> "5.25%".
func (f *Formatter) FormatPercent(v any, opts ...Option) (s string) {
	defer func() {
		if r := recover(); r != nil {
			f.logger.Debug("percent formatting panicked", zap.String("panic", fmt.Sprint(r)))
			s = Fallback + "%"
		}
	}()
	o := f.options(opts)
	d, ok, err := prepare(v, o)
	if err != nil {
		f.logger.Debug("percent formatting failed", zap.Error(err))
		return Fallback + "%"
	}
	if !ok {
		return Fallback + "%"
	}
	o.Compact = false
	return render(d.Shift(2), o) + "%"
}

func (f *Formatter) options(opts []Option) Options {
	o := f.defaults
	for _, opt := range opts {
		opt(&o)
	}
	if o.Precision < 0 {
		o.Precision = 0
	}
	return o
}

// maxExponent bounds the exponent of a formatted value.
// 10^77 is the first power of 10 beyond 256 bits, MaxDecimals the widest scale.
const maxExponent = 77 + fixedpoint.MaxDecimals

// prepare normalizes v and keeps its exponent within maxExponent.
// Larger values are rejected, digits far below the displayed precision are
// rounded away with the display mode.
func prepare(v any, o Options) (decimal.Decimal, bool, error) {
	d, ok, err := toDecimal(v)
	if err != nil || !ok {
		return d, ok, err
	}
	switch exp := d.Exponent(); {
	case d.IsZero():
		return decimal.Zero, true, nil
	case exp > maxExponent:
		return decimal.Decimal{}, false, errors.Errorf("exponent %v out of range", exp)
	case exp < -maxExponent:
		return fixedpoint.RoundDecimal(d, maxExponent, o.Rounding), true, nil
	}
	return d, true, nil
}

// toDecimal normalizes the accepted input types.
// ok is false for nil values.
func toDecimal(v any) (d decimal.Decimal, ok bool, err error) {
	switch x := v.(type) {
	case nil:
		return decimal.Decimal{}, false, nil
	case fixedpoint.Balance:
		return x.ToDecimal(), true, nil
	case *fixedpoint.Balance:
		if x == nil {
			return decimal.Decimal{}, false, nil
		}
		return x.ToDecimal(), true, nil
	case fixedpoint.Price:
		return x.ToDecimal(), true, nil
	case *fixedpoint.Price:
		if x == nil {
			return decimal.Decimal{}, false, nil
		}
		return x.ToDecimal(), true, nil
	case *big.Int:
		if x == nil {
			return decimal.Decimal{}, false, nil
		}
		return decimal.NewFromBigInt(x, 0), true, nil
	case decimal.Decimal:
		return x, true, nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(x))
		if err != nil {
			return decimal.Decimal{}, false, errors.Wrapf(err, "parse %q", x)
		}
		return d, true, nil
	case int:
		return decimal.NewFromInt(int64(x)), true, nil
	case int32:
		return decimal.NewFromInt32(x), true, nil
	case int64:
		return decimal.NewFromInt(x), true, nil
	case uint:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(x)), 0), true, nil
	case uint32:
		return decimal.NewFromInt(int64(x)), true, nil
	case uint64:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(x), 0), true, nil
	case float32:
		return fromFloat(float64(x))
	case float64:
		return fromFloat(x)
	}
	return decimal.Decimal{}, false, errors.Errorf("unsupported type %T", v)
}

func fromFloat(f float64) (decimal.Decimal, bool, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Decimal{}, false, errors.Errorf("non-finite float %v", f)
	}
	return decimal.NewFromFloat(f), true, nil
}

func render(d decimal.Decimal, o Options) string {
	suffix := ""
	if o.Compact {
		d, suffix = compact(d, o)
	}
	d = fixedpoint.RoundDecimal(d, o.Precision, o.Rounding)
	s := d.StringFixed(int32(o.Precision))
	if o.Trim && strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	if o.Grouping {
		s = group(s)
	}
	return s + suffix
}

// compact divides d by the largest unit it reaches.
// The unit is chosen after rounding, so 999.999 becomes 1.00K and
// 999999.999 becomes 1.00M, not 1000.00K.
func compact(d decimal.Decimal, o Options) (decimal.Decimal, string) {
	abs := d.Abs()
	i := len(compactUnits)
	for k, u := range compactUnits {
		if !abs.LessThan(decimal.New(1, u.exp)) {
			i = k
			break
		}
	}
	var exp int32
	if i < len(compactUnits) {
		exp = compactUnits[i].exp
	}
	if i > 0 {
		larger := compactUnits[i-1]
		rounded := fixedpoint.RoundDecimal(abs.Shift(-exp), o.Precision, o.Rounding)
		if rounded.GreaterThanOrEqual(decimal.New(1, larger.exp-exp)) {
			return d.Shift(-larger.exp), larger.suffix
		}
	}
	if i == len(compactUnits) {
		return d, ""
	}
	return d.Shift(-exp), compactUnits[i].suffix
}

// group inserts thousands separators into the integer part of s.
func group(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")
	n, ok := new(big.Int).SetString(intPart, 10)
	if !ok {
		return sign + s
	}
	out := sign + humanize.BigComma(n)
	if hasFrac {
		out += "." + frac
	}
	return out
}
