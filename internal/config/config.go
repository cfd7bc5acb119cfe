// Package config loads display settings and share classes from YAML.
package config

import (
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/rwapools/fixedpoint"
	"github.com/rwapools/fixedpoint/format"
	"github.com/rwapools/fixedpoint/quote"
	"github.com/rwapools/fixedpoint/schema"
)

// Environment variables overriding the display section.
const (
	EnvPrecision = "FIXEDPOINT_PRECISION"
	EnvRounding  = "FIXEDPOINT_ROUNDING"
	EnvCompact   = "FIXEDPOINT_COMPACT"
	EnvGrouping  = "FIXEDPOINT_GROUPING"
)

// Config is a parsed configuration file.
type Config struct {
	Display      Display
	ShareClasses []ShareClass
}

// Display holds the default formatting options.
type Display struct {
	Precision int
	Grouping  bool
	Compact   bool
	Trim      bool
	Rounding  fixedpoint.RoundingMode
}

// ShareClass is a quote.ShareClass with optional deposit bounds.
// Bounds are nil when not configured.
type ShareClass struct {
	quote.ShareClass
	MinDeposit *fixedpoint.Balance
	MaxDeposit *fixedpoint.Balance
}

// ConfigTmp is the YAML layout, amounts are kept as strings until parsed.
type ConfigTmp struct {
	Display      DisplayTmp      `yaml:"display"`
	ShareClasses []ShareClassTmp `yaml:"share_classes"`
}

// DisplayTmp is the YAML layout of the display section.
// A nil Precision keeps format.DefaultPrecision.
type DisplayTmp struct {
	Precision *int   `yaml:"precision,omitempty"`
	Grouping  bool   `yaml:"grouping,omitempty"`
	Compact   bool   `yaml:"compact,omitempty"`
	Trim      bool   `yaml:"trim,omitempty"`
	Rounding  string `yaml:"rounding,omitempty"`
}

// ShareClassTmp is the YAML layout of a share class, amounts are strings.
type ShareClassTmp struct {
	Name          string `yaml:"name"`
	AssetSymbol   string `yaml:"asset_symbol"`
	AssetDecimals int    `yaml:"asset_decimals"`
	ShareDecimals int    `yaml:"share_decimals"`
	Price         string `yaml:"price"`
	MinDeposit    string `yaml:"min_deposit,omitempty"`
	MaxDeposit    string `yaml:"max_deposit,omitempty"`
}

// Load reads the YAML file at path, applies environment overrides and
// parses every amount.
// Variables from envFiles are loaded first, missing files are skipped.
func Load(path string, envFiles ...string) (Config, error) {
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, errors.Wrapf(err, "load env file %s", file)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config")
	}
	return Parse(data)
}

// Parse is like Load but takes the YAML document itself.
// Environment overrides still apply.
func Parse(data []byte) (Config, error) {
	var tmp ConfigTmp
	if err := yaml.Unmarshal(data, &tmp); err != nil {
		return Config{}, errors.Wrap(err, "decode yaml config")
	}
	if err := tmp.Display.applyEnv(); err != nil {
		return Config{}, err
	}
	return tmp.parse()
}

func (d *DisplayTmp) applyEnv() error {
	if v, ok := os.LookupEnv(EnvPrecision); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "incorrect %s", EnvPrecision)
		}
		d.Precision = &n
	}
	if v, ok := os.LookupEnv(EnvRounding); ok {
		d.Rounding = v
	}
	for name, dst := range map[string]*bool{EnvCompact: &d.Compact, EnvGrouping: &d.Grouping} {
		v, ok := os.LookupEnv(name)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrapf(err, "incorrect %s", name)
		}
		*dst = b
	}
	return nil
}

func (c ConfigTmp) parse() (Config, error) {
	display := Display{
		Precision: format.DefaultPrecision,
		Grouping:  c.Display.Grouping,
		Compact:   c.Display.Compact,
		Trim:      c.Display.Trim,
		Rounding:  fixedpoint.DefaultRounding,
	}
	if c.Display.Precision != nil {
		if *c.Display.Precision < 0 {
			return Config{}, errors.Errorf("incorrect 'precision' param in yaml config: %d", *c.Display.Precision)
		}
		display.Precision = *c.Display.Precision
	}
	if c.Display.Rounding != "" {
		mode, err := fixedpoint.ParseRoundingMode(c.Display.Rounding)
		if err != nil {
			return Config{}, errors.Wrap(err, "incorrect 'rounding' param in yaml config")
		}
		display.Rounding = mode
	}

	cfg := Config{Display: display}
	seen := make(map[string]bool, len(c.ShareClasses))
	for _, sc := range c.ShareClasses {
		class, err := sc.parse()
		if err != nil {
			return Config{}, errors.Wrapf(err, "share class %q", sc.Name)
		}
		if seen[class.Name] {
			return Config{}, errors.Errorf("duplicate share class %q", class.Name)
		}
		seen[class.Name] = true
		cfg.ShareClasses = append(cfg.ShareClasses, class)
	}
	return cfg, nil
}

func (s ShareClassTmp) parse() (ShareClass, error) {
	if s.Name == "" {
		return ShareClass{}, errors.New("'name' is required")
	}
	for param, d := range map[string]int{"asset_decimals": s.AssetDecimals, "share_decimals": s.ShareDecimals} {
		if d < 0 || d > fixedpoint.MaxDecimals {
			return ShareClass{}, errors.Errorf("incorrect '%s' param: %d", param, d)
		}
	}
	price, err := fixedpoint.ParsePrice(s.Price)
	if err != nil {
		return ShareClass{}, errors.Wrap(err, "incorrect 'price' param")
	}
	class := ShareClass{ShareClass: quote.ShareClass{
		Name:          s.Name,
		AssetSymbol:   s.AssetSymbol,
		AssetDecimals: s.AssetDecimals,
		ShareDecimals: s.ShareDecimals,
		Price:         price,
	}}
	if class.MinDeposit, err = s.bound(s.MinDeposit); err != nil {
		return ShareClass{}, errors.Wrap(err, "incorrect 'min_deposit' param")
	}
	if class.MaxDeposit, err = s.bound(s.MaxDeposit); err != nil {
		return ShareClass{}, errors.Wrap(err, "incorrect 'max_deposit' param")
	}
	if class.MinDeposit != nil && class.MaxDeposit != nil && class.MinDeposit.Gt(*class.MaxDeposit) {
		return ShareClass{}, errors.New("'min_deposit' is greater than 'max_deposit'")
	}
	return class, nil
}

func (s ShareClassTmp) bound(v string) (*fixedpoint.Balance, error) {
	if v == "" {
		return nil, nil
	}
	b, err := fixedpoint.ParseBalance(v, s.AssetDecimals)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Class returns the share class with the given name.
func (c Config) Class(name string) (ShareClass, error) {
	for _, sc := range c.ShareClasses {
		if sc.Name == name {
			return sc, nil
		}
	}
	return ShareClass{}, errors.Errorf("unknown share class %q", name)
}

// Options converts the display section into format options.
func (d Display) Options() []format.Option {
	opts := []format.Option{format.WithPrecision(d.Precision), format.WithRounding(d.Rounding)}
	if d.Grouping {
		opts = append(opts, format.WithGrouping())
	}
	if d.Compact {
		opts = append(opts, format.WithCompact())
	}
	if d.Trim {
		opts = append(opts, format.WithTrim())
	}
	return opts
}

// DepositField returns the schema of the deposit input of the class.
func (s ShareClass) DepositField() schema.BalanceField {
	f := schema.BalanceField{Name: "deposit", Decimals: s.AssetDecimals}
	if s.MinDeposit != nil {
		f.Min = *s.MinDeposit
	}
	if s.MaxDeposit != nil {
		f.Max = *s.MaxDeposit
	}
	return f
}
