package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rwapools/fixedpoint"
	"github.com/rwapools/fixedpoint/internal/config"
)

const pools = `
share_classes:
  - name: senior
    asset_symbol: USDC
    asset_decimals: 6
    share_decimals: 18
    price: "1.05"
    min_deposit: "1.5"
`

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(args, &out, zap.NewNop())
	return out.String(), err
}

func poolsFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pools.yaml")
	require.NoError(t, os.WriteFile(path, []byte(pools), 0o600))
	return path
}

// unsetEnv keeps display overrides from the environment out of the output.
func unsetEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{config.EnvPrecision, config.EnvRounding, config.EnvCompact, config.EnvGrouping} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

func TestRun(t *testing.T) {
	_, err := runCmd(t)
	assert.ErrorContains(t, err, "usage: fixedpoint <convert|format|invest|quote>")

	_, err = runCmd(t, "burn")
	assert.ErrorContains(t, err, `unknown command "burn"`)
}

func TestConvert(t *testing.T) {
	out, err := runCmd(t, "convert", "-decimals", "6", "1.25")
	require.NoError(t, err)
	assert.Equal(t, "raw     1250000\nhex     0x1312d0\nbalance 1.250000\n", out)

	out, err = runCmd(t, "convert", "-decimals", "2", "-rounding", "down", "1.129")
	require.NoError(t, err)
	assert.Contains(t, out, "raw     112\n")

	_, err = runCmd(t, "convert", "-decimals", "2", "0.0001")
	assert.ErrorIs(t, err, fixedpoint.ErrUnderflow)

	_, err = runCmd(t, "convert", "abc")
	assert.ErrorIs(t, err, fixedpoint.ErrInvalidAmount)

	_, err = runCmd(t, "convert", "-rounding", "sideways", "1")
	assert.ErrorContains(t, err, "unknown rounding mode")

	_, err = runCmd(t, "convert", "1", "2")
	assert.ErrorContains(t, err, "exactly one VALUE")
}

func TestFormat(t *testing.T) {
	unsetEnv(t)
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"-compact", "1234000000000000000000"}, "1.23K\n"},
		{[]string{"-decimals", "6", "-grouping", "1234567890000"}, "1,234,567.89\n"},
		{[]string{"-decimals", "6", "-trim", "0x16e360"}, "1.5\n"},
		{[]string{"-percent", "52500000000000000"}, "5.25%\n"},
		{[]string{"-decimals", "0", "-precision", "0", "42"}, "42\n"},
	}
	for _, tt := range tests {
		out, err := runCmd(t, append([]string{"format"}, tt.args...)...)
		require.NoError(t, err, "format %v", tt.args)
		assert.Equal(t, tt.want, out, "format %v", tt.args)
	}

	_, err := runCmd(t, "format", "1.5")
	assert.ErrorIs(t, err, fixedpoint.ErrInvalidAmount)
}

func TestQuote(t *testing.T) {
	unsetEnv(t)
	path := poolsFile(t)

	out, err := runCmd(t, "quote", "-config", path, "-class", "senior", "-deposit", "105")
	require.NoError(t, err)
	assert.Contains(t, out, "DEPOSIT senior")
	assert.Contains(t, out, "105.00")
	assert.Contains(t, out, "100.00")
	assert.Contains(t, out, "senior shares")
	assert.Contains(t, out, "1.05")

	out, err = runCmd(t, "quote", "-config", path, "-class", "senior", "-redeem", "200")
	require.NoError(t, err)
	assert.Contains(t, out, "REDEEM senior")
	assert.Contains(t, out, "210.00")

	_, err = runCmd(t, "quote", "-config", path, "-class", "senior", "-deposit", "1")
	assert.EqualError(t, err, "deposit must be at least 1.5")

	_, err = runCmd(t, "quote", "-config", path, "-class", "junior", "-deposit", "10")
	assert.ErrorContains(t, err, `unknown share class "junior"`)

	_, err = runCmd(t, "quote", "-config", path, "-class", "senior")
	assert.ErrorContains(t, err, "exactly one of -deposit and -redeem")
}

func TestDepositValidator(t *testing.T) {
	unsetEnv(t)
	cfg, err := config.Parse([]byte(pools))
	require.NoError(t, err)

	name := "senior"
	validate := depositValidator(cfg, &name)
	assert.NoError(t, validate("2"))
	assert.EqualError(t, validate("1"), "deposit must be at least 1.5")
	assert.EqualError(t, validate("lots"), "deposit must be a number")

	name = "junior"
	assert.ErrorContains(t, validate("2"), "unknown share class")
}
