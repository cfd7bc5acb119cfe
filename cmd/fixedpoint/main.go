// Command fixedpoint converts, formats and quotes token amounts.
//
// Usage:
//
//	fixedpoint convert -decimals 6 1.25
//	fixedpoint format -decimals 18 -compact 1234000000000000000000
//	fixedpoint quote -config pools.yaml -class senior -deposit 100
//	fixedpoint invest -config pools.yaml
//
// Environment variables FIXEDPOINT_PRECISION, FIXEDPOINT_ROUNDING,
// FIXEDPOINT_COMPACT and FIXEDPOINT_GROUPING override the display section
// of the config, they may also be set in a .env file.
package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type command func(args []string, out io.Writer, logger *zap.Logger) error

var commands = map[string]command{
	"convert": runConvert,
	"format":  runFormat,
	"quote":   runQuote,
	"invest":  runInvest,
}

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if err := run(os.Args[1:], os.Stdout, logger); err != nil {
		logger.Fatal("command failed", zap.Error(err))
	}
}

func run(args []string, out io.Writer, logger *zap.Logger) error {
	if len(args) == 0 {
		return errors.New(usage())
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return errors.Errorf("unknown command %q, %s", args[0], usage())
	}
	return cmd(args[1:], out, logger)
}

func usage() string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("usage: fixedpoint <%s> [flags]", strings.Join(names, "|"))
}
