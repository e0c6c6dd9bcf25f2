// Command xenutil inspects fractions and their prime decompositions.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/xenharmonic-devs/xen-dev-utils-sub000/fraction"
	"github.com/xenharmonic-devs/xen-dev-utils-sub000/monzo"
)

const version = "0.1.0"

// CLI defines the command-line interface for xenutil.
type CLI struct {
	// Global flags
	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error)" default:"warn" env:"XENUTIL_LOG_LEVEL" enum:"debug,info,warn,error"`
	LogFormat string `name:"log-format" help:"Log format (text, json)" default:"text" env:"XENUTIL_LOG_FORMAT" enum:"text,json"`

	Parse   ParseCmd   `cmd:"" help:"Parse a fraction and print its representations"`
	Monzo   MonzoCmd   `cmd:"" help:"Print the prime exponent vector of a fraction"`
	Factor  FactorCmd  `cmd:"" help:"Print the prime factorization of an integer"`
	Limit   LimitCmd   `cmd:"" help:"Print the prime limit of a fraction"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// ParseCmd prints a fraction in several notations.
type ParseCmd struct {
	Value      string `arg:"" help:"Fraction such as 3/2, 1.25 or 0.1'6'"`
	CycleLimit int    `name:"cycle-limit" help:"Longest repeating decimal cycle to search for" default:"2000" env:"XENUTIL_CYCLE_LIMIT"`
	Decimal    bool   `help:"Also print the value as a rounded decimal"`
}

func (c *ParseCmd) Run(ctx *kong.Context, logger *slog.Logger) error {
	f, err := fraction.Parse(c.Value)
	if err != nil {
		return err
	}
	logger.Debug("parsed fraction", "input", c.Value, "ratio", f.RatString())

	s, exact := f.RepeatingString(c.CycleLimit)
	if !exact {
		logger.Info("decimal representation truncated", "cycle_limit", c.CycleLimit)
	}
	fmt.Fprintf(ctx.Stdout, "%-10s %s\n", "decimal:", s)
	fmt.Fprintf(ctx.Stdout, "%-10s %r\n", "ratio:", f)
	fmt.Fprintf(ctx.Stdout, "%-10s %g\n", "float:", f)
	fmt.Fprintf(ctx.Stdout, "%-10s %v\n", "continued:", f.ToContinued())
	if c.Decimal {
		d, err := f.Decimal()
		if err != nil {
			return err
		}
		fmt.Fprintf(ctx.Stdout, "%-10s %v\n", "rounded:", d.Trim(0))
	}
	return nil
}

// MonzoCmd prints the monzo of a fraction.
type MonzoCmd struct {
	Value string `arg:"" help:"Positive fraction"`
	Limit int    `help:"Number of primes to use, the rest is printed as a residual"`
}

func (c *MonzoCmd) Run(ctx *kong.Context, logger *slog.Logger) error {
	f, err := fraction.Parse(c.Value)
	if err != nil {
		return err
	}
	if c.Limit == 0 {
		m, err := monzo.FromFraction(f)
		if err != nil {
			return err
		}
		logger.Debug("converted fraction", "input", c.Value, "components", len(m))
		fmt.Fprintln(ctx.Stdout, m)
		return nil
	}
	m, r, err := monzo.FromFractionWithResidual(f, c.Limit)
	if err != nil {
		return err
	}
	logger.Debug("converted fraction", "input", c.Value, "limit", c.Limit, "residual", r.RatString())
	fmt.Fprintln(ctx.Stdout, m)
	fmt.Fprintf(ctx.Stdout, "residual: %r\n", r)
	return nil
}

// FactorCmd prints the prime factorization of a positive integer.
type FactorCmd struct {
	Value string `arg:"" help:"Positive integer of any size"`
}

func (c *FactorCmd) Run(ctx *kong.Context, logger *slog.Logger) error {
	n, ok := new(big.Int).SetString(c.Value, 10)
	if !ok {
		return fmt.Errorf("invalid integer %q", c.Value)
	}
	fs, err := monzo.FactorizeBig(n)
	if err != nil {
		return err
	}
	logger.Debug("factorized integer", "input", c.Value, "factors", len(fs))

	terms := make([]string, len(fs))
	for i, f := range fs {
		if f.Power == 1 {
			terms[i] = f.Prime.String()
		} else {
			terms[i] = fmt.Sprintf("%v^%d", f.Prime, f.Power)
		}
	}
	if len(terms) == 0 {
		terms = append(terms, "1")
	}
	fmt.Fprintf(ctx.Stdout, "%v = %s\n", n, strings.Join(terms, " * "))
	return nil
}

// LimitCmd prints the prime limit of a fraction.
type LimitCmd struct {
	Value   string `arg:"" help:"Positive fraction"`
	Ordinal bool   `help:"Print the index of the prime instead of the prime"`
	Max     uint64 `help:"Largest prime limit to consider, 0 for the whole prime table"`
}

func (c *LimitCmd) Run(ctx *kong.Context, logger *slog.Logger) error {
	f, err := fraction.Parse(c.Value)
	if err != nil {
		return err
	}
	l, err := monzo.PrimeLimit(f, c.Ordinal, c.Max)
	if err != nil {
		return err
	}
	logger.Debug("computed prime limit", "input", c.Value, "ordinal", c.Ordinal, "max", c.Max)
	if l == monzo.Unbounded {
		fmt.Fprintln(ctx.Stdout, "unbounded")
		return nil
	}
	fmt.Fprintln(ctx.Stdout, l)
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(ctx *kong.Context) error {
	fmt.Fprintf(ctx.Stdout, "xenutil %s\n", version)
	return nil
}

// run parses args, executes the selected command and logs its failure.
func run(args []string, stdout, stderr io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("xenutil"),
		kong.Description("Exact fractions and prime exponent vectors"),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	if err != nil {
		return err
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := newLogger(stderr, parseLevel(cli.LogLevel), parseFormat(cli.LogFormat))
	if err := ctx.Run(logger); err != nil {
		logger.Error("command failed", "command", ctx.Command(), "error", err)
		return err
	}
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "xenutil: %v\n", err)
		os.Exit(1)
	}
}
