package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidInteger is returned by ParseInt for anything but a 32-bit integer.
	ErrInvalidInteger = errors.New("not a valid integer")
	// ErrInvalidDecimal is returned by ParseDecimal for anything but a decimal number.
	ErrInvalidDecimal = errors.New("not a valid decimal number")
	// ErrInputClosed signals that the input stream ended before a value was read.
	ErrInputClosed = errors.New("input closed")
)

// ParseInt parses a trimmed base-10 integer in the range of the INTEGER column type.
func ParseInt(s string) (int, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidInteger, s)
	}
	return int(v), nil
}

// maxDecimalExponent bounds the exponent ParseDecimal accepts, so rounding
// and formatting never expand a value like 1e2000000.
const maxDecimalExponent = 32

// maxPrice is the first magnitude a DECIMAL(10,2) column cannot hold.
var maxPrice = decimal.New(1, 8)

// ParseDecimal parses a trimmed decimal number such as "2.50" or "-1e2".
// Values a DECIMAL(10,2) column cannot hold are rejected.
func ParseDecimal(s string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return decimal.Zero, fmt.Errorf("%w: empty input", ErrInvalidDecimal)
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidDecimal, s)
	}
	if exp := d.Exponent(); exp > maxDecimalExponent || exp < -maxDecimalExponent {
		return decimal.Zero, fmt.Errorf("%w: %q is out of range", ErrInvalidDecimal, s)
	}
	if d.Abs().Round(2).GreaterThanOrEqual(maxPrice) {
		return decimal.Zero, fmt.Errorf("%w: %q is out of range", ErrInvalidDecimal, s)
	}
	return d, nil
}

// prompter reads one line per prompt and re-prompts until a value parses.
// Lines have no length limit; an oversized paste is just another invalid value.
type prompter struct {
	reader  *bufio.Reader
	out     io.Writer
	readErr error
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{reader: bufio.NewReader(in), out: out}
}

func (p *prompter) readLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.reader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			p.readErr = err
			return "", ErrInputClosed
		}
		if line == "" {
			return "", ErrInputClosed
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (p *prompter) readInt(prompt string) (int, error) {
	for {
		line, err := p.readLine(prompt)
		if err != nil {
			return 0, err
		}
		if v, err := ParseInt(line); err == nil {
			return v, nil
		}
		fmt.Fprintln(p.out, "Please enter a valid integer.")
	}
}

func (p *prompter) readDecimal(prompt string) (decimal.Decimal, error) {
	for {
		line, err := p.readLine(prompt)
		if err != nil {
			return decimal.Zero, err
		}
		if v, err := ParseDecimal(line); err == nil {
			return v, nil
		}
		fmt.Fprintln(p.out, "Please enter a valid decimal number.")
	}
}

// err returns the underlying read failure, nil for a plain end of input.
func (p *prompter) err() error {
	return p.readErr
}

// form chains several reads and keeps the first error, so an operation can
// collect all of its inputs before checking once.
type form struct {
	p   *prompter
	err error
}

func (p *prompter) form() *form {
	return &form{p: p}
}

func (f *form) integer(prompt string) int {
	if f.err != nil {
		return 0
	}
	v, err := f.p.readInt(prompt)
	f.err = err
	return v
}

func (f *form) text(prompt string) string {
	if f.err != nil {
		return ""
	}
	v, err := f.p.readLine(prompt)
	f.err = err
	return strings.TrimSpace(v)
}

func (f *form) amount(prompt string) decimal.Decimal {
	if f.err != nil {
		return decimal.Zero
	}
	v, err := f.p.readDecimal(prompt)
	f.err = err
	return v
}
