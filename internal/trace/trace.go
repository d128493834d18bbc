// Package trace reads, writes and generates region traces: line-oriented
// scripts of region operations replayed against a tracker.
//
// One operation per line, fields separated by whitespace:
//
//	add <addr> <range> <approx>
//	lookup <addr>
//	remove <addr>
//	pop
//	min
//
// Addresses and ranges are decimal or 0x-prefixed hex. Blank lines and
// lines starting with # are ignored.
package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	rt "github.com/cbehopkins/regiontree"
)

var ErrSyntax = errors.New("syntax error")

// Kind names a trace operation.
type Kind uint8

const (
	Add Kind = iota + 1
	Lookup
	Remove
	Pop
	Min
)

var kindNames = map[Kind]string{
	Add:    "add",
	Lookup: "lookup",
	Remove: "remove",
	Pop:    "pop",
	Min:    "min",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Op is one trace line.
type Op struct {
	Kind   Kind
	Addr   rt.Addr
	Range  uint32
	Approx rt.ApproxType
	// Line is the 1-based source line, zero for generated ops.
	Line int
}

func (o Op) String() string {
	switch o.Kind {
	case Add:
		return fmt.Sprintf("add %s %#x %s", o.Addr, o.Range, o.Approx)
	case Lookup, Remove:
		return fmt.Sprintf("%s %s", o.Kind, o.Addr)
	}
	return o.Kind.String()
}

// ParseLine parses a single non-comment line.
func ParseLine(line string) (Op, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Op{}, fmt.Errorf("%w: empty line", ErrSyntax)
	}

	want := map[string]int{"add": 4, "lookup": 2, "remove": 2, "pop": 1, "min": 1}
	name := strings.ToLower(fields[0])
	n, ok := want[name]
	if !ok {
		return Op{}, fmt.Errorf("%w: unknown operation %q", ErrSyntax, fields[0])
	}
	if len(fields) != n {
		return Op{}, fmt.Errorf("%w: %s takes %d arguments, got %d", ErrSyntax, name, n-1, len(fields)-1)
	}

	var op Op
	switch name {
	case "add":
		op.Kind = Add
		size, err := strconv.ParseUint(fields[2], 0, 32)
		if err != nil {
			return Op{}, fmt.Errorf("%w: range %q: %v", ErrSyntax, fields[2], err)
		}
		op.Range = uint32(size)
		if op.Approx, err = rt.ParseApproxType(fields[3]); err != nil {
			return Op{}, fmt.Errorf("%w: %v", ErrSyntax, err)
		}
	case "lookup":
		op.Kind = Lookup
	case "remove":
		op.Kind = Remove
	case "pop":
		return Op{Kind: Pop}, nil
	case "min":
		return Op{Kind: Min}, nil
	}

	addr, err := strconv.ParseUint(fields[1], 0, 64)
	if err != nil {
		return Op{}, fmt.Errorf("%w: address %q: %v", ErrSyntax, fields[1], err)
	}
	op.Addr = rt.Addr(addr)
	return op, nil
}

// Parse reads a whole trace.
func Parse(r io.Reader) ([]Op, error) {
	var ops []Op
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		op, err := ParseLine(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		op.Line = line
		ops = append(ops, op)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading trace: %w", err)
	}
	return ops, nil
}

// Write emits ops in the format Parse reads.
func Write(w io.Writer, ops []Op) error {
	bw := bufio.NewWriter(w)
	for _, op := range ops {
		if _, err := fmt.Fprintln(bw, op); err != nil {
			return err
		}
	}
	return bw.Flush()
}
