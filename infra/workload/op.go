package workload

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// OpKind names one tree operation.
type OpKind uint8

const (
	OpInsert OpKind = iota
	OpErase
	OpFind
	OpMin
	OpMax
	OpExport
	OpVerify
	OpClear
)

var opNames = [...]string{
	OpInsert: "insert",
	OpErase:  "erase",
	OpFind:   "find",
	OpMin:    "min",
	OpMax:    "max",
	OpExport: "export",
	OpVerify: "verify",
	OpClear:  "clear",
}

func (k OpKind) String() string {
	if int(k) < len(opNames) {
		return opNames[k]
	}
	return "op(" + strconv.Itoa(int(k)) + ")"
}

// Mutating reports whether the op can change the tree's structure.
func (k OpKind) Mutating() bool {
	return k == OpInsert || k == OpErase || k == OpClear
}

// takesKeys reports whether the op requires at least one key argument.
func (k OpKind) takesKeys() bool {
	return k == OpInsert || k == OpErase || k == OpFind
}

// Op is one parsed operation. Line is the 1-based script line, or 0 for
// generated ops.
type Op struct {
	Kind OpKind
	Keys []int64
	Line int
}

// ErrSyntax marks malformed script lines.
var ErrSyntax = errors.New("workload: syntax error")

// ParseScript reads ops from r. Blank lines and '#' comments are skipped.
func ParseScript(r io.Reader) ([]Op, error) {
	var ops []Op
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		op, err := parseOp(fields)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		op.Line = line
		ops = append(ops, op)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read script")
	}
	return ops, nil
}

// ParseFile parses the script at path.
func ParseFile(path string) ([]Op, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open script")
	}
	defer f.Close()

	ops, err := ParseScript(f)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return ops, nil
}

func parseOp(fields []string) (Op, error) {
	verb := strings.ToLower(fields[0])
	kind := OpKind(255)
	for k, name := range opNames {
		if name == verb {
			kind = OpKind(k)
			break
		}
	}
	if kind == 255 {
		return Op{}, errors.Wrapf(ErrSyntax, "unknown operation %q", fields[0])
	}

	args := fields[1:]
	switch {
	case kind.takesKeys() && len(args) == 0:
		return Op{}, errors.Wrapf(ErrSyntax, "%s needs at least one key", kind)
	case !kind.takesKeys() && len(args) > 0:
		return Op{}, errors.Wrapf(ErrSyntax, "%s takes no arguments", kind)
	}

	op := Op{Kind: kind}
	if len(args) > 0 {
		op.Keys = make([]int64, 0, len(args))
	}
	for _, a := range args {
		k, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return Op{}, errors.Wrapf(ErrSyntax, "bad key %q", a)
		}
		op.Keys = append(op.Keys, k)
	}
	return op, nil
}

// FormatScript writes ops back in script form.
func FormatScript(w io.Writer, ops []Op) error {
	bw := bufio.NewWriter(w)
	for _, op := range ops {
		bw.WriteString(op.Kind.String())
		for _, k := range op.Keys {
			bw.WriteByte(' ')
			bw.WriteString(strconv.FormatInt(k, 10))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
