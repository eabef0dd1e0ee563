package transpile

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultStartDelim opens a code section.
	DefaultStartDelim = "%{"
	// DefaultEndDelim closes a code section and returns to literal text.
	DefaultEndDelim = "}%"
)

// ErrUnterminated is returned when a template reaches end-of-file inside a
// code section. The error returned by Transpile wraps it together with the
// template name.
var ErrUnterminated = errors.New("unterminated code section")

// Options control a single transpilation.
type Options struct {
	// StartDelim and EndDelim override the code section delimiters.
	// Empty strings select the defaults.
	StartDelim string
	EndDelim   string

	// Suspend selects the suspension-aware calling convention: calls to
	// include( inside code sections are rewritten to await(include)( so the
	// generated procedure waits on each nested run. The rewrite is a plain
	// textual substitution over the code stream, so the sequence is also
	// rewritten inside string literals and comments.
	Suspend bool
}

const includeCall = "include("

const (
	stateWrite = iota
	stateCode
)

// Transpile scans src, the contents of the template identified by name, and
// returns the body of a Lua chunk whose statements alternate write('...')
// calls for literal spans with the template's own code sections. name is used
// for diagnostics only.
//
// The scan is a two-state machine starting in the literal (write) state.
// Literal characters are escaped so they survive as a single-quoted Lua
// string: backslash and quote get a leading backslash, a carriage return
// becomes the \r escape, and a newline becomes the \n escape followed by an
// actual line break (the literal continues as a concatenated string on the
// next line, keeping the generated source aligned line-for-line with the
// template for diagnostics). Code characters pass through untouched.
func Transpile(name, src string, opts Options) (string, error) {
	start := opts.StartDelim
	if start == "" {
		start = DefaultStartDelim
	}
	end := opts.EndDelim
	if end == "" {
		end = DefaultEndDelim
	}

	var b strings.Builder
	b.Grow(len(src) + len(src)/4)
	b.WriteString("-- seam:chunk\nwrite('")

	state := stateWrite
	for i := 0; i < len(src); {
		if state == stateWrite {
			if strings.HasPrefix(src[i:], start) {
				b.WriteString("');")
				state = stateCode
				i += len(start)
				continue
			}
			switch c := src[i]; c {
			case '\\':
				b.WriteString(`\\`)
			case '\'':
				b.WriteString(`\'`)
			case '\r':
				b.WriteString(`\r`)
			case '\n':
				b.WriteString("\\n' ..\n'")
			default:
				b.WriteByte(c)
			}
			i++
			continue
		}

		// code state
		if strings.HasPrefix(src[i:], end) {
			b.WriteString("write('")
			state = stateWrite
			i += len(end)
			continue
		}
		if opts.Suspend && strings.HasPrefix(src[i:], includeCall) {
			b.WriteString("await(include)(")
			i += len(includeCall)
			continue
		}
		b.WriteByte(src[i])
		i++
	}

	if state == stateCode {
		return "", fmt.Errorf("%s: %w", name, ErrUnterminated)
	}
	b.WriteString("');")
	return b.String(), nil
}
