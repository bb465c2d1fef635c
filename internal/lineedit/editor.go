// Package lineedit reads logical input lines from a raw-mode terminal.
// Normal line discipline is unavailable in raw mode, so echo, backspace,
// Ctrl-C, arrow keys, and history recall are reimplemented on top of a
// byte-level state machine (see fsm.go).
package lineedit

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Editor produces one completed line per ReadLine call and owns the
// command history. Raw mode is a scoped resource: it is acquired on
// entry to ReadLine and restored on every way out.
type Editor struct {
	reader   *bufio.Reader
	out      io.Writer
	history  *History
	enterRaw func() (restore func(), err error)
}

// New builds an editor over the given input file. When the input is a
// real terminal, lines are edited in raw mode with arrow-key support;
// piped or redirected input degrades to plain buffered reads.
func New(in *os.File, out io.Writer, history *History) *Editor {
	e := &Editor{reader: bufio.NewReader(in), out: out, history: history}
	fd := int(in.Fd())
	if term.IsTerminal(fd) {
		e.enterRaw = func() (func(), error) {
			old, err := term.MakeRaw(fd)
			if err != nil {
				return nil, err
			}
			return func() { term.Restore(fd, old) }, nil
		}
	}
	return e
}

// History exposes the editor's scrollback
func (e *Editor) History() *History {
	return e.history
}

// ReadLine blocks until one line is submitted. Ctrl-C aborts the line
// and returns ("", nil); end of input returns io.EOF. The terminal is
// back in cooked mode by the time ReadLine returns, whatever the path.
func (e *Editor) ReadLine(prompt string) (string, error) {
	if e.enterRaw == nil {
		return e.readPlain(prompt)
	}
	restore, err := e.enterRaw()
	if err != nil {
		// Could not switch the terminal; plain reads still work
		return e.readPlain(prompt)
	}
	defer restore()
	return e.readRaw(prompt)
}

func (e *Editor) readPlain(prompt string) (string, error) {
	fmt.Fprint(e.out, prompt)
	line, err := e.reader.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if err != nil && line == "" {
		return "", err
	}
	if strings.TrimSpace(line) != "" {
		e.history.Append(line)
	}
	return line, nil
}

func (e *Editor) readRaw(prompt string) (string, error) {
	fmt.Fprint(e.out, prompt)
	var buf []byte
	cursor := 0
	st := stateNormal

	for {
		b, err := e.reader.ReadByte()
		if err != nil {
			fmt.Fprint(e.out, "\r\n")
			return "", io.EOF
		}

		tr := transitions[st][classify(b)]
		st = tr.next

		switch tr.act {
		case actSubmit:
			fmt.Fprint(e.out, "\r\n")
			line := string(buf)
			if strings.TrimSpace(line) != "" {
				e.history.Append(line)
			}
			return line, nil

		case actAbort:
			fmt.Fprint(e.out, "^C\r\n")
			return "", nil

		case actInsert:
			prev := len(buf)
			buf = append(buf[:cursor], append([]byte{b}, buf[cursor:]...)...)
			cursor++
			e.render(prompt, buf, cursor, prev)

		case actErase:
			if cursor > 0 {
				prev := len(buf)
				buf = append(buf[:cursor-1], buf[cursor:]...)
				cursor--
				e.render(prompt, buf, cursor, prev)
			}

		case actHistPrev:
			// Single-level recall: only when the buffer is not already
			// showing the most recent entry
			if last, ok := e.history.Last(); ok && string(buf) != last {
				prev := len(buf)
				buf = []byte(last)
				cursor = len(buf)
				e.render(prompt, buf, cursor, prev)
			}

		case actHistClear:
			if len(buf) > 0 {
				prev := len(buf)
				buf = nil
				cursor = 0
				e.render(prompt, buf, cursor, prev)
			}

		case actCursorRight:
			if cursor < len(buf) {
				cursor++
				fmt.Fprint(e.out, "\x1b[C")
			}

		case actCursorLeft:
			if cursor > 0 {
				cursor--
				fmt.Fprint(e.out, "\x1b[D")
			}
		}
	}
}

// render repaints the whole line: wipe the widest content this line has
// shown, reprint prompt and buffer, then walk the terminal cursor back
// so it sits at the logical cursor column.
func (e *Editor) render(prompt string, buf []byte, cursor, prevLen int) {
	width := len(prompt) + len(buf)
	if w := len(prompt) + prevLen; w > width {
		width = w
	}
	fmt.Fprintf(e.out, "\r%s\r%s%s", strings.Repeat(" ", width), prompt, buf)
	for i := len(buf); i > cursor; i-- {
		fmt.Fprint(e.out, "\x1b[D")
	}
}
