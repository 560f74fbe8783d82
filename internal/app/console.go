package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Console is the I/O context handed to the menu and every form. It reads
// one line at a time and writes plain text.
type Console struct {
	in  *bufio.Scanner
	out io.Writer

	start sync.Once
	lines chan string
	err   error // set before lines is closed
}

func NewConsole(r io.Reader, w io.Writer) *Console {
	return &Console{in: bufio.NewScanner(r), out: w, lines: make(chan string)}
}

// pump scans on its own goroutine so a blocked read can be abandoned. It
// stays at most one line ahead of ReadLine.
func (c *Console) pump() {
	for c.in.Scan() {
		c.lines <- strings.TrimRight(c.in.Text(), "\r")
	}
	c.err = c.in.Err()
	if c.err == nil {
		c.err = io.EOF
	}
	close(c.lines)
}

// ReadLine returns the next line without its line terminator, io.EOF at end
// of input, or ctx.Err() if ctx is done first. A line still pending when ctx
// ends is returned by the next call.
func (c *Console) ReadLine(ctx context.Context) (string, error) {
	c.start.Do(func() { go c.pump() })
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-c.lines:
		if !ok {
			return "", c.err
		}
		return line, nil
	}
}

func (c *Console) Out() io.Writer { return c.out }

func (c *Console) Println(a ...any) { fmt.Fprintln(c.out, a...) }

func (c *Console) Printf(format string, a ...any) { fmt.Fprintf(c.out, format, a...) }
