package gcode

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Program is an ordered sequence of commands; the order is the execution
// order.
type Program struct {
	cmds []*Command
}

func NewProgram(cmds ...*Command) *Program {
	return &Program{cmds: cmds}
}

func (p *Program) Len() int { return len(p.cmds) }

func (p *Program) At(i int) *Command { return p.cmds[i] }

// Commands returns the commands of the program. The slice must not be
// modified.
func (p *Program) Commands() []*Command { return p.cmds }

func (p *Program) Append(c ...*Command) { p.cmds = append(p.cmds, c...) }

// AppendLine parses line and appends the result unless it is empty.
func (p *Program) AppendLine(line string) {
	if c := Parse(line); !c.Empty() {
		p.cmds = append(p.cmds, c)
	}
}

func (p *Program) Reset() { p.cmds = nil }

// Read reads a program with one command per line. Blank lines and lines
// without a recognised word are dropped.
func Read(r io.Reader) (*Program, error) {
	p := new(Program)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		p.AppendLine(line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("gcode: read: %w", err)
	}
	return p, nil
}

// WriteTo writes the canonical text of every command, one per line.
func (p *Program) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, c := range p.cmds {
		m, err := bw.WriteString(c.String() + "\n")
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// String returns the program text.
func (p *Program) String() string {
	var b strings.Builder
	p.WriteTo(&b)
	return b.String()
}

// LoadFile reads the program stored at path. A missing or unreadable file
// yields an empty program.
func LoadFile(path string) *Program {
	start := time.Now()
	f, err := os.Open(path)
	if err != nil {
		slog.Warn("load program", "path", path, "err", err)
		return new(Program)
	}
	defer f.Close()
	p, err := Read(f)
	if err != nil {
		slog.Warn("load program", "path", path, "err", err)
		return new(Program)
	}
	slog.Debug("program loaded", "path", path, "commands", p.Len(), "elapsed", time.Since(start))
	return p
}

// SaveFile writes the program to path. Failures are logged and returned.
func (p *Program) SaveFile(path string) error {
	err := p.saveFile(path)
	if err != nil {
		slog.Error("save program", "path", path, "err", err)
	}
	return err
}

func (p *Program) saveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := p.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
