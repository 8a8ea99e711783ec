// Copyright 2021 Contributors to the MoMo provisioner project.
// SPDX-License-Identifier: Apache-2.0

package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ClearToken is the answer that submits an empty value.
const ClearToken = "-"

// Prompter is the interactive I/O port.
type Prompter interface {
	Ask(question, def string) (string, error)
	Confirm(question string, def bool) (bool, error)
	Info(msg string)
	Warn(msg string)
	Error(msg string)
}

type styles struct {
	question lipgloss.Style
	def      lipgloss.Style
	info     lipgloss.Style
	warn     lipgloss.Style
	err      lipgloss.Style
}

// Terminal is a line oriented Prompter.
type Terminal struct {
	in     *bufio.Reader
	out    io.Writer
	styles styles
}

// NewTerminal creates a Terminal reading answers from in and writing prompts
// and messages to out. Colors are only emitted when out is a terminal.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	r := lipgloss.NewRenderer(out)

	return &Terminal{
		in:  bufio.NewReader(in),
		out: out,
		styles: styles{
			question: r.NewStyle().Foreground(lipgloss.Color("#10B981")),
			def:      r.NewStyle().Foreground(lipgloss.Color("#F59E0B")),
			info:     r.NewStyle(),
			warn:     r.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true),
			err:      r.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true),
		},
	}
}

func (o *Terminal) Ask(question, def string) (string, error) {
	q := o.styles.question.Render(question)
	if def != "" {
		q += " [" + o.styles.def.Render(def) + "]"
	}
	fmt.Fprintf(o.out, "%s:\n > ", q)

	line, err := o.readLine()
	if err != nil {
		return "", err
	}

	switch line {
	case "":
		return def, nil
	case ClearToken:
		return "", nil
	default:
		return line, nil
	}
}

func (o *Terminal) Confirm(question string, def bool) (bool, error) {
	d := "no"
	if def {
		d = "yes"
	}

	for {
		fmt.Fprintf(o.out, "%s (yes/no) [%s]:\n > ",
			o.styles.question.Render(question), o.styles.def.Render(d))

		line, err := o.readLine()
		if err != nil {
			return false, err
		}

		switch strings.ToLower(line) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}

		o.Warn("Please answer yes or no.")
	}
}

func (o *Terminal) Info(msg string) {
	fmt.Fprintln(o.out, o.styles.info.Render(msg))
}

func (o *Terminal) Warn(msg string) {
	fmt.Fprintln(o.out, o.styles.warn.Render(msg))
}

func (o *Terminal) Error(msg string) {
	fmt.Fprintln(o.out, o.styles.err.Render(msg))
}

// readLine returns the next trimmed line. A final line without a newline is
// still returned; io.EOF is only reported once nothing is left.
func (o *Terminal) readLine() (string, error) {
	line, err := o.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", fmt.Errorf("reading answer: %w", err)
	}

	return strings.TrimSpace(line), nil
}
