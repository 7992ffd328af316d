package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
)

// Prompter asks the operator a question and returns one line of input. It
// returns io.EOF when no more input is available.
type Prompter interface {
	Prompt(question string) (string, error)
}

// Readline prompts on a terminal through chzyer/readline. The readline
// instance is created on first use so runs without prompts never touch the
// terminal.
type Readline struct {
	In  io.ReadCloser
	Out io.Writer
	rl  *readline.Instance
}

// Prompt implements Prompter.
func (p *Readline) Prompt(question string) (string, error) {
	if p.rl == nil {
		rl, err := readline.NewEx(&readline.Config{
			Prompt:          question,
			Stdin:           p.In,
			Stdout:          p.Out,
			InterruptPrompt: "^C",
			EOFPrompt:       "n",
		})
		if err != nil {
			return "", err
		}
		p.rl = rl
	}
	p.rl.SetPrompt(question)
	// readline only draws the prompt and echoes input on a terminal.
	echo := p.Out != nil && !p.terminal()
	if echo {
		fmt.Fprint(p.Out, question)
	}
	line, err := p.rl.Readline()
	if echo {
		fmt.Fprintln(p.Out)
	}
	if err != nil {
		if errors.Is(err, readline.ErrInterrupt) {
			return "", io.EOF
		}
		return "", err
	}
	return line, nil
}

func (p *Readline) terminal() bool {
	f, ok := p.In.(*os.File)
	return ok && readline.IsTerminal(int(f.Fd()))
}

// Close releases the terminal.
func (p *Readline) Close() error {
	if p.rl == nil {
		return nil
	}
	return p.rl.Close()
}

// Answer is a normalized reply to a yes/no question.
type Answer int

const (
	Unrecognized Answer = iota
	Yes
	No
)

// ParseAnswer normalizes a reply: y/yes and n/no in any case, surrounding
// whitespace ignored.
func ParseAnswer(s string) Answer {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return Yes
	case "n", "no":
		return No
	default:
		return Unrecognized
	}
}

// Confirm asks question until the reply is yes or no. End of input counts as
// no.
func Confirm(p Prompter, question string) (bool, error) {
	for {
		line, err := p.Prompt(question)
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		switch ParseAnswer(line) {
		case Yes:
			return true, nil
		case No:
			return false, nil
		}
	}
}
