package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter asks questions on a line-oriented terminal
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// New creates a Prompter reading from in and writing prompts to out
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

func (p *Prompter) readLine() (string, error) {
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return p.scanner.Text(), nil
}

// AskURL keeps asking until valid accepts the (trimmed) answer.
// It returns io.EOF when input ends.
func (p *Prompter) AskURL(question, retry string, valid func(string) bool) (string, error) {
	for {
		fmt.Fprintln(p.out, question)
		line, err := p.readLine()
		if err != nil {
			return "", err
		}

		url := strings.TrimSpace(line)
		if valid(url) {
			return url, nil
		}
		fmt.Fprintln(p.out, retry)
	}
}

// AskYesNo keeps asking until the answer is y or n (case-insensitive)
func (p *Prompter) AskYesNo(question string) (bool, error) {
	for {
		fmt.Fprintf(p.out, "%s (y/n): ", question)
		line, err := p.readLine()
		if err != nil {
			return false, err
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y":
			return true, nil
		case "n":
			return false, nil
		}
		fmt.Fprintln(p.out, "Please answer y or n.")
	}
}
