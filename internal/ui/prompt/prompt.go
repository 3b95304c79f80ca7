// Package prompt implements validated line-oriented console questions.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/j-veylop/bikeshare-explorer/internal/ui/styles"
)

// Answer tokens accepted by Confirm.
var (
	yesAnswers = []string{"yes", "y"}
	noAnswers  = []string{"no", "n"}
)

// Prompter asks questions on out and reads answers from in, one per line.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// New creates a prompter reading from in and writing to out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// Choose asks question until the lower-cased, trimmed answer is one of options
// and returns it. After a rejected answer the question is repeated prefixed
// with "Invalid input, ". It returns io.EOF when input ends first.
func (p *Prompter) Choose(question string, options []string) (string, error) {
	retry := "Invalid input, " + strings.ToLower(question)

	answer, err := p.ask(styles.PromptStyle.Render(question))
	for err == nil && !slices.Contains(options, answer) {
		answer, err = p.ask(styles.ErrorTextStyle.Render(retry))
	}
	if err != nil {
		return "", err
	}
	return answer, nil
}

// Confirm asks a yes/no question and reports whether the answer was yes.
func (p *Prompter) Confirm(question string) (bool, error) {
	answer, err := p.Choose(question, slices.Concat(yesAnswers, noAnswers))
	if err != nil {
		return false, err
	}
	return slices.Contains(yesAnswers, answer), nil
}

// ask writes one prompt and reads one normalized line.
func (p *Prompter) ask(prompt string) (string, error) {
	if _, err := fmt.Fprint(p.out, prompt+" "); err != nil {
		return "", err
	}
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read answer: %w", err)
		}
		return "", io.EOF
	}
	return strings.ToLower(strings.TrimSpace(p.scanner.Text())), nil
}
