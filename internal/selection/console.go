package selection

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/couchcryptid/tube-commuters/internal/domain"
)

const instructions = `Option 1 -
Please enter the stations you would like to analyse.
You are allowed to pick at most 5 stations.
Type done when complete.
Note that entering 0 station names will default to option 2.

Option 2 -
Enter 'busiest 5' to see an analysis of the 5 busiest stations.

`

// Rejection messages printed for invalid entries.
const (
	MsgUnknown   = "Sorry, that station does not exist. Please try again."
	MsgDuplicate = "Sorry, you have already entered that station."
)

// Console prompts on out and reads answers line by line from in.
type Console struct {
	in  *bufio.Scanner
	out io.Writer

	// OnEffect, when set, observes every input the session consumed.
	OnEffect func(Effect)
}

// NewConsole creates a Console over the given streams.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewScanner(in), out: out}
}

// Ask prints prompt and returns the next line of input without its line
// ending. It returns io.EOF when input is exhausted.
func (c *Console) Ask(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimRight(c.in.Text(), "\r"), nil
}

// OfferStationList asks whether to print every station and does so on "y".
func (c *Console) OfferStationList(names []string) error {
	answer, err := c.Ask("Would you like to see a list of stations? (y/n): ")
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if strings.EqualFold(strings.TrimSpace(answer), "y") {
		fmt.Fprintln(c.out, "This is a list of all stations:")
		for _, name := range names {
			fmt.Fprintln(c.out, "-"+name)
		}
	}
	fmt.Fprintln(c.out)
	return nil
}

// Collect runs a selection session to completion. Running out of input
// while collecting counts as "done".
func (c *Console) Collect(cat *domain.Catalog) (Session, error) {
	fmt.Fprint(c.out, instructions)

	s := NewSession()
	for !s.Finished() {
		line, err := c.Ask("Station name: ")
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(c.out)
			line = CommandDone
		} else if err != nil {
			return s, err
		}

		var effect Effect
		s, effect = s.Next(line, cat)
		if c.OnEffect != nil {
			c.OnEffect(effect)
		}

		switch effect {
		case EffectUnknown:
			fmt.Fprintln(c.out, MsgUnknown)
		case EffectDuplicate:
			fmt.Fprintln(c.out, MsgDuplicate)
		}
	}
	return s, nil
}
