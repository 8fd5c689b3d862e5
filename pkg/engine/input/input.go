package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrBadCommand is returned for terminal lines that do not form a command
var ErrBadCommand = errors.New("bad command")

// argCounts lists how many integer arguments each terminal action takes.
// Wait accepts zero or one.
var argCounts = map[Action][]int{
	ActionSpawn:       {0},
	ActionMove:        {3}, // colonist, x, y
	ActionDig:         {2}, // x, y
	ActionNextActor:   {0},
	ActionWait:        {0, 1}, // milliseconds
	ActionTogglePause: {0},
	ActionDumpMap:     {0},
	ActionQuit:        {0},
}

// Command is a line typed at the terminal: an intent plus its arguments
type Command struct {
	Intent
	Args []int
}

// ParseCommand maps the first word of line through the bindings and parses
// the rest as integers
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("empty line: %w", ErrBadCommand)
	}

	intent := MapToIntent(NewDebouncedInput(RawInput{Device: DeviceTerminal, Code: fields[0]}))
	counts, ok := argCounts[intent.Action]
	if !ok {
		return Command{}, fmt.Errorf("unknown command %q: %w", fields[0], ErrBadCommand)
	}

	args := make([]int, 0, len(fields)-1)
	for _, f := range fields[1:] {
		n, err := strconv.Atoi(f)
		if err != nil {
			return Command{}, fmt.Errorf("%s: argument %q: %w", fields[0], f, ErrBadCommand)
		}
		args = append(args, n)
	}

	for _, c := range counts {
		if c == len(args) {
			return Command{Intent: intent, Args: args}, nil
		}
	}
	return Command{}, fmt.Errorf("%s takes %v arguments, got %d: %w", fields[0], counts, len(args), ErrBadCommand)
}

// Reader reads commands line by line
type Reader struct {
	scanner *bufio.Scanner
}

// NewReader creates a command reader over r
func NewReader(r io.Reader) *Reader {
	return &Reader{scanner: bufio.NewScanner(r)}
}

// Next returns the next command. Blank lines are skipped; io.EOF is
// returned when the input ends.
func (r *Reader) Next() (Command, error) {
	for r.scanner.Scan() {
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" {
			continue
		}
		return ParseCommand(line)
	}
	if err := r.scanner.Err(); err != nil {
		return Command{}, err
	}
	return Command{}, io.EOF
}
