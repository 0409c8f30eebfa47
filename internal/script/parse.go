// Package script replays a session of user intents against a task store.
//
// A script is line oriented. Blank lines and lines starting with # are
// ignored. Every other line is one intent:
//
//	add <text>            add a task; text is taken verbatim
//	toggle <pos>          toggle the task shown at position pos
//	delete <pos> [pos...] delete the tasks shown at the given positions
//	clear                 clear completed tasks
//	list                  print the current list
//
// Positions are zero based and refer to the list as it stands when the
// line runs, the same way a row on screen does.
package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Kind is the verb of a script line.
type Kind string

const (
	KindAdd    Kind = "add"
	KindToggle Kind = "toggle"
	KindDelete Kind = "delete"
	KindClear  Kind = "clear"
	KindList   Kind = "list"
)

// Command is one parsed script line.
type Command struct {
	Line      int
	Kind      Kind
	Text      string
	Positions []int
}

// Parse reads a whole script. Lines may be of any length.
func Parse(r io.Reader) ([]Command, error) {
	var cmds []Command
	br := bufio.NewReader(r)
	for n := 1; ; n++ {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read script: %w", err)
		}
		if line == "" && err != nil {
			break
		}
		cmd, ok, perr := ParseLine(strings.TrimSuffix(line, "\n"), n)
		if perr != nil {
			return nil, perr
		}
		if ok {
			cmds = append(cmds, cmd)
		}
		if err != nil {
			break
		}
	}
	return cmds, nil
}

// ParseLine parses a single line. ok is false for blank and comment lines.
func ParseLine(line string, n int) (cmd Command, ok bool, err error) {
	line = strings.TrimRight(line, "\r")
	trimmed := strings.TrimLeft(line, " \t")
	if strings.TrimSpace(trimmed) == "" || strings.HasPrefix(trimmed, "#") {
		return Command{}, false, nil
	}

	// The verb ends at the first space or tab; the rest is kept verbatim.
	verb, rest := trimmed, ""
	if i := strings.IndexAny(trimmed, " \t"); i >= 0 {
		verb, rest = trimmed[:i], trimmed[i+1:]
	}
	cmd = Command{Line: n, Kind: Kind(strings.ToLower(verb))}

	switch cmd.Kind {
	case KindAdd:
		cmd.Text = rest
	case KindToggle:
		positions, err := parsePositions(rest)
		if err != nil {
			return Command{}, false, fmt.Errorf("line %d: toggle: %w", n, err)
		}
		if len(positions) != 1 {
			return Command{}, false, fmt.Errorf("line %d: toggle takes exactly one position", n)
		}
		cmd.Positions = positions
	case KindDelete:
		positions, err := parsePositions(rest)
		if err != nil {
			return Command{}, false, fmt.Errorf("line %d: delete: %w", n, err)
		}
		if len(positions) == 0 {
			return Command{}, false, fmt.Errorf("line %d: delete needs at least one position", n)
		}
		cmd.Positions = positions
	case KindClear, KindList:
		if strings.TrimSpace(rest) != "" {
			return Command{}, false, fmt.Errorf("line %d: %s takes no arguments", n, cmd.Kind)
		}
	default:
		return Command{}, false, fmt.Errorf("line %d: unknown command %q", n, verb)
	}
	return cmd, true, nil
}

func parsePositions(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})
	positions := make([]int, 0, len(fields))
	for _, f := range fields {
		p, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid position %q", f)
		}
		positions = append(positions, p)
	}
	return positions, nil
}
