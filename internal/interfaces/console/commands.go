package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"fxwatch/internal/application/port"
)

// ParseCommand turns one input line into a command:
//
//	/term      search (a bare "/" clears the search)
//	s CODE     select a currency by code
//	N          select row N of the current page
//	n, p       next / previous page
//	q          quit
//	(empty)    redraw
func ParseCommand(line string) (port.Command, error) {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return port.Command{Kind: port.CmdRefresh}, nil
	case strings.HasPrefix(line, "/"):
		return port.Command{Kind: port.CmdSearch, Arg: strings.TrimSpace(line[1:])}, nil
	}

	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case "q", "quit", "exit":
		return port.Command{Kind: port.CmdQuit}, nil
	case "n", "next":
		return port.Command{Kind: port.CmdNextPage}, nil
	case "p", "prev":
		return port.Command{Kind: port.CmdPrevPage}, nil
	case "s", "select":
		if len(fields) < 2 {
			return port.Command{}, errors.New("select needs a currency code")
		}
		// codes are case-sensitive, keep as typed
		return port.Command{Kind: port.CmdSelect, Arg: strings.Join(fields[1:], " ")}, nil
	}

	if row, err := strconv.Atoi(fields[0]); err == nil && len(fields) == 1 {
		return port.Command{Kind: port.CmdSelectRow, Row: row}, nil
	}
	return port.Command{}, fmt.Errorf("unknown command %q", line)
}

// ReadCommands parses lines from r until EOF and sends them on the returned
// channel, which is closed at EOF. Unparseable lines are logged and skipped.
func ReadCommands(ctx context.Context, r io.Reader) <-chan port.Command {
	out := make(chan port.Command)
	go func() {
		defer close(out)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			cmd, err := ParseCommand(sc.Text())
			if err != nil {
				log.Warn().Err(err).Msg("command ignored")
				continue
			}
			select {
			case out <- cmd:
			case <-ctx.Done():
				return
			}
		}
		if err := sc.Err(); err != nil {
			log.Error().Err(err).Msg("read commands failed")
		}
	}()
	return out
}
