package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"fxwatch/internal/application/port"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		want port.Command
	}{
		{"", port.Command{Kind: port.CmdRefresh}},
		{"/usd", port.Command{Kind: port.CmdSearch, Arg: "usd"}},
		{"/", port.Command{Kind: port.CmdSearch, Arg: ""}},
		{"  / eur ", port.Command{Kind: port.CmdSearch, Arg: "eur"}},
		{"s USD/EUR", port.Command{Kind: port.CmdSelect, Arg: "USD/EUR"}},
		{"select usd/eur", port.Command{Kind: port.CmdSelect, Arg: "usd/eur"}},
		{"3", port.Command{Kind: port.CmdSelectRow, Row: 3}},
		{"n", port.Command{Kind: port.CmdNextPage}},
		{"P", port.Command{Kind: port.CmdPrevPage}},
		{"q", port.Command{Kind: port.CmdQuit}},
	}
	for _, tt := range tests {
		got, err := ParseCommand(tt.line)
		if err != nil {
			t.Errorf("ParseCommand(%q) error: %v", tt.line, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCommand(%q) = %+v, want %+v", tt.line, got, tt.want)
		}
	}

	for _, bad := range []string{"s", "hello", "3 4"} {
		if _, err := ParseCommand(bad); err == nil {
			t.Errorf("ParseCommand(%q) should fail", bad)
		}
	}
}

func TestReadCommands(t *testing.T) {
	in := strings.NewReader("/usd\nbogus\n2\nq\n")
	var got []port.Command
	for cmd := range ReadCommands(context.Background(), in) {
		got = append(got, cmd)
	}
	if len(got) != 3 {
		t.Fatalf("got %d commands: %+v", len(got), got)
	}
	if got[0].Kind != port.CmdSearch || got[1].Row != 2 || got[2].Kind != port.CmdQuit {
		t.Errorf("commands = %+v", got)
	}
}

func TestSinkWriteScreen(t *testing.T) {
	var buf bytes.Buffer
	s := NewSinkWriter(&buf)
	if err := s.WriteScreen("hello\n"); err != nil {
		t.Fatalf("WriteScreen failed: %v", err)
	}
	if buf.String() != ansiClearScreen+"hello\n" {
		t.Errorf("output = %q", buf.String())
	}
}
