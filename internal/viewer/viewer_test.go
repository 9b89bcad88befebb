package viewer

import (
	"errors"
	"os/exec"
	"reflect"
	"runtime"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mwiater/benchchart/internal/report"
)

func TestParseMode(t *testing.T) {
	cases := map[string]Mode{
		"":       ModeSystem,
		"system": ModeSystem,
		" TUI ":  ModeTUI,
		"none":   ModeNone,
	}
	for input, want := range cases {
		got, err := ParseMode(input)
		if err != nil {
			t.Fatalf("ParseMode(%q) error: %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseMode(%q) = %q, want %q", input, got, want)
		}
	}
	if _, err := ParseMode("browser"); err == nil {
		t.Fatal("expected error for unknown viewer")
	}
}

func TestOpenerCommand(t *testing.T) {
	cases := []struct {
		goos string
		name string
		args []string
	}{
		{"linux", "xdg-open", []string{"fig.png"}},
		{"darwin", "open", []string{"fig.png"}},
		{"windows", "cmd", []string{"/c", "start", "", "fig.png"}},
	}
	for _, tc := range cases {
		name, args, err := OpenerCommand(tc.goos, "fig.png")
		if err != nil {
			t.Fatalf("%s: %v", tc.goos, err)
		}
		if name != tc.name || !reflect.DeepEqual(args, tc.args) {
			t.Fatalf("%s: got %s %v", tc.goos, name, args)
		}
	}
	if _, _, err := OpenerCommand("plan9", "fig.png"); err == nil {
		t.Fatal("expected error for unknown platform")
	}
}

func TestShowSystemIgnoresOpenerFailure(t *testing.T) {
	orig := openCommand
	t.Cleanup(func() { openCommand = orig })
	var called bool
	openCommand = func(name string, args ...string) *exec.Cmd {
		called = true
		return exec.Command("/definitely/not/an/opener")
	}

	if err := Show(ModeSystem, "fig.png", nil); err != nil {
		t.Fatalf("Show should not fail when the viewer cannot start: %v", err)
	}
	if _, _, err := OpenerCommand(runtime.GOOS, "fig.png"); err == nil && !called {
		t.Fatal("expected opener to be invoked")
	}
}

func TestShowTUIAndNone(t *testing.T) {
	orig := runTable
	t.Cleanup(func() { runTable = orig })
	var gotRows []report.SummaryRow
	runTable = func(chartPath string, rows []report.SummaryRow) error {
		gotRows = rows
		return errors.New("no tty")
	}

	rows := []report.SummaryRow{{Key: "BM_A", Samples: 2}}
	if err := Show(ModeTUI, "fig.png", rows); err == nil {
		t.Fatal("expected TUI error to propagate")
	}
	if !reflect.DeepEqual(gotRows, rows) {
		t.Fatalf("rows = %+v", gotRows)
	}

	gotRows = nil
	if err := Show(ModeNone, "fig.png", rows); err != nil {
		t.Fatalf("Show none error: %v", err)
	}
	if gotRows != nil {
		t.Fatal("none mode should not start the table")
	}
}

func TestTableModelQuitKeys(t *testing.T) {
	m := newTableModel("fig.png", []report.SummaryRow{{Key: "BM_A", Samples: 4, Mean: 1.5, CV: 0.02, Unit: "ms"}})
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		_, cmd := m.Update(key)
		if cmd == nil {
			t.Fatalf("%s: expected quit command", key.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("%s: expected tea.QuitMsg", key.String())
		}
	}
}

func TestTableModelView(t *testing.T) {
	m := newTableModel("out/fig.png", []report.SummaryRow{{Key: "BM_Inline_Function", Samples: 4, Mean: 1.5, CV: 0.02, Unit: "ms"}})
	view := m.View()
	for _, want := range []string{"Benchmark Performance", "chart: out/fig.png", "BM_Inline_Function", "1.5000", "2.00%"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}
