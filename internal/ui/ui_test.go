package ui

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func forcedHeadless() *HeadlessManager {
	hm := NewHeadlessManager()
	hm.ForceHeadless(true)
	return hm
}

func TestNewTheme_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if !NewTheme().NoColor {
		t.Error("NO_COLOR=1 should disable colour")
	}

	t.Setenv("NO_COLOR", "")
	if NewTheme().NoColor {
		t.Error("empty NO_COLOR should keep colour")
	}
}

func TestHeadlessManager(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	hm := NewHeadlessManager(f)
	if !hm.IsHeadless() {
		t.Error("a regular file is not a terminal, want headless")
	}

	hm.ForceHeadless(false)
	if hm.IsHeadless() {
		t.Error("ForceHeadless(false) should win over detection")
	}

	if !NewHeadlessManager(nil).IsHeadless() {
		t.Error("nil file should count as headless")
	}
}

func TestHeadlessProgressBar(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgress(PlainTheme(), forcedHeadless(), &buf).Start("Copying", 2)

	bar.Increment(1)
	bar.SetTitle("src/app.ts")
	bar.Increment(5)
	bar.Done()

	want := "[1/2] Copying\n[2/2] src/app.ts\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestHeadlessSpinner(t *testing.T) {
	var buf bytes.Buffer
	s := NewProgress(PlainTheme(), forcedHeadless(), &buf).Spinner("Removing my-server")
	s.Stop(true, "Removed my-server")
	s.Stop(false, "ignored")

	got := buf.String()
	if !strings.Contains(got, "◇ Removing my-server\n") {
		t.Errorf("missing title line in %q", got)
	}
	if !strings.HasSuffix(got, "✔ Removed my-server\n") {
		t.Errorf("missing result line in %q", got)
	}
	if strings.Contains(got, "ignored") {
		t.Error("second Stop should be a no-op")
	}
}

func TestNoColorForcesPlainWidgets(t *testing.T) {
	hm := NewHeadlessManager()
	hm.ForceHeadless(false)

	var buf bytes.Buffer
	bar := NewProgress(PlainTheme(), hm, &buf).Start("x", 1)
	if _, ok := bar.(*headlessProgressBar); !ok {
		t.Errorf("Start() = %T, want *headlessProgressBar under NoColor", bar)
	}
}

func TestProgressModel(t *testing.T) {
	m := newProgressModel(PlainTheme(), "copy", 3)

	next, _ := m.Update(progressIncrMsg(2))
	m = next.(progressModel)
	if m.current != 2 || !strings.Contains(m.View(), "[2/3] copy") {
		t.Errorf("after +2: current=%d view=%q", m.current, m.View())
	}

	next, _ = m.Update(progressIncrMsg(9))
	m = next.(progressModel)
	if m.current != 3 {
		t.Errorf("current = %d, want clamp to 3", m.current)
	}

	next, cmd := m.Update(progressDoneMsg{})
	m = next.(progressModel)
	if !m.done || cmd == nil || m.View() != "" {
		t.Errorf("done=%v cmd=%v view=%q", m.done, cmd != nil, m.View())
	}
}

func TestSpinnerModel(t *testing.T) {
	m := newSpinnerModel(PlainTheme(), "Removing")

	next, _ := m.Update(spinnerTitleMsg("Still removing"))
	m = next.(spinnerModel)
	if !strings.Contains(m.View(), "Still removing") {
		t.Errorf("view = %q", m.View())
	}

	next, cmd := m.Update(spinnerStopMsg{ok: false, msg: "Failed to remove"})
	m = next.(spinnerModel)
	if cmd == nil {
		t.Error("stop should quit the program")
	}
	if m.View() != "✖ Failed to remove\n" {
		t.Errorf("view = %q", m.View())
	}
}

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(PlainTheme(), &buf)

	c.Intro("NHB Express")
	c.Step("Installing dependencies...")
	c.Success("Dependencies installed!")
	c.Warn("careful")
	c.Error("boom")
	c.Outro("Done")
	c.Cancelled("Process cancelled by user!")

	want := []string{
		"┌  NHB Express",
		"│",
		"◇  Installing dependencies...",
		"✔  Dependencies installed!",
		"▲  careful",
		"✖  boom",
		"└  Done",
		"└  ■ Process cancelled by user!",
	}
	got := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(got) != len(want) {
		t.Fatalf("lines = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestConsole_Note(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(PlainTheme(), &buf)

	if err := c.Note("Next Steps", "    cd my-server\n    pnpm run dev\n"); err != nil {
		t.Fatalf("Note() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Next Steps", "cd my-server", "pnpm run dev"} {
		if !strings.Contains(out, want) {
			t.Errorf("note output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("plain note contains escape sequences: %q", out)
	}
}
