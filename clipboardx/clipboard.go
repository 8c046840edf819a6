// Package clipboardx bridges the system clipboard with fallbacks for
// environments where no native clipboard is reachable: external
// clipboard commands, an OSC52 escape for terminals over SSH, and an
// in-process buffer as the last resort.
package clipboardx

import (
	"encoding/base64"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
)

// memory is the in-process fallback, so copy/paste always works
// inside one session even with no system clipboard at all.
var memory string

type tool struct {
	name      string
	writeArgs []string
	readArgs  []string
}

var tools = []tool{
	{"wl-copy", nil, nil}, // reading uses wl-paste, see below
	{"xclip", []string{"-selection", "clipboard"}, []string{"-o", "-selection", "clipboard"}},
	{"xsel", []string{"--clipboard", "--input"}, []string{"--clipboard", "--output"}},
	{"pbcopy", nil, nil},
}

// Write pushes text to every reachable clipboard target. Reports
// whether at least one external target took it.
func Write(text string) bool {
	memory = text
	ok := false
	if err := clipboard.WriteAll(text); err == nil {
		ok = true
	}
	for _, t := range tools {
		if _, err := exec.LookPath(t.name); err != nil {
			continue
		}
		cmd := exec.Command(t.name, t.writeArgs...)
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err == nil {
			ok = true
		}
	}
	if writeOSC52(text) {
		ok = true
	}
	return ok
}

// Read returns clipboard text from the first source that yields any,
// falling back to the in-process buffer.
func Read() string {
	if text, err := clipboard.ReadAll(); err == nil && text != "" {
		return text
	}
	readers := []tool{
		{"wl-paste", nil, []string{"--no-newline"}},
		tools[1], tools[2],
		{"pbpaste", nil, nil},
	}
	for _, t := range readers {
		if _, err := exec.LookPath(t.name); err != nil {
			continue
		}
		if out, err := exec.Command(t.name, t.readArgs...).Output(); err == nil && len(out) > 0 {
			return string(out)
		}
	}
	return memory
}

// writeOSC52 emits the clipboard escape sequence so terminals that
// support it (including over SSH) pick up the copy.
func writeOSC52(text string) bool {
	if text == "" {
		return false
	}
	if fi, err := os.Stdout.Stat(); err != nil || (fi.Mode()&os.ModeCharDevice) == 0 {
		return false
	}
	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	_, err := fmt.Fprintf(os.Stdout, "\x1b]52;c;%s\x07", encoded)
	return err == nil
}
