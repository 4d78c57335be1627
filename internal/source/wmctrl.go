// Package source enumerates visible windows by shelling out to wmctrl. The
// rest of the tool only sees ordered title strings, never window handles.
package source

import (
	"bufio"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// printableRe requires at least one printable ASCII character so icon-only
// and placeholder windows are skipped.
var printableRe = regexp.MustCompile(`[\x20-\x7E]`)

// WMCtrl lists windows via `wmctrl -l`.
type WMCtrl struct{}

// OpenWindows returns at most max window titles in the order the window
// manager reports them.
func (WMCtrl) OpenWindows(max int) ([]string, error) {
	out, err := exec.Command("wmctrl", "-l").Output()
	if err != nil {
		return nil, fmt.Errorf("run wmctrl: %w", err)
	}
	return parseWindowList(string(out), max), nil
}

// parseWindowList extracts titles from `wmctrl -l` output. Each line is
// "0x03a00003 <desktop> <host> <title...>"; sticky windows use desktop -1.
func parseWindowList(out string, max int) []string {
	var titles []string
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		if len(titles) >= max {
			break
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 {
			continue
		}
		title := strings.TrimSpace(strings.Join(fields[3:], " "))
		if !printableRe.MatchString(title) {
			continue
		}
		titles = append(titles, title)
	}
	return titles
}
