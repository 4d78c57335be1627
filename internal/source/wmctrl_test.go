package source

import (
	"testing"
)

const sampleOutput = `0x03a00003 -1 host xfce4-panel
0x04200004  0 host Editor - main.go
0x04600006  0 host Browser - News
0x04a00002  1 host Terminal
0x04c00001  0 host 日本語のタイトル
0x04e00007  0 host
`

func TestParseWindowList(t *testing.T) {
	titles := parseWindowList(sampleOutput, 10)

	want := []string{"xfce4-panel", "Editor - main.go", "Browser - News", "Terminal"}
	if len(titles) != len(want) {
		t.Fatalf("got %d titles %v, want %d", len(titles), titles, len(want))
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Errorf("titles[%d] = %q, want %q", i, titles[i], want[i])
		}
	}
}

func TestParseWindowListTruncates(t *testing.T) {
	titles := parseWindowList(sampleOutput, 2)

	if len(titles) != 2 {
		t.Fatalf("got %d titles, want 2", len(titles))
	}
	if titles[0] != "xfce4-panel" || titles[1] != "Editor - main.go" {
		t.Errorf("titles = %v, want first two in order", titles)
	}
}

func TestParseWindowListEmpty(t *testing.T) {
	if titles := parseWindowList("", 5); len(titles) != 0 {
		t.Errorf("got %v, want none", titles)
	}
}
