// v0
// internal/netinfo/netinfo_test.go
package netinfo

import (
	"os"
	"path/filepath"
	"testing"
)

const wirelessFixture = `Inter-| sta-|   Quality        |   Discarded packets               | Missed | WE
 face | tus | link level noise |  nwid  crypt   frag  retry   misc | beacon | 22
 wlan0: 0000   54.  -56.  -256        0      0      0      0      0        0
 wlan1: 0000   40.  -71.  -256        0      0      0      0      0        0
`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wireless")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestRSSIParsing(t *testing.T) {
	path := writeFixture(t, wirelessFixture)

	tests := []struct {
		name  string
		iface string
		want  int
	}{
		{name: "named interface", iface: "wlan0", want: -56},
		{name: "second interface", iface: "wlan1", want: -71},
		{name: "empty matches first", iface: "", want: -56},
		{name: "unknown interface", iface: "wlan9", want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := rssiFrom(path, tc.iface); got != tc.want {
				t.Fatalf("rssiFrom(%q)=%d want %d", tc.iface, got, tc.want)
			}
		})
	}
}

func TestRSSIDegradesToZero(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if got := rssiFrom(filepath.Join(t.TempDir(), "absent"), "wlan0"); got != 0 {
			t.Fatalf("got %d want 0", got)
		}
	})

	t.Run("truncated row", func(t *testing.T) {
		path := writeFixture(t, "Inter-| sta-|   Quality\n face | tus | link\n wlan0: 0000\n")
		if got := rssiFrom(path, "wlan0"); got != 0 {
			t.Fatalf("got %d want 0", got)
		}
	})

	t.Run("garbage level", func(t *testing.T) {
		path := writeFixture(t, "a|b\nc|d\n wlan0: 0000   54.  nope  -256\n")
		if got := rssiFrom(path, "wlan0"); got != 0 {
			t.Fatalf("got %d want 0", got)
		}
	})
}
