// v0
// internal/netinfo/netinfo.go
package netinfo

import (
	"context"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

const wirelessProc = "/proc/net/wireless"

// LocalIP returns the first non-loopback IPv4 address, or "" when the host
// has none.
func LocalIP() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return ""
	}
	for _, a := range addrs {
		ipn, ok := a.(*net.IPNet)
		if !ok || ipn.IP.IsLoopback() {
			continue
		}
		if v4 := ipn.IP.To4(); v4 != nil {
			return v4.String()
		}
	}
	return ""
}

// Wireless reports the station's network status for one interface. The zero
// Iface matches the first wireless interface the kernel lists.
type Wireless struct {
	Iface string
}

func (w Wireless) IP() string { return LocalIP() }

// RSSI reads the link level in dBm from the kernel's wireless table. It
// returns 0 when the host is not on Wi-Fi, matching a wired deployment.
func (w Wireless) RSSI() int {
	return rssiFrom(wirelessProc, w.Iface)
}

func rssiFrom(path, iface string) int {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	for _, ln := range strings.Split(string(b), "\n") {
		ln = strings.TrimSpace(ln)
		// Header rows carry the column legend.
		if ln == "" || strings.Contains(ln, "|") {
			continue
		}
		name, rest, ok := strings.Cut(ln, ":")
		if !ok {
			continue
		}
		if iface != "" && strings.TrimSpace(name) != iface {
			continue
		}
		f := strings.Fields(rest)
		if len(f) < 3 {
			return 0
		}
		lvl, err := strconv.ParseFloat(strings.TrimSuffix(f[2], "."), 64)
		if err != nil {
			return 0
		}
		return int(lvl)
	}
	return 0
}

// WaitForOnline polls until a routable address appears or the ceiling
// passes. The station serves opportunistically either way, so the only
// outcome is how long startup waits.
func WaitForOnline(ctx context.Context, ceiling time.Duration, log *slog.Logger) bool {
	deadline := time.Now().Add(ceiling)
	for {
		if ip := LocalIP(); ip != "" {
			log.Info("network online", "ip", ip)
			return true
		}
		if time.Now().After(deadline) {
			log.Warn("network wait ceiling reached, continuing without an address", "ceiling", ceiling.String())
			return false
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(500 * time.Millisecond):
		}
	}
}
