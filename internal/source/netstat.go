package source

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"runtime"
	"strconv"
)

// Regex patterns for the byte counter lines in netstat output.
var (
	// Matches the IP extended statistics on Linux and macOS:
	//     InOctets: 123456
	//     OutOctets: 654321
	unixPattern = regexp.MustCompile(`InOctets:\s*(\d+)\s*\n\s*OutOctets:\s*(\d+)`)

	// Matches the interface statistics table of netstat -e -a, which is
	// localized (Bytes in English, Octets in French):
	//   Bytes    123456    654321
	windowsPattern = regexp.MustCompile(`(?:Bytes|Octets)\s+(\d+)\s+(\d+)`)
)

// netstatSource shells out to netstat(8) and sums the byte counters found
// in its output. Hosts with several adaptors report one block per adaptor,
// so all matches are accumulated.
type netstatSource struct {
	name    string
	args    []string
	pattern *regexp.Regexp
}

func newNetstatSource() *netstatSource {
	if runtime.GOOS == "windows" {
		return &netstatSource{name: "netstat", args: []string{"-e", "-a"}, pattern: windowsPattern}
	}
	return &netstatSource{name: "netstat", args: []string{"-s"}, pattern: unixPattern}
}

func (s *netstatSource) Sample(ctx context.Context) (uint64, uint64, error) {
	out, err := exec.CommandContext(ctx, s.name, s.args...).Output()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: netstat: %v", ErrUnavailable, err)
	}
	return s.parse(out)
}

func (s *netstatSource) parse(out []byte) (uint64, uint64, error) {
	matches := s.pattern.FindAllSubmatch(out, -1)
	if len(matches) == 0 {
		return 0, 0, fmt.Errorf("%w: no byte counters in netstat output", ErrUnavailable)
	}

	var received, sent uint64
	for _, m := range matches {
		rec, err := strconv.ParseUint(string(m[1]), 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: bad received counter %q", ErrUnavailable, m[1])
		}
		sen, err := strconv.ParseUint(string(m[2]), 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: bad sent counter %q", ErrUnavailable, m[2])
		}
		received += rec
		sent += sen
	}
	return received, sent, nil
}
