package main

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rener2104/dramctrl/internal/signal"
)

// traceUpstream replays a CSV trace as a single upstream cache channel.
// Each row is "address,op" where op is one of R (read), W (write), or
// P (prefetch), with address given as a hex literal (with or without a
// leading 0x); an address without the prefix is still read as hex.
type traceUpstream struct {
	read, prefetch, write []signal.Request
	sink                  *countingSink
}

// countingSink tallies completed responses. It does not log them; the
// verbose field is not read.
type countingSink struct {
	verbose   bool
	completed int
}

func (s *countingSink) Push(_ signal.Response) {
	s.completed++
}

func loadTrace(path string) (*traceUpstream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dramsim: failed to open trace %s: %w", path, err)
	}
	defer f.Close()

	u := &traceUpstream{sink: &countingSink{}}

	r := csv.NewReader(bufio.NewReader(f))
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("dramsim: malformed trace row: %w", err)
		}

		if len(record) < 2 || strings.HasPrefix(strings.TrimSpace(record[0]), "#") {
			continue
		}

		addr, err := parseAddress(record[0])
		if err != nil {
			return nil, fmt.Errorf("dramsim: bad address %q: %w", record[0], err)
		}

		req := signal.RequestBuilder{}.
			WithPhysicalAddress(addr).
			WithResponseRequested(true).
			Build()

		switch strings.ToUpper(strings.TrimSpace(record[1])) {
		case "R":
			u.read = append(u.read, req)
		case "W":
			u.write = append(u.write, req)
		case "P":
			u.prefetch = append(u.prefetch, req)
		default:
			return nil, fmt.Errorf("dramsim: unknown trace op %q", record[1])
		}
	}

	return u, nil
}

func parseAddress(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")

	return strconv.ParseUint(s, 16, 64)
}

func (u *traceUpstream) ReadQueue() []signal.Request     { return u.read }
func (u *traceUpstream) PrefetchQueue() []signal.Request { return u.prefetch }
func (u *traceUpstream) WriteQueue() []signal.Request    { return u.write }

func (u *traceUpstream) DequeueRead(n int)     { u.read = u.read[n:] }
func (u *traceUpstream) DequeuePrefetch(n int) { u.prefetch = u.prefetch[n:] }
func (u *traceUpstream) DequeueWrite(n int)    { u.write = u.write[n:] }

func (u *traceUpstream) Returned() signal.ResponseSink { return u.sink }

// Done reports whether every request in the trace has been admitted.
func (u *traceUpstream) Done() bool {
	return len(u.read) == 0 && len(u.prefetch) == 0 && len(u.write) == 0
}
