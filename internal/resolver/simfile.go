package resolver

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/huangsam/replaystat/schema"
)

// Timing tags read from a simfile header.
const (
	tagOffset  = "OFFSET"
	tagBPMs    = "BPMS"
	tagStops   = "STOPS"
	tagFreezes = "FREEZES" // Older name for STOPS
)

// ParseSimfile extracts the timing of a .sm or .ssc file. The first BPM
// segment is moved to beat 0 when the file starts it later.
func ParseSimfile(data []byte) (*schema.ChartTiming, error) {
	tags := simfileTags(data)

	timing := &schema.ChartTiming{}
	if v, ok := tags[tagOffset]; ok && strings.TrimSpace(v) != "" {
		offset, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid #%s: %w", tagOffset, err)
		}
		timing.Offset = offset
	}

	bpms, err := parsePairs(tags[tagBPMs])
	if err != nil {
		return nil, fmt.Errorf("invalid #%s: %w", tagBPMs, err)
	}
	if len(bpms) == 0 {
		return nil, fmt.Errorf("missing #%s", tagBPMs)
	}
	for _, p := range bpms {
		if p[1] <= 0 {
			return nil, fmt.Errorf("invalid #%s: non-positive bpm %v at beat %v", tagBPMs, p[1], p[0])
		}
		timing.BPMs = append(timing.BPMs, schema.BPMSegment{Beat: p[0], BPM: p[1]})
	}
	sort.SliceStable(timing.BPMs, func(i, j int) bool { return timing.BPMs[i].Beat < timing.BPMs[j].Beat })
	timing.BPMs[0].Beat = 0

	stopsRaw, ok := tags[tagStops]
	if !ok {
		stopsRaw = tags[tagFreezes]
	}
	stops, err := parsePairs(stopsRaw)
	if err != nil {
		return nil, fmt.Errorf("invalid #%s: %w", tagStops, err)
	}
	for _, p := range stops {
		timing.Stops = append(timing.Stops, schema.StopSegment{Beat: p[0], Seconds: p[1]})
	}
	return timing, nil
}

// simfileTags returns the value of every "#TAG:value;" entry before the first
// #NOTES block, with line comments removed. Tag names are upper-cased.
func simfileTags(data []byte) map[string]string {
	var clean bytes.Buffer
	for line := range bytes.Lines(data) {
		if i := bytes.Index(line, []byte("//")); i >= 0 {
			line = line[:i]
		}
		clean.Write(bytes.TrimRight(line, "\r\n"))
		clean.WriteByte('\n')
	}

	tags := make(map[string]string)
	rest := clean.String()
	for {
		start := strings.IndexByte(rest, '#')
		if start < 0 {
			break
		}
		rest = rest[start+1:]
		colon := strings.IndexByte(rest, ':')
		if colon < 0 {
			break
		}
		name := strings.ToUpper(strings.TrimSpace(rest[:colon]))
		if name == "NOTES" || name == "NOTEDATA" {
			break
		}
		rest = rest[colon+1:]
		end := strings.IndexByte(rest, ';')
		if end < 0 {
			end = len(rest)
		}
		if _, seen := tags[name]; !seen {
			tags[name] = rest[:end]
		}
		rest = rest[end:]
	}
	return tags
}

// parsePairs parses "beat=value,beat=value" lists.
func parsePairs(s string) ([][2]float64, error) {
	var pairs [][2]float64
	for item := range strings.SplitSeq(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		beatStr, valueStr, ok := strings.Cut(item, "=")
		if !ok {
			return nil, fmt.Errorf("entry %q is not beat=value", item)
		}
		beat, err := strconv.ParseFloat(strings.TrimSpace(beatStr), 64)
		if err != nil {
			return nil, err
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(valueStr), 64)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, [2]float64{beat, value})
	}
	return pairs, nil
}
