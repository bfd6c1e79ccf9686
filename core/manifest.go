package core

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/huangsam/replaystat/internal/contract"
	"github.com/huangsam/replaystat/schema"
)

// ManifestEntry is one score of an analysis manifest.
type ManifestEntry struct {
	Scorekey  string  `json:"scorekey"`
	Wifescore float64 `json:"wifescore"`
	Pack      string  `json:"pack"`
	Song      string  `json:"song"`
	Rate      float64 `json:"rate"`
}

// manifestHeader is the expected header of a CSV manifest.
var manifestHeader = []string{"scorekey", "wifescore", "pack", "song", "rate"}

// LoadManifest reads an analysis manifest from path. Files ending in .json hold
// an array of entries; anything else is read as CSV with a header row.
func LoadManifest(path string) (schema.AnalysisInput, error) {
	file, err := os.Open(path)
	if err != nil {
		return schema.AnalysisInput{}, fmt.Errorf("cannot open manifest: %w", err)
	}
	defer func() { _ = file.Close() }()

	var entries []ManifestEntry
	if strings.EqualFold(filepath.Ext(path), ".json") {
		entries, err = decodeManifestJSON(file)
	} else {
		entries, err = decodeManifestCSV(file)
	}
	if err != nil {
		return schema.AnalysisInput{}, fmt.Errorf("cannot read manifest %s: %w", path, err)
	}
	return manifestToInput(entries), nil
}

func decodeManifestJSON(r io.Reader) ([]ManifestEntry, error) {
	var entries []ManifestEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("%w: %v", contract.ErrInvalidInput, err)
	}
	return entries, nil
}

func decodeManifestCSV(r io.Reader) ([]ManifestEntry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(manifestHeader)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []ManifestEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contract.ErrInvalidInput, err)
	}
	for i, name := range manifestHeader {
		if !strings.EqualFold(strings.TrimSpace(header[i]), name) {
			return nil, fmt.Errorf("%w: column %d must be %q (found %q)", contract.ErrInvalidInput, i+1, name, header[i])
		}
	}

	entries := []ManifestEntry{}
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", contract.ErrInvalidInput, err)
		}
		wifescore, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: wifescore of %s: %v", contract.ErrInvalidInput, rec[0], err)
		}
		rate, err := strconv.ParseFloat(rec[4], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: rate of %s: %v", contract.ErrInvalidInput, rec[0], err)
		}
		entries = append(entries, ManifestEntry{
			Scorekey:  rec[0],
			Wifescore: wifescore,
			Pack:      rec[2],
			Song:      rec[3],
			Rate:      rate,
		})
	}
	return entries, nil
}

// manifestToInput splits entries into the lock-step lists of an analysis input.
func manifestToInput(entries []ManifestEntry) schema.AnalysisInput {
	in := schema.AnalysisInput{
		Scorekeys:  make([]string, len(entries)),
		Wifescores: make([]float64, len(entries)),
		Packs:      make([]string, len(entries)),
		Songs:      make([]string, len(entries)),
		Rates:      make([]float64, len(entries)),
	}
	for i, e := range entries {
		in.Scorekeys[i] = e.Scorekey
		in.Wifescores[i] = e.Wifescore
		in.Packs[i] = e.Pack
		in.Songs[i] = e.Song
		in.Rates[i] = e.Rate
	}
	return in
}

// LoadTimelineInput reads rating vectors and session ids from path. Files
// ending in .json hold {"ssr_vectors": [...], "session_ids": [...]}; anything
// else is read as CSV rows of "session_id,overall,category...". A first row
// whose session id is not an integer is treated as a header.
func LoadTimelineInput(path string) (schema.TimelineInput, error) {
	file, err := os.Open(path)
	if err != nil {
		return schema.TimelineInput{}, fmt.Errorf("cannot open timeline input: %w", err)
	}
	defer func() { _ = file.Close() }()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		var in schema.TimelineInput
		if err := json.NewDecoder(file).Decode(&in); err != nil {
			return schema.TimelineInput{}, fmt.Errorf("%w: %v", contract.ErrInvalidInput, err)
		}
		return in, nil
	}
	return decodeTimelineCSV(file)
}

func decodeTimelineCSV(r io.Reader) (schema.TimelineInput, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	in := schema.TimelineInput{SSRVectors: [][]float64{}, SessionIDs: []int{}}
	for line := 1; ; line++ {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return schema.TimelineInput{}, fmt.Errorf("%w: %v", contract.ErrInvalidInput, err)
		}
		id, err := strconv.Atoi(strings.TrimSpace(rec[0]))
		if err != nil {
			if line == 1 {
				continue
			}
			return schema.TimelineInput{}, fmt.Errorf("%w: line %d: session id: %v", contract.ErrInvalidInput, line, err)
		}
		vec := make([]float64, 0, len(rec)-1)
		for _, field := range rec[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return schema.TimelineInput{}, fmt.Errorf("%w: line %d: rating: %v", contract.ErrInvalidInput, line, err)
			}
			vec = append(vec, v)
		}
		in.SessionIDs = append(in.SessionIDs, id)
		in.SSRVectors = append(in.SSRVectors, vec)
	}
	return in, nil
}
