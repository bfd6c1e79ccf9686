// Package replay decodes the plain-text per-note records of a replay file.
//
// Each line is "<row> <deviation seconds> <column> [<note type>]". Lines that
// start with "H" record dropped holds. A deviation of 1 second or more is the
// file's marker for a missed note.
package replay

import (
	"bytes"
	"fmt"
	"math"

	"github.com/huangsam/replaystat/core/parse"
	"github.com/huangsam/replaystat/core/wife"
	"github.com/huangsam/replaystat/internal/contract"
	"github.com/huangsam/replaystat/schema"
)

// Note types written by the game.
const (
	noteTap      = 1
	noteHoldHead = 2
	noteMine     = 4
	noteLift     = 5
	noteFake     = 7
)

// missDeviation is the deviation, in seconds, written for a missed note.
const missDeviation = 1.0

// MaxColumns is the widest key mode a replay may use.
const MaxColumns = 16

// bytesPerRecord approximates the length of one record, used to presize buffers.
const bytesPerRecord = 16

// Decoded is the content of one replay file.
type Decoded struct {
	Notes     []schema.NoteEvent
	MineHits  int
	HoldDrops int
	Timed     bool
}

// MalformedReplayError reports the first record that could not be decoded.
type MalformedReplayError struct {
	Line int
	Err  error
}

func (e *MalformedReplayError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Unwrap exposes both the malformed replay sentinel and the underlying cause.
func (e *MalformedReplayError) Unwrap() []error {
	return []error{contract.ErrMalformedReplay, e.Err}
}

func malformed(line int, err error) error {
	return &MalformedReplayError{Line: line, Err: err}
}

// Decode turns a replay file into note events in recorded order.
// timing may be nil, in which case note times stay zero and the result is untimed.
func Decode(data []byte, timing *schema.ChartTiming, windows wife.Windows) (Decoded, error) {
	out := Decoded{
		Notes: make([]schema.NoteEvent, 0, len(data)/bytesPerRecord),
		Timed: timing != nil,
	}

	fields := make([][]byte, 0, 4)
	lineNo := 0
	for len(data) > 0 {
		lineNo++
		var line []byte
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			line, data = data[:i], data[i+1:]
		} else {
			line, data = data, nil
		}

		fields = parse.Fields(line, fields[:0])
		if len(fields) == 0 {
			continue
		}
		if fields[0][0] == 'H' {
			out.HoldDrops++
			continue
		}
		if len(fields) < 3 || len(fields) > 4 {
			return Decoded{}, malformed(lineNo, fmt.Errorf("expected 3 or 4 fields, found %d", len(fields)))
		}

		row, err := parse.ParseInt(fields[0])
		if err != nil {
			return Decoded{}, malformed(lineNo, err)
		}
		if row < 0 {
			return Decoded{}, malformed(lineNo, fmt.Errorf("negative row %d", row))
		}
		devSeconds, err := parse.ParseFloat(fields[1])
		if err != nil {
			return Decoded{}, malformed(lineNo, err)
		}
		column, err := parse.ParseInt(fields[2])
		if err != nil {
			return Decoded{}, malformed(lineNo, err)
		}
		if column < 0 || column >= MaxColumns {
			return Decoded{}, malformed(lineNo, fmt.Errorf("column %d out of range [0, %d)", column, MaxColumns))
		}
		noteType := int64(noteTap)
		if len(fields) == 4 {
			if noteType, err = parse.ParseInt(fields[3]); err != nil {
				return Decoded{}, malformed(lineNo, err)
			}
		}

		switch noteType {
		case noteTap, noteHoldHead:
		case noteMine:
			out.MineHits++
			continue
		case noteLift, noteFake:
			continue
		default:
			// Unknown types are written by newer game versions and carry no score.
			continue
		}

		note := schema.NoteEvent{Row: int(row), Column: int(column)}
		if math.Abs(devSeconds) >= missDeviation {
			note.Deviation = math.NaN()
			note.Judgment = schema.Miss
		} else {
			note.Deviation = devSeconds * 1000
			note.Judgment = windows.Classify(note.Deviation)
		}
		if timing != nil {
			note.Time = timing.RowToSeconds(note.Row)
		}
		out.Notes = append(out.Notes, note)
	}
	return out, nil
}
