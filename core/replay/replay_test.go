package replay

import (
	_ "embed"
	"errors"
	"testing"

	"github.com/huangsam/replaystat/core/parse"
	"github.com/huangsam/replaystat/core/wife"
	"github.com/huangsam/replaystat/internal/contract"
	"github.com/huangsam/replaystat/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/basic.txt
var basicFixture []byte

func j4(t *testing.T) wife.Windows {
	t.Helper()
	w, err := wife.ForJudge(contract.DefaultJudge)
	require.NoError(t, err)
	return w
}

func TestDecodeUntimed(t *testing.T) {
	got, err := Decode(basicFixture, nil, j4(t))
	require.NoError(t, err)

	assert.False(t, got.Timed)
	assert.Equal(t, 1, got.MineHits)
	assert.Equal(t, 1, got.HoldDrops)
	require.Len(t, got.Notes, 5)

	rows := make([]int, len(got.Notes))
	cols := make([]int, len(got.Notes))
	for i, n := range got.Notes {
		rows[i] = n.Row
		cols[i] = n.Column
		assert.Zero(t, n.Time)
	}
	assert.Equal(t, []int{0, 48, 96, 144, 288}, rows)
	assert.Equal(t, []int{0, 1, 2, 1, 3}, cols)

	assert.InDelta(t, 5, got.Notes[0].Deviation, 1e-9)
	assert.Equal(t, schema.Marvelous, got.Notes[0].Judgment)
	assert.InDelta(t, -30, got.Notes[1].Deviation, 1e-9)
	assert.Equal(t, schema.Perfect, got.Notes[1].Judgment)
	assert.True(t, got.Notes[2].IsMiss())
	assert.Equal(t, schema.Miss, got.Notes[2].Judgment)
	assert.Equal(t, schema.Good, got.Notes[3].Judgment)
	assert.Equal(t, schema.Great, got.Notes[4].Judgment)
}

func TestDecodeTimed(t *testing.T) {
	timing := &schema.ChartTiming{Offset: -0.1, BPMs: []schema.BPMSegment{{Beat: 0, BPM: 120}}}
	got, err := Decode(basicFixture, timing, j4(t))
	require.NoError(t, err)

	assert.True(t, got.Timed)
	require.Len(t, got.Notes, 5)
	assert.InDelta(t, 0.1, got.Notes[0].Time, 1e-9)
	assert.InDelta(t, 0.6, got.Notes[1].Time, 1e-9)
	assert.InDelta(t, 3.1, got.Notes[4].Time, 1e-9)
}

func TestDecodeJudgeChangesClassification(t *testing.T) {
	j7, err := wife.ForJudge(7)
	require.NoError(t, err)

	got, err := Decode([]byte("0 0.030000 0\n"), nil, j7)
	require.NoError(t, err)
	require.Len(t, got.Notes, 1)
	assert.Equal(t, schema.Great, got.Notes[0].Judgment)
}

func TestDecodeEmpty(t *testing.T) {
	got, err := Decode(nil, nil, j4(t))
	require.NoError(t, err)
	assert.Empty(t, got.Notes)

	got, err = Decode([]byte("\n\n  \n"), nil, j4(t))
	require.NoError(t, err)
	assert.Empty(t, got.Notes)
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		wantLine int
		isParse  bool
	}{
		{"too few fields", "0 0.01\n", 1, false},
		{"too many fields", "0 0.01 1 1 9\n", 1, false},
		{"bad row", "0 0.01 0\nx 0.01 0\n", 2, true},
		{"bad deviation", "0 abc 0\n", 1, true},
		{"bad column", "0 0.01 c\n", 1, true},
		{"negative column", "0 0.01 -1\n", 1, false},
		{"column past widest key mode", "0 0.01 0\n48 0.01 30000\n", 2, false},
		{"negative row", "-5 0.01 1\n", 1, false},
		{"bad note type", "0 0.01 1 t\n", 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data), nil, j4(t))
			require.Error(t, err)
			assert.True(t, errors.Is(err, contract.ErrMalformedReplay))

			var me *MalformedReplayError
			require.True(t, errors.As(err, &me))
			assert.Equal(t, tt.wantLine, me.Line)

			var pe *parse.ParseError
			assert.Equal(t, tt.isParse, errors.As(err, &pe))
		})
	}
}

func TestDecodeColumnBounds(t *testing.T) {
	got, err := Decode([]byte("0 0.01 15\n"), nil, j4(t))
	require.NoError(t, err)
	require.Len(t, got.Notes, 1)
	assert.Equal(t, MaxColumns-1, got.Notes[0].Column)

	_, err = Decode([]byte("0 0.01 16\n"), nil, j4(t))
	assert.ErrorIs(t, err, contract.ErrMalformedReplay)
}

func TestDecodeLateHitIsMiss(t *testing.T) {
	j7, err := wife.ForJudge(7)
	require.NoError(t, err)

	got, err := Decode([]byte("0 0.080 0\n48 -0.120 1\n"), nil, j7)
	require.NoError(t, err)
	require.Len(t, got.Notes, 2)
	assert.Equal(t, schema.Bad, got.Notes[0].Judgment)
	assert.False(t, got.Notes[0].IsMiss())
	assert.Equal(t, schema.Miss, got.Notes[1].Judgment)
	assert.True(t, got.Notes[1].IsMiss())
}

func BenchmarkDecode(b *testing.B) {
	w, _ := wife.ForJudge(contract.DefaultJudge)
	for b.Loop() {
		_, _ = Decode(basicFixture, nil, w)
	}
}
