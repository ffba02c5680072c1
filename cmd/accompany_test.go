package cmd

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/jsphweid/accompanist/db"
	"github.com/jsphweid/accompanist/ga"
	"github.com/jsphweid/accompanist/midi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func createMelody() *smf.SMF {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(480)

	var meta smf.Track
	meta.Add(0, smf.MetaTempo(100))
	meta.Close(0)
	s.Add(meta)

	var tr smf.Track
	for _, key := range []uint8{69, 72, 76, 69} {
		tr.Add(0, gomidi.NoteOn(0, key, 90))
		tr.Add(960, gomidi.NoteOff(0, key))
	}
	tr.Close(0)
	s.Add(tr)
	return s
}

func testConfig() ga.Config {
	c := ga.DefaultConfig()
	c.Generations = 5
	c.PopulationSize = 10
	c.Seed = 3
	c.Workers = 2
	return c
}

func TestAccompanyAppendsTrack(t *testing.T) {
	require.NoError(t, Setup())
	res, err := accompany(context.Background(), createMelody(), testConfig())
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Len(res.Output.Tracks, 3)
	assert.Len(res.Best.Track, 4)
	assert.GreaterOrEqual(res.Best.Fitness, res.SeededBest)
	assert.Equal(int64(3), res.Seed)

	summary := res.Response()
	assert.Equal(res.RunID, summary.RunID)
	assert.Len(summary.Chords, 4)
	assert.Equal(res.Key.Name(), summary.Key)
}

func TestAccompanyStopsWhenCancelled(t *testing.T) {
	require.NoError(t, Setup())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := accompany(ctx, createMelody(), testConfig())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateWritesOutput(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("OUT_DIR", filepath.Join(dir, "out"))
	require.NoError(t, Setup())

	input := filepath.Join(dir, "tune.mid")
	require.NoError(t, midi.WriteMidiFile(createMelody(), input))

	output, err := generate(context.Background(), input, testConfig())
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(filepath.Join(dir, "out"), filepath.Dir(output))
	_, err = os.Stat(output)
	assert.NoError(err)

	s, err := midi.ReadMidiFile(output)
	assert.NoError(err)
	assert.Len(s.Tracks, 3)
}

func TestOpenArchiveConnectsOnce(t *testing.T) {
	require.NoError(t, Setup())

	var wg sync.WaitGroup
	archives := make([]*db.Archive, 8)
	for i := range archives {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, err := openArchive()
			assert.NoError(t, err)
			archives[i] = a
		}(i)
	}
	wg.Wait()

	assert := assert.New(t)
	assert.NotNil(archives[0])
	for _, a := range archives[1:] {
		assert.Same(archives[0], a)
	}
}
