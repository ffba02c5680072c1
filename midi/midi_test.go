package midi

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/Southclaws/fault/ftag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func createSMF() *smf.SMF {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(480)
	var tr smf.Track
	tr.Add(0, gomidi.NoteOn(0, 60, 100))
	tr.Add(480, gomidi.NoteOff(0, 60))
	tr.Close(0)
	s.Add(tr)
	return s
}

func TestWriteThenReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tune.mid")
	require.NoError(t, WriteMidiFile(createSMF(), path))

	s, err := ReadMidiFile(path)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Len(s.Tracks, 1)
	assert.Equal(smf.MetricTicks(480), s.TimeFormat)
}

func TestReadMissingFile(t *testing.T) {
	_, err := ReadMidiFile(filepath.Join(t.TempDir(), "missing.mid"))

	assert := assert.New(t)
	assert.ErrorIs(err, os.ErrNotExist)
	assert.Equal(ftag.NotFound, ftag.Get(err))
}

func TestReadGarbage(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("MThd but not really")))

	assert := assert.New(t)
	assert.Error(err)
	assert.Equal(ftag.InvalidArgument, ftag.Get(err))
}
