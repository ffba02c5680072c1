package file

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputPath(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("out/tune-Accompaniment-Am.mid", OutputPath("songs/tune.mid", "Am", "out"))
	assert.Equal("songs/tune-Accompaniment-C.mid", OutputPath("songs/tune.midi", "C", ""))
}
