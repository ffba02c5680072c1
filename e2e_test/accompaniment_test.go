//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/jsphweid/accompanist/cmd"
	"github.com/jsphweid/accompanist/midi"
	"github.com/jsphweid/accompanist/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func TestMain(m *testing.M) {
	os.Setenv("GENERATIONS", "5")
	os.Setenv("POPULATION_SIZE", "10")
	os.Setenv("GA_SEED", "1")
	os.Setenv("ARCHIVE_ENABLED", "false")
	os.Setenv("LOG_LEVEL", "error")
	if err := cmd.Setup(); err != nil {
		panic(err)
	}

	exitVal := m.Run()

	os.Exit(exitVal)
}

// createMelody is four beats of C D - G at 480 ticks per quarter.
func createMelody() []byte {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(480)

	var meta smf.Track
	meta.Add(0, smf.MetaTempo(100))
	meta.Close(0)
	s.Add(meta)

	var tr smf.Track
	tr.Add(0, gomidi.NoteOn(0, 60, 100))
	tr.Add(960, gomidi.NoteOff(0, 60))
	tr.Add(0, gomidi.NoteOn(0, 62, 100))
	tr.Add(960, gomidi.NoteOff(0, 62))
	tr.Add(960, gomidi.NoteOn(0, 67, 100))
	tr.Add(960, gomidi.NoteOff(0, 67))
	tr.Close(0)
	s.Add(tr)

	var buf bytes.Buffer
	if err := midi.Write(s, &buf); err != nil {
		panic(err.Error())
	}
	return buf.Bytes()
}

func createMultipartRequest(url string, data []byte) *http.Request {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("midi", "melody.mid")
	if err != nil {
		panic(err.Error())
	}
	part.Write(data)
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, url, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestAccompanimentJSONE2E(t *testing.T) {
	req := createMultipartRequest("/accompaniment?format=json", createMelody())
	w := httptest.NewRecorder()
	cmd.HandleAccompaniment(w, req)

	resp := w.Result()
	respBody, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	require.Equal(t, 200, resp.StatusCode, string(respBody))

	var res model.AccompanimentResponse
	require.NoError(t, json.Unmarshal(respBody, &res))
	assert.NotEmpty(res.RunID)
	assert.Equal(int64(1), res.Seed)
	assert.Equal(5, res.Generations)
	assert.Len(res.Chords, 4)
	assert.Len(res.Notes, 4)
	// the rest on beat 2 is worth 2 on its own
	assert.GreaterOrEqual(res.Fitness, 2)
}

func TestAccompanimentMidiE2E(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/accompaniment", bytes.NewReader(createMelody()))
	req.Header.Set("Content-Type", "audio/midi")
	w := httptest.NewRecorder()
	cmd.NewRouter().ServeHTTP(w, req)

	resp := w.Result()
	assert := assert.New(t)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal("audio/midi", resp.Header.Get("Content-Type"))
	assert.NotEmpty(resp.Header.Get("X-Run-Id"))

	s, err := midi.Read(resp.Body)
	require.NoError(t, err)
	assert.Len(s.Tracks, 3)

	var ons int
	for _, event := range s.Tracks[2] {
		var ch, key, vel uint8
		if event.Message.GetNoteStart(&ch, &key, &vel) {
			ons++
			assert.Equal(uint8(90), vel)
		}
	}
	assert.Equal(12, ons)
}

func TestAccompanimentRejectsGarbage(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/accompaniment", bytes.NewReader([]byte("not a midi file")))
	w := httptest.NewRecorder()
	cmd.HandleAccompaniment(w, req)

	resp := w.Result()
	respBody, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(400, resp.StatusCode)
	var res model.ErrorResponse
	assert.NoError(json.Unmarshal(respBody, &res))
	assert.NotEmpty(res.Error)
}

func TestAccompanimentRejectsTinyPopulation(t *testing.T) {
	req := createMultipartRequest("/accompaniment?population=1", createMelody())
	w := httptest.NewRecorder()
	cmd.HandleAccompaniment(w, req)

	assert.Equal(t, 400, w.Result().StatusCode)
}
