package cmd

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/ftag"
	"github.com/jsphweid/accompanist/ga"
	"github.com/jsphweid/accompanist/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestConfigOverrides(t *testing.T) {
	t.Setenv("GENERATIONS", "40")
	t.Setenv("MAX_GENERATIONS", "")
	t.Setenv("MAX_POPULATION", "")
	require.NoError(t, Setup())

	req := httptest.NewRequest(http.MethodPost, "/accompaniment?population=12&seed=5", nil)
	c, err := requestConfig(req)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(40, c.Generations)
	assert.Equal(12, c.PopulationSize)
	assert.Equal(int64(5), c.Seed)

	req = httptest.NewRequest(http.MethodPost, "/accompaniment?generations=many", nil)
	_, err = requestConfig(req)
	assert.Equal(http.StatusBadRequest, statusFor(err))
	for _, q := range []string{"population=2000000000", "generations=2000000000", "population=1001"} {
		req = httptest.NewRequest(http.MethodPost, "/accompaniment?"+q, nil)
		_, err = requestConfig(req)
		assert.Equal(http.StatusBadRequest, statusFor(err), q)
	}

	req = httptest.NewRequest(http.MethodPost, "/accompaniment?population=1000&generations=10000", nil)
	c, err = requestConfig(req)
	assert.NoError(err)
	assert.Equal(1000, c.PopulationSize)
	assert.Equal(10000, c.Generations)
}

func TestHandleAccompanimentRejectsOversizedRuns(t *testing.T) {
	require.NoError(t, Setup())
	w := httptest.NewRecorder()
	NewRouter().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/accompaniment?population=2000000000", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatusFor(t *testing.T) {
	assert := assert.New(t)
	_, err := ga.NewContext(ga.DefaultConfig(), 0, model.MelodyDigest{})
	assert.Equal(http.StatusBadRequest, statusFor(err))
	assert.Equal(http.StatusServiceUnavailable, statusFor(fault.Wrap(context.Canceled, ftag.With(ftag.Cancelled))))
	assert.Equal(http.StatusInternalServerError, statusFor(errors.New("disk on fire")))
}

func TestHealth(t *testing.T) {
	w := httptest.NewRecorder()
	NewRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
