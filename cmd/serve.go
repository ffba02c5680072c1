package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/gorilla/mux"
	"github.com/jsphweid/accompanist/ga"
	"github.com/jsphweid/accompanist/logging"
	"github.com/jsphweid/accompanist/midi"
	"github.com/jsphweid/accompanist/model"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

const maxUploadBytes = 16 << 20

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves accompaniment generation over HTTP",
	Long:  `Serves POST /accompaniment, which takes a midi file and returns it with an accompaniment track.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := ":" + cfg.Port
		logger.Info("Starting server", logging.Fields{"addr": addr})
		return http.ListenAndServe(addr, NewRouter())
	},
}

func NewRouter() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/accompaniment", HandleAccompaniment).Methods("POST")
	router.HandleFunc("/health", HandleHealth).Methods("GET")
	return cors.Default().Handler(router)
}

func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.HealthResponse{Status: "ok"})
}

// HandleAccompaniment accepts the midi either as the raw body or as the
// "midi" field of a multipart form. generations, population and seed query
// parameters override the configured values; format=json returns a summary
// instead of the midi file.
func HandleAccompaniment(w http.ResponseWriter, r *http.Request) {
	gaCfg, err := requestConfig(r)
	if err != nil {
		writeError(w, err)
		return
	}
	body, err := readUpload(r)
	if err != nil {
		writeError(w, err)
		return
	}
	s, err := midi.Read(bytes.NewReader(body))
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := accompany(r.Context(), s, gaCfg)
	if err != nil {
		recorder.CaptureError(err)
		writeError(w, err)
		return
	}
	archiveRun(res, "upload", "response")

	if r.URL.Query().Get("format") == "json" {
		writeJSON(w, http.StatusOK, res.Response())
		return
	}

	var buf bytes.Buffer
	if err := midi.Write(res.Output, &buf); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "audio/midi")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "accompaniment-"+res.Key.Name()+".mid"))
	w.Header().Set("X-Run-Id", res.RunID)
	w.Header().Set("X-Key", res.Key.Name())
	w.Header().Set("X-Fitness", strconv.Itoa(res.Best.Fitness))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func requestConfig(r *http.Request) (ga.Config, error) {
	res := cfg.GA()
	q := r.URL.Query()
	limits := []struct {
		name   string
		target *int
		max    int
	}{
		{"generations", &res.Generations, cfg.MaxGenerations},
		{"population", &res.PopulationSize, cfg.MaxPopulation},
	}
	for _, l := range limits {
		v := q.Get(l.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return res, fault.Wrap(err, ftag.With(ftag.InvalidArgument), fmsg.With("bad "+l.name))
		}
		if n > l.max {
			return res, fault.New(fmt.Sprintf("%s %d is above the limit of %d", l.name, n, l.max),
				ftag.With(ftag.InvalidArgument), fmsg.With(fmt.Sprintf("%s must be at most %d", l.name, l.max)))
		}
		*l.target = n
	}
	if v := q.Get("seed"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return res, fault.Wrap(err, ftag.With(ftag.InvalidArgument), fmsg.With("bad seed"))
		}
		res.Seed = n
	}
	return res, nil
}

func readUpload(r *http.Request) ([]byte, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return nil, fault.Wrap(err, ftag.With(ftag.InvalidArgument), fmsg.With("could not parse form"))
		}
		f, _, err := r.FormFile("midi")
		if err != nil {
			return nil, fault.Wrap(err, ftag.With(ftag.InvalidArgument), fmsg.With("missing midi field"))
		}
		defer f.Close()
		return io.ReadAll(f)
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes))
	if err != nil {
		return nil, fault.Wrap(err, ftag.With(ftag.InvalidArgument), fmsg.With("could not read request body"))
	}
	return body, nil
}

func statusFor(err error) int {
	switch ftag.Get(err) {
	case ftag.InvalidArgument:
		return http.StatusBadRequest
	case ftag.Cancelled:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error(err, "Request failed")
	}
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
