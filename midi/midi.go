package midi

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"gitlab.com/gomidi/midi/v2/smf"
)

func ReadMidiFile(filepath string) (*smf.SMF, error) {
	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fault.Wrap(err, ftag.With(ftag.NotFound), fmsg.With("error reading midi file"))
	}
	return Read(bytes.NewReader(dat))
}

func Read(r io.Reader) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s = nil
			e = fault.New(fmt.Sprint(r), ftag.With(ftag.InvalidArgument), fmsg.With("error parsing midi file"))
		}
	}()

	res, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fault.Wrap(err, ftag.With(ftag.InvalidArgument), fmsg.With("error parsing midi file"))
	}
	return res, nil
}

func Write(s *smf.SMF, w io.Writer) error {
	if _, err := s.WriteTo(w); err != nil {
		return fault.Wrap(err, fmsg.With("error writing midi"))
	}
	return nil
}

func WriteMidiFile(s *smf.SMF, path string) error {
	var buf bytes.Buffer
	if err := Write(s, &buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0666); err != nil {
		return fault.Wrap(err, fmsg.With("error saving midi file"))
	}
	return nil
}
