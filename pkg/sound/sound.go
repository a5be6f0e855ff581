// Package sound provides mono 16-bit PCM audio in the shape id Tech 3
// expects, with WAV encoding and decoding built on beep and procedural
// generators for game sound effects.
package sound

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the preferred sample rate for game sounds.
const DefaultSampleRate = 22050

// Sound holds mono 16-bit PCM samples.
type Sound struct {
	SampleRate int
	Samples    []int16
}

// Duration returns the playback length of the sound.
func (s *Sound) Duration() time.Duration {
	if s.SampleRate <= 0 {
		return 0
	}
	return time.Duration(len(s.Samples)) * time.Second / time.Duration(s.SampleRate)
}

// Format returns the beep format for streaming this sound.
func (s *Sound) Format() beep.Format {
	return beep.Format{
		SampleRate:  beep.SampleRate(s.SampleRate),
		NumChannels: 1,
		Precision:   2,
	}
}

// Streamer returns a beep streamer that plays the sound once.
func (s *Sound) Streamer() beep.Streamer {
	return &streamer{samples: s.Samples}
}

type streamer struct {
	samples []int16
	pos     int
}

func (st *streamer) Stream(samples [][2]float64) (n int, ok bool) {
	if st.pos >= len(st.samples) {
		return 0, false
	}
	for i := range samples {
		if st.pos >= len(st.samples) {
			break
		}
		v := float64(st.samples[st.pos]) / (1 << 15)
		samples[i][0] = v
		samples[i][1] = v
		st.pos++
		n++
	}
	return n, true
}

func (st *streamer) Err() error { return nil }

// Decode decodes a WAV file into a Sound. Stereo input is downmixed
// to mono by averaging channels.
func Decode(data []byte) (*Sound, error) {
	stream, format, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("decoding WAV: %w", err)
	}
	defer stream.Close()

	s := &Sound{
		SampleRate: int(format.SampleRate),
		Samples:    make([]int16, 0, stream.Len()),
	}

	buf := make([][2]float64, 512)
	for {
		n, ok := stream.Stream(buf)
		for i := 0; i < n; i++ {
			s.Samples = append(s.Samples, clampSample((buf[i][0]+buf[i][1])/2*(1<<15)))
		}
		if !ok {
			break
		}
	}
	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("reading WAV samples: %w", err)
	}
	return s, nil
}

// DecodeFile decodes a WAV file from disk.
func DecodeFile(path string) (*Sound, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading WAV file: %w", err)
	}
	return Decode(data)
}

// Encode encodes the sound as a mono 16-bit PCM WAV file in memory.
func Encode(s *Sound) ([]byte, error) {
	var w memWriter
	if err := wav.Encode(&w, s.Streamer(), s.Format()); err != nil {
		return nil, fmt.Errorf("encoding WAV: %w", err)
	}
	return w.buf, nil
}

// WriteFile writes the sound to disk as a WAV file, creating parent
// directories as needed.
func WriteFile(path string, s *Sound) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating sound directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating WAV file: %w", err)
	}
	if err := wav.Encode(f, s.Streamer(), s.Format()); err != nil {
		f.Close()
		return fmt.Errorf("encoding WAV: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing WAV file: %w", err)
	}
	return nil
}

func clampSample(v float64) int16 {
	r := math.Round(v)
	if r > math.MaxInt16 {
		return math.MaxInt16
	}
	if r < math.MinInt16 {
		return math.MinInt16
	}
	return int16(r)
}

// memWriter is an in-memory io.WriteSeeker. The WAV encoder seeks
// back to patch chunk sizes once the sample count is known.
type memWriter struct {
	buf []byte
	pos int
}

func (m *memWriter) Write(p []byte) (int, error) {
	if end := m.pos + len(p); end > len(m.buf) {
		m.buf = append(m.buf, make([]byte, end-len(m.buf))...)
	}
	copy(m.buf[m.pos:], p)
	m.pos += len(p)
	return len(p), nil
}

func (m *memWriter) Seek(offset int64, whence int) (int64, error) {
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = int64(m.pos) + offset
	case io.SeekEnd:
		pos = int64(len(m.buf)) + offset
	default:
		return 0, fmt.Errorf("invalid whence %d", whence)
	}
	if pos < 0 {
		return 0, fmt.Errorf("negative seek position %d", pos)
	}
	m.pos = int(pos)
	return pos, nil
}
