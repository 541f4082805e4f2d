// Package audio provides the music players behind the party's audio toggle.
package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

// Errors returned by players.
var (
	ErrUnavailable = errors.New("audio: playback unavailable")
	ErrUnsupported = errors.New("audio: unsupported file type")
)

// tapSize is how many recent samples feed the level meter.
const tapSize = 2048

// Speaker state is process-wide.
var (
	speakerMu   sync.Mutex
	speakerRate beep.SampleRate
)

// initSpeaker opens the output device for a sample rate, reopening it when
// the rate changes.
func initSpeaker(rate beep.SampleRate) error {
	speakerMu.Lock()
	defer speakerMu.Unlock()

	if speakerRate == rate {
		return nil
	}
	if err := speaker.Init(rate, rate.N(time.Second/20)); err != nil {
		return fmt.Errorf("audio: cannot open output device: %w", err)
	}
	speakerRate = rate
	return nil
}

// Player loops one audio file through the system speaker. Nothing is opened
// until the first Play, so a bad path or a missing device shows up as a
// playback error rather than a startup failure.
type Player struct {
	path   string
	logger *log.Logger

	mu       sync.Mutex
	file     *os.File
	streamer beep.StreamSeekCloser
	ctrl     *beep.Ctrl
	tap      *tap
}

// NewPlayer creates a player for the file at path. A nil logger discards.
func NewPlayer(path string, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{path: path, logger: logger}
}

// Path returns the audio file path.
func (p *Player) Path() string {
	return p.path
}

// Play starts looping playback or resumes after Pause.
func (p *Player) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ctrl != nil {
		speaker.Lock()
		p.ctrl.Paused = false
		speaker.Unlock()
		return nil
	}
	return p.load()
}

// load decodes the file and hands it to the speaker.
func (p *Player) load() error {
	if p.path == "" {
		return ErrUnavailable
	}

	f, err := os.Open(p.path)
	if err != nil {
		return fmt.Errorf("audio: cannot open %s: %w", p.path, err)
	}
	streamer, format, err := decode(f, p.path)
	if err != nil {
		_ = f.Close()
		return err
	}
	if err := initSpeaker(format.SampleRate); err != nil {
		_ = streamer.Close()
		_ = f.Close()
		return err
	}

	p.file = f
	p.streamer = streamer
	p.tap = newTap(beep.Loop(-1, streamer), tapSize)
	p.ctrl = &beep.Ctrl{Streamer: p.tap}
	speaker.Play(p.ctrl)

	p.logger.Info("audio loaded", "path", p.path, "rate", int(format.SampleRate))
	return nil
}

// decode picks a decoder from the file extension.
func decode(f *os.File, path string) (beep.StreamSeekCloser, beep.Format, error) {
	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
		err      error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("audio: cannot decode %s: %w", path, err)
	}
	return streamer, format, nil
}

// Pause halts playback, keeping the position.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
}

// Stop halts playback and rewinds to the start.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	if err := p.streamer.Seek(0); err != nil {
		p.logger.Warn("audio rewind failed", "error", err)
	}
	speaker.Unlock()
}

// Levels returns n loudness bands from the most recent samples.
func (p *Player) Levels(n int) []float64 {
	p.mu.Lock()
	t := p.tap
	p.mu.Unlock()

	if t == nil {
		return nil
	}
	return t.levels(n)
}

// Close stops playback and releases the file.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ctrl == nil {
		return nil
	}
	speaker.Lock()
	p.ctrl.Paused = true
	p.ctrl.Streamer = nil
	speaker.Unlock()

	err := p.streamer.Close()
	if cerr := p.file.Close(); err == nil {
		err = cerr
	}
	p.ctrl, p.streamer, p.file, p.tap = nil, nil, nil, nil
	return err
}

// Silent is the player used where no sound can be produced, such as SSH
// sessions. Play always fails with ErrUnavailable.
type Silent struct{}

// Play implements party.Player.
func (Silent) Play() error { return ErrUnavailable }

// Pause implements party.Player.
func (Silent) Pause() {}

// Stop implements party.Player.
func (Silent) Stop() {}

// Levels implements party.Player.
func (Silent) Levels(int) []float64 { return nil }
