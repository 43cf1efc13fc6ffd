package mp3

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/go-mp3"

	"github.com/satriahrh/pdfvoice/domain/repositories"
)

// Decoded samples are 16-bit stereo.
const bytesPerSample = 4

// Probe reads MP3 files to report their playback length
type Probe struct{}

// Ensure Probe implements the AudioProbe interface
var _ repositories.AudioProbe = (*Probe)(nil)

// NewProbe creates a new MP3 probe
func NewProbe() *Probe {
	return &Probe{}
}

// Duration decodes the frame headers of the file at path and returns its length in seconds
func (p *Probe) Duration(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return 0, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	length := dec.Length()
	if length <= 0 || dec.SampleRate() <= 0 {
		return 0, fmt.Errorf("unknown length for %s", path)
	}

	return float64(length) / bytesPerSample / float64(dec.SampleRate()), nil
}
