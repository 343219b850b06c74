package ffprobe

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/floostack/transcoder/ffmpeg"

	vmerrors "github.com/five82/vidmeta/internal/errors"
)

// TranscoderProber probes files through the floostack/transcoder ffprobe
// binding. The binding has no context support, so ctx is only checked
// before the call and the timeout of CLIProber does not apply.
type TranscoderProber struct {
	// Binary is the ffprobe executable name or path.
	Binary string
}

// NewTranscoderProber creates a prober for the given ffprobe binary.
func NewTranscoderProber(binary string) *TranscoderProber {
	if binary == "" {
		binary = "ffprobe"
	}
	return &TranscoderProber{Binary: binary}
}

// Probe returns the container and stream description of path.
func (p *TranscoderProber) Probe(ctx context.Context, path string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, vmerrors.NewProbeError(path, vmerrors.NewCancelledError(err))
	}

	cfg := &ffmpeg.Config{FfprobeBinPath: p.Binary}
	metadata, err := ffmpeg.New(cfg).Input(path).GetMetadata()
	if err != nil {
		return nil, vmerrors.NewProbeError(path, fmt.Errorf("transcoder metadata: %w", err))
	}

	// The binding's metadata carries ffprobe's own JSON field names, so
	// re-encoding it lets ParseJSON handle both backends.
	raw, err := json.Marshal(metadata)
	if err != nil {
		return nil, vmerrors.NewProbeError(path, fmt.Errorf("failed to encode transcoder metadata: %w", err))
	}

	result, err := ParseJSON(raw)
	if err != nil {
		return nil, vmerrors.NewProbeError(path, err)
	}

	// Absent fields come back as empty strings from the binding.
	result.dropEmptyFields()

	return result, nil
}

func (r *Result) dropEmptyFields() {
	r.Format.Duration = nilIfEmpty(r.Format.Duration)
	r.Format.BitRate = nilIfEmpty(r.Format.BitRate)
	for i := range r.Streams {
		r.Streams[i].RFrameRate = nilIfEmpty(r.Streams[i].RFrameRate)
	}
}

func nilIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
