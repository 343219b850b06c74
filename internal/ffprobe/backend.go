package ffprobe

import (
	"fmt"
	"time"

	"github.com/five82/vidmeta/internal/config"
	vmerrors "github.com/five82/vidmeta/internal/errors"
)

// NewProber returns the prober implementing backend.
// An empty backend selects the cli backend.
func NewProber(backend config.Backend, binary string, timeout time.Duration) (Prober, error) {
	if backend == "" {
		backend = config.BackendCLI
	}

	parsed, err := config.ParseBackend(string(backend))
	if err != nil {
		return nil, vmerrors.NewConfigError(fmt.Sprintf("unknown probe backend %q", backend), err)
	}

	switch parsed {
	case config.BackendTranscoder:
		return NewTranscoderProber(binary), nil
	default:
		return NewCLIProber(binary, timeout), nil
	}
}

// ForConfig returns the prober selected by cfg.
func ForConfig(cfg *config.Config) (Prober, error) {
	return NewProber(cfg.Backend, cfg.FFprobePath, cfg.ProbeTimeout.Std())
}
