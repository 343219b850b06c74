// Package ffprobe provides functions for extracting media information using ffprobe.
package ffprobe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	vmerrors "github.com/five82/vidmeta/internal/errors"
)

// Codec types reported in a stream's codec_type field.
const (
	CodecTypeVideo = "video"
	CodecTypeAudio = "audio"
)

// Result is the container and stream description of one probed file.
// Pointer fields are nil when ffprobe omitted them.
type Result struct {
	Format  Format
	Streams []Stream
}

// Format contains container-level fields.
type Format struct {
	FormatName string
	Duration   *string
	BitRate    *string
}

// Stream contains the fields of one elementary stream.
type Stream struct {
	Index      int
	CodecType  string
	CodecName  string
	RFrameRate *string
}

// Prober describes a media file's container and streams.
type Prober interface {
	Probe(ctx context.Context, path string) (*Result, error)
}

// ProberFunc adapts a plain function to the Prober interface.
type ProberFunc func(ctx context.Context, path string) (*Result, error)

// Probe calls f(ctx, path).
func (f ProberFunc) Probe(ctx context.Context, path string) (*Result, error) {
	return f(ctx, path)
}

// ffprobeOutput represents the JSON output from ffprobe.
type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	FormatName string          `json:"format_name"`
	Duration   json.RawMessage `json:"duration"`
	BitRate    json.RawMessage `json:"bit_rate"`
}

type ffprobeStream struct {
	Index      int             `json:"index"`
	CodecType  string          `json:"codec_type"`
	CodecName  string          `json:"codec_name"`
	RFrameRate json.RawMessage `json:"r_frame_rate"`
}

// ParseJSON converts raw ffprobe JSON output into a Result.
// Exported for testing without a real ffprobe binary.
func ParseJSON(data []byte) (*Result, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	result := &Result{
		Format: Format{
			FormatName: raw.Format.FormatName,
			Duration:   rawString(raw.Format.Duration),
			BitRate:    rawString(raw.Format.BitRate),
		},
		Streams: make([]Stream, 0, len(raw.Streams)),
	}

	for _, s := range raw.Streams {
		result.Streams = append(result.Streams, Stream{
			Index:      s.Index,
			CodecType:  s.CodecType,
			CodecName:  s.CodecName,
			RFrameRate: rawString(s.RFrameRate),
		})
	}

	return result, nil
}

// rawString returns the textual value of a JSON scalar. ffprobe encodes
// numbers as strings, but bare numbers are accepted too so that other
// producers of the same shape decode identically. null, absent, objects and
// arrays yield nil.
func rawString(raw json.RawMessage) *string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		return &s
	}

	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err == nil {
		s = n.String()
		return &s
	}

	return nil
}

// CLIProber runs the ffprobe binary once per file.
type CLIProber struct {
	// Binary is the ffprobe executable name or path.
	Binary string
	// Timeout bounds each invocation. Zero disables the limit.
	Timeout time.Duration
}

// NewCLIProber creates a prober for the given ffprobe binary.
func NewCLIProber(binary string, timeout time.Duration) *CLIProber {
	if binary == "" {
		binary = "ffprobe"
	}
	return &CLIProber{Binary: binary, Timeout: timeout}
}

// Probe executes ffprobe and returns the parsed output. A hung ffprobe is
// killed once the timeout or ctx expires.
func (p *CLIProber) Probe(ctx context.Context, path string) (*Result, error) {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, p.Binary,
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		"-i", path,
	)
	configureProcess(cmd)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		return nil, vmerrors.NewProbeError(path,
			vmerrors.WrapExecError(p.Binary, err, strings.TrimSpace(stderr.String()), ctx.Err()))
	}

	result, err := ParseJSON(output)
	if err != nil {
		return nil, vmerrors.NewProbeError(path, err)
	}

	return result, nil
}
