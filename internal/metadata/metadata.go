// Package metadata derives report records from probe results.
package metadata

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	vmerrors "github.com/five82/vidmeta/internal/errors"
	"github.com/five82/vidmeta/internal/ffprobe"
	"github.com/five82/vidmeta/internal/util"
)

// Unknown is written for fields the probe could not supply.
const Unknown = "Unknown"

// Duration unit suffixes used in the report.
const (
	unitHours   = "時間"
	unitMinutes = "分"
	unitSeconds = "秒"
)

// Record is one entry of the metadata report.
type Record struct {
	FileName  string     `json:"file_name"`
	Extension string     `json:"extension"`
	HasAudio  bool       `json:"has_audio"`
	FrameRate *FrameRate `json:"frame_rate"`
	Duration  string     `json:"duration"`
	BitRate   string     `json:"bit_rate"`
}

// FrameRate is a frames-per-second value. It always encodes to JSON with a
// fractional part, so 24 fps is written as 24.0.
type FrameRate float64

// MarshalJSON implements json.Marshaler.
func (f FrameRate) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("unsupported frame rate value: %v", v)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return []byte(s), nil
}

// Float64 returns the frame rate as a float64.
func (f FrameRate) Float64() float64 {
	return float64(f)
}

// Extract builds the report record for path from its probe result.
func Extract(path string, probe *ffprobe.Result) Record {
	var streams []ffprobe.Stream
	var format ffprobe.Format
	if probe != nil {
		streams = probe.Streams
		format = probe.Format
	}

	return Record{
		FileName:  util.GetFilename(path),
		Extension: util.GetExtension(path),
		HasAudio:  HasAudio(streams),
		FrameRate: FirstVideoFrameRate(streams),
		Duration:  FormatDuration(ParseDuration(format.Duration)),
		BitRate:   BitRate(format),
	}
}

// HasAudio reports whether any stream is an audio stream.
func HasAudio(streams []ffprobe.Stream) bool {
	for _, s := range streams {
		if s.CodecType == ffprobe.CodecTypeAudio {
			return true
		}
	}
	return false
}

// FirstVideoFrameRate returns the frame rate of the first video stream.
// Later video streams are never consulted, even when the first one has no
// usable rate.
func FirstVideoFrameRate(streams []ffprobe.Stream) *FrameRate {
	for _, s := range streams {
		if s.CodecType != ffprobe.CodecTypeVideo {
			continue
		}
		if s.RFrameRate == nil {
			return nil
		}
		rate, ok := ParseRational(*s.RFrameRate)
		if !ok {
			return nil
		}
		fr := FrameRate(rate)
		return &fr
	}
	return nil
}

// ParseRational parses a "numerator/denominator" string of integers, such
// as "30000/1001", into its quotient. ok is false for empty or malformed
// input and for a zero denominator.
func ParseRational(s string) (value float64, ok bool) {
	if s == "" {
		return 0, false
	}

	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return 0, false
	}

	num, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return 0, false
	}
	den, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil || den == 0 {
		return 0, false
	}

	return float64(num) / float64(den), true
}

// ParseDuration converts the format duration field to seconds. A missing
// field counts as zero; a present but non-numeric one yields nil.
func ParseDuration(field *string) *float64 {
	if field == nil {
		zero := 0.0
		return &zero
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(*field), 64)
	if err != nil {
		return nil
	}
	return &d
}

// FormatDuration renders seconds as hours, minutes and seconds, truncating
// fractions. Only non-zero leading units are shown: 45 → "45秒",
// 125 → "2分5秒", 3725 → "1時間2分5秒".
//
// nil, zero and non-finite values render as Unknown. A genuine zero-length
// video is therefore indistinguishable from a missing duration.
//
// The value is truncated toward zero, then split with floor division, so a
// negative duration wraps: -5 → "59分55秒", -0.5 → "0秒".
func FormatDuration(seconds *float64) string {
	if seconds == nil {
		return Unknown
	}
	v := *seconds
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return Unknown
	}

	total := int64(v)
	hours, rem := floorDivMod(total, 3600)
	minutes, secs := floorDivMod(rem, 60)

	switch {
	case hours > 0:
		return fmt.Sprintf("%d%s%d%s%d%s", hours, unitHours, minutes, unitMinutes, secs, unitSeconds)
	case minutes > 0:
		return fmt.Sprintf("%d%s%d%s", minutes, unitMinutes, secs, unitSeconds)
	default:
		return fmt.Sprintf("%d%s", secs, unitSeconds)
	}
}

// floorDivMod returns the quotient rounded toward negative infinity and a
// remainder with the sign of d.
func floorDivMod(n, d int64) (q, r int64) {
	q, r = n/d, n%d
	if r != 0 && (r < 0) != (d < 0) {
		q--
		r += d
	}
	return q, r
}

// BitRate returns the container bit rate verbatim, or Unknown if absent.
func BitRate(format ffprobe.Format) string {
	if format.BitRate == nil {
		return Unknown
	}
	return *format.BitRate
}

// Diagnose reports probe fields that were present but could not be used,
// as KindParse errors. The record is still produced from such a probe;
// the affected fields fall back to null or Unknown.
func Diagnose(probe *ffprobe.Result) []error {
	if probe == nil {
		return nil
	}

	var errs []error
	if d := probe.Format.Duration; d != nil && ParseDuration(d) == nil {
		errs = append(errs, vmerrors.NewParseError("duration", *d))
	}
	for _, s := range probe.Streams {
		if s.CodecType != ffprobe.CodecTypeVideo {
			continue
		}
		if s.RFrameRate != nil {
			if _, ok := ParseRational(*s.RFrameRate); !ok {
				errs = append(errs, vmerrors.NewParseError("r_frame_rate", *s.RFrameRate))
			}
		}
		break
	}
	return errs
}
