//go:build unix

package main

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFFprobe writes a shell script that answers like ffprobe for files
// named good*, and fails for everything else.
func fakeFFprobe(t *testing.T) string {
	t.Helper()
	script := `#!/bin/sh
for last; do :; done
case "$(basename "$last")" in
good*)
	echo '{"streams":[{"index":0,"codec_type":"video","codec_name":"h264","r_frame_rate":"24/1"},{"index":1,"codec_type":"audio","codec_name":"aac"}],"format":{"format_name":"matroska,webm","duration":"65.0","bit_rate":"1000"}}'
	;;
*)
	echo "$last: Invalid data found when processing input" >&2
	exit 1
	;;
esac
`
	path := filepath.Join(t.TempDir(), "ffprobe")
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	return path
}

func TestScan_EndToEnd(t *testing.T) {
	clearEnv(t)
	ffprobe := fakeFFprobe(t)

	src := t.TempDir()
	for _, name := range []string{"good.mp4", "bad.mkv", "readme.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(src, name), []byte("x"), 0644))
	}
	output := filepath.Join(t.TempDir(), "metadata.json")

	stdout, stderr, err := execute(t, "scan", src, "-o", output, "--ffprobe", ffprobe, "--no-color")
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"file_name":"good.mp4","extension":".mp4","has_audio":true,"frame_rate":24.0,"duration":"1分5秒","bit_rate":"1000"}]`,
		string(data))

	assert.Contains(t, stderr, "bad.mkv")
	assert.Contains(t, stdout, "SUMMARY")
	assert.Contains(t, stdout, "1 of 2 probed")
}

func TestScan_ReportToStdout(t *testing.T) {
	clearEnv(t)
	ffprobe := fakeFFprobe(t)

	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "good.flv"), []byte("x"), 0644))

	stdout, stderr, err := execute(t, "scan", src, "-o", "-", "--ffprobe", ffprobe, "--no-color")
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &records), "stdout must hold only the report: %q", stdout)
	require.Len(t, records, 1)
	assert.Equal(t, "good.flv", records[0]["file_name"])
	assert.Contains(t, stderr, "SUMMARY")
}

func TestScan_JSONEvents(t *testing.T) {
	clearEnv(t)
	ffprobe := fakeFFprobe(t)

	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "good.avi"), []byte("x"), 0644))
	output := filepath.Join(t.TempDir(), "metadata.json")

	stdout, _, err := execute(t, "scan", src, "-o", output, "--ffprobe", ffprobe, "--json")
	require.NoError(t, err)

	var types []string
	scanner := bufio.NewScanner(strings.NewReader(stdout))
	for scanner.Scan() {
		var ev map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &ev))
		types = append(types, ev["type"].(string))
	}
	assert.Equal(t, []string{"hardware", "scan_started", "file_progress", "verbose", "file_probed", "report_saved", "scan_complete"}, types)
}

func readEventTypes(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var types []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var ev map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &ev))
		types = append(types, ev["type"].(string))
	}
	require.NoError(t, scanner.Err())
	return types
}

func TestScan_EventsFileAlongsideTerminal(t *testing.T) {
	clearEnv(t)
	ffprobe := fakeFFprobe(t)

	src := t.TempDir()
	for _, name := range []string{"good.mov", "bad.mp4"} {
		require.NoError(t, os.WriteFile(filepath.Join(src, name), []byte("x"), 0644))
	}
	output := filepath.Join(t.TempDir(), "metadata.json")
	events := filepath.Join(t.TempDir(), "events.ndjson")

	stdout, _, err := execute(t, "scan", src, "-o", output, "--ffprobe", ffprobe, "--events", events, "--no-color")
	require.NoError(t, err)

	assert.Contains(t, stdout, "SUMMARY")
	assert.Equal(t, []string{
		"hardware", "scan_started",
		"file_progress", "file_failed",
		"file_progress", "verbose", "file_probed",
		"report_saved", "scan_complete",
	}, readEventTypes(t, events))
}

func TestScan_EventsFileUnwritable(t *testing.T) {
	clearEnv(t)
	ffprobe := fakeFFprobe(t)

	src := t.TempDir()
	events := filepath.Join(t.TempDir(), "missing", "events.ndjson")

	_, _, err := execute(t, "scan", src, "-o", filepath.Join(t.TempDir(), "m.json"), "--ffprobe", ffprobe, "--events", events)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "events file")
}

func TestScan_VerboseShowsStreams(t *testing.T) {
	clearEnv(t)
	ffprobe := fakeFFprobe(t)

	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "good.mkv"), []byte("x"), 0644))
	output := filepath.Join(t.TempDir(), "metadata.json")

	stdout, _, err := execute(t, "scan", src, "-o", output, "--ffprobe", ffprobe, "-v", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, stdout, "good.mkv: matroska,webm, #0 video h264, #1 audio aac")

	stdout, _, err = execute(t, "scan", src, "-o", output, "--ffprobe", ffprobe, "--no-color")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "matroska,webm")
}
