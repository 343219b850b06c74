//go:build !unix

package ffprobe

import (
	"os/exec"
	"time"
)

// configureProcess keeps exec.CommandContext's default kill of the
// ffprobe process on cancellation.
func configureProcess(cmd *exec.Cmd) {
	cmd.WaitDelay = 2 * time.Second
}
