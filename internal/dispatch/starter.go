package dispatch

import (
	"os/exec"
	"time"
)

// startupPause gives the launched process time to initialize before its PID
// is returned to the caller.
const startupPause = 500 * time.Millisecond

// execStarter launches real processes. Bare commands resolve through PATH,
// which is how system utilities without stored paths are started.
type execStarter struct{}

func (execStarter) Start(path string, args []string) (int, error) {
	cmd := exec.Command(path, args...)
	if err := cmd.Start(); err != nil {
		return 0, err
	}
	time.Sleep(startupPause)
	pid := cmd.Process.Pid
	// Reap the child in the background so it never zombifies.
	go func() { _ = cmd.Wait() }()
	return pid, nil
}
