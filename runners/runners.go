package runners

import (
	"bufio"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ErrNotFound is returned when the executable is missing
var ErrNotFound = errors.New("executable not found")

// EnsureBin check if an executable exists at path
func EnsureBin(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(ErrNotFound, path)
		}
		return err
	}
	if info.IsDir() {
		return errors.Errorf("Executable %s is a directory", path)
	}
	return nil
}

// Run executes a command, forwarding every non empty line of stdout at info
// level and of stderr at error level while the process runs. It blocks until
// the process exits and returns its exit code. The error is only set when the
// process can't be started or waited.
func Run(logger log.FieldLogger, executable string, args []string) (int, error) {
	cmd := exec.Command(executable, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return -1, err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return -1, err
	}

	err = cmd.Start()
	if err != nil {
		return -1, errors.Wrapf(err, "can't start %s", executable)
	}

	// Both pipes must be drained until EOF before Wait closes them
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		forward(stdout, logger.Info)
	}()
	go func() {
		defer wg.Done()
		forward(stderr, logger.Error)
	}()
	wg.Wait()

	err = cmd.Wait()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode(), nil
		}
		return -1, errors.Wrapf(err, "can't wait %s", executable)
	}
	return 0, nil
}

func forward(r io.Reader, emit func(args ...interface{})) {
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line != "" {
			emit(line)
		}
		if err != nil {
			if err != io.EOF {
				// keep the child unblocked
				io.Copy(io.Discard, r)
			}
			return
		}
	}
}
