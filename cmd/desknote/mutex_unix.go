//go:build !windows

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/desknote/desknote/config"
	"github.com/desknote/desknote/util/log"
)

var lockFile *os.File

// acquireLock takes an exclusive file lock in the temp dir. It reports false
// when another instance holds it.
func acquireLock() (bool, error) {
	path := filepath.Join(os.TempDir(), strings.ToLower(config.AppName)+".lock")
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return false, fmt.Errorf("failed to open lock file: %w", err)
	}

	err = syscall.FcntlFlock(file.Fd(), syscall.F_SETLK, &syscall.Flock_t{
		Type:   syscall.F_WRLCK,
		Whence: 0,
		Start:  0,
		Len:    0, // whole file
	})
	if err != nil {
		file.Close()
		if errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EACCES) {
			return false, nil
		}
		return false, fmt.Errorf("failed to lock %s: %w", path, err)
	}

	lockFile = file
	return true, nil
}

// releaseLock drops the lock. Safe to call more than once.
func releaseLock() {
	if lockFile == nil {
		return
	}
	if err := syscall.FcntlFlock(lockFile.Fd(), syscall.F_SETLK, &syscall.Flock_t{Type: syscall.F_UNLCK}); err != nil {
		log.Debugf("unlock: %v", err)
	}
	name := lockFile.Name()
	lockFile.Close()
	os.Remove(name)
	lockFile = nil
}
