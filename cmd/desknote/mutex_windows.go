//go:build windows

package main

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows"

	"github.com/desknote/desknote/config"
	"github.com/desknote/desknote/util/log"
)

var mutex windows.Handle

// acquireLock creates the named single-instance mutex. It reports false
// when another instance created it first.
func acquireLock() (bool, error) {
	name, err := windows.UTF16PtrFromString(config.AppID + "_SingleInstanceMutex")
	if err != nil {
		return false, err
	}

	h, err := windows.CreateMutex(nil, true, name)
	if errors.Is(err, windows.ERROR_ALREADY_EXISTS) {
		if h != 0 {
			windows.CloseHandle(h)
		}
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to create mutex: %w", err)
	}
	mutex = h
	return true, nil
}

// releaseLock releases and closes the mutex. Safe to call more than once.
func releaseLock() {
	if mutex == 0 {
		return
	}
	if err := windows.ReleaseMutex(mutex); err != nil {
		log.Warnf("Failed to release mutex: %v", err)
	}
	if err := windows.CloseHandle(mutex); err != nil {
		log.Warnf("Failed to close mutex handle: %v", err)
	}
	mutex = 0
}
