package main

import "syscall"

const (
	processQueryLimitedInformation = 0x1000
	stillActive                    = 259
)

// isProcessRunning opens the process and checks it has not exited. Signals
// cannot be used for this on windows.
func isProcessRunning(pid int) bool {
	h, err := syscall.OpenProcess(processQueryLimitedInformation, false, uint32(pid))
	if err != nil {
		return false
	}
	defer syscall.CloseHandle(h)

	var code uint32
	if err := syscall.GetExitCodeProcess(h, &code); err != nil {
		return false
	}
	return code == stillActive
}
