//go:build !windows

package clipboard

import "syscall"

// detachedSysProcAttr puts the child in its own session so it survives the
// parent's exit.
func detachedSysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
