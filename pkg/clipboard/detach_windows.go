//go:build windows

package clipboard

import "syscall"

func detachedSysProcAttr() *syscall.SysProcAttr {
	return nil
}
