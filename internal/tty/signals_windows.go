//go:build windows

package tty

import "os"

func interruptSignals() []os.Signal {
	return []os.Signal{os.Interrupt}
}
