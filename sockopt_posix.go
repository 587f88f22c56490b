//go:build unix

package kbroker

import (
	"fmt"
	"net"
	"syscall"

	"golang.org/x/sys/unix"
)

// socketError returns the error pending on the socket behind conn (SO_ERROR),
// or nil if there is none or conn does not expose its file descriptor.
func socketError(conn net.Conn) error {
	sc, ok := conn.(syscall.Conn)
	if !ok {
		return nil
	}

	rawConn, err := sc.SyscallConn()
	if err != nil {
		return fmt.Errorf("failed to get raw connection: %w", err)
	}

	var sockErr int
	var opErr error

	err = rawConn.Control(func(fd uintptr) {
		sockErr, opErr = unix.GetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_ERROR)
	})
	if err != nil {
		return fmt.Errorf("failed to control raw connection: %w", err)
	}
	if opErr != nil {
		return fmt.Errorf("failed to get socket error: %w", opErr)
	}
	if sockErr != 0 {
		return unix.Errno(sockErr)
	}
	return nil
}
