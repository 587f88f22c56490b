//go:build !unix

package kbroker

import "net"

func socketError(conn net.Conn) error {
	return nil
}
