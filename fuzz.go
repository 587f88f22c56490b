//go:build gofuzz

package kbroker

import "bytes"

// Fuzz is the go-fuzz entry point. It feeds data through the same decode and
// encode steps a connection goroutine runs.
func Fuzz(data []byte) int {
	req, _, err := decodeRequest(bytes.NewReader(data))
	if err != nil {
		return 0
	}
	if _, err := encodeResponse(req); err != nil {
		panic(err)
	}
	return 1
}
