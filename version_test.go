//go:build !functional

package kbroker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	// test binaries are built from the working copy
	require.Equal(t, "dev", Version())
	require.Equal(t, Version(), Version())
}
