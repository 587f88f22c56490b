package kbroker

import (
	"reflect"
	"runtime/debug"
	"sync"
)

var (
	v     string
	vOnce sync.Once
)

// Version reports the module version of kbroker linked into the running
// binary, or "dev" when it was built from a working copy.
func Version() string {
	vOnce.Do(func() {
		// Determine our package name without hardcoding a string
		type getPackageName struct{}
		thisPackagePath := reflect.TypeOf(getPackageName{}).PkgPath()

		if bi, ok := debug.ReadBuildInfo(); ok {
			if bi.Main.Path == thisPackagePath {
				v = bi.Main.Version
			}
			for _, dep := range bi.Deps {
				if dep.Path == thisPackagePath {
					v = dep.Version
					break
				}
			}
		}
		if v == "" || v == "(devel)" {
			v = "dev"
		}
	})
	return v
}
