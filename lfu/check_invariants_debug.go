//go:build debug

// Gomega should not be dependency in non-debug build.

package lfu

import (
	"errors"

	"github.com/facebookgo/stackerr"
	. "github.com/onsi/gomega"
)

var _ = func() (_ struct{}) {
	RegisterFailHandler(gomegaFailHandler)
	return
}()

func gomegaFailHandler(message string, callerSkip ...int) {
	skip := 1
	if len(callerSkip) > 0 {
		skip += callerSkip[0]
	}
	panic(stackerr.WrapSkip(errors.New("lfu invariants are broken: "+message), skip))
}

func (c *Cache[K, V]) checkInvariants() {
	ExpectWithOffset(1, c.verify()).To(Succeed())
}
