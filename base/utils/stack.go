package utils

import (
	"runtime"
)

// Stack returns a formatted stack trace, skipping the given number of
// frames.
func Stack(skip int) []byte {
	buf := make([]byte, 4096)
	for {
		n := runtime.Stack(buf, false)
		if n < len(buf) {
			return trimFrames(buf[:n], skip)
		}
		buf = make([]byte, 2*len(buf))
	}
}

// trimFrames drops the goroutine header's first skip frames (two lines
// per frame after the header line).
func trimFrames(stack []byte, skip int) []byte {
	if skip <= 0 {
		return stack
	}
	lines := 1 + skip*2
	idx := 0
	for i, b := range stack {
		if b == '\n' {
			lines--
			if lines == 0 {
				idx = i + 1
				break
			}
		}
	}
	if idx >= len(stack) {
		return stack
	}
	return stack[idx:]
}
