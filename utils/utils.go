package utils

import "strings"

// AddToLogMessage appends one line to a request's accumulated log buffer.
// Handlers build the whole message and flush it with a single print, so log
// lines from concurrent requests never interleave.
func AddToLogMessage(logMessages *strings.Builder, line string) {
	logMessages.WriteString(line)
	logMessages.WriteString(";\n")
}
