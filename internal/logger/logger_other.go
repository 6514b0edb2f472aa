//go:build !darwin && !linux && !windows
// +build !darwin,!linux,!windows

package logger

import "os"

// Terminal capabilities are not probed on platforms without a known
// ioctl or console API; messages render without color there.
const SupportsColorEscapes = false

func GetTerminalInfo(*os.File) TerminalInfo {
	return TerminalInfo{}
}

func writeStringWithColor(file *os.File, text string) {
	file.WriteString(text)
}
