package util

import (
	"log/slog"
	"os"
)

// CloseFile closes f and logs instead of returning the error, for paths
// where a close failure can no longer change the outcome.
func CloseFile(f *os.File) {
	if err := f.Close(); err != nil {
		slog.Error("close file", "path", f.Name(), "err", err)
	}
}
