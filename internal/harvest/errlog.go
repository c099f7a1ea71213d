package harvest

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const errorStamp = "2006_01_02_15_04_05"

// ErrorLog is the batch run's error file. The file is created lazily on
// the first entry, so a clean run leaves nothing behind.
type ErrorLog struct {
	dir string
	f   *os.File
}

// NewErrorLog returns an ErrorLog that will create its file in dir.
func NewErrorLog(dir string) *ErrorLog {
	return &ErrorLog{dir: dir}
}

// Logf appends one timestamped entry to the error file.
func (l *ErrorLog) Logf(format string, args ...any) error {
	if l.f == nil {
		name := filepath.Join(l.dir, fmt.Sprintf("Error_%s.txt", time.Now().Format(errorStamp)))
		f, err := os.Create(name)
		if err != nil {
			return fmt.Errorf("create error file: %w", err)
		}
		l.f = f
	}
	_, err := fmt.Fprintf(l.f, "%s: %s\n", time.Now().Format(errorStamp), fmt.Sprintf(format, args...))
	return err
}

// Path returns the error file path, or "" when nothing was logged.
func (l *ErrorLog) Path() string {
	if l.f == nil {
		return ""
	}
	return l.f.Name()
}

// Close closes the error file if one was created.
func (l *ErrorLog) Close() error {
	if l.f == nil {
		return nil
	}
	return l.f.Close()
}
