package logging

import (
	"fmt"
	"io"
	"os"

	clog "github.com/charmbracelet/log"
)

// L is the package-level logger. It writes to stderr so that stdout stays
// reserved for the report.
var L = clog.NewWithOptions(os.Stderr, clog.Options{
	ReportTimestamp: true,
	Prefix:          "vizhener",
})

// SetDebug switches debug output on or off.
func SetDebug(enabled bool) {
	if enabled {
		L.SetLevel(clog.DebugLevel)
		return
	}
	L.SetLevel(clog.InfoLevel)
}

// SetOutput redirects the logger, mostly for tests.
func SetOutput(w io.Writer) {
	L.SetOutput(w)
}

func Debugf(format string, v ...any) {
	L.Debug(fmt.Sprintf(format, v...))
}

func Infof(format string, v ...any) {
	L.Info(fmt.Sprintf(format, v...))
}

func Warnf(format string, v ...any) {
	L.Warn(fmt.Sprintf(format, v...))
}

func Errorf(format string, v ...any) {
	L.Error(fmt.Sprintf(format, v...))
}
