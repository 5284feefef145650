package dictionary

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/edsrzf/mmap-go"
)

// ErrCorpusUnavailable wraps any failure to open or map the corpus file.
var ErrCorpusUnavailable = errors.New("corpus unavailable")

// LoadFile maps the corpus read-only and returns its lines.
func LoadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorpusUnavailable, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorpusUnavailable, err)
	}
	// пустой файл отобразить нельзя
	if st.Size() == 0 {
		return nil, nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: mmap %s: %v", ErrCorpusUnavailable, path, err)
	}
	defer m.Unmap()

	// string() копирует данные, так что строки переживают Unmap
	return SplitLines(string(m)), nil
}

// SplitLines splits on '\n' and strips a trailing '\r' from every line.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
