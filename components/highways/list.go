package highways

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"
)

//go:embed data/br_highways.txt
var dataFS embed.FS

const defaultListPath = "data/br_highways.txt"

// Highway is one federal highway of the catalog.
type Highway struct {
	Number int
}

// Code renders the highway the way road signs do, e.g. "BR-010".
func (h Highway) Code() string {
	return fmt.Sprintf("BR-%03d", h.Number)
}

// Value is the form value submitted for the highway, e.g. "10".
func (h Highway) Value() string {
	return strconv.Itoa(h.Number)
}

var (
	defaultOnce     sync.Once
	defaultHighways []Highway
	defaultErr      error
)

// DefaultHighways returns a copy of the embedded catalog, sorted by number.
func DefaultHighways() ([]Highway, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open(defaultListPath)
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = f.Close() }()

		list, err := LoadHighways(f)
		if err != nil {
			defaultErr = err
			return
		}
		defaultHighways = list
	})

	if defaultErr != nil {
		return nil, defaultErr
	}
	return append([]Highway{}, defaultHighways...), nil
}

// LoadHighways reads one highway per line. Lines may hold a bare number ("101")
// or a code ("BR-101"); blank lines and lines starting with # are skipped.
func LoadHighways(r io.Reader) ([]Highway, error) {
	if r == nil {
		return nil, fmt.Errorf("highways: missing reader")
	}

	scanner := bufio.NewScanner(r)
	list := make([]Highway, 0, 128)
	seen := map[int]struct{}{}

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		n, ok := ParseCode(line)
		if !ok {
			return nil, fmt.Errorf("highways: line %d: invalid highway %q", lineNo, line)
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		list = append(list, Highway{Number: n})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	sort.Slice(list, func(i, j int) bool { return list[i].Number < list[j].Number })
	return list, nil
}

// ParseCode extracts the highway number from "101", "BR-101", "br 101" or
// "BR101". Only positive numbers are accepted.
func ParseCode(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if len(s) >= 2 && strings.EqualFold(s[:2], "BR") {
		s = strings.TrimLeft(s[2:], " -")
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Contains reports whether number is part of list.
func Contains(list []Highway, number int) bool {
	idx := sort.Search(len(list), func(i int) bool { return list[i].Number >= number })
	return idx < len(list) && list[idx].Number == number
}

// Known reports whether number is part of the embedded catalog. It returns
// false when the catalog cannot be loaded.
func Known(number int) bool {
	list, err := DefaultHighways()
	if err != nil {
		return false
	}
	return Contains(list, number)
}
