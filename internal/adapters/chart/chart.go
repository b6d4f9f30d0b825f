// Package chart reads tab-separated gem and downbeat annotation files.
//
// Gem lines are "<seconds>\t<lane>" and downbeat lines are "<seconds>", each
// optionally followed by more tab-separated fields. A line that does not
// parse still yields a record, with a NaN timestamp or lane 0, so the
// catalog rejects it and reports its index alongside every other bad record.
package chart

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/okian/nowbar/internal/domain/catalog"
)

// Chart is the parsed content of a gems file and a downbeats file.
type Chart struct {
	Gems    []catalog.GemRecord
	Markers []catalog.MarkerRecord
}

// Load reads both files. An empty downbeats path yields no markers.
func Load(gemsPath, downbeatsPath string) (Chart, error) {
	var c Chart
	var err error

	c.Gems, err = LoadGems(gemsPath)
	if err != nil {
		return Chart{}, err
	}
	if downbeatsPath == "" {
		return c, nil
	}
	c.Markers, err = LoadMarkers(downbeatsPath)
	if err != nil {
		return Chart{}, err
	}
	return c, nil
}

// LoadGems reads a gems file.
func LoadGems(path string) ([]catalog.GemRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	defer f.Close()
	return ParseGems(f)
}

// LoadMarkers reads a downbeats file.
func LoadMarkers(path string) ([]catalog.MarkerRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	defer f.Close()
	return ParseMarkers(f)
}

// ParseGems parses gem lines from r.
func ParseGems(r io.Reader) ([]catalog.GemRecord, error) {
	var out []catalog.GemRecord
	err := eachLine(r, func(fields []string) {
		rec := catalog.GemRecord{Timestamp: parseSeconds(fields[0])}
		if len(fields) > 1 {
			if lane, err := strconv.Atoi(strings.TrimSpace(fields[1])); err == nil {
				rec.Lane = lane
			}
		}
		out = append(out, rec)
	})
	return out, err
}

// ParseMarkers parses downbeat lines from r.
func ParseMarkers(r io.Reader) ([]catalog.MarkerRecord, error) {
	var out []catalog.MarkerRecord
	err := eachLine(r, func(fields []string) {
		out = append(out, catalog.MarkerRecord{Timestamp: parseSeconds(fields[0])})
	})
	return out, err
}

func eachLine(r io.Reader, fn func(fields []string)) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fn(strings.Split(line, "\t"))
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrRead, err)
	}
	return nil
}

func parseSeconds(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
