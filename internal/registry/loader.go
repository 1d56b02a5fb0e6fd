package registry

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"flaggingd/pkg/types"
)

// expected CSV header for gauge sample files.
var header = []string{"time", "flow_cfs", "rain_in", "par", "water_temp_c"}

// LoadDir scans a directory for *.csv gauge files and merges their samples
// into one history sorted by time ascending. Non-CSV entries are skipped.
func LoadDir(dir string) ([]types.Sample, error) {
	base, err := expandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var samples []types.Sample
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(strings.ToLower(name), ".csv") {
			continue
		}
		p := filepath.Join(abs, name)
		ss, err := loadFile(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		samples = append(samples, ss...)
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i].Time.Before(samples[j].Time) })
	return samples, nil
}

func loadFile(path string) ([]types.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(header)
	first, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, col := range header {
		if strings.TrimSpace(strings.ToLower(first[i])) != col {
			return nil, fmt.Errorf("unexpected header column %q, want %q", first[i], col)
		}
	}
	var samples []types.Sample
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		s, err := parseRow(rec)
		if err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}
	return samples, nil
}

func parseRow(rec []string) (types.Sample, error) {
	var s types.Sample
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(rec[0]))
	if err != nil {
		return s, fmt.Errorf("time %q: %w", rec[0], err)
	}
	vals := make([]float64, 4)
	for i := 0; i < 4; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[i+1]), 64)
		if err != nil {
			return s, fmt.Errorf("column %s %q: %w", header[i+1], rec[i+1], err)
		}
		vals[i] = v
	}
	s.Time = t
	s.FlowCFS = vals[0]
	s.RainIn = vals[1]
	s.PAR = vals[2]
	s.WaterTempC = vals[3]
	return s, nil
}

// expandHome expands a leading '~' to the user's home directory.
func expandHome(path string) (string, error) {
	if path == "" {
		return path, nil
	}
	if path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	// handle cases like ~/flagging/data
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}
