package flagctl

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// WriteDemoData writes hours of synthetic hourly gauge samples ending at end,
// with a storm burst near the end so both flag colors show up. Returns the
// path of the written CSV.
func WriteDemoData(dir string, hours int, end time.Time) (string, error) {
	if hours <= 0 {
		return "", fmt.Errorf("hours must be positive, got %d", hours)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString("time,flow_cfs,rain_in,par,water_temp_c\n")
	for i := 0; i < hours; i++ {
		ts := end.Add(-time.Duration(hours-1-i) * time.Hour)
		flow := 120 + 40*math.Sin(float64(i)/12)
		rain := 0.0
		if hours > 6 && i >= hours-6 && i < hours-3 {
			rain = 0.8
		}
		par := math.Max(0, 900*math.Sin(float64(ts.Hour())*math.Pi/24))
		temp := 18 + 4*math.Sin(float64(i)/24)
		fmt.Fprintf(&sb, "%s,%.1f,%.2f,%.0f,%.1f\n", ts.Format(time.RFC3339), flow, rain, par, temp)
	}
	path := filepath.Join(dir, "demo.csv")
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
