// Package sysinfo reports the size of the primary display.
package sysinfo

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrNoDisplay is returned when no display size could be found.
var ErrNoDisplay = errors.New("sysinfo: no display found")

// resolutionPattern matches "1920x1080", "3456 x 2234" or "2880 x 1864 Retina".
var resolutionPattern = regexp.MustCompile(`(\d+)\s*x\s*(\d+)`)

func parseResolution(s string) (int, int, error) {
	m := resolutionPattern.FindStringSubmatch(s)
	if len(m) < 3 {
		return 0, 0, fmt.Errorf("%w: cannot parse %q", ErrNoDisplay, s)
	}
	width, errW := strconv.Atoi(m[1])
	height, errH := strconv.Atoi(m[2])
	if err := errors.Join(errW, errH); err != nil {
		return 0, 0, err
	}
	return width, height, nil
}

// parseXdpyinfo reads the "dimensions:" line of xdpyinfo output.
func parseXdpyinfo(out string) (int, int, error) {
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[0] == "dimensions:" {
			return parseResolution(fields[1])
		}
	}
	return 0, 0, ErrNoDisplay
}

type profilerOutput struct {
	GPUs []struct {
		Displays []struct {
			Resolution string `json:"_spdisplays_pixels"`
			Main       string `json:"spdisplays_main"`
		} `json:"spdisplays_ndrvs"`
	} `json:"SPDisplaysDataType"`
}

// parseProfiler reads the main display of `system_profiler
// SPDisplaysDataType -json` output, or the first display if none is main.
func parseProfiler(data []byte) (int, int, error) {
	var out profilerOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return 0, 0, fmt.Errorf("decoding system_profiler output: %w", err)
	}
	first := ""
	for _, gpu := range out.GPUs {
		for _, d := range gpu.Displays {
			if d.Main == "spdisplays_yes" {
				return parseResolution(d.Resolution)
			}
			if first == "" {
				first = d.Resolution
			}
		}
	}
	if first == "" {
		return 0, 0, ErrNoDisplay
	}
	return parseResolution(first)
}
