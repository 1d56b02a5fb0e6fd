package httpapi

import (
	"fmt"
	"net/url"
	"strconv"
)

// defaultHours is the trailing window returned when the query omits hours.
const defaultHours = 24

// validHours is the set of window lengths the API accepts.
var validHours = map[int]bool{1: true, 2: true, 3: true, 6: true, 12: true, 24: true, 36: true, 48: true}

// validReaches mirrors the reaches covered by the flagging model.
var validReaches = map[int]bool{2: true, 3: true, 4: true, 5: true}

// parseReaches reads the repeatable reach parameter. An absent parameter
// means all reaches (nil slice).
func parseReaches(q url.Values) ([]int, error) {
	raw := q["reach"]
	if len(raw) == 0 {
		return nil, nil
	}
	reaches := make([]int, 0, len(raw))
	for _, v := range raw {
		n, err := strconv.Atoi(v)
		if err != nil || !validReaches[n] {
			return nil, fmt.Errorf("invalid reach: %s", v)
		}
		reaches = append(reaches, n)
	}
	return reaches, nil
}

// parseHours reads the hours parameter, defaulting to defaultHours.
func parseHours(q url.Values) (int, error) {
	v := q.Get("hours")
	if v == "" {
		return defaultHours, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || !validHours[n] {
		return 0, fmt.Errorf("invalid hours: %s", v)
	}
	return n, nil
}
