package envutil

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Lookup reports the trimmed value of name and whether it was set to a non-empty value.
func Lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func String(name string, def string) string {
	if v, ok := Lookup(name); ok {
		return v
	}
	return def
}

func Int(name string, def int) int {
	v, ok := Lookup(name)
	if !ok {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func Bool(name string, def bool) bool {
	v, ok := Lookup(name)
	if !ok {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}

// Seconds reads an integer number of seconds; non-positive values fall back to def.
func Seconds(name string, def time.Duration) time.Duration {
	v, ok := Lookup(name)
	if !ok {
		return def
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		return def
	}
	return time.Duration(secs) * time.Second
}

// List splits a comma separated value, dropping empty entries.
func List(name string, def []string) []string {
	v, ok := Lookup(name)
	if !ok {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
