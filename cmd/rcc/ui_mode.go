package main

import (
	"fmt"
	"os"
	"strings"
)

// triState is the value of the --ui and --color switches.
type triState string

const (
	stateAuto triState = "auto"
	stateOn   triState = "on"
	stateOff  triState = "off"
)

func parseTriState(flag, value string) (triState, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	switch triState(v) {
	case "":
		return stateAuto, nil
	case stateAuto, stateOn, stateOff:
		return triState(v), nil
	}
	return "", fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
}

// resolve turns auto into the result of detect.
func (s triState) resolve(detect func() bool) bool {
	if s == stateAuto {
		return detect()
	}
	return s == stateOn
}

func readUIMode(value string) (triState, error) { return parseTriState("ui", value) }

func shouldUseTUI(mode triState) bool {
	return mode.resolve(func() bool { return isTerminal(os.Stdout) })
}

// readColorMode resolves --color; auto colors terminals unless NO_COLOR is set.
func readColorMode(value string, f *os.File) (bool, error) {
	mode, err := parseTriState("color", value)
	if err != nil {
		return false, err
	}
	return mode.resolve(func() bool { return os.Getenv("NO_COLOR") == "" && isTerminal(f) }), nil
}
