package main

import (
	"strconv"

	"github.com/KirkDiggler/honor-run-forge/internal/errors"
)

// parsePlayer reads a 1-based player number argument
func parsePlayer(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, errors.InvalidArgumentf("invalid player number %q", arg)
	}
	return n, nil
}
