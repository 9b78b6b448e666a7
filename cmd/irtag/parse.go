package main

import (
	"strconv"

	"github.com/sparques/irtag/internal/errors"
)

// parseUint accepts decimal or 0x-prefixed hex.
func parseUint(flag, s string, bits int) (uint64, error) {
	v, err := strconv.ParseUint(s, 0, bits)
	if err != nil {
		return 0, errors.WrapArgError(err, flag, s)
	}
	return v, nil
}
