package core

import (
	"errors"
	"os"
)

// https://stackoverflow.com/a/12518877
func FileExists(filePath string) (bool, error) {
	if _, err := os.Stat(filePath); err == nil {
		return true, nil
	} else if errors.Is(err, os.ErrNotExist) {
		return false, nil
	} else {
		return false, err
	}
}

func Abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
