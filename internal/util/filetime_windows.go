//go:build windows

package util

import (
	"fmt"
	"os"
	"time"
)

type platformFileTimeProvider struct{}

// ShootTime returns mtime; Windows has no reliable ctime equivalent.
func (platformFileTimeProvider) ShootTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, fmt.Errorf("stat %s: %w", path, err)
	}
	return info.ModTime(), nil
}
