package util

import "time"

// FileTimeProvider abstracts the platform-specific rule for deriving a
// video's shoot_time from filesystem metadata: Windows uses mtime,
// Unix uses min(mtime, ctime).
type FileTimeProvider interface {
	ShootTime(path string) (time.Time, error)
}

// DefaultFileTimeProvider is the platform FileTimeProvider selected at
// build time (filetime_unix.go / filetime_windows.go).
var DefaultFileTimeProvider FileTimeProvider = platformFileTimeProvider{}
