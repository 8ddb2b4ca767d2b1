//go:build windows

package index

import "golang.org/x/sys/windows"

// replaceFile moves src over dst. MOVEFILE_WRITE_THROUGH makes the call
// return only after the move has been flushed to disk.
func replaceFile(src, dst string) error {
	from, err := windows.UTF16PtrFromString(src)
	if err != nil {
		return err
	}
	to, err := windows.UTF16PtrFromString(dst)
	if err != nil {
		return err
	}
	return windows.MoveFileEx(from, to, windows.MOVEFILE_REPLACE_EXISTING|windows.MOVEFILE_WRITE_THROUGH)
}
