package pfs

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	hashBufferSize = 4096
	mtimeLayout    = "2006-01-02T15:04:05.000Z"
)

// FileStat is a point-in-time snapshot of one filesystem entry.
type FileStat struct {
	Size        uint64  `json:"size"`
	MTime       string  `json:"mtime"`
	IsDirectory bool    `json:"isDirectory"`
	Digest      *string `json:"digest"`
}

// StatInfo builds a snapshot from already obtained file info. It never carries a digest.
func StatInfo(info fs.FileInfo) FileStat {
	size := info.Size()
	if size < 0 {
		size = 0
	}
	return FileStat{
		Size:        uint64(size),
		MTime:       FormatTime(info.ModTime()),
		IsDirectory: info.IsDir(),
	}
}

// StatPath stats abs and, for regular files, hashes the content.
//
// The digest is only attached when the number of bytes hashed equals the size
// reported by the initial stat. A file that changes while being read yields a
// snapshot without digest.
func StatPath(abs string) (FileStat, error) {
	info, err := os.Stat(abs)
	if err != nil {
		return FileStat{}, newError(ErrReadFailure, "metadata "+abs, err)
	}
	stat := StatInfo(info)
	if stat.IsDirectory || !info.Mode().IsRegular() {
		return stat, nil
	}

	f, err := os.Open(abs)
	if err != nil {
		return FileStat{}, newError(ErrReadFailure, abs, err)
	}
	defer f.Close()

	digest, err := digestReader(f, stat.Size)
	if err != nil {
		return FileStat{}, newError(ErrReadFailure, abs, err)
	}
	stat.Digest = digest
	return stat, nil
}

// digestReader hashes r until EOF and returns the hex digest, or nil when the
// number of bytes read differs from expected.
func digestReader(r io.Reader, expected uint64) (*string, error) {
	h := sha256.New()
	buf := make([]byte, hashBufferSize)
	var n uint64
	for {
		read, err := r.Read(buf)
		if read > 0 {
			n += uint64(read)
			h.Write(buf[:read])
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	if n != expected {
		return nil, nil
	}
	digest := hex.EncodeToString(h.Sum(nil))
	return &digest, nil
}

// HasDigest reports whether the snapshot carries a content digest.
func (s FileStat) HasDigest() bool {
	return s.Digest != nil
}

// ModTime parses MTime.
func (s FileStat) ModTime() (time.Time, error) {
	return ParseTime(s.MTime)
}

// FormatTime renders t as RFC3339 in UTC with millisecond precision, e.g. "2018-01-26T18:30:09.453Z".
func FormatTime(t time.Time) string {
	return t.UTC().Format(mtimeLayout)
}

// ParseTime parses an RFC3339 timestamp.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, newError(ErrParseFailure, "parse system time", err)
	}
	return t, nil
}

// FormatSize renders a byte count for humans, e.g. "1.5 KiB".
func FormatSize(size uint64) string {
	return humanize.IBytes(size)
}
