// Package fileio implements the spec §6 File I/O collaborator: reading
// a file into lines with delimiter auto-detection, writing lines back
// out with optional backup and safe-save (temp-write-then-rename)
// semantics, and running an external filter through a pipe. Grounded
// on the teacher's internal/config persistence discipline (FileOps,
// TempFile, the CreateTemp-then-Rename save sequence).
package fileio

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/mightemacs-go/memacs/internal/config"
)

// Delimiter identifies a line-ending convention.
type Delimiter string

const (
	DelimLF   Delimiter = "\n"
	DelimCRLF Delimiter = "\r\n"
	DelimCR   Delimiter = "\r"
)

// defaultDelimiter is used for new, empty, or delimiter-less files.
const defaultDelimiter = DelimLF

// FileOps is the teacher's config.FileOps seam, reused verbatim so
// fileio and config share one file-persistence test double.
type FileOps = config.FileOps

// TempFile is the teacher's config.TempFile seam.
type TempFile = config.TempFile

// OSFileOps is the teacher's real-OS FileOps implementation.
type OSFileOps = config.OSFileOps

// ErrNoSuchFile reports a read against a path that does not exist.
var ErrNoSuchFile = errors.New("fileio: no such file")

// IO is the File I/O collaborator. The zero value uses OSFileOps; tests
// substitute a fake FileOps to exercise read/write without touching
// disk, the same pattern config_test.go uses for Manager.
type IO struct {
	Ops FileOps
}

// New returns an IO backed by real OS file operations.
func New() *IO { return &IO{Ops: OSFileOps{}} }

func (io *IO) ops() FileOps {
	if io.Ops == nil {
		return OSFileOps{}
	}
	return io.Ops
}

// ReadFile reads path and splits it into lines, auto-detecting the
// delimiter in use: the first "\n" or "\r" encountered decides whether
// the file is LF, CRLF, or bare-CR delimited (spec §6: "ReadFile(path)
// -> (lines, delimiter)"). An empty file reports defaultDelimiter.
func (io *IO) ReadFile(path string) (lines []string, delim Delimiter, err error) {
	data, err := io.ops().ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("%w: %s", ErrNoSuchFile, path)
		}
		return nil, "", fmt.Errorf("fileio: read %s: %w", path, err)
	}
	return SplitLines(data)
}

// SplitLines splits data into lines and reports the delimiter the first
// line ending used. A trailing delimiter does not produce a final empty
// line, matching the text store's buffer-of-lines model (spec §1).
func SplitLines(data []byte) (lines []string, delim Delimiter, err error) {
	if len(data) == 0 {
		return nil, defaultDelimiter, nil
	}
	delim = defaultDelimiter
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		switch {
		case data[i] == '\r' && i+1 < len(data) && data[i+1] == '\n':
			delim = DelimCRLF
		case data[i] == '\r':
			delim = DelimCR
		default:
			delim = DelimLF
		}
	}

	sep := []byte(delim)
	trimmed := data
	trailingDelim := bytes.HasSuffix(trimmed, sep)
	if trailingDelim {
		trimmed = trimmed[:len(trimmed)-len(sep)]
	}
	if len(trimmed) == 0 {
		return []string{}, delim, nil
	}
	parts := bytes.Split(trimmed, sep)
	lines = make([]string, len(parts))
	for i, p := range parts {
		lines[i] = string(p)
	}
	return lines, delim, nil
}

// JoinLines reassembles lines into a byte slice using delim, always
// terminating the file with a trailing delimiter (the conventional
// "text file ends in a newline" behavior).
func JoinLines(lines []string, delim Delimiter) []byte {
	if delim == "" {
		delim = defaultDelimiter
	}
	var buf bytes.Buffer
	for _, l := range lines {
		buf.WriteString(l)
		buf.WriteString(string(delim))
	}
	return buf.Bytes()
}

// WriteOptions controls WriteFile's save discipline (spec §6:
// "safe-save on/off", "backup-extension").
type WriteOptions struct {
	// Safe, when true, writes to a sibling temp file and renames it
	// over path, so a crash mid-write never corrupts the file in
	// place (teacher's config Save/writeTempConfigWithOps idiom).
	Safe bool
	// BackupExt, when non-empty, copies any existing file at path to
	// path+BackupExt before writing the new content.
	BackupExt string
	// Mode is the permission bits for a newly created file.
	Mode os.FileMode
}

// WriteFile writes lines back to path using delim, honoring opts' safe
// and backup settings (spec §6: "WriteFile(path, lines, delimiter,
// mode)").
func (io *IO) WriteFile(path string, lines []string, delim Delimiter, opts WriteOptions) error {
	ops := io.ops()
	if opts.Mode == 0 {
		opts.Mode = 0644
	}
	data := JoinLines(lines, delim)

	if opts.BackupExt != "" {
		if _, err := ops.Stat(path); err == nil {
			if err := io.backup(path, opts.BackupExt); err != nil {
				return err
			}
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("fileio: stat %s: %w", path, err)
		}
	}

	if !opts.Safe {
		if err := ops.WriteFile(path, data, opts.Mode); err != nil {
			return fmt.Errorf("fileio: write %s: %w", path, err)
		}
		return nil
	}
	return io.safeWrite(path, data, opts.Mode)
}

func (io *IO) backup(path, ext string) error {
	ops := io.ops()
	backupPath := path + ext
	data, err := ops.ReadFile(path)
	if err != nil {
		return fmt.Errorf("fileio: backup read %s: %w", path, err)
	}
	if err := ops.WriteFile(backupPath, data, 0644); err != nil {
		return fmt.Errorf("fileio: backup write %s: %w", backupPath, err)
	}
	return nil
}

// safeWrite implements the temp-write-then-rename idiom from the
// teacher's config.Manager.SaveWithFileOps: write to a CreateTemp
// sibling in path's directory, chmod it (non-Windows), then
// atomically Rename it over path.
func (io *IO) safeWrite(path string, data []byte, mode os.FileMode) error {
	ops := io.ops()
	dir := filepath.Dir(path)
	tmp, err := ops.CreateTemp(dir, ".memacs-*.tmp")
	if err != nil {
		return fmt.Errorf("fileio: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if runtime.GOOS != "windows" {
		_ = ops.Chmod(tmpName, mode)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = ops.Remove(tmpName)
		return fmt.Errorf("fileio: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = ops.Remove(tmpName)
		return fmt.Errorf("fileio: close temp file: %w", err)
	}
	if runtime.GOOS == "windows" {
		_ = ops.Remove(path)
	}
	if err := ops.Rename(tmpName, path); err != nil {
		_ = ops.Remove(tmpName)
		return fmt.Errorf("fileio: replace %s: %w", path, err)
	}
	return nil
}

// Exists reports whether path currently exists.
func (io *IO) Exists(path string) bool {
	_, err := io.ops().Stat(path)
	return err == nil
}
