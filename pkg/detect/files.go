package detect

import (
	"bufio"
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

// FileExistence fires when any of Paths exists. With Executable set a path
// only counts when it is a regular file or symlink the process may execute.
type FileExistence struct {
	ID         string
	Cat        Category
	Paths      []string
	Executable bool
}

func (c *FileExistence) Name() string       { return c.ID }
func (c *FileExistence) Category() Category { return c.Cat }

func (c *FileExistence) Detect(_ context.Context) (bool, error) {
	for _, p := range c.Paths {
		if c.matches(p) {
			return true, nil
		}
	}
	return false, nil
}

func (c *FileExistence) matches(path string) bool {
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}
	if !c.Executable {
		return true
	}
	mode := info.Mode()
	if !mode.IsRegular() && mode&fs.ModeSymlink == 0 {
		return false
	}
	return unix.Access(path, unix.X_OK) == nil
}

// FileContains fires when a line of the file at Path contains one of
// Patterns. A missing file is an error.
type FileContains struct {
	ID       string
	Cat      Category
	Path     string
	Patterns []string
}

func (c *FileContains) Name() string       { return c.ID }
func (c *FileContains) Category() Category { return c.Cat }

func (c *FileContains) Detect(ctx context.Context) (bool, error) {
	f, err := os.Open(c.Path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		line := sc.Text()
		for _, p := range c.Patterns {
			if strings.Contains(line, p) {
				return true, nil
			}
		}
	}
	if err := sc.Err(); err != nil && !errors.Is(err, bufio.ErrTooLong) {
		return false, err
	}
	return false, nil
}

// NewMapsScan fires when the process's memory map references Frida or a
// gadget library.
func NewMapsScan(path string) *FileContains {
	if path == "" {
		path = "/proc/self/maps"
	}
	return &FileContains{ID: "frida_maps", Cat: CategoryHook, Path: path, Patterns: []string{"frida", "gadget"}}
}
