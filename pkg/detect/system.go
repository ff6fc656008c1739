package detect

import (
	"bufio"
	"context"
	"os"
	"os/exec"
	"slices"
	"strings"

	"golang.org/x/sys/unix"
)

// SELinuxPermissive fires when the enforce file reads "0".
type SELinuxPermissive struct {
	Path string
}

func (c *SELinuxPermissive) Name() string       { return "selinux_permissive" }
func (c *SELinuxPermissive) Category() Category { return CategoryRoot }

func (c *SELinuxPermissive) Detect(_ context.Context) (bool, error) {
	path := c.Path
	if path == "" {
		path = "/sys/fs/selinux/enforce"
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(string(b)) == "0", nil
}

// SystemMountRW fires when /system is mounted read-write according to a
// mounts table in /proc/mounts format.
type SystemMountRW struct {
	MountsPath string
	MountPoint string
}

func (c *SystemMountRW) Name() string       { return "system_rw" }
func (c *SystemMountRW) Category() Category { return CategoryRoot }

func (c *SystemMountRW) Detect(_ context.Context) (bool, error) {
	path := c.MountsPath
	if path == "" {
		path = "/proc/mounts"
	}
	target := c.MountPoint
	if target == "" {
		target = "/system"
	}
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 4 || fields[1] != target {
			continue
		}
		if slices.Contains(strings.Split(fields[3], ","), "rw") {
			return true, nil
		}
	}
	return false, sc.Err()
}

// KernelRelease fires when the kernel release string contains "root".
type KernelRelease struct {
	release func() (string, error)
}

func (c *KernelRelease) Name() string       { return "kernel_release" }
func (c *KernelRelease) Category() Category { return CategoryRoot }

func (c *KernelRelease) Detect(_ context.Context) (bool, error) {
	get := c.release
	if get == nil {
		get = unameRelease
	}
	rel, err := get()
	if err != nil {
		return false, err
	}
	return strings.Contains(rel, "root"), nil
}

func unameRelease() (string, error) {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return "", err
	}
	return unix.ByteSliceToString(u.Release[:]), nil
}

// CommandOnPath fires when Command resolves through $PATH.
type CommandOnPath struct {
	Command string
}

func (c *CommandOnPath) Name() string       { return "which_" + c.Command }
func (c *CommandOnPath) Category() Category { return CategoryRoot }

func (c *CommandOnPath) Detect(_ context.Context) (bool, error) {
	_, err := exec.LookPath(c.Command)
	return err == nil, nil
}
