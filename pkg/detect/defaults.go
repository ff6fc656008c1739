package detect

import (
	"time"

	"github.com/joshuapare/propkit/propstore"
)

// SuPaths are su and busybox locations checked in executable mode.
var SuPaths = []string{
	"/system/app/Superuser.apk",
	"/sbin/su",
	"/system/bin/su",
	"/system/xbin/su",
	"/data/local/xbin/su",
	"/data/local/bin/su",
	"/system/sd/xbin/su",
	"/system/bin/failsafe/su",
	"/data/local/su",
	"/su/bin/su",
	"/system/bin/.ext/.su",
	"/system/usr/we-need-root/su-backup",
	"/system/xbin/mu",
	"/system/su",
	"/system/bin/busybox",
	"/system/xbin/busybox",
	"/data/local/bin/busybox",
	"/system/etc/selinux/selinux_policy",
	"/data/data/com.superuser.supersu",
}

// RootPaths are Magisk and SuperSU artifacts; existence is enough.
var RootPaths = []string{
	"/magisk",
	"/sbin/.magisk",
	"/dev/.magisk",
	"/cache/magisk",
	"/data/adb/magisk",
	"/system/app/Superuser.apk",
	"/system/xbin/daemonsu",
}

// EmulatorPaths are files shipped by common Android emulators.
var EmulatorPaths = []string{
	"/system/bin/androVM-prop",
	"/system/bin/microvirt-prop",
	"/system/lib/libc_malloc_debug_qemu.so",
	"/system/bin/nox-prop",
	"/system/bin/microvirt-prop64",
}

// HookLibraryPaths are Xposed, Substrate and Frida artifacts.
var HookLibraryPaths = []string{
	"/system/lib/libsubstrate.so",
	"/system/lib/libxposed_art.so",
	"/system/lib/libfrida-gadget.so",
	"/data/local/tmp/frida-server",
	"/system/xbin/su",
}

// HookClasses are classes only present when a hook framework is loaded.
var HookClasses = []string{
	"de.robv.android.xposed.XposedBridge",
	"frida.Server",
}

// Config tunes the default check set.
type Config struct {
	FridaAddr      string
	ProbeTimeout   time.Duration
	ProcessCommand string
	MapsPath       string
	MountsPath     string
	SELinuxPath    string
	ExtraRootPaths []string
	// Property configures the property-tamper and build-tags checks.
	Property propstore.Options
	// Classes resolves hook classes. Nil omits the class check.
	Classes ClassResolver
}

// DefaultConfig returns the on-device defaults.
func DefaultConfig() Config {
	return Config{
		FridaAddr:      DefaultFridaAddr,
		ProbeTimeout:   DefaultProbeTimeout,
		ProcessCommand: DefaultProcessCommand,
		Property:       propstore.DefaultOptions(),
	}
}

// HookChecks returns the hook-framework checks with default settings.
func HookChecks() []Check {
	return hookChecks(DefaultConfig())
}

// RootChecks returns the root checks. src supplies ro.debuggable and
// ro.secure; nil skips the build-tags check.
func RootChecks(src PropertySource) []Check {
	return rootChecks(DefaultConfig(), src)
}

// DefaultChecks returns every check, configured by cfg. The property area is
// parsed once for the build-tags check; PropertyTamper parses it again at
// run time.
func DefaultChecks(cfg Config) []Check {
	var src PropertySource
	if s, err := propstore.Open("", cfg.Property); err == nil {
		src = s
	}
	checks := hookChecks(cfg)
	checks = append(checks, rootChecks(cfg, src)...)
	return append(checks, &PropertyTamper{Options: cfg.Property})
}

func hookChecks(cfg Config) []Check {
	checks := []Check{
		NewProcessScan(cfg.ProcessCommand),
		&PortProbe{Addr: cfg.FridaAddr, Timeout: cfg.ProbeTimeout},
		NewMapsScan(cfg.MapsPath),
		&FileExistence{ID: "emulator_files", Cat: CategoryHook, Paths: EmulatorPaths},
		&FileExistence{ID: "hook_libraries", Cat: CategoryHook, Paths: HookLibraryPaths},
	}
	if cfg.Classes != nil {
		checks = append(checks, &ClassLoaded{Resolver: cfg.Classes, Classes: HookClasses})
	}
	return checks
}

func rootChecks(cfg Config, src PropertySource) []Check {
	checks := []Check{
		&FileExistence{ID: "su_binary", Cat: CategoryRoot, Paths: SuPaths, Executable: true},
		&CommandOnPath{Command: "su"},
		&FileExistence{ID: "root_paths", Cat: CategoryRoot, Paths: append(append([]string(nil), RootPaths...), cfg.ExtraRootPaths...)},
	}
	if src != nil {
		checks = append(checks, &BuildTags{Source: src})
	}
	return append(checks,
		&SystemMountRW{MountsPath: cfg.MountsPath},
		&SELinuxPermissive{Path: cfg.SELinuxPath},
		&KernelRelease{},
	)
}
