// Package maek is a small, hackable, content-addressed parallel build
// engine. A build description — an ordinary Go program, commonly called a
// "maekfile" — imports this package, registers tasks with RULE, CPP, and
// LINK, then calls Update to drive the targets it names (spec.md §6).
package maek

import (
	"context"
	"runtime"

	"maek/internal/adapters/cas"
	"maek/internal/adapters/config"
	"maek/internal/adapters/fs"
	"maek/internal/adapters/logger"
	"maek/internal/adapters/shell"
	"maek/internal/core/domain"
	"maek/internal/core/ports"
	"maek/internal/driver"
	"maek/internal/engine/limiter"
	"maek/internal/engine/resolver"
	"maek/internal/platform"
)

// OS is the platform tag this process is running on: "windows", "macos",
// or "linux" (spec.md §6). Resolved once at package init; an unrecognized
// runtime.GOOS is fatal at startup, per the platform suffix table's
// "unknown platform" rule.
var OS string

// Options is the rule-authoring options surface (spec.md §6): global
// defaults merged with per-call overrides passed to CPP and LINK. Unlike
// the distilled spec's dynamically-keyed options map, Go's static struct
// already rejects unknown keys at compile time, so there is no runtime
// "unknown option" check to perform here — see DESIGN.md.
type Options struct {
	ObjPrefix string
	ObjSuffix string
	ExeSuffix string
	Depends   []string
	CPPFlags  []string
	LinkLibs  []string
}

// Defaults holds the global option values CPP and LINK fall back to when a
// call doesn't override them. Populated at package init with the
// platform's default suffixes and the conventional "objs/" prefix.
var Defaults Options

// compiler is the toolchain command CPP and LINK both invoke, on every
// platform (spec.md §4.7/§4.8 give the same c++ invocation as the running example;
// the exact command string is deliberately out of this package's scope
// beyond matching that example, since spec.md §1 excludes "platform
// toolchain command strings").
const compiler = "c++"

func init() {
	tag, err := platform.Current()
	if err != nil {
		panic(err)
	}
	OS = tag

	suf, err := platform.SuffixesFor(OS)
	if err != nil {
		panic(err)
	}
	Defaults = Options{
		ObjPrefix: "objs/",
		ObjSuffix: suf.Obj,
		ExeSuffix: suf.Exe,
	}
}

var registry = domain.NewRegistry()

// Registry returns the package-level task registry that RULE, CPP, and
// LINK populate. Exported for internal/app's graft-wired CLI, which drives
// the same registry through a manually assembled driver.Driver instead of
// calling Update directly.
func Registry() *domain.Registry {
	return registry
}

func merge(opts []Options) Options {
	o := Defaults
	for _, override := range opts {
		if override.ObjPrefix != "" {
			o.ObjPrefix = override.ObjPrefix
		}
		if override.ObjSuffix != "" {
			o.ObjSuffix = override.ObjSuffix
		}
		if override.ExeSuffix != "" {
			o.ExeSuffix = override.ExeSuffix
		}
		if len(override.Depends) > 0 {
			o.Depends = append(o.Depends, override.Depends...)
		}
		if len(override.CPPFlags) > 0 {
			o.CPPFlags = append(o.CPPFlags, override.CPPFlags...)
		}
		if len(override.LinkLibs) > 0 {
			o.LinkLibs = append(o.LinkLibs, override.LinkLibs...)
		}
	}
	return o
}

// RULE registers a generic recipe task producing targets from
// prerequisites by running recipe's commands in order (spec.md §4.6). A
// second registration for any of targets replaces the earlier task for
// that target (Invariant A).
func RULE(targets, prerequisites []string, recipe [][]string) {
	registry.AddTask(&domain.Task{
		Targets:       domain.InternAll(domain.NormalizeAll(targets)),
		Prerequisites: domain.InternAll(domain.NormalizeAll(prerequisites)),
		Recipe:        recipe,
		Label:         ruleLabel(targets),
		Kind:          domain.KindRule,
	})
}

// CPP registers a compile task turning source into an object file,
// returning the derived object path (spec.md §4.7). objectBase defaults to
// the source's file name (directory dropped) with its extension stripped,
// under opts.ObjPrefix.
func CPP(source, objectBase string, opts ...Options) string {
	o := merge(opts)
	if objectBase == "" {
		objectBase = o.ObjPrefix + stripExt(baseName(source))
	}

	object := objectBase + o.ObjSuffix
	depFile := objectBase + ".d"
	source = domain.NormalizePath(source)

	explicit := append([]string{source}, domain.NormalizeAll(o.Depends)...)

	compileCmd := append([]string{compiler, "-std=c++20", "-Wall", "-Werror", "-g"}, o.CPPFlags...)
	compileCmd = append(compileCmd, "-c", "-o", object, source)

	probeCmd := append([]string{compiler, "-std=c++20"}, o.CPPFlags...)
	probeCmd = append(probeCmd, "-MM", "-MG", "-MT", "x ", "-MF", depFile, source)

	registry.AddTask(&domain.Task{
		Targets:       domain.InternAll([]string{object}),
		Prerequisites: domain.InternAll(explicit),
		Label:         "compile " + source,
		Kind:          domain.KindCompile,
		Source:        domain.NewInternedString(source),
		Object:        domain.NewInternedString(object),
		DepFile:       domain.NewInternedString(depFile),
		CompileCmd:    compileCmd,
		ProbeCmd:      probeCmd,
	})
	return object
}

// LINK registers a link task turning objects into an executable, returning
// the derived executable path (spec.md §4.8).
func LINK(objects []string, exeBase string, opts ...Options) string {
	o := merge(opts)
	exe := exeBase + o.ExeSuffix
	objects = domain.NormalizeAll(objects)

	linkCmd := append([]string{compiler, "-o", exe}, objects...)
	linkCmd = append(linkCmd, o.LinkLibs...)

	registry.AddTask(&domain.Task{
		Targets:       domain.InternAll([]string{exe}),
		Prerequisites: domain.InternAll(objects),
		Label:         "link " + exe,
		Kind:          domain.KindLink,
		LinkCmd:       linkCmd,
		Output:        domain.NewInternedString(exe),
	})
	return exe
}

// Update drives the named targets, wiring the engine's adapters the way a
// standalone maek binary would: a filesystem hasher, a job-limited shell
// runner, a JSON-file cache store, and an engine-level maek.yaml override
// loader (spec.md §4.9, §10).
func Update(targets ...string) error {
	log := logger.New()

	defaultOpts := ports.Options{
		Jobs:      runtime.NumCPU() + 1,
		CacheFile: "maek-cache.json",
	}
	loader := config.NewLoader(log)
	opts, err := loader.Load("maek.yaml", defaultOpts)
	if err != nil {
		return err
	}

	lim := limiter.New(opts.Jobs)
	runner := shell.New(log, lim)
	hasher := fs.NewHasher()
	store := cas.NewStore(opts.CacheFile)

	res := resolver.New(registry, runner, hasher, log)
	d := driver.New(registry, res, store, log, opts.Jobs)

	roots := domain.NormalizeAll(targets)
	if len(roots) == 0 && opts.DefaultTarget != "" {
		roots = []string{opts.DefaultTarget}
	}
	return d.Update(context.Background(), roots)
}

func ruleLabel(targets []string) string {
	if len(targets) == 0 {
		return "rule"
	}
	label := targets[0]
	for _, t := range targets[1:] {
		label += " " + t
	}
	return label
}

func baseName(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' || path[i] == '\\' {
			return path[i+1:]
		}
	}
	return path
}

func stripExt(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[:i]
		}
		if name[i] == '/' {
			break
		}
	}
	return name
}
