package build

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"maek/internal/core/domain"
)

func compileTestTask(dir string) *domain.Task {
	obj := filepath.Join(dir, "Player.o")
	dep := filepath.Join(dir, "Player.d")
	src := filepath.Join(dir, "Player.cpp")
	return &domain.Task{
		Targets:       domain.InternAll([]string{obj}),
		Prerequisites: domain.InternAll([]string{src}),
		Source:        domain.NewInternedString(src),
		Object:        domain.NewInternedString(obj),
		DepFile:       domain.NewInternedString(dep),
		CompileCmd:    []string{"c++", "-c", "-o", obj, src},
		ProbeCmd:      []string{"c++", "-M", "-MT", "x ", "-MF", dep, src},
		Label:         "compile:" + obj,
		Kind:          domain.KindCompile,
	}
}

func TestDiscoverHeaders_MissingDepFileYieldsNoHeaders(t *testing.T) {
	dir := t.TempDir()
	task := compileTestTask(dir)
	headers, err := discoverHeaders(task, Deps{Registry: domain.NewRegistry()})
	require.NoError(t, err)
	require.Empty(t, headers)
}

func TestDiscoverHeaders_ParsesAndDropsExplicit(t *testing.T) {
	dir := t.TempDir()
	task := compileTestTask(dir)
	src := task.Source.String()
	hdr := filepath.Join(dir, "Player.hpp")
	depContent := "x : " + src + " " + hdr + "\n"
	require.NoError(t, os.WriteFile(task.DepFile.String(), []byte(depContent), 0o644))

	headers, err := discoverHeaders(task, Deps{Registry: domain.NewRegistry()})
	require.NoError(t, err)
	require.Equal(t, []string{hdr}, headers)
}

func TestDiscoverHeaders_RejectsRegisteredTargetCollision(t *testing.T) {
	dir := t.TempDir()
	task := compileTestTask(dir)
	hdr := filepath.Join(dir, "Generated.hpp")
	require.NoError(t, os.WriteFile(task.DepFile.String(), []byte("x : "+hdr+"\n"), 0o644))

	reg := domain.NewRegistry()
	reg.AddTask(&domain.Task{Targets: domain.InternAll([]string{hdr}), Label: "gen:Generated.hpp"})

	_, err := discoverHeaders(task, Deps{Registry: reg})
	require.Error(t, err)
}

func TestCompileRun_InvalidatesRunsCompileAndProbe(t *testing.T) {
	dir := t.TempDir()
	task := compileTestTask(dir)
	require.NoError(t, os.WriteFile(task.Source.String(), []byte("// src\n"), 0o644))

	resolver := &fakeResolver{}
	runner := &fakeRunner{}
	hasher := newFakeHasher()
	d := Deps{Resolver: resolver, Runner: runner, Hasher: hasher, Logger: fakeLogger{}, Registry: domain.NewRegistry()}

	require.NoError(t, compileRun(context.Background(), task, d))
	require.Len(t, runner.runs, 2)
	require.Equal(t, task.CompileCmd, runner.runs[0])
	require.Equal(t, task.ProbeCmd, runner.runs[1])
	require.Contains(t, hasher.invalidated, task.Object.String())
	require.DirExists(t, filepath.Dir(task.Object.String()))
}

func TestCompileKey_IncludesDiscoveredHeaders(t *testing.T) {
	dir := t.TempDir()
	task := compileTestTask(dir)
	hdr := filepath.Join(dir, "Player.hpp")
	require.NoError(t, os.WriteFile(task.DepFile.String(), []byte("x : "+hdr+"\n"), 0o644))

	resolver := &fakeResolver{}
	hasher := newFakeHasher()
	d := Deps{Resolver: resolver, Runner: &fakeRunner{}, Hasher: hasher, Logger: fakeLogger{}, Registry: domain.NewRegistry()}

	key, err := compileKey(context.Background(), task, d)
	require.NoError(t, err)
	require.Equal(t, task.CompileCmd, key[0])
	require.Equal(t, task.ProbeCmd, key[1])
	records := key[2].([]string)
	require.Contains(t, records, hdr+":x")
}
