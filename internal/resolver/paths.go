package resolver

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/shinji-kodama/convargs/internal/model"
)

// resolvePaths turns the positional tokens into a source/target pair.
//
// Accepted shapes:
//
//	<dir>                 directory mode, no target
//	<source>              target derived from source with the default target extension
//	<source> <target>     explicit target file
//	<source> <targetdir>  target = targetdir/<source name>.<default target extension>
//
// Returned paths are always absolute and cleaned.
func (r *Resolver) resolvePaths(files []string) (model.ResolvedPaths, error) {
	if len(files) == 0 {
		return model.ResolvedPaths{}, model.NewUsageError(model.ErrNoSource, "", "No source file specified")
	}
	if len(files) > 2 {
		return model.ResolvedPaths{}, tooManyArguments()
	}

	// The source is always made absolute first: every later check and
	// the derived target build on it.
	source, err := anchor(files[0], "")
	if err != nil {
		return model.ResolvedPaths{}, err
	}

	// Directory mode is decided before any extension or existence check.
	if isDir(source) {
		if len(files) > 1 {
			return model.ResolvedPaths{}, tooManyArguments()
		}
		r.log.Debug("source is a directory", zap.String("source", source))
		return model.ResolvedPaths{Source: source}, nil
	}

	if !exists(source) {
		return model.ResolvedPaths{}, model.NewUsageError(model.ErrSourceNotFound, files[0],
			"Could not find the source file "+files[0])
	}

	if !r.cfg.SourceExt.Contains(Extension(source)) {
		return model.ResolvedPaths{}, model.NewUsageError(model.ErrSourceExtension, source,
			"Source file is not a valid extension: "+source)
	}

	// Without a second token the target sits next to the source and takes
	// the default target extension.
	target := ReplaceExtension(source, r.cfg.TargetExt.Default())
	if len(files) == 2 {
		target, err = r.explicitTarget(source, files[1])
		if err != nil {
			return model.ResolvedPaths{}, err
		}
	}

	// Both paths are absolute here, so "a.txt", "./a.txt" and "/wd/A.TXT"
	// all collide with each other.
	if SamePath(source, target) {
		return model.ResolvedPaths{}, model.NewUsageError(model.ErrSameFile, target,
			"Source and target files are the same")
	}

	if !r.cfg.TargetExt.Contains(Extension(target)) {
		return model.ResolvedPaths{}, model.NewUsageError(model.ErrTargetExtension, target,
			"Target file is not a valid extension: "+target)
	}

	return model.ResolvedPaths{Source: source, Target: target}, nil
}

// explicitTarget resolves the second positional token against the source.
func (r *Resolver) explicitTarget(source, token string) (string, error) {
	target, err := anchor(token, filepath.Dir(source))
	if err != nil {
		return "", err
	}

	// A token with an extension names a file; without one it names a directory.
	namesFile := Extension(token) != ""

	// The parent must exist whichever kind of target was named.
	if !isDir(filepath.Dir(target)) {
		if namesFile {
			return "", model.NewUsageError(model.ErrTargetDirUnknown, target,
				"Target file has unknown directory "+target)
		}
		return "", model.NewUsageError(model.ErrTargetDirMissing, target,
			"Target directory does not exist "+target)
	}

	if namesFile {
		return target, nil
	}

	// An extension-less token that is not a directory cannot be written to.
	if !isDir(target) {
		return "", model.NewUsageError(model.ErrTargetDirMissing, target,
			"Target directory does not exist "+target)
	}

	r.log.Debug("target is a directory", zap.String("dir", target))
	return ReplaceExtension(filepath.Join(target, filepath.Base(source)), r.cfg.TargetExt.Default()), nil
}

// anchor resolves token to an absolute, cleaned path.
//
// A bare file name (no directory component) is joined with base, or with
// the working directory when base is empty. A token that already carries a
// directory component is resolved against the working directory, exactly
// as the shell would. Either way the result is absolute, so the source and
// target of one call can be compared as plain strings.
func anchor(token, base string) (string, error) {
	path := token
	if !HasDirComponent(token) && base != "" {
		// Bare target names live next to the source.
		path = filepath.Join(base, token)
	}

	// filepath.Abs consults the working directory for relative paths and
	// cleans the result, including any trailing separator.
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", model.WrapCLIError(model.ExitGeneralError, "failed to determine the working directory", err)
	}
	return abs, nil
}

// HasDirComponent reports whether path names a directory besides the file
// itself, e.g. "out/a.csv" or "./a.csv" but not "a.csv".
func HasDirComponent(path string) bool {
	return filepath.Base(path) != path || strings.ContainsRune(path, filepath.Separator)
}

// Extension returns the lowercase extension of path without the dot,
// or "" when there is none.
func Extension(path string) string {
	return model.NormalizeExtension(filepath.Ext(path))
}

// ReplaceExtension swaps the extension of path for ext (given without dot).
// A path without extension gets ext appended.
func ReplaceExtension(path, ext string) string {
	stem := strings.TrimSuffix(path, filepath.Ext(path))
	if ext == "" {
		return stem
	}
	return stem + "." + ext
}

// SamePath compares two resolved paths case-insensitively. Both paths
// must already be absolute (see anchor).
func SamePath(a, b string) bool {
	return strings.ToLower(a) == strings.ToLower(b)
}

// exists reports whether path names anything on disk.
func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// isDir reports whether path names an existing directory.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
