package tspath

import (
	"path"
	"strings"
)

// ResolvedConfigPath is a normalized absolute path to a project's
// configuration manifest. Graph and cache APIs accept only this type so
// raw user input cannot be used as a key by accident; produce values
// through ResolveConfigPath or tsconfig.ResolveProjectReferencePath.
type ResolvedConfigPath string

// ConfigPathHost is the host capability needed to resolve a project
// spec to a manifest on disk.
type ConfigPathHost interface {
	FileExists(path string) bool
}

// ResolveConfigPath resolves a user-provided project spec against dir:
// a spec naming an existing file is used verbatim, otherwise
// tsconfig.json is appended and re-tested. The second result is false
// when neither exists.
func ResolveConfigPath(host ConfigPathHost, dir, spec string) (ResolvedConfigPath, bool) {
	resolved := Resolve(dir, spec)
	if host.FileExists(resolved) {
		return ResolvedConfigPath(resolved), true
	}
	withConfig := Resolve(resolved, "tsconfig.json")
	if host.FileExists(withConfig) {
		return ResolvedConfigPath(withConfig), true
	}
	return "", false
}

// Normalize converts a path to forward slashes, collapses "." and ".."
// segments, and strips any trailing slash. All paths entering the core
// pass through here before being used as map keys or compared.
func Normalize(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	if p == "" {
		return "."
	}
	cleaned := path.Clean(p)
	return cleaned
}

// Resolve joins rel onto base unless rel is already absolute, then
// normalizes the result.
func Resolve(base, rel string) string {
	rel = strings.ReplaceAll(rel, "\\", "/")
	if path.IsAbs(rel) || hasVolumePrefix(rel) {
		return Normalize(rel)
	}
	return Normalize(base + "/" + rel)
}

// Relative returns target expressed relative to base. Both arguments are
// normalized first. If target does not live under base, enough ".."
// segments are prepended to reach the common ancestor.
func Relative(base, target string) string {
	base = Normalize(base)
	target = Normalize(target)
	if base == target {
		return "."
	}

	baseParts := splitSegments(base)
	targetParts := splitSegments(target)

	common := 0
	for common < len(baseParts) && common < len(targetParts) && baseParts[common] == targetParts[common] {
		common++
	}

	var parts []string
	for i := common; i < len(baseParts); i++ {
		parts = append(parts, "..")
	}
	parts = append(parts, targetParts[common:]...)
	if len(parts) == 0 {
		return "."
	}
	return strings.Join(parts, "/")
}

// Dir returns the directory portion of a normalized path.
func Dir(p string) string {
	return path.Dir(Normalize(p))
}

// ChangeExtension replaces the extension of p (everything from the final
// dot) with newExt. newExt must include the leading dot.
func ChangeExtension(p, newExt string) string {
	ext := path.Ext(p)
	if ext == "" {
		return p + newExt
	}
	return strings.TrimSuffix(p, ext) + newExt
}

// HasExtension reports whether p ends with ext (case-sensitive).
func HasExtension(p, ext string) bool {
	return strings.HasSuffix(p, ext)
}

// IsDeclarationFile reports whether p names a declaration output.
func IsDeclarationFile(p string) bool {
	return strings.HasSuffix(p, ".d.ts")
}

func splitSegments(p string) []string {
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// hasVolumePrefix detects Windows-style "C:/..." absolute paths after
// slash conversion.
func hasVolumePrefix(p string) bool {
	return len(p) >= 2 && p[1] == ':'
}
