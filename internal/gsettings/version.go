package gsettings

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// MinimumToolVersion is the oldest settings tool release known to
// print typed scalars the way Store expects.
const MinimumToolVersion = "2.40.0"

// CheckTool runs "<tool> --version" and returns the reported version.
// It fails only when the tool itself cannot be run.
func CheckTool(r Runner, tool string) (string, error) {
	if tool == "" {
		tool = DefaultTool
	}

	out, err := r.Run([]string{tool, "--version"})
	if err != nil {
		return "", fmt.Errorf("check %s: %w", tool, err)
	}

	return strings.TrimSpace(string(out)), nil
}

// IsSupportedVersion reports whether version is at least MinimumToolVersion.
// Versions that do not parse as semver are treated as supported.
func IsSupportedVersion(version string) bool {
	v := normalize(version)
	if !semver.IsValid(v) {
		return true
	}

	return semver.Compare(v, normalize(MinimumToolVersion)) >= 0
}

// normalize adds a "v" prefix to the version string if it's missing.
// The semver package strictly requires the "v" prefix (e.g., "v1.2.3").
func normalize(v string) string {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "v") {
		return "v" + v
	}
	return v
}
