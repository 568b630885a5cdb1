package diagfmt

import "path/filepath"

func formatPath(path string, mode PathMode, baseDir string) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
		return path
	case PathModeRelative:
		if baseDir == "" {
			return path
		}
		if rel, err := filepath.Rel(baseDir, path); err == nil {
			return rel
		}
		return path
	case PathModeBasename:
		return filepath.Base(path)
	case PathModeAuto:
		if len(path) > 60 {
			return filepath.Base(path)
		}
		return path
	}
	return path
}
