package filenaming

import (
	"path"
	"strings"
	"time"
)

// EnsureFileSuffix makes sure a gzipped artifact carries the .gz extension.
func EnsureFileSuffix(filename string, shouldGzip bool) string {
	if !shouldGzip {
		return filename
	}

	if strings.HasSuffix(filename, ".gz") {
		return filename
	}

	return filename + ".gz"
}

// ensureUniqueness prefixes the file name with a UTC timestamp when a unique
// name is requested, keeping any leading directories untouched. Unique names
// are only used for s3 object keys, which always use forward slashes, hence
// path rather than filepath.
func ensureUniqueness(name string, unique bool) string {
	if !unique {
		return name
	}

	dir, file := path.Split(name)
	now := time.Now().UTC().Format("20060102150405")

	return dir + now + "-" + file
}

func EnsureFileName(name string, shouldGzip, unique bool) string {
	return ensureUniqueness(EnsureFileSuffix(name, shouldGzip), unique)
}
