package local

import (
	"fmt"
	"io"
	"os"

	"github.com/prestafix/fixturedump/filenaming"
)

type Local struct {
	Path string
}

// Save writes the fixture artifact content to the configured local path.
func (local *Local) Save(reader io.Reader, gzip bool) error {
	path := filenaming.EnsureFileSuffix(local.Path, gzip)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("fail to create local fixture file %s, error: %v", path, err)
	}

	defer file.Close()

	if _, err = io.Copy(file, reader); err != nil {
		return fmt.Errorf("fail to write local fixture file %s, error: %v", path, err)
	}

	return nil
}
