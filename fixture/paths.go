package fixture

import (
	"fmt"
	"path/filepath"
)

const artifactPrefix = "ps_dump"

// DumpFilePath returns the full-database dump location. An explicit dump-file
// config value wins over the derived store-dir path.
func (m *Manager) DumpFilePath() string {
	if m.config.DumpFile != "" {
		return m.config.DumpFile
	}

	return filepath.Join(m.config.StoreDir, fmt.Sprintf("%s_%s_%s.sql", artifactPrefix, m.config.Database, m.config.Version))
}

func (m *Manager) TableDumpFilePath(table string) string {
	return filepath.Join(m.config.StoreDir, fmt.Sprintf("%s_%s_%s_%s.sql", artifactPrefix, m.config.Database, m.config.Version, table))
}

// TableChecksumFilePath is always co-located with the table dump file.
func (m *Manager) TableChecksumFilePath(table string) string {
	return filepath.Join(m.config.StoreDir, fmt.Sprintf("%s_%s_%s_%s.md5", artifactPrefix, m.config.Database, m.config.Version, table))
}
