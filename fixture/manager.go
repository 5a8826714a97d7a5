package fixture

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/prestafix/fixturedump/config"
	"github.com/prestafix/fixturedump/shell"
)

// Manager dumps and restores fixture snapshots for one database. All
// operations are synchronous and blocking, a hung external binary hangs the
// caller.
type Manager struct {
	config  *config.Config
	querier Querier
	runner  shell.Runner
}

func NewManager(config *config.Config, querier Querier, runner shell.Runner) *Manager {
	return &Manager{
		config:  config,
		querier: querier,
		runner:  runner,
	}
}

// connectionArgs builds the flags shared by mysqldump and mysql invocations.
// The password flag is only present when a password is configured.
func (m *Manager) connectionArgs() ([]string, error) {
	host, port, err := m.config.HostPort()
	if err != nil {
		return nil, err
	}

	args := []string{"-u", m.config.User, "-P", strconv.Itoa(port), "-h", host}

	if m.config.Password != "" {
		args = append(args, "-p"+m.config.Password)
	}

	return args, nil
}

func (m *Manager) dumpCommand(outFile string, tables ...string) (string, error) {
	args, err := m.connectionArgs()
	if err != nil {
		return "", err
	}

	args = append(args, m.config.Database)
	args = append(args, tables...)

	return shell.Build(m.config.MysqldumpPath, args...) + " > " + shell.Escape(outFile), nil
}

func (m *Manager) restoreCommand(dumpFile string) (string, error) {
	args, err := m.connectionArgs()
	if err != nil {
		return "", err
	}

	args = append(args, m.config.Database)

	return shell.Build(m.config.MysqlPath, args...) + " < " + shell.Escape(dumpFile), nil
}

// Dump writes a full-database dump to the configured dump file.
func (m *Manager) Dump() error {
	command, err := m.dumpCommand(m.DumpFilePath())
	if err != nil {
		return err
	}

	slog.Debug("dumping database", slog.String("database", m.config.Database), slog.String("file", m.DumpFilePath()))

	_, err = m.runner.Run(command)
	return err
}

// DumpTable dumps one table and persists its checksum. The checksum file is
// only written after the dump command succeeded, so a checksum never exists
// without its dump file.
func (m *Manager) DumpTable(table string) error {
	command, err := m.dumpCommand(m.TableDumpFilePath(table), m.config.TablePrefix+table)
	if err != nil {
		return err
	}

	slog.Debug("dumping table", slog.String("table", table))

	if _, err := m.runner.Run(command); err != nil {
		return err
	}

	checksum, err := m.querier.TableChecksum(m.config.TablePrefix + table)
	if err != nil {
		return err
	}

	if err := os.WriteFile(m.TableChecksumFilePath(table), []byte(checksum), 0644); err != nil {
		return fmt.Errorf("fail to write checksum file for table %s, error: %v", table, err)
	}

	return nil
}

// DumpAllTables dumps every table of the database individually.
func (m *Manager) DumpAllTables() error {
	tables, err := m.Tables()
	if err != nil {
		return err
	}

	for _, table := range tables {
		if err := m.DumpTable(table); err != nil {
			return err
		}
	}

	return nil
}

// Tables enumerates the database tables with the configured prefix stripped.
func (m *Manager) Tables() ([]string, error) {
	tables, err := m.querier.Tables()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(tables))
	for _, table := range tables {
		names = append(names, strings.TrimPrefix(table, m.config.TablePrefix))
	}

	return names, nil
}

// CheckDump verifies that the full dump file exists.
func (m *Manager) CheckDump() error {
	return m.checkArtifact(m.DumpFilePath())
}

func (m *Manager) checkArtifact(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &MissingFixtureError{Path: path}
		}

		return fmt.Errorf("fail to inspect dump file %s, error: %v", path, err)
	}

	return nil
}

// Restore replays the full-database dump.
func (m *Manager) Restore() error {
	if err := m.CheckDump(); err != nil {
		return err
	}

	command, err := m.restoreCommand(m.DumpFilePath())
	if err != nil {
		return err
	}

	slog.Debug("restoring database", slog.String("database", m.config.Database))

	_, err = m.runner.Run(command)
	return err
}

// RestoreTable replays one table dump. Unless forced, the restore is skipped
// when the persisted checksum matches the table's current checksum, meaning
// the table has not changed since the dump was taken.
func (m *Manager) RestoreTable(table string, force bool) error {
	dumpFile := m.TableDumpFilePath(table)

	if err := m.checkArtifact(dumpFile); err != nil {
		return err
	}

	if !force {
		unchanged, err := m.tableUnchanged(table)
		if err != nil {
			return err
		}

		if unchanged {
			slog.Debug("table unchanged, skipping restore", slog.String("table", table))
			return nil
		}
	}

	command, err := m.restoreCommand(dumpFile)
	if err != nil {
		return err
	}

	slog.Debug("restoring table", slog.String("table", table))

	_, err = m.runner.Run(command)
	return err
}

// tableUnchanged compares the persisted checksum byte-for-byte against the
// table's current checksum. A missing checksum file counts as changed.
func (m *Manager) tableUnchanged(table string) (bool, error) {
	saved, err := os.ReadFile(m.TableChecksumFilePath(table))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}

		return false, fmt.Errorf("fail to read checksum file for table %s, error: %v", table, err)
	}

	current, err := m.querier.TableChecksum(m.config.TablePrefix + table)
	if err != nil {
		return false, err
	}

	return string(saved) == current, nil
}

// RestoreAllTables restores every table independently. The first failure
// aborts the loop, already restored tables are not rolled back.
func (m *Manager) RestoreAllTables(force bool) error {
	tables, err := m.Tables()
	if err != nil {
		return err
	}

	for _, table := range tables {
		if err := m.RestoreTable(table, force); err != nil {
			return err
		}
	}

	return nil
}

// RestoreMatchingTables restores the prefix-stripped tables whose names match
// the regular expression pattern.
func (m *Manager) RestoreMatchingTables(pattern string, force bool) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid table pattern %s, error: %v", pattern, err)
	}

	tables, err := m.Tables()
	if err != nil {
		return err
	}

	for _, table := range tables {
		if !re.MatchString(table) {
			continue
		}

		if err := m.RestoreTable(table, force); err != nil {
			return err
		}
	}

	return nil
}
