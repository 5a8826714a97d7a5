package fixture

import "fmt"

// MissingFixtureError reports a restore or check that found no dump artifact
// on disk. The message tells the operator how to regenerate the fixture
// database.
type MissingFixtureError struct {
	Path string
}

func (e *MissingFixtureError) Error() string {
	return fmt.Sprintf("fixture dump file %s does not exist, run \"fixturedump dump\" and \"fixturedump dump-tables\" to regenerate the fixture database", e.Path)
}
