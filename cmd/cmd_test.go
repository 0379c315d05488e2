package cmd

import (
	"bytes"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/example/exercise-tracker/internal/exercise"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStoreURL(t *testing.T) {
	tests := []struct {
		url    string
		driver string
		dsn    string
		err    bool
	}{
		{url: "postgres://localhost:5432/exercise-track?sslmode=disable", driver: driverPostgres, dsn: "postgres://localhost:5432/exercise-track?sslmode=disable"},
		{url: "postgresql://u:p@db/x", driver: driverPostgres, dsn: "postgresql://u:p@db/x"},
		{url: "sqlite:///var/lib/tracker.db", driver: driverSQLite, dsn: "/var/lib/tracker.db"},
		{url: "sqlite://tracker.db", driver: driverSQLite, dsn: "tracker.db"},
		{url: "file:tracker.db?cache=shared", driver: driverSQLite, dsn: "file:tracker.db?cache=shared"},
		{url: ":memory:", driver: driverSQLite, dsn: ":memory:"},
		{url: "sqlite://", err: true},
		{url: "mongodb://localhost/exercise", err: true},
		{url: "", err: true},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			driver, dsn, err := parseStoreURL(tt.url)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.driver, driver)
			assert.Equal(t, tt.dsn, dsn)
		})
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	t.Setenv("DATABASE_URL", "sqlite://"+filepath.Join(t.TempDir(), "tracker.db"))

	out, err := run(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "applied 001_init.sql")

	out, err = run(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "schema up to date")

	out, err = run(t, "user", "add", "--username", "alice")
	require.NoError(t, err)
	m := regexp.MustCompile(`id=(\S+) username="alice"`).FindStringSubmatch(out)
	require.Len(t, m, 2, out)
	id := m[1]

	_, err = run(t, "user", "add", "--username", "alice")
	require.Error(t, err)
	assert.Equal(t, "Username already exists", errorText(err))

	out, err = run(t, "user", "list")
	require.NoError(t, err)
	assert.Equal(t, "id="+id+" username=\"alice\"\n", out)

	out, err = run(t, "exercise", "add", "--user-id", id, "--description", "run", "--duration", "30", "--date", "2023-05-01")
	require.NoError(t, err)
	assert.Contains(t, out, "2023-05-01 duration=30 \"run\"")

	_, err = run(t, "exercise", "add", "--user-id", id, "--description", "run", "--duration", "10a")
	require.Error(t, err)
	assert.Equal(t, "Please enter valid duration (Integer)", errorText(err))

	out, err = run(t, "exercise", "log", "--user-id", id, "--from", "2023-06-01")
	require.NoError(t, err)
	assert.Equal(t, "user=\"alice\" count=0\n", out)

	_, err = run(t, "exercise", "log", "--user-id", "nope")
	require.Error(t, err)
	assert.Equal(t, "User doesn't exist", errorText(err))
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "exercisetracker dev (commit=none, built=unknown)\n", out)
}

func TestErrorText(t *testing.T) {
	assert.Equal(t, "Invalid Date", errorText(exercise.Wrap(exercise.InvalidDate, "Invalid Date", errors.New("cause"))))
	assert.Equal(t, "boom", errorText(errors.New("boom")))
}
