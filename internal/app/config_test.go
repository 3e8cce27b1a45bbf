package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	t.Setenv("EDUSPACE_PORT", "")
	t.Setenv("EDUSPACE_DSN", "")
	t.Setenv("EDUSPACE_BOT_TOKEN", "")

	tests := []struct {
		name    string
		content string
		check   func(t *testing.T, c *Config)
		wantErr bool
	}{
		{
			name: "defaults",
			content: `
[server]
port = ":8080"
`,
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, ":8080", c.Server.Port)
				assert.Equal(t, "memory://", c.Storage.DSN)
				assert.Equal(t, "./migrations", c.Storage.MigrationsDir)
				assert.Equal(t, "2006-01-02 15:04", c.Display.TimestampFormat)
			},
		},
		{
			name: "full",
			content: `
[server]
port = ":9000"

[storage]
dsn = "bolt://data/eduspace.db"

[export]
schedule = "0 * * * *"
path = "exports/grades.xlsx"

[bot]
token = "123:abc"
admin_ids = [42, 43]
`,
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, "bolt://data/eduspace.db", c.Storage.DSN)
				assert.Equal(t, "0 * * * *", c.Export.Schedule)
				assert.Equal(t, []int64{42, 43}, c.Bot.AdminIDs)
			},
		},
		{
			name:    "missing port",
			content: `[storage]` + "\n" + `dsn = "memory://"`,
			wantErr: true,
		},
		{
			name:    "broken toml",
			content: `[server`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseConfig("config.toml", []byte(tt.content))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, c)
		})
	}
}

func TestParseConfig_EnvOverrides(t *testing.T) {
	t.Setenv("EDUSPACE_PORT", ":7000")
	t.Setenv("EDUSPACE_DSN", "redis://localhost:6379/0")
	t.Setenv("EDUSPACE_BOT_TOKEN", "from-env")

	c, err := ParseConfig("config.toml", []byte(`[server]
port = ":8080"
[bot]
token = "from-file"
`))
	require.NoError(t, err)
	assert.Equal(t, ":7000", c.Server.Port)
	assert.Equal(t, "redis://localhost:6379/0", c.Storage.DSN)
	assert.Equal(t, "from-env", c.Bot.Token)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestNewServiceFromConfig(t *testing.T) {
	t.Setenv("EDUSPACE_PORT", "")
	t.Setenv("EDUSPACE_DSN", "")

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\nport = \":8080\"\n"), 0644))

	svc, err := NewService(path)
	require.NoError(t, err)
	defer svc.Close()

	ctx := context.Background()
	a := svc.SessionStore("a")
	b := svc.SessionStore("b")
	require.NoError(t, a.Set(ctx, "currentUser", "alice"))

	_, found, err := b.Get(ctx, "currentUser")
	require.NoError(t, err)
	assert.False(t, found, "sessions do not see each other")

	raw, found, err := svc.Store.Get(ctx, "session:a:currentUser")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "alice", raw)
}
