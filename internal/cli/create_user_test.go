package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/schoolapp/internal/auth"
	"github.com/mrlokans/schoolapp/internal/config"
	"github.com/mrlokans/schoolapp/internal/entrypoint"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Database: config.Database{Path: filepath.Join(t.TempDir(), "cli.db")},
		Auth: config.Auth{
			SecretKey:  "cli-test-secret",
			TokenTTL:   time.Hour,
			BcryptCost: 4,
		},
	}
}

func TestCreateUserCommand_ParseFlags(t *testing.T) {
	cmd := NewCreateUserCommand()
	err := cmd.ParseFlags([]string{"-name", "Ann", "-email", "a@x.com", "-password", "pw123"})
	require.NoError(t, err)

	assert.Equal(t, "Ann", cmd.Name)
	assert.Equal(t, "teacher", cmd.Role)
}

func TestCreateUserCommand_ParseFlagsRequiresFields(t *testing.T) {
	t.Setenv("SCHOOLAPP_PASSWORD", "")

	cmd := NewCreateUserCommand()
	err := cmd.ParseFlags([]string{"-name", "Ann", "-email", "a@x.com"})
	assert.Error(t, err)
}

func TestCreateUserCommand_PasswordFromEnv(t *testing.T) {
	t.Setenv("SCHOOLAPP_PASSWORD", "from-env")

	cmd := NewCreateUserCommand()
	require.NoError(t, cmd.ParseFlags([]string{"-name", "Ann", "-email", "a@x.com"}))
	assert.Equal(t, "from-env", cmd.Password)
}

func TestCreateUserCommand_Run(t *testing.T) {
	cfg := testConfig(t)
	var out bytes.Buffer

	cmd := NewCreateUserCommand()
	cmd.Config = cfg
	cmd.Out = &out
	require.NoError(t, cmd.ParseFlags([]string{"-name", "Ann", "-email", " Ann@X.com", "-password", "pw123"}))
	require.NoError(t, cmd.Run())

	assert.Contains(t, out.String(), "Created teacher ann@x.com")

	var token string
	for _, line := range strings.Split(out.String(), "\n") {
		if strings.HasPrefix(line, "access_token: ") {
			token = strings.TrimPrefix(line, "access_token: ")
		}
	}
	require.NotEmpty(t, token)

	app, err := entrypoint.NewApp(cfg)
	require.NoError(t, err)
	defer app.Close()

	user, err := app.Auth.CurrentUser(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "Ann", user.Name)

	_, err = app.Auth.Login(context.Background(), "ann@x.com", "pw123")
	assert.NoError(t, err)
}

func TestCreateUserCommand_RunDuplicate(t *testing.T) {
	cfg := testConfig(t)

	for i, want := range []error{nil, auth.ErrConflict} {
		cmd := NewCreateUserCommand()
		cmd.Config = cfg
		cmd.Out = &bytes.Buffer{}
		require.NoError(t, cmd.ParseFlags([]string{"-name", "Ann", "-email", "a@x.com", "-password", "pw123"}))

		err := cmd.Run()
		if want == nil {
			require.NoError(t, err, "run %d", i)
		} else {
			assert.ErrorIs(t, err, want, "run %d", i)
		}
	}
}

func TestCreateUserCommand_StudentNeedsGrade(t *testing.T) {
	cmd := NewCreateUserCommand()
	cmd.Config = testConfig(t)
	cmd.Out = &bytes.Buffer{}
	require.NoError(t, cmd.ParseFlags([]string{"-name", "Sam", "-email", "s@x.com", "-password", "pw123", "-role", "student"}))

	assert.ErrorIs(t, cmd.Run(), auth.ErrValidation)
}
