package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := NewRootCmd("test")
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err := root.Execute()
	return strings.TrimSpace(out.String()), err
}

func TestTokenCmd(t *testing.T) {
	t.Setenv("AGENT_TOKEN_SECRET", "s3cret")

	raw, err := execute(t, "token", "--agent-id", "laptop", "--ttl", "1h")
	require.NoError(t, err)

	parsed, err := jwt.Parse(raw, func(*jwt.Token) (interface{}, error) {
		return []byte("s3cret"), nil
	})
	require.NoError(t, err)
	sub, err := parsed.Claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, "laptop", sub)
}

func TestTokenCmd_Errors(t *testing.T) {
	t.Setenv("AGENT_TOKEN_SECRET", "s3cret")
	_, err := execute(t, "token")
	assert.Error(t, err)

	t.Setenv("AGENT_TOKEN_SECRET", "")
	_, err = execute(t, "token", "--agent-id", "laptop")
	assert.Error(t, err)
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd("test")

	names := []string{}
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"run", "token"}, names)

	run, _, err := root.Find([]string{"run"})
	require.NoError(t, err)
	assert.Equal(t, defaultHubURL, run.Flag("hub").DefValue)
}
