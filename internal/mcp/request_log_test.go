package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/stretchr/testify/require"
)

// TestToolCallLogsAreRedacted verifies tools/call requests answered by the registry are logged without secrets.
func TestToolCallLogsAreRedacted(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "mcp.log")
	logger, err := logSDK.New(
		logSDK.WithName("test"),
		logSDK.WithEncoding(logSDK.EncodingConsole),
		logSDK.WithLevel(logSDK.LevelDebug),
		logSDK.WithOutputPaths([]string{logPath}),
	)
	require.NoError(t, err)

	reg, err := NewRegistry(Dependencies{Deployer: &fakeDeployer{}, Auth: fakeAuth{}, Reporter: fakeReporter{}},
		ToolsSettings{}, nil)
	require.NoError(t, err)
	s, err := NewServer(reg, logger)
	require.NoError(t, err)

	messages := []string{
		`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"login_miridev",` +
			`"arguments":{"email":"a@b.c","password":"hunter2-secret"}}}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"deploy_html",` +
			`"arguments":{"htmlContent":"<html>classified-body</html>"}}}`,
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"no_such_tool",` +
			`"arguments":{"password":"unknown-tool-secret"}}}`,
	}
	for _, message := range messages {
		require.NotNil(t, s.HandleMessage(context.Background(), json.RawMessage(message)))
	}
	_ = logger.Sync()

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	out := string(data)

	require.Contains(t, out, "tools/call")
	require.Contains(t, out, "login_miridev")
	require.Contains(t, out, "no_such_tool")
	require.Contains(t, out, "redacted")
	require.NotContains(t, out, "hunter2-secret")
	require.NotContains(t, out, "classified-body")
	require.NotContains(t, out, "unknown-tool-secret")
}
