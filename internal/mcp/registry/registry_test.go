package registry

import (
	"context"
	"encoding/json"
	"testing"

	errors "github.com/Laisky/errors/v2"
	mcp "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"
)

type echoTool struct {
	name    string
	lastReq mcp.CallToolRequest
	err     error
	panic   bool
}

func (t *echoTool) Definition() mcp.Tool {
	return mcp.NewTool(t.name,
		mcp.WithDescription("echo"),
		mcp.WithString("message", mcp.Required()),
		mcp.WithString("projectPath", mcp.DefaultString(".")),
		mcp.WithBoolean("force"),
	)
}

func (t *echoTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.lastReq = req
	if t.panic {
		panic("boom")
	}
	if t.err != nil {
		return nil, t.err
	}
	return mcp.NewToolResultText("ok"), nil
}

func newTestRegistry(t *testing.T, tools ...*echoTool) *Registry {
	t.Helper()

	r := New(nil)
	for _, tool := range tools {
		require.NoError(t, r.Register(tool))
	}
	return r
}

// TestRegistryListOrder verifies List preserves registration order.
func TestRegistryListOrder(t *testing.T) {
	r := newTestRegistry(t, &echoTool{name: "b"}, &echoTool{name: "a"})

	defs := r.List()
	require.Len(t, defs, 2)
	require.Equal(t, "b", defs[0].Name)
	require.Equal(t, "a", defs[1].Name)
	require.Equal(t, []string{"message"}, defs[0].InputSchema.Required)

	require.Error(t, r.Register(&echoTool{name: "a"}))
}

// TestRegistryUnknownTool verifies unknown names yield MethodNotFound whatever the arguments.
func TestRegistryUnknownTool(t *testing.T) {
	r := newTestRegistry(t, &echoTool{name: "deploy_website"})

	for _, args := range []any{nil, map[string]any{}, map[string]any{"message": "x"}, "garbage", 42} {
		result, perr := r.Invoke(context.Background(), "nope", args)
		require.Nil(t, result)
		require.NotNil(t, perr)
		require.Equal(t, CodeMethodNotFound, perr.Code)
		require.Equal(t, mcp.METHOD_NOT_FOUND, perr.Code.JSONRPCCode())
	}
}

// TestRegistryInvalidArguments verifies schema violations yield InvalidParams.
func TestRegistryInvalidArguments(t *testing.T) {
	tool := &echoTool{name: "deploy_website"}
	r := newTestRegistry(t, tool)

	cases := map[string]any{
		"missing required": map[string]any{"projectPath": "."},
		"nil arguments":    nil,
		"wrong type":       map[string]any{"message": "x", "force": "yes"},
		"not an object":    []any{"message"},
		"bad raw json":     json.RawMessage(`{"message":`),
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, perr := r.Invoke(context.Background(), "deploy_website", args)
			require.NotNil(t, perr)
			require.Equal(t, CodeInvalidParams, perr.Code)
			require.Equal(t, mcp.INVALID_PARAMS, perr.Code.JSONRPCCode())
		})
	}
}

// TestRegistryInvokeSuccess verifies normalized arguments reach the tool.
func TestRegistryInvokeSuccess(t *testing.T) {
	tool := &echoTool{name: "deploy_website"}
	r := newTestRegistry(t, tool)

	result, perr := r.Invoke(context.Background(), "deploy_website", json.RawMessage(`{"message":"ship","force":true}`))
	require.Nil(t, perr)
	require.False(t, result.IsError)
	require.Equal(t, "deploy_website", tool.lastReq.Params.Name)
	require.Equal(t, map[string]any{"message": "ship", "force": true}, tool.lastReq.Params.Arguments)
}

// TestRegistryInternalErrors verifies handler errors and panics yield InternalError.
func TestRegistryInternalErrors(t *testing.T) {
	failing := &echoTool{name: "failing", err: errors.New("exploded")}
	crashing := &echoTool{name: "crashing", panic: true}
	r := newTestRegistry(t, failing, crashing)

	_, perr := r.Invoke(context.Background(), "failing", map[string]any{"message": "x"})
	require.NotNil(t, perr)
	require.Equal(t, CodeInternalError, perr.Code)

	_, perr = r.Invoke(context.Background(), "crashing", map[string]any{"message": "x"})
	require.NotNil(t, perr)
	require.Equal(t, CodeInternalError, perr.Code)
	require.Equal(t, mcp.INTERNAL_ERROR, perr.Code.JSONRPCCode())
}
