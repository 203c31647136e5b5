// Package registry maps tool names to tools and validates their arguments.
package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"sync"

	errors "github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	mcp "github.com/mark3labs/mcp-go/mcp"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Laisky/miridev-mcp/internal/mcp/tools"
	"github.com/Laisky/miridev-mcp/library/log"
)

type entry struct {
	tool   tools.Tool
	def    mcp.Tool
	schema *jsonschema.Schema
}

// Registry holds the enabled tools in registration order.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
	order   []string
	logger  logSDK.Logger
}

// New constructs an empty registry.
func New(logger logSDK.Logger) *Registry {
	if logger == nil {
		logger = log.Logger.Named("tool_registry")
	}
	return &Registry{entries: map[string]*entry{}, logger: logger}
}

// Register adds tool. Names must be unique and input schemas must compile.
func (r *Registry) Register(tool tools.Tool) error {
	if tool == nil {
		return errors.New("tool is required")
	}

	def := tool.Definition()
	if def.Name == "" {
		return errors.New("tool name is required")
	}
	schema, err := compileInputSchema(def)
	if err != nil {
		return errors.Wrapf(err, "compile input schema of %s", def.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[def.Name]; ok {
		return errors.Errorf("tool %s already registered", def.Name)
	}
	r.entries[def.Name] = &entry{tool: tool, def: def, schema: schema}
	r.order = append(r.order, def.Name)

	return nil
}

// List returns the definitions of all registered tools.
func (r *Registry) List() []mcp.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]mcp.Tool, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.entries[name].def)
	}
	return defs
}

// Invoke validates args and runs the named tool.
//
// Component failures come back as error results. Unknown tools, invalid
// arguments and handler crashes come back as a ProtocolError.
func (r *Registry) Invoke(ctx context.Context, name string, args any) (result *mcp.CallToolResult, perr *ProtocolError) {
	r.mu.RLock()
	e, ok := r.entries[name]
	r.mu.RUnlock()
	if !ok {
		return nil, newProtocolError(CodeMethodNotFound, "unknown tool: %s", name)
	}

	arguments, err := normalizeArguments(args)
	if err != nil {
		return nil, newProtocolError(CodeInvalidParams, "invalid arguments for %s: %v", name, err)
	}
	if err := e.schema.Validate(arguments); err != nil {
		return nil, newProtocolError(CodeInvalidParams, "invalid arguments for %s: %s", name, validationMessage(err))
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("tool panicked",
				zap.String("tool", name),
				zap.Any("panic", rec),
				zap.ByteString("stack", debug.Stack()))
			result, perr = nil, newProtocolError(CodeInternalError, "tool %s failed unexpectedly", name)
		}
	}()

	req := mcp.CallToolRequest{}
	req.Method = string(mcp.MethodToolsCall)
	req.Params.Name = name
	req.Params.Arguments = arguments

	result, err = e.tool.Handle(ctx, req)
	if err != nil {
		r.logger.Error("tool failed", zap.String("tool", name), zap.Error(err))
		return nil, newProtocolError(CodeInternalError, "tool %s failed: %v", name, err)
	}
	if result == nil {
		return nil, newProtocolError(CodeInternalError, "tool %s returned no result", name)
	}

	return result, nil
}

func compileInputSchema(def mcp.Tool) (*jsonschema.Schema, error) {
	raw, err := json.Marshal(def)
	if err != nil {
		return nil, errors.Wrap(err, "marshal tool definition")
	}
	var envelope struct {
		InputSchema json.RawMessage `json:"inputSchema"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, errors.Wrap(err, "decode tool definition")
	}
	if len(envelope.InputSchema) == 0 {
		envelope.InputSchema = json.RawMessage(`{"type":"object"}`)
	}

	url := fmt.Sprintf("mem://tools/%s.json", def.Name)
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, bytes.NewReader(envelope.InputSchema)); err != nil {
		return nil, errors.WithStack(err)
	}
	schema, err := compiler.Compile(url)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return schema, nil
}

// normalizeArguments converts args into plain JSON values; nil becomes an empty object.
func normalizeArguments(args any) (map[string]any, error) {
	if args == nil {
		return map[string]any{}, nil
	}

	var raw []byte
	switch v := args.(type) {
	case json.RawMessage:
		raw = v
	case []byte:
		raw = v
	default:
		var err error
		if raw, err = json.Marshal(v); err != nil {
			return nil, errors.Wrap(err, "encode arguments")
		}
	}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return map[string]any{}, nil
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, errors.Wrap(err, "decode arguments")
	}
	arguments, ok := decoded.(map[string]any)
	if !ok {
		return nil, errors.New("arguments must be an object")
	}
	return arguments, nil
}

func validationMessage(err error) string {
	var verr *jsonschema.ValidationError
	if errors.As(err, &verr) {
		leaf := verr
		for len(leaf.Causes) > 0 {
			leaf = leaf.Causes[0]
		}
		location := leaf.InstanceLocation
		if location == "" {
			location = "/"
		}
		return fmt.Sprintf("%s: %s", location, leaf.Message)
	}
	return err.Error()
}
