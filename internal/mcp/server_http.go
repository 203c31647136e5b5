package mcp

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	gmw "github.com/Laisky/gin-middlewares/v7"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"
	mcp "github.com/mark3labs/mcp-go/mcp"
	srv "github.com/mark3labs/mcp-go/server"
)

// DefaultHTTPPath is where the streamable HTTP endpoint is mounted.
const DefaultHTTPPath = "/mcp"

// Handler returns a gin router serving MCP over streamable HTTP at path.
func (s *Server) Handler(path string) http.Handler {
	if path == "" {
		path = DefaultHTTPPath
	}

	streamable := srv.NewStreamableHTTPServer(s.mcpServer, srv.WithEndpointPath(path))

	router := gin.New()
	router.Use(
		gin.Recovery(),
		gmw.NewLoggerMiddleware(gmw.WithLogger(s.logger.Named("http"))),
	)
	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	router.Any(path, s.interceptToolCalls, gin.WrapH(streamable))

	return router
}

// interceptToolCalls answers tools/call POSTs through HandleMessage and lets
// every other request through to the streamable handler.
func (s *Server) interceptToolCalls(c *gin.Context) {
	if c.Request.Method != http.MethodPost || c.Request.Body == nil {
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		gmw.GetLogger(c).Warn("read mcp request body", zap.Error(err))
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	var payload struct {
		Method string `json:"method"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Method != string(mcp.MethodToolsCall) {
		return
	}

	resp := s.HandleMessage(c.Request.Context(), json.RawMessage(body))
	c.Header("Content-Type", "application/json")
	if sessionID := c.GetHeader(srv.HeaderKeySessionID); sessionID != "" {
		c.Header(srv.HeaderKeySessionID, sessionID)
	}
	c.AbortWithStatusJSON(http.StatusOK, resp)
}
