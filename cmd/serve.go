package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	errors "github.com/Laisky/errors/v2"
	gconfig "github.com/Laisky/go-config/v2"
	gcmd "github.com/Laisky/go-utils/v6/cmd"
	"github.com/Laisky/zap"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Laisky/miridev-mcp/internal/mcp"
	"github.com/Laisky/miridev-mcp/library/log"
)

const (
	transportStdio = "stdio"
	transportHTTP  = "http"

	shutdownTimeout = 5 * time.Second
)

var serveCMD = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server",
	Long: `Run the MCP server.

The stdio transport reads one JSON-RPC message per line from stdin and
writes responses to stdout. The http transport serves the streamable
HTTP endpoint on --listen at --path.`,
	Args: gcmd.NoExtraArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app, err := newApplication()
		if err != nil {
			return errors.WithStack(err)
		}
		server, err := app.newMCPServer()
		if err != nil {
			return errors.WithStack(err)
		}

		switch transport := strings.ToLower(gconfig.S.GetString("transport")); transport {
		case "", transportStdio:
			log.Logger.Info("serve mcp over stdio")
			return server.ServeStdio(ctx, os.Stdin, os.Stdout)
		case transportHTTP:
			return serveHTTP(ctx, server,
				gconfig.S.GetString("listen"), gconfig.S.GetString("path"))
		default:
			return errors.Errorf("unknown transport %q, want %s or %s",
				transport, transportStdio, transportHTTP)
		}
	},
}

// serveHTTP runs the streamable HTTP transport until ctx is done.
func serveHTTP(ctx context.Context, server *mcp.Server, addr, path string) error {
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           server.Handler(path),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Logger.Info("serve mcp over http",
			zap.String("listen", addr), zap.String("path", path))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrapf(err, "listen on %q", addr)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "shutdown http server")
		}
		log.Logger.Info("http server stopped")
		return nil
	})

	return g.Wait()
}

func init() {
	rootCMD.AddCommand(serveCMD)
	serveCMD.Flags().String("transport", transportStdio, "`stdio/http`")
	serveCMD.Flags().String("listen", "localhost:8080", "like `localhost:8080`, http transport only")
	serveCMD.Flags().String("path", mcp.DefaultHTTPPath, "endpoint path, http transport only")
}
