package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/UtpalJayNadiger/tf-dialect/internal/observability"
	"github.com/UtpalJayNadiger/tf-dialect/internal/observability/logging"
	otelobs "github.com/UtpalJayNadiger/tf-dialect/internal/observability/otel"
	"github.com/UtpalJayNadiger/tf-dialect/internal/rules"
	"github.com/UtpalJayNadiger/tf-dialect/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the policy tools over stdio (MCP)",
	Long: `Loads the policy document once, then serves the get_policy,
list_examples, validate_snippet and generate_resource tools as an MCP server
speaking JSON-RPC over stdin/stdout.

The policy file is resolved from $TFDIALECT_POLICY, then from conventional
filenames in the working directory (.tfdialect.yaml, tfdialect.yaml,
policy.yaml), then from the built-in default preset.`,
	RunE:         runServe,
	SilenceUsage: true,
}

var (
	servePolicyFlag      string
	serveOtelFlag        bool
	serveOtelEndpoint    string
	serveOtelProtocol    string
	serveOtelInsecure    bool
	serveOtelSampleRatio float64
	serveLogFormatFlag   string
	serveLogLevelFlag    string
	serveLogOutputFlag   string
)

func init() {
	serveCmd.Flags().StringVar(&servePolicyFlag, "policy", "", "Path to policy file (overrides resolution)")
	serveCmd.Flags().BoolVar(&serveOtelFlag, "otel", false, "Enable OpenTelemetry tracing")
	serveCmd.Flags().StringVar(&serveOtelEndpoint, "otel-endpoint", "", "OTLP endpoint")
	serveCmd.Flags().StringVar(&serveOtelProtocol, "otel-protocol", otelobs.ProtocolHTTP, "OTLP protocol: otlphttp or otlpgrpc")
	serveCmd.Flags().BoolVar(&serveOtelInsecure, "otel-insecure", false, "Allow insecure OTLP connections")
	serveCmd.Flags().Float64Var(&serveOtelSampleRatio, "otel-sample-ratio", 1.0, "Trace sample ratio (0..1)")
	serveCmd.Flags().StringVar(&serveLogFormatFlag, "log-format", "", "Log format: jsonl or none")
	serveCmd.Flags().StringVar(&serveLogLevelFlag, "log-level", "", "Log level: debug, info, warn, error")
	serveCmd.Flags().StringVar(&serveLogOutputFlag, "log-output", "", "Log output: stderr or a file path")
}

// GetServeCmd export
func GetServeCmd() *cobra.Command {
	return serveCmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := observability.WithOpID(cmd.Context())

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveLogFormatFlag != "" {
		cfg.LogFormat = serveLogFormatFlag
	}
	if serveLogLevelFlag != "" {
		cfg.LogLevel = serveLogLevelFlag
	}
	if serveLogOutputFlag != "" {
		cfg.LogOutput = serveLogOutputFlag
	}

	log, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer log.Close()
	ctx = logging.WithLogger(ctx, log)

	if serveOtelFlag {
		handle, err := otelobs.Init(ctx, otelobs.Config{
			Enabled:     true,
			Endpoint:    serveOtelEndpoint,
			Protocol:    serveOtelProtocol,
			Insecure:    serveOtelInsecure,
			ServiceName: "tf-dialect",
			SampleRatio: serveOtelSampleRatio,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize tracing: %w", err)
		}
		ctx = otelobs.WithHandle(ctx, handle)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = handle.Shutdown(shutdownCtx)
		}()
	}

	// Startup is fail-fast: a missing-but-configured or invalid policy file
	// aborts before the server starts serving.
	doc, path, err := loadPolicy(servePolicyFlag)
	if err != nil {
		return err
	}
	if path == "" {
		log.Info("server", "no policy file found, using built-in default preset")
	} else {
		log.Info("server", "loaded policy", "path", path)
	}

	engine, err := rules.NewEngine(log)
	if err != nil {
		return err
	}

	return server.New(doc, engine, log, os.Stdin, os.Stdout).Run(ctx)
}
