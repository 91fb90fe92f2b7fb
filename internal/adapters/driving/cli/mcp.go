package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/netreach/internal/adapters/driving/mcp"
	"github.com/custodia-labs/netreach/internal/logger"
)

var (
	mcpPort  int
	mcpRate  float64
	mcpBurst int
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can run
net reach calculations and read saved scenarios.

By default the server communicates over stdio using JSON-RPC.
Use --port to serve streamable HTTP instead.

Tools:
  calculate_net_reach   estimate the net reach of a media plan
  save_scenario         calculate and save a plan as a scenario
  list_scenarios        compare saved scenarios

Examples:
  netreach mcp serve
  netreach mcp serve --port 8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "netreach": {
        "command": "/path/to/netreach",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().Float64Var(&mcpRate, "rate", mcp.DefaultRateLimit.RequestsPerSecond, "tool calls per second")
	mcpServeCmd.Flags().IntVar(&mcpBurst, "burst", mcp.DefaultRateLimit.BurstSize, "tool call burst size")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	if calculatorService == nil {
		return errors.New("calculator service not configured")
	}

	ports := &mcp.Ports{
		Calculator: calculatorService,
		Scenario:   scenarioService,
		Reference:  referenceService,
	}

	server, err := mcp.NewServerWithRateLimit(ports, mcp.RateLimitConfig{
		RequestsPerSecond: mcpRate,
		BurstSize:         mcpBurst,
	})
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	if changes := watchReference(ctx); changes != nil {
		go func() {
			for range changes {
				logger.Info("Reference data changed; the next calculation uses the new table")
			}
		}()
	}

	if mcpPort > 0 {
		addr := fmt.Sprintf(":%d", mcpPort)
		cmd.Printf("MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}
