package main

import (
	"github.com/spf13/cobra"

	"github.com/jwulff/briefcast/internal/mcpserver"
)

func newMCPCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the published list to MCP clients over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			defer ctx.close()
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()
			logger.Info("mcp server starting", "version", version)
			return mcpserver.New(store, version, logger).ServeStdio()
		},
	}
}
