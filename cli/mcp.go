// ABOUTME: MCP server subcommand
// ABOUTME: Registers CRM tools, resources and prompts and serves them on stdio
package cli

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/harperreed/pipeline/handlers"
)

func newMCPCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.log.Info().Msg("starting CRM MCP server")
			server := newMCPServer(a, cmd.Root().Version)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}

func newMCPServer(a *app, version string) *mcp.Server {
	customerHandlers := handlers.NewCustomerHandlers(a.store, a.fmt)
	contactHandlers := handlers.NewContactHandlers(a.store)
	dealHandlers := handlers.NewDealHandlers(a.store, a.fmt)
	pipelineHandlers := handlers.NewPipelineHandlers(a.store, a.fmt, a.cfg.RecentActivity, a.log)
	vizHandlers := handlers.NewVizHandlers(a.store, a.fmt)
	resourceHandlers := handlers.NewResourceHandlers(a.store)
	promptHandlers := handlers.NewPromptHandlers(a.store, a.fmt)

	if version == "" {
		version = "dev"
	}
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "pipeline",
		Version: version,
	}, nil)

	// Register tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_customers",
		Description: "Search customers by name, email, company or phone with optional status and industry filters",
	}, customerHandlers.FindCustomers)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_customer",
		Description: "Add a new customer to the CRM",
	}, customerHandlers.AddCustomer)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_contacts",
		Description: "Search contacts by name, email or position with an optional status filter",
	}, contactHandlers.FindContacts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_contact",
		Description: "Add a new contact, optionally linked to a customer",
	}, contactHandlers.AddContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_deals",
		Description: "Search deals by title or description with an optional stage filter",
	}, dealHandlers.FindDeals)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_deal",
		Description: "Create a new deal in the pipeline",
	}, dealHandlers.AddDeal)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "move_deal_stage",
		Description: "Move a deal to another pipeline stage",
	}, dealHandlers.MoveDealStage)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "pipeline_summary",
		Description: "Pipeline totals, weighted value, conversion rate and deals by stage",
	}, pipelineHandlers.PipelineSummary)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "dashboard_stats",
		Description: "Customer, contact and deal counts, revenue and recent activity",
	}, pipelineHandlers.DashboardStats)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_graph",
		Description: "Generate a GraphViz DOT graph of the pipeline or one customer account",
	}, vizHandlers.GenerateGraph)

	for _, r := range resourceHandlers.Resources() {
		server.AddResource(r, resourceHandlers.ReadResource)
	}
	for _, t := range resourceHandlers.Templates() {
		server.AddResourceTemplate(t, resourceHandlers.ReadResource)
	}
	for _, p := range promptHandlers.Prompts() {
		server.AddPrompt(p, promptHandlers.GetPrompt)
	}

	return server
}
