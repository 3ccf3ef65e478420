package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("liftplan", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("liftplan strength programming server. Generates a four-week squat, bench and deadlift mesocycle (accumulation, intensification, peaking, deload) from a trainee's one-rep maxes. Create a trainee first, then query weeks and ladders by trainee id. Weights are in kg."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolListTrainees, Handler: h.listTrainees},
		server.ServerTool{Tool: toolCreateTrainee, Handler: h.createTrainee},
		server.ServerTool{Tool: toolGetWeek, Handler: h.getWeek},
		server.ServerTool{Tool: toolGetLadders, Handler: h.getLadders},
		server.ServerTool{Tool: toolSetOneRepMax, Handler: h.setOneRepMax},
		server.ServerTool{Tool: toolRoundWeight, Handler: h.roundWeight},
		server.ServerTool{Tool: toolEstimateOneRepMax, Handler: h.estimateOneRepMax},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resPlan, Handler: h.planResource},
		server.ServerResource{Resource: resTrainees, Handler: h.traineesResource},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resPlan = mcp.NewResource(
	"liftplan://plan",
	"Plan Configuration",
	mcp.WithResourceDescription("Percentage tables, weight increment, starting weights and exercise pools the schedule is built from"),
	mcp.WithMIMEType("application/json"),
)

var resTrainees = mcp.NewResource(
	"liftplan://trainees",
	"Trainees",
	mcp.WithResourceDescription("All trainees with their one-rep maxes, starting weights and exercise selection"),
	mcp.WithMIMEType("application/json"),
)
