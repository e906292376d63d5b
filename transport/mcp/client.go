package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pushworks/sokogrid/game/engine"
	"github.com/pushworks/sokogrid/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Sokogrid Puzzle",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Sokogrid Puzzle - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME MECHANICS:
You control the player (@) on a grid. Walking into a crate (C) pushes it one
cell. Pushing works through a whole row of touching crates, unless the chain
would hit a wall (#) or the edge of the grid; then nothing moves at all.
Every successful step can be reverted with undo.

AVAILABLE TOOLS:
- game_state: Get the current world snapshot
- move: Single step (up/down/left/right) - requires intent explanation
- bulk_move: Multiple steps at once - requires intent explanation
- undo: Revert the most recent successful step
- reset_game: Rebuild the world from its config
- move_history: View past actions
- create_session: Create new game session
- get_session: Get session details
- list_sessions: List all active sessions
- list_configs: List available level configurations
- game_instructions: Get comprehensive game instructions and rules
- describe_cell: Get detailed info about a specific grid cell

NOTE: The 'intent' parameter on move/bulk_move tools serves as rubber duck debugging - explain your reasoning!`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Identifier of the level config to use (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current world snapshot",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Step the player in a direction, pushing crates when possible",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"up", "down", "left", "right"},
					"description": "Direction to step",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this move (serves as a rubber duck to help explain your reasoning)",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset before moving",
				},
			},
			Required: []string{"session_id", "direction"},
		},
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "bulk_move",
		Description: "Execute multiple steps in sequence, stopping at the first blocked step",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"moves": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "string",
						"enum": []string{"up", "down", "left", "right"},
					},
					"description": "Array of steps",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this sequence of moves (serves as a rubber duck to help explain your reasoning)",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset before moving",
				},
			},
			Required: []string{"session_id", "moves"},
		},
	}, c.handleBulkMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "undo",
		Description: "Revert the most recent successful step, restoring player and crate positions",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleUndo)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Rebuild the world from its configuration",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get action history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMoveHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available level configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_cell",
		Description: "Get detailed information about a specific cell in the grid, including its exact character. Useful for verifying whether a cell is free (.), a pushable crate (C), or an immovable wall (#).",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "X coordinate (column) of the cell to describe (0-based)",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Y coordinate (row) of the cell to describe (0-based)",
				},
			},
			Required: []string{"session_id", "x", "y"},
		},
	}, c.handleDescribeCell)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	configID, _ := args["config_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n", session.ID, session.ConfigName)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		result += fmt.Sprintf("- %s (Config: %s, Created: %s)\n",
			s.ID, s.ConfigName, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSessionInfo(&session)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var snap engine.WorldSnapshot
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &snap)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSnapshot(&snap)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	direction, _ := args["direction"].(string)
	intent, _ := args["intent"].(string)
	reset, _ := args["reset"].(bool)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	body := map[string]interface{}{
		"direction": direction,
		"reset":     reset,
	}

	var result service.MoveResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/move", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatMoveResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleBulkMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	movesRaw, _ := args["moves"].([]interface{})
	intent, _ := args["intent"].(string)
	reset, _ := args["reset"].(bool)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	// Convert moves to string array
	moves := make([]string, 0, len(movesRaw))
	for _, m := range movesRaw {
		if move, ok := m.(string); ok {
			moves = append(moves, move)
		}
	}

	body := map[string]interface{}{
		"moves": moves,
		"reset": reset,
	}

	var result service.BulkMoveResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/bulk-move", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatBulkMoveResult(sessionID, &result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleUndo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var result service.UndoResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/undo", sessionID), nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	if result.Undone {
		b.WriteString("✓ Step undone\n")
	} else {
		b.WriteString("✗ Nothing to undo\n")
	}
	if result.Message != "" {
		b.WriteString(result.Message + "\n")
	}
	b.WriteString(fmt.Sprintf("Undo depth remaining: %d\n\n", result.UndoDepth))
	b.WriteString(formatSnapshot(result.Snapshot))
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message string                `json:"message"`
		State   *engine.WorldSnapshot `json:"state"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/reset", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatSnapshot(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}

	var history service.HistoryResponse
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/history%s", sessionID, params), nil, &history)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatHistory(&history)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	err := c.apiCall("GET", "/api/configs", nil, &configs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Configurations:\n\n"
	for _, config := range configs {
		result += fmt.Sprintf("• %s\n  %s\n  Grid: %dx%d, Crates: %d, Walls: %d\n\n",
			config.ConfigID, config.Description, config.Width, config.Height, config.Crates, config.Walls)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Sokogrid Puzzle - Complete Instructions

GAME MECHANICS:
• Movement: one cell per step in a cardinal direction (up/down/left/right)
• Pushing: stepping into a crate pushes it one cell in the same direction
• Chains: a whole row of touching crates moves together as one push
• Blocking: if any crate in the chain would land on a wall or leave the
  grid, NOTHING moves - the step fails with no side effects
• Undo: every successful step can be reverted, most recent first, up to
  the configured undo depth; oldest entries are dropped when full

GRID LEGEND:
• @ - Player (your current position)
• C - Crate (pushable)
• # - Wall (immovable, blocks pushes)
• . - Floor (free cell)

AI AGENTS - SUCCESS STRATEGIES:

1. **Parse Character-by-Character**: Never scan visually - examine each
   position of every row. A single C between # characters changes the
   whole plan.

2. **Pushes are one-way**: You can push crates but never pull them. A
   crate pushed into a corner of walls can only be recovered with undo,
   so think before pushing toward walls or grid edges.

3. **Use describe_cell to verify**: When unsure whether a cell holds a
   crate or a wall, ask for the exact cell before committing to a push.

4. **Plan with undo in mind**: undo reverts exactly one successful step,
   including any crates that step pushed. Blocked steps consume no undo.

5. **Prefer bulk_move for long walks**: it executes steps in sequence and
   stops at the first blocked step, reporting exactly which step failed
   and what blocked it.

MOVEMENT COMMANDS:
- up, down, left, right - single steps in cardinal directions
- bulk_move - execute a sequence, stopping at the first failure
- Reset parameter available for fresh starts

STOP REASON CODES (bulk_move):
- blocked_boundary: the step would leave the grid
- blocked_wall: the target cell (or push chain) hits a wall
- blocked_chain: the crate chain cannot advance
- invalid_direction: the step name is not a cardinal direction

SESSION MANAGEMENT:
- Multiple game sessions can run simultaneously
- Each session has a unique 4-character ID
- Sessions maintain independent state and configuration
- Sessions survive server restarts via action-log replay

Remember: pushes are irreversible except through undo, and undo depth is
bounded. Count your crates, find the walls, and plan the push order.`

	return mcp.NewToolResultText(instructions), nil
}

func (c *Client) handleDescribeCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	x := int(args["x"].(float64))
	y := int(args["y"].(float64))

	// Get the current snapshot to access the grid
	var snap engine.WorldSnapshot
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &snap)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Check bounds
	if x < 0 || x >= snap.Width || y < 0 || y >= snap.Height {
		return mcp.NewToolResultError(fmt.Sprintf("Coordinates (%d, %d) are out of bounds. Grid size is %dx%d (x 0-%d, y 0-%d)",
			x, y, snap.Width, snap.Height, snap.Width-1, snap.Height-1)), nil
	}

	cellChar := "."
	cellType := "Floor"
	passable := true
	description := "Free cell - safe to step onto"

	// Player takes display precedence over whatever it stands on.
	if x == snap.PlayerPos.X && y == snap.PlayerPos.Y {
		cellChar = "@"
		cellType = "Player"
		description = "Player's current position"
	}

	for _, view := range snap.Objects {
		if view.Position.X != x || view.Position.Y != y {
			continue
		}
		switch view.Kind {
		case engine.KindCrate:
			if cellChar == "." {
				cellChar = "C"
			}
			cellType = "Crate"
			passable = false
			description = "Pushable crate - stepping into it pushes it one cell if the cell behind is free"
		case engine.KindWall:
			if cellChar == "." {
				cellChar = "#"
			}
			cellType = "Wall"
			passable = false
			description = "Immovable wall - blocks steps and pushes"
		}
	}

	result := fmt.Sprintf(`Cell at position (%d, %d):
━━━━━━━━━━━━━━━━━━━━━━━━
Character: %s
Type: %s
Free to step onto: %v
Description: %s

IMPORTANT: The character '%s' is what appears in the grid display.
%s`,
		x, y,
		cellChar,
		cellType,
		passable,
		description,
		cellChar,
		getCharacterReminder(cellChar))

	return mcp.NewToolResultText(result), nil
}

func getCharacterReminder(char string) string {
	switch char {
	case "C":
		return "REMINDER: 'C' is a CRATE. You can push it, but only if the cell behind it is free."
	case "#":
		return "REMINDER: '#' is a WALL. It never moves and blocks any push chain that reaches it."
	case ".":
		return "This cell is free - you can step onto it."
	case "@":
		return "This is where you (the player) currently are."
	default:
		return ""
	}
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatSnapshot(session.Snapshot))
}

func formatSnapshot(snap *engine.WorldSnapshot) string {
	if snap == nil {
		return "No world snapshot available"
	}

	var result strings.Builder

	// Header
	result.WriteString(fmt.Sprintf("Position: (%d,%d) | Steps: %d | Undo depth: %d | Phase: %s\n\n",
		snap.PlayerPos.X, snap.PlayerPos.Y,
		snap.TotalSteps, snap.UndoDepth, snap.Phase))

	// Grid: prefer server-rendered rows; otherwise derive from objects
	rows := snap.Rows
	if len(rows) == 0 {
		rows = engine.RenderRows(snap)
	}
	for _, row := range rows {
		result.WriteString(row)
		result.WriteString("\n")
	}

	if v := formatLocal3x3(snap, rows); v != "" {
		result.WriteString("\nLocal 3x3:\n")
		result.WriteString(v)
	}

	if snap.Message != "" {
		result.WriteString(fmt.Sprintf("\nMessage: %s", snap.Message))
	}

	return result.String()
}

func formatMoveResult(result *service.MoveResult) string {
	response := ""
	if result.Success {
		response = "✓ Step successful\n"
	} else {
		response = "✗ Step failed\n"
	}

	// Compact step summary (if available)
	if result.Step != nil {
		s := result.Step
		status := "✗"
		if s.Success {
			status = "✓"
		}
		response += fmt.Sprintf("Step: %s (%d,%d)→(%d,%d) pushed=%d %s\n",
			s.Dir, s.From.X, s.From.Y, s.To.X, s.To.Y, s.Pushed, status)
	}

	// Failure diagnostic (if available)
	if result.AttemptedTo != nil {
		a := result.AttemptedTo
		if a.OutOfBounds {
			response += fmt.Sprintf("Blocked: attempted (%d,%d) is outside the grid\n", a.X, a.Y)
		} else if a.Occupant != "" {
			response += fmt.Sprintf("Blocked: attempted (%d,%d) occupied by %s\n", a.X, a.Y, a.Occupant)
		} else {
			response += fmt.Sprintf("Blocked: attempted (%d,%d), push chain cannot advance\n", a.X, a.Y)
		}
	}

	if len(result.Events) > 0 {
		response += "Events:\n"
		for _, event := range result.Events {
			response += fmt.Sprintf("- %s: %s\n", event.Type, event.Message)
		}
	}

	response += "\n" + formatSnapshot(result.Snapshot)
	return response
}

func formatBulkMoveResult(sessionID string, result *service.BulkMoveResult) string {
	var b strings.Builder

	// Session header
	width, height := 0, 0
	configName := ""
	if result.Snapshot != nil {
		width, height = result.Snapshot.Width, result.Snapshot.Height
		configName = result.Snapshot.ConfigName
	}
	b.WriteString(fmt.Sprintf("Session: %s • Config: %s • Grid: %dx%d\n",
		sessionID, configName, width, height))

	// Bulk summary
	b.WriteString(fmt.Sprintf("Executed %d/%d steps • (%d,%d)→(%d,%d) • pushed %d crate cells\n",
		result.MovesExecuted, result.RequestedMoves,
		result.StartPos.X, result.StartPos.Y,
		result.EndPos.X, result.EndPos.Y,
		result.PushedTotal))
	if result.StoppedReason != "" {
		b.WriteString(fmt.Sprintf("Stopped on step %d: %s", result.StoppedOnMove, result.StoppedReason))
		if result.StopReasonCode != "" {
			b.WriteString(fmt.Sprintf(" [%s]", result.StopReasonCode))
		}
		b.WriteString("\n")
	}
	if result.Truncated {
		b.WriteString(fmt.Sprintf("Request truncated to the first %d steps\n", result.Limit))
	}

	// Per-step trace from this call
	if len(result.Steps) > 0 {
		b.WriteString("\nSteps (this call):\n")
		for _, s := range result.Steps {
			status := "✗"
			if s.Success {
				status = "✓"
			}
			b.WriteString(fmt.Sprintf("%d. %s (%d,%d)→(%d,%d) pushed=%d %s\n",
				s.Idx, s.Dir, s.From.X, s.From.Y, s.To.X, s.To.Y, s.Pushed, status))
		}
	}

	// Failure diagnostic
	if result.AttemptedTo != nil {
		a := result.AttemptedTo
		if a.OutOfBounds {
			b.WriteString(fmt.Sprintf("\nBlocked: attempted (%d,%d) is outside the grid\n", a.X, a.Y))
		} else if a.Occupant != "" {
			b.WriteString(fmt.Sprintf("\nBlocked: attempted (%d,%d) occupied by %s\n", a.X, a.Y, a.Occupant))
		}
	}

	// Possible moves from final state
	if len(result.PossibleMoves) > 0 {
		b.WriteString("\nPossible moves: ")
		b.WriteString(strings.Join(result.PossibleMoves, ","))
		b.WriteString("\n")
	}

	// Full snapshot at the end
	b.WriteString("\n")
	b.WriteString(formatSnapshot(result.Snapshot))
	return b.String()
}

// formatLocal3x3 renders a 3x3 character window centered on the player
func formatLocal3x3(snap *engine.WorldSnapshot, rows []string) string {
	if snap == nil || len(rows) == 0 {
		return ""
	}
	px, py := snap.PlayerPos.X, snap.PlayerPos.Y
	var b strings.Builder
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			x, y := px+dx, py+dy
			if x < 0 || y < 0 || y >= len(rows) || x >= len(rows[y]) {
				// Out-of-bounds renders as wall: it is equally impassable.
				b.WriteByte('#')
				continue
			}
			b.WriteByte(rows[y][x])
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	result := fmt.Sprintf("Action History (Page %d/%d) — Total: %d\n\n",
		history.Page, history.TotalPages, history.TotalActions)

	for _, action := range history.Actions {
		status := "✓"
		if !action.Success {
			status = "✗"
		}
		line := fmt.Sprintf("%d. %s %s (%d,%d)→(%d,%d)",
			action.Seq, action.Action, status,
			action.From.X, action.From.Y, action.To.X, action.To.Y)
		if action.Pushed > 0 {
			line += fmt.Sprintf(" [pushed %d]", action.Pushed)
		}
		result += line + "\n"
	}

	return result
}
