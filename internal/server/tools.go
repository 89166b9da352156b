// internal/server/tools.go
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
)

type ExportGroupsParams struct {
	Dimension string `json:"dimension" description:"Export dimension: grupoExportable, subGrupoExportable, clasificacionExportable or subGrupoAdecuada"`
	Format    string `json:"format,omitempty" description:"Output format: csv or xlsx"`
}

type GetExportRunsParams struct {
	Limit int `json:"limit,omitempty" description:"Maximum number of runs to return"`
}

type SetEditOptionParams struct {
	Field string `json:"field" description:"Edit option to switch, e.g. informacionPersonal"`
	Value bool   `json:"value" description:"New value"`
}

type SetPyramidLevelParams struct {
	Level int    `json:"level" description:"Pyramid level (0-5)"`
	URL   string `json:"url" description:"Image URL for the level"`
}

type toolHandler func(context.Context, *protocol.CallToolRequest) (*protocol.CallToolResult, error)

type tool struct {
	def     *protocol.Tool
	handler toolHandler
}

func property(typ, description string) map[string]string {
	return map[string]string{"type": typ, "description": description}
}

func schema(required []string, props map[string]interface{}) protocol.InputSchema {
	return protocol.InputSchema{Type: protocol.Object, Properties: props, Required: required}
}

func (s *RegistryServer) toolset() []tool {
	return []tool{
		{
			def: &protocol.Tool{
				Name:        "export_groups",
				Description: "Export dietary registries aggregated by food group, one row per registry",
				InputSchema: schema([]string{"dimension"}, map[string]interface{}{
					"dimension": property("string", "grupoExportable, subGrupoExportable, clasificacionExportable or subGrupoAdecuada (aliases: group, subgroup, ultraprocessed, adequacy)"),
					"format":    property("string", "Output format: csv or xlsx"),
				}),
			},
			handler: s.handleExportGroups,
		},
		{
			def: &protocol.Tool{
				Name:        "get_export_runs",
				Description: "List recent export runs, newest first",
				InputSchema: schema(nil, map[string]interface{}{
					"limit": property("integer", "Maximum number of runs to return (default 20)"),
				}),
			},
			handler: s.handleGetExportRuns,
		},
		{
			def: &protocol.Tool{
				Name:        "get_edit_options",
				Description: "Show which form sections participants may edit",
				InputSchema: schema(nil, nil),
			},
			handler: s.handleGetEditOptions,
		},
		{
			def: &protocol.Tool{
				Name:        "set_edit_option",
				Description: "Enable or disable editing of one form section",
				InputSchema: schema([]string{"field", "value"}, map[string]interface{}{
					"field": property("string", "Edit option, e.g. informacionPersonal"),
					"value": property("boolean", "New value"),
				}),
			},
			handler: s.handleSetEditOption,
		},
		{
			def: &protocol.Tool{
				Name:        "toggle_free_registry",
				Description: "Toggle free registry mode",
				InputSchema: schema(nil, nil),
			},
			handler: s.handleToggleFreeRegistry,
		},
		{
			def: &protocol.Tool{
				Name:        "list_pyramid_levels",
				Description: "List the food pyramid levels and their images",
				InputSchema: schema(nil, nil),
			},
			handler: s.handleListPyramidLevels,
		},
		{
			def: &protocol.Tool{
				Name:        "set_pyramid_level",
				Description: "Set the image of one food pyramid level",
				InputSchema: schema([]string{"level", "url"}, map[string]interface{}{
					"level": property("integer", "Pyramid level (0-5)"),
					"url":   property("string", "Image URL for the level"),
				}),
			},
			handler: s.handleSetPyramidLevel,
		},
	}
}

// registerTools registers every tool with the MCP server and indexes the
// handlers for POST /mcp. Over MCP, a failing tool call is reported as an
// error result.
func (s *RegistryServer) registerTools() {
	s.tools = make(map[string]toolHandler)
	for _, t := range s.toolset() {
		handler := t.handler
		s.tools[t.def.Name] = handler
		s.server.RegisterTool(t.def, func(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
			result, err := handler(s.ctx, req)
			if err != nil {
				s.logger.Warn("Tool call failed", "tool", req.Name, "error", err)
				return protocol.NewCallToolResult([]protocol.Content{
					protocol.TextContent{Type: "text", Text: err.Error()},
				}, true), nil
			}
			return result, nil
		})
		s.logger.Debug("Registered tool", "name", t.def.Name)
	}
}

// extractParams safely extracts parameters from the request arguments
func extractParams(req *protocol.CallToolRequest, target interface{}) error {
	jsonBytes, err := json.Marshal(req.Arguments)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal arguments: %v", errInvalidParams, err)
	}

	if err := json.Unmarshal(jsonBytes, target); err != nil {
		return fmt.Errorf("%w: %v", errInvalidParams, err)
	}

	return nil
}

func (s *RegistryServer) handleMCP(w http.ResponseWriter, r *http.Request) {
	var request protocol.CallToolRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, fmt.Sprintf("Invalid JSON: %v", err), http.StatusBadRequest)
		return
	}

	handler, ok := s.tools[request.Name]
	if !ok {
		http.Error(w, fmt.Sprintf("Unknown tool: %s", request.Name), http.StatusNotFound)
		return
	}

	result, err := handler(r.Context(), &request)
	if err != nil {
		s.logger.Warn("Tool call failed", "tool", request.Name, "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleExportGroups builds an export and stores its file for download
func (s *RegistryServer) handleExportGroups(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params ExportGroupsParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if params.Dimension == "" {
		return nil, fmt.Errorf("%w: dimension is required", errInvalidParams)
	}

	resp, err := s.runExport(ctx, params.Dimension, params.Format)
	if err != nil {
		return nil, err
	}
	return s.createJSONResponse(resp)
}

func (s *RegistryServer) handleGetExportRuns(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params GetExportRunsParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}

	// Set defaults
	if params.Limit <= 0 {
		params.Limit = 20
	}

	runs, err := s.deps.Runs.ListRuns(ctx, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve export runs: %w", err)
	}

	return s.createJSONResponse(runs)
}

func (s *RegistryServer) handleGetEditOptions(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	opts, err := s.deps.Admin.GetEditOptions(ctx)
	if err != nil {
		return nil, err
	}
	return s.createJSONResponse(opts)
}

func (s *RegistryServer) handleSetEditOption(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params SetEditOptionParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if params.Field == "" {
		return nil, fmt.Errorf("%w: field is required", errInvalidParams)
	}

	if err := s.deps.Admin.SetEditOption(ctx, params.Field, params.Value); err != nil {
		return nil, err
	}
	s.logger.Info("Edit option updated", "field", params.Field, "value", params.Value)

	return s.createJSONResponse(map[string]interface{}{
		"field":  params.Field,
		"value":  params.Value,
		"notice": "Se actualizó correctamente",
	})
}

func (s *RegistryServer) handleToggleFreeRegistry(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	enabled, err := s.deps.Admin.ToggleFreeRegistry(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Free registry toggled", "enabled", enabled)

	return s.createJSONResponse(map[string]interface{}{
		"registroLibre": enabled,
		"notice":        "Se actualizó correctamente",
	})
}

func (s *RegistryServer) handleListPyramidLevels(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	levels, err := s.deps.Admin.ListPyramidLevels(ctx)
	if err != nil {
		return nil, err
	}
	return s.createJSONResponse(levels)
}

func (s *RegistryServer) handleSetPyramidLevel(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params SetPyramidLevelParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if params.URL == "" {
		return nil, fmt.Errorf("%w: url is required", errInvalidParams)
	}

	created, err := s.deps.Admin.UpsertPyramidLevel(ctx, params.Level, params.URL)
	if err != nil {
		return nil, err
	}

	notice := "Se actualizó correctamente"
	if created {
		notice = "Se creó correctamente"
	}
	return s.createJSONResponse(map[string]interface{}{
		"level":   params.Level,
		"created": created,
		"notice":  notice,
	})
}
