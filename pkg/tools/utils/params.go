// Package utils provides typed extraction of tool call arguments.
package utils

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// GetStringParam safely extracts a string parameter from the request.
func GetStringParam(req mcp.CallToolRequest, key string, required bool) (string, error) {
	val, exists := req.Params.Arguments[key]
	if !exists || val == nil {
		if required {
			return "", fmt.Errorf("missing required parameter: '%s'", key)
		}
		return "", nil
	}

	str, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("parameter '%s' must be a string", key)
	}

	return str, nil
}

// GetRequiredStringParam is a shorthand for GetStringParam with required=true
func GetRequiredStringParam(req mcp.CallToolRequest, key string) (string, error) {
	return GetStringParam(req, key, true)
}

// GetOptionalStringParam is a shorthand for GetStringParam with required=false
func GetOptionalStringParam(req mcp.CallToolRequest, key string) (string, error) {
	return GetStringParam(req, key, false)
}

// GetFloat64Param safely extracts a float64 parameter from the request.
func GetFloat64Param(req mcp.CallToolRequest, key string, required bool) (float64, error) {
	val, exists := req.Params.Arguments[key]
	if !exists || val == nil {
		if required {
			return 0, fmt.Errorf("missing required parameter: '%s'", key)
		}
		return 0, nil
	}

	f, ok := val.(float64)
	if !ok {
		return 0, fmt.Errorf("parameter '%s' must be a number", key)
	}

	return f, nil
}

// GetOptionalIntParam extracts an optional int parameter from a float64 in
// the request. JSON numbers always arrive as float64.
func GetOptionalIntParam(req mcp.CallToolRequest, key string) (int, error) {
	f, err := GetFloat64Param(req, key, false)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// HandleParameterError returns a properly formatted error response for
// parameter validation errors.
func HandleParameterError(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(err.Error())
}
