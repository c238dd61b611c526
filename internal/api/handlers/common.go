package handlers

import (
	"net/http"
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/folio-service/folio_service/internal/domain/entities"
)

// addressPattern matches a 0x-prefixed 20-byte hex wallet address
var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// getRequestID extracts request ID from context
func getRequestID(c *gin.Context) string {
	if reqID, exists := c.Get("request_id"); exists {
		if id, ok := reqID.(string); ok {
			return id
		}
	}
	return ""
}

// requireAddress extracts and validates the address query parameter,
// responding 400 when it is missing or malformed.
func requireAddress(c *gin.Context) (string, bool) {
	address := c.Query("address")
	if address == "" {
		respondBadRequest(c, "Address query parameter is required", nil)
		return "", false
	}
	if !addressPattern.MatchString(address) {
		respondBadRequest(c, "Address must be a 0x-prefixed 40 character hex string", map[string]interface{}{
			"address": address,
		})
		return "", false
	}
	return address, true
}

// respondError sends a standardized error response
func respondError(c *gin.Context, status int, code, message string, details map[string]interface{}) {
	c.JSON(status, entities.ErrorResponse{
		Code:    code,
		Message: message,
		Details: details,
	})
}

// respondBadRequest sends a bad request error
func respondBadRequest(c *gin.Context, message string, details map[string]interface{}) {
	respondError(c, http.StatusBadRequest, "INVALID_REQUEST", message, details)
}

// respondInternalError sends an internal server error
func respondInternalError(c *gin.Context, message string) {
	respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", message, nil)
}

// respondBadGateway sends an upstream failure error
func respondBadGateway(c *gin.Context, code, message string) {
	respondError(c, http.StatusBadGateway, code, message, nil)
}

// respondSuccess sends a success response with data
func respondSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// parseIntParam parses a query parameter to int with default value
func parseIntParam(c *gin.Context, param string, defaultVal int) int {
	if val := c.Query(param); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// parseBoolParam parses a query parameter to bool with default value
func parseBoolParam(c *gin.Context, param string, defaultVal bool) bool {
	if val := c.Query(param); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}
