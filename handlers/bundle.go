package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// AuthRequired puts the /api group behind bearer tokens.
	AuthRequired bool

	// Schedule endpoints
	PreviewScheduleHandler gin.HandlerFunc

	// Spreadsheet endpoints
	GenerateSpreadsheetHandler        gin.HandlerFunc
	GenerateMonthlySpreadsheetHandler gin.HandlerFunc

	// Activity endpoints
	ActivityLogsHandler gin.HandlerFunc
}
