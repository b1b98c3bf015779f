package core

// error_messages.go maps technical errors to coded, human-readable messages.
//
// Codes:
//
//	FILE001 - Input not found         Patterns: "file not found"
//	FILE002 - Empty input             Patterns: "empty file"
//	FILE003 - Worksheet not found     Patterns: "sheet not found"
//	FILE004 - Not an Excel workbook   Patterns: "invalid workbook"
//	FILE005 - Invalid CSV             Patterns: "invalid csv"
//	VAL004  - Missing column          Patterns: "missing required column"
//	OUT001  - Output not written      Patterns: "write output"
//	DB004   - Database unreachable    Patterns: "connection refused"
//	DB005   - Publish failed          Patterns: "publish"
//	DB006   - Timeout                 Patterns: "timeout", "deadline exceeded"
//	ERR000  - Anything else
//
// Patterns are matched case-insensitively; the first match wins.

import (
	"fmt"
	"strings"
)

// UserMessage is a human-readable explanation of an error.
type UserMessage struct {
	Message string // What went wrong
	Action  string // What to do about it
	Code    string // Reference code, e.g. "FILE001"
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	{
		pattern: "file not found",
		msg: UserMessage{
			Message: "Input spreadsheet not found",
			Action:  "Place the file in the working directory or set TCUV_INPUT",
			Code:    "FILE001",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The input file is empty",
			Action:  "Provide a workbook with a header row and data rows",
			Code:    "FILE002",
		},
	},
	{
		pattern: "sheet not found",
		msg: UserMessage{
			Message: "Worksheet not found in workbook",
			Action:  "Check TCUV_SHEET or leave it empty to read the first sheet",
			Code:    "FILE003",
		},
	},
	{
		pattern: "invalid workbook",
		msg: UserMessage{
			Message: "File is not a readable Excel workbook",
			Action:  "Save the file as .xlsx or export it to .csv",
			Code:    "FILE004",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "File is not a valid CSV",
			Action:  "Ensure the file is comma-separated with balanced quotes",
			Code:    "FILE005",
		},
	},
	{
		pattern: "missing required column",
		msg: UserMessage{
			Message: "Required column is missing from the header",
			Action:  "Check that the admin and TCUV columns are present",
			Code:    "VAL004",
		},
	},
	{
		pattern: "write output",
		msg: UserMessage{
			Message: "Could not write the output file",
			Action:  "Check that the output directory exists and is writable",
			Code:    "OUT001",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Check DATABASE_URL and that the server is running",
			Code:    "DB004",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Raise DB_TIMEOUT or try again later",
			Code:    "DB006",
		},
	},
	{
		pattern: "deadline exceeded",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Raise DB_TIMEOUT or try again later",
			Code:    "DB006",
		},
	},
	{
		pattern: "publish",
		msg: UserMessage{
			Message: "Rows could not be published to the database",
			Action:  "The output file was written; check the database logs and rerun",
			Code:    "DB005",
		},
	},
}

// defaultMessage is returned when no pattern matches.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Check the log for the underlying error",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Returns the zero UserMessage for a nil error.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}
