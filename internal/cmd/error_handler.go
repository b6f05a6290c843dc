package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gyazo/gyazo-cli/internal/api"
)

// HandleError processes an error and returns a user-friendly message with suggestions
func HandleError(err error) string {
	if err == nil {
		return ""
	}

	var msg strings.Builder

	// Check for specific error types
	var apiErr *api.APIError
	var validationErr *api.ValidationError
	var urlErr *api.InvalidURLError
	var transportErr *api.TransportError

	switch {
	case errors.As(err, &validationErr):
		fmt.Fprintf(&msg, "Invalid input: %s\n\n", validationErr.Message)
		msg.WriteString("Suggestions:\n")
		msg.WriteString("  - Check the flag value against the command help\n")
		msg.WriteString("  - Run with --help to see accepted values\n")

	case errors.As(err, &urlErr):
		fmt.Fprintf(&msg, "Invalid URL: %s\n\n", urlErr.Message)
		msg.WriteString("Suggestions:\n")
		msg.WriteString("  - Pass a full capture URL like https://gyazo.com/<id>\n")
		msg.WriteString("  - Or pass the 32-character capture ID directly\n")

	case errors.As(err, &apiErr):
		fmt.Fprintf(&msg, "API error (HTTP %d): %s\n\n", apiErr.StatusCode, apiErr.Body)
		msg.WriteString(suggestionsForStatusCode(apiErr.StatusCode, apiErr.Body))
		if apiErr.RequestID != "" {
			fmt.Fprintf(&msg, "\nRequest ID: %s\n", apiErr.RequestID)
		}

	case errors.As(err, &transportErr):
		fmt.Fprintf(&msg, "Network error: %s\n\n", transportErr.Error())
		msg.WriteString("Suggestions:\n")
		msg.WriteString("  - Check your network connection\n")
		msg.WriteString("  - Verify the API origin: gz auth status\n")
		msg.WriteString("  - Retry with a longer --timeout\n")

	case strings.Contains(err.Error(), "connection refused"):
		msg.WriteString("Connection refused.\n\n")
		msg.WriteString("Suggestions:\n")
		msg.WriteString("  - Check if the API origin is reachable\n")
		msg.WriteString("  - Verify the URL: gz auth status\n")
		msg.WriteString("  - Check your network connection\n")

	case strings.Contains(err.Error(), "no such host"):
		msg.WriteString("DNS resolution failed.\n\n")
		msg.WriteString("Suggestions:\n")
		msg.WriteString("  - Check the API origin spelling\n")
		msg.WriteString("  - Verify your DNS settings\n")
		msg.WriteString("  - Unset GYAZO_API_URL if you are not targeting a test server\n")

	case strings.Contains(err.Error(), "certificate"):
		msg.WriteString("TLS certificate error.\n\n")
		msg.WriteString("Suggestions:\n")
		msg.WriteString("  - Verify the server's SSL certificate\n")
		msg.WriteString("  - Check if the certificate is expired\n")
		msg.WriteString("  - Ensure you're using https:// correctly\n")

	default:
		fmt.Fprintf(&msg, "Error: %s\n", err.Error())
	}

	return msg.String()
}

func suggestionsForStatusCode(code int, body string) string {
	var suggestions strings.Builder
	suggestions.WriteString("Suggestions:\n")

	switch code {
	case 400:
		suggestions.WriteString("  - Check your request parameters\n")
		suggestions.WriteString("  - Use --debug to see the full request\n")
		if strings.Contains(body, "required") {
			suggestions.WriteString("  - A required field may be missing\n")
		}

	case 401:
		suggestions.WriteString("  - Your access token may be invalid or expired\n")
		suggestions.WriteString("  - Run: gz auth login\n")

	case 403:
		suggestions.WriteString("  - The token doesn't have permission for this action\n")
		suggestions.WriteString("  - Captures owned by other users cannot be modified\n")
		suggestions.WriteString("  - Re-authenticate with the owning account: gz auth login\n")

	case 404:
		suggestions.WriteString("  - The capture doesn't exist\n")
		suggestions.WriteString("  - Check the capture ID is correct\n")
		suggestions.WriteString("  - The capture may have been deleted\n")

	case 422:
		suggestions.WriteString("  - Validation failed\n")
		suggestions.WriteString("  - Check your input values\n")
		suggestions.WriteString("  - Some fields may have invalid formats\n")

	case 429:
		suggestions.WriteString("  - Too many requests\n")
		suggestions.WriteString("  - Wait and retry in a few seconds\n")

	case 500, 502, 503, 504:
		suggestions.WriteString("  - Server error - not your fault\n")
		suggestions.WriteString("  - Wait and retry\n")
		suggestions.WriteString("  - Check https://status.gyazo.com\n")

	default:
		suggestions.WriteString("  - Use --debug for more details\n")
		suggestions.WriteString("  - Check the Gyazo API documentation\n")
	}

	return suggestions.String()
}

// ExitWithError prints error with suggestions and exits
func ExitWithError(err error) {
	if err == nil {
		return
	}
	_, _ = fmt.Fprint(os.Stderr, HandleError(err))
	os.Exit(ExitCode(err))
}
