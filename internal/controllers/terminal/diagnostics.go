package terminal

import (
	"fmt"
	"io"

	"weather-report/config"
	"weather-report/internal/apperr"
)

// WriteDiagnostic explains a fatal error on w, one message per failure kind.
func WriteDiagnostic(w io.Writer, err error) {
	if err == nil {
		return
	}

	e, ok := apperr.As(err)
	if !ok {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}

	switch e.Kind {
	case apperr.MissingCredential:
		fmt.Fprintln(w, "Error: OpenWeatherMap API key not found.")
		fmt.Fprintf(w, "Please set the %s environment variable.\n", config.APIKeyEnv)
	case apperr.Network:
		fmt.Fprintf(w, "Network error: %v\n", e.Err)
	case apperr.BodyRead:
		fmt.Fprintf(w, "Error fetching response text: %v\n", e.Err)
	case apperr.Decode:
		fmt.Fprintf(w, "JSON parsing error: %v\n", e.Err)
		fmt.Fprintf(w, "Response details: %s\n", e.Body)
	case apperr.ImplausibleData:
		fmt.Fprintln(w, "Warning: Unable to retrieve temperature. Check the city and API key.")
	default:
		fmt.Fprintf(w, "Error: %v\n", e.Err)
	}
}
