package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
)

// maxBody caps request bodies; itinerary edits are small.
const maxBody = 1 << 20

// DecodeJSON reads a single JSON object from the request body into v.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("empty request body")
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func ContainsIgnoreCase(str, substr string) bool {
	return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9]`)

// SanitizeFilename replaces every character outside [A-Za-z0-9] with "_".
func SanitizeFilename(name string) string {
	clean := unsafeChars.ReplaceAllString(strings.TrimSpace(name), "_")
	if clean == "" {
		return "file"
	}
	return clean
}
