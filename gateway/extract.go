/*
Copyright 2026 Meetingops, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package gateway

import (
	"bytes"
	"encoding/json"
	"strings"
)

// extractJSON extracts JSON content from a completion response that may wrap
// it in markdown code fences. It looks for content between ```json and ```
// markers, or returns the trimmed input when no markers are present.
func extractJSON(responseText string) string {
	lines := strings.Split(responseText, "\n")
	var jsonBuffer bytes.Buffer
	inJSONBlock := false
	foundJSON := false

	for _, line := range lines {
		if !inJSONBlock && line == "```json" {
			inJSONBlock = true
			foundJSON = true
			continue
		}

		if inJSONBlock && line == "```" {
			break
		}

		if inJSONBlock {
			if jsonBuffer.Len() > 0 {
				jsonBuffer.WriteString("\n")
			}
			jsonBuffer.WriteString(line)
		}
	}

	if foundJSON {
		return strings.TrimSpace(jsonBuffer.String())
	}

	responseText = strings.TrimSpace(responseText)

	if strings.HasPrefix(responseText, "```json") && strings.HasSuffix(responseText, "```") {
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimSuffix(responseText, "```")
		return strings.TrimSpace(responseText)
	}

	// These do nothing if the fences aren't there, so always do it.
	responseText = strings.TrimPrefix(responseText, "```")
	responseText = strings.TrimSuffix(responseText, "```")
	return strings.TrimSpace(responseText)
}

// decodeJSON extracts and unmarshals JSON from a completion response.
// Failures are wrapped in *ParseError.
func decodeJSON[T any](responseText string) (T, error) {
	var result T
	content := extractJSON(responseText)
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return result, &ParseError{Raw: responseText, Err: err}
	}
	return result, nil
}
