package ingestController

import "encoding/json"

// The envelope convention: a document is a JSON object with exactly one
// top-level key. For submissions that key is the caller-supplied unique ID;
// for definitions it is an arbitrary wrapper name.
func parseEnvelope(body []byte) (string, map[string]any, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", nil, ErrMalformedInput
	}

	if len(envelope) != 1 {
		return "", nil, ErrMalformedInput
	}

	for key, raw := range envelope {
		var content map[string]any
		// Non-object content carries no project name; that case is reported
		// by extractProjectName, not here.
		_ = json.Unmarshal(raw, &content)
		return key, content, nil
	}

	return "", nil, ErrMalformedInput
}

// extractProjectName reads the project name from content.project, falling
// back to content.quiz.project.
func extractProjectName(content map[string]any) (string, bool) {
	if name, ok := content["project"].(string); ok && name != "" {
		return name, true
	}

	if quiz, ok := content["quiz"].(map[string]any); ok {
		if name, ok := quiz["project"].(string); ok && name != "" {
			return name, true
		}
	}

	return "", false
}

// isDefinition classifies the document: anything carrying a truthy questions
// or logic field is a definition, everything else is a submission. This is a
// structural heuristic, not content validation.
func isDefinition(content map[string]any) bool {
	return truthy(content["questions"]) || truthy(content["logic"])
}

// truthy mirrors the loose presence check the upload format relies on:
// absent, null, false, zero and the empty string do not count, while objects
// and arrays do, even empty ones.
func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0
	default:
		return true
	}
}
