package chunk

import (
	"encoding/json"
	"regexp"
	"strings"

	doccrawler "github.com/Krish-Goyani/DocCrawler"
)

var jsonListRE = regexp.MustCompile("(?s)```(?:json)?\\s*(\\[.*\\])\\s*```")

// extractJSONList pulls the JSON array out of a completion response,
// tolerating a fenced code block around it and prose before or after.
func extractJSONList(text string) (string, error) {
	if m := jsonListRE.FindStringSubmatch(text); m != nil {
		return m[1], nil
	}
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
		return trimmed, nil
	}
	return "", doccrawler.Errorf(doccrawler.EINTERNAL, "no JSON list found in completion output")
}

// ParseChunks decodes the model's chunking response. Elements that fail
// to decode or validate are dropped individually and reported in the
// second return value so callers can record them; the error is non-nil
// only when no list could be decoded at all.
func ParseChunks(text string) ([]*doccrawler.Chunk, []error, error) {
	payload, err := extractJSONList(text)
	if err != nil {
		return nil, nil, err
	}

	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, nil, doccrawler.Errorf(doccrawler.EINTERNAL, "malformed chunk list: %v", err)
	}

	chunks := make([]*doccrawler.Chunk, 0, len(raw))
	var dropped []error
	for i, item := range raw {
		var c doccrawler.Chunk
		if err := json.Unmarshal(item, &c); err != nil {
			dropped = append(dropped, doccrawler.Errorf(doccrawler.EINVALID, "chunk %d: %v", i, err))
			continue
		}
		if err := c.Validate(); err != nil {
			dropped = append(dropped, doccrawler.Errorf(doccrawler.EINVALID, "chunk %d: %s", i, doccrawler.ErrorMessage(err)))
			continue
		}
		chunks = append(chunks, &c)
	}
	return chunks, dropped, nil
}

// ParseURLList decodes a JSON array of URL strings, tolerating a fenced
// code block around it.
func ParseURLList(text string) ([]string, error) {
	payload, err := extractJSONList(text)
	if err != nil {
		return nil, err
	}
	var urls []string
	if err := json.Unmarshal([]byte(payload), &urls); err != nil {
		return nil, doccrawler.Errorf(doccrawler.EINTERNAL, "malformed URL list: %v", err)
	}
	return urls, nil
}
