package agent

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseError reports agent output from which no well-formed
// timestamp array could be recovered. It is recovered locally
// and recorded as a failing evaluation row with zero matches.
type ParseError struct {
	// Err is the underlying cause.
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse agent response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseResponse extracts an ordered sequence of timestamp
// strings from free-form agent output. It tolerates the common
// wrappings: explanatory prose around the answer, and the answer
// inside a fenced code block. Applied in order:
//
//  1. Trim the text.
//  2. If a fenced code block appears, keep only the content of
//     the first block.
//  3. Slice from the first "[" to the last "]".
//  4. Parse the span as a JSON array of strings.
//
// When the text contains no brackets at all, the slice is a
// no-op and the JSON parse fails; that is the intended failure
// path, not a silent empty result.
func ParseResponse(raw string) ([]string, error) {
	text := strings.TrimSpace(raw)

	if strings.Contains(text, "```") {
		if block := firstFencedBlock(text); block != "" {
			text = block
		}
	}

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start != -1 && end != -1 {
		text = text[start : end+1]
	}

	var answer []string
	if err := json.Unmarshal([]byte(text), &answer); err != nil {
		return nil, &ParseError{Err: err}
	}
	return answer, nil
}

// firstFencedBlock returns the content of the first fenced code
// block in text, or "" when the block is empty. Prose before the
// block, after it, and any later blocks are discarded.
func firstFencedBlock(text string) string {
	var block []string
	inBlock := false

	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			if inBlock {
				break
			}
			inBlock = true
			continue
		}
		if inBlock {
			block = append(block, line)
		}
	}

	return strings.TrimSpace(strings.Join(block, "\n"))
}
