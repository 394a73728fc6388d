// Package chunker splits extracted page text into bounded, overlapping
// windows for embedding. Slicing is by character offset only; no sentence or
// paragraph awareness.
package chunker

const (
	DefaultMaxSize = 1000
	DefaultOverlap = 200
)

// Split slides a window of maxSize characters over text, advancing by
// maxSize-overlap each step. Text no longer than maxSize comes back as a
// single chunk; the final chunk may be shorter than maxSize. An overlap at
// or above maxSize would stall the window, so it is clamped to maxSize/2.
func Split(text string, maxSize, overlap int) []string {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxSize {
		overlap = maxSize / 2
	}

	runes := []rune(text)
	if len(runes) <= maxSize {
		return []string{text}
	}

	stride := maxSize - overlap
	var chunks []string
	for start := 0; start < len(runes); start += stride {
		end := start + maxSize
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
