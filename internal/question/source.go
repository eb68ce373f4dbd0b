package question

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mkarlsen/tally/internal/apperr"
)

// ParseFile routes raw source bytes to the parser matching the file
// extension. Unknown extensions return apperr.ErrUnsupportedSource.
func ParseFile(name string, data []byte, setID string) (*ParseResult, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return ParseMarkdown(string(data), setID), nil
	case ".json", ".jwcc":
		return ParseModel(data, setID)
	default:
		return nil, fmt.Errorf("%w: %s", apperr.ErrUnsupportedSource, name)
	}
}
