package output

import (
	"encoding/json"
	"io"

	"github.com/spiffcs/goodfirst/internal/model"
)

// JSONFormatter writes issues in the same shape the gateway serves
type JSONFormatter struct {
	Pretty bool
}

// Format outputs issues as a JSON array
func (f *JSONFormatter) Format(issues []model.Issue, w io.Writer) error {
	if issues == nil {
		issues = []model.Issue{}
	}
	encoder := json.NewEncoder(w)
	if f.Pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(issues)
}
