package export

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// rowsDocument is the --rows-json output shape.
type rowsDocument struct {
	Rows     []Row `json:"rows"`
	Total    int   `json:"total"`
	Selected int   `json:"selected"`
}

// WriteRowsJSON writes rows as an indented JSON document.
func WriteRowsJSON(w io.Writer, rows []Row) error {
	doc := rowsDocument{Rows: rows, Total: len(rows)}
	if doc.Rows == nil {
		doc.Rows = []Row{}
	}
	for _, r := range rows {
		if r.Selected {
			doc.Selected++
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode rows: %w", err)
	}
	return nil
}
