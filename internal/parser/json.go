package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/KaramelBytes/revlens-cli/internal/review"
)

type jsonReader struct{}

func (jsonReader) CanRead(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".json")
}

// Read accepts an array of flat objects, the shape produced by converting a
// review export to JSON. Scalars are stringified; nulls become empty.
func (jsonReader) Read(_ string, content []byte, _ Options) ([]review.RawRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()
	var rows []map[string]any
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	out := make([]review.RawRecord, 0, len(rows))
	for i, row := range rows {
		rec := make(review.RawRecord, len(row))
		for k, v := range row {
			s, err := scalarString(v)
			if err != nil {
				return nil, fmt.Errorf("row %d field %q: %w", i+1, k, err)
			}
			rec[strings.TrimSpace(k)] = s
		}
		out = append(out, rec)
	}
	return out, nil
}

func scalarString(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case json.Number:
		return x.String(), nil
	case bool:
		return strconv.FormatBool(x), nil
	}
	return "", fmt.Errorf("unsupported value of type %T", v)
}
