package conformance

import (
	"encoding/json"
	"io"
)

// jsonReport is the externally-inspectable rendering of a run.
type jsonReport struct {
	Total   int      `json:"total"`
	Failed  int      `json:"failed"`
	Results []Result `json:"results"`
}

// WriteJSON renders results for external tooling.
func WriteJSON(w io.Writer, results []Result) error {
	failed := 0
	for _, r := range results {
		if !r.Passed {
			failed++
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonReport{
		Total:   len(results),
		Failed:  failed,
		Results: results,
	})
}

// ReadJSON loads results previously written with WriteJSON.
func ReadJSON(r io.Reader) ([]Result, error) {
	var rep jsonReport
	if err := json.NewDecoder(r).Decode(&rep); err != nil {
		return nil, err
	}
	return rep.Results, nil
}
