package main

import (
	"fmt"
)

// Run executes the query command.
func (c *QueryCmd) Run(deps *Dependencies) error {
	var filters map[string]any
	if len(c.Filter) > 0 {
		filters = make(map[string]any, len(c.Filter))
		for key, value := range c.Filter {
			filters[key] = value
		}
	}

	results, err := deps.Querier.Query(deps.Ctx, c.Query, filters, c.Alpha, c.TopK, c.TopN)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "no results")
		return nil
	}

	for i, doc := range results {
		fmt.Fprintf(deps.Stdout, "%d. (%.4f)\n%s\n\n", i+1, doc.Score, doc.Text)
	}
	return nil
}
