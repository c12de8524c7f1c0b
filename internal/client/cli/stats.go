package cli

import "context"

// Stats prints the API request counters of this process.
func (a *App) Stats(_ context.Context) error {
	stats, err := a.metrics.Stats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		a.println("No API requests yet")
		return nil
	}
	for _, st := range stats {
		a.printf("%-6s %-28s %-16s %.0f\n", st.Method, st.Route, st.Code, st.Count)
	}
	return nil
}
