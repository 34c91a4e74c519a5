// Package limiter selects a window of table rows for --limit, --offset and
// --tail.
package limiter

import "fmt"

// Config holds the row-limiting parameters.
type Config struct {
	Limit  int // Show only this many rows (0 = unlimited)
	Offset int // Skip the first N rows (0 = no skip)
	Tail   int // Show only the last N rows (0 = disabled); mutually exclusive with Limit
}

// Validate checks for conflicting flag combinations and returns an error if invalid.
// Rules:
// - Limit and Tail are mutually exclusive
// - If Tail is set, Offset is ignored
// - All numeric values must be non-negative
func (c Config) Validate() error {
	if c.Limit < 0 {
		return fmt.Errorf("--limit must be non-negative, got %d", c.Limit)
	}
	if c.Offset < 0 {
		return fmt.Errorf("--offset must be non-negative, got %d", c.Offset)
	}
	if c.Tail < 0 {
		return fmt.Errorf("--tail must be non-negative, got %d", c.Tail)
	}

	if c.Limit > 0 && c.Tail > 0 {
		return fmt.Errorf("--limit and --tail are mutually exclusive")
	}

	return nil
}

// IsActive returns true if any limiting is configured.
func (c Config) IsActive() bool {
	return c.Limit > 0 || c.Offset > 0 || c.Tail > 0
}

// Apply returns the selected rows. When header is true the first row is
// always kept and the window applies to the rows after it. The input slice
// is not modified.
func (c Config) Apply(rows [][]string, header bool) [][]string {
	if !c.IsActive() || len(rows) == 0 {
		return rows
	}

	if !header {
		start, end := c.Window(len(rows))
		return rows[start:end]
	}

	body := rows[1:]
	start, end := c.Window(len(body))
	out := make([][]string, 0, 1+end-start)
	out = append(out, rows[0])
	return append(out, body[start:end]...)
}

// Window returns the [start, end) range selected from length records.
func (c Config) Window(length int) (int, int) {
	if c.Tail > 0 {
		return max(length-c.Tail, 0), length
	}

	start := min(c.Offset, length)
	end := length
	if c.Limit > 0 {
		end = min(start+c.Limit, length)
	}
	return start, end
}
