package history

import "time"

const SchemaVersion = 1

// Run records one completed conversion.
type Run struct {
	ID         string        `json:"id"`
	Timestamp  time.Time     `json:"timestamp"`
	InputDir   string        `json:"input_dir"`
	OutputPath string        `json:"output_path"`
	Units      int           `json:"units"`
	Classes    int           `json:"classes"`
	Attributes int           `json:"attributes"`
	Relations  int           `json:"relations"`
	Duration   time.Duration `json:"duration"`
}
