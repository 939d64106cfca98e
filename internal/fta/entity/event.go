package entity

// ImportRecordedEvent is published after a batch and its ImportInfo are stored.
// CorrelationID ties the event to the request that caused it, if any.
type ImportRecordedEvent struct {
	EventID       string
	CorrelationID string
	Import        ImportInfo
	Count         int
	Source        ImportSource
}

type ImportSource string

const (
	ImportSourceUpload    ImportSource = "UPLOAD"
	ImportSourceGenerator ImportSource = "GENERATOR"
)
