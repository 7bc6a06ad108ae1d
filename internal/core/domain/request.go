package domain

// ProcessRequest is the queue envelope asking the worker to run one document
// through the pipeline. StorageKey points at a file already materialized in
// object storage; the worker deletes it after processing.
type ProcessRequest struct {
	ID            string `json:"id"`
	StorageKey    string `json:"storage_key"`
	Format        Format `json:"format"`
	WantAISummary bool   `json:"want_ai_summary"`
}
