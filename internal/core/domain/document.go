package domain

// Format is the caller-declared type of the source document.
type Format string

const (
	FormatImage       Format = "image"
	FormatPDF         Format = "pdf"
	FormatWord        Format = "word-document"
	FormatPlainText   Format = "plain-text"
	FormatSpreadsheet Format = "spreadsheet"
)

// Stage tracks pipeline progress for external reporting only; it is never
// used to schedule work.
type Stage string

const (
	StageExtracting           Stage = "extracting"
	StageCleaning             Stage = "cleaning"
	StageAnalyzingEntities    Stage = "analyzing_entities"
	StageExtractingStructured Stage = "extracting_structured"
	StageSummarizing          Stage = "summarizing"
	StageDone                 Stage = "done"
)

// Entity bucket keys, fixed across the system.
const (
	EntityPersons       = "persons"
	EntityLocations     = "locations"
	EntityOrganizations = "organizations"
	EntityDates         = "dates"
	EntityMoney         = "money"
)

// Structured data field keys.
const (
	FieldPhoneNumbers = "phone_numbers"
	FieldNationalIDs  = "national_ids"
	FieldDates        = "dates"
)

// SummaryTier identifies which summarization provider produced the summary.
type SummaryTier string

const (
	TierRemoteLLM  SummaryTier = "remote-llm"
	TierLocalLLM   SummaryTier = "local-llm"
	TierExtractive SummaryTier = "extractive"
)

// DocumentState is the single record threaded through the pipeline. Each
// stage writes only its own fields and appends to Diagnostics; no stage reads
// a field produced by a later stage.
type DocumentState struct {
	SourceRef      string              `json:"source_ref"`
	Format         Format              `json:"format"`
	RawText        string              `json:"raw_text"`
	CleanedText    string              `json:"cleaned_text"`
	Entities       map[string][]string `json:"entities"`
	StructuredData map[string][]string `json:"structured_data"`
	Summary        string              `json:"summary"`
	SummaryTier    SummaryTier         `json:"summary_tier,omitempty"`
	Diagnostics    []string            `json:"diagnostics"`
	WantAISummary  bool                `json:"want_ai_summary"`
	Stage          Stage               `json:"stage"`
}

// NewDocumentState builds the initial record with every collection present,
// so callers never see a nil map or slice.
func NewDocumentState(sourceRef string, format Format, wantAISummary bool) *DocumentState {
	return &DocumentState{
		SourceRef:      sourceRef,
		Format:         format,
		Entities:       EmptyEntities(),
		StructuredData: EmptyStructuredData(),
		Diagnostics:    []string{},
		WantAISummary:  wantAISummary,
		Stage:          StageExtracting,
	}
}

// EmptyEntities returns the all-empty entity mapping used both at init and
// when the NER capability degrades.
func EmptyEntities() map[string][]string {
	return map[string][]string{
		EntityPersons:       {},
		EntityLocations:     {},
		EntityOrganizations: {},
		EntityDates:         {},
		EntityMoney:         {},
	}
}

// EmptyStructuredData returns the all-empty structured field mapping.
func EmptyStructuredData() map[string][]string {
	return map[string][]string{
		FieldPhoneNumbers: {},
		FieldNationalIDs:  {},
		FieldDates:        {},
	}
}

// AddDiagnostic appends a non-fatal issue description. Diagnostics never
// abort the pipeline.
func (s *DocumentState) AddDiagnostic(msg string) {
	if msg == "" {
		return
	}
	s.Diagnostics = append(s.Diagnostics, msg)
}
