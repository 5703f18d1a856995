package bookmarkai

// Placeholder summaries stored when a pipeline stage could not produce one.
const (
	SummaryFetchFailed       = "Failed to fetch content. Please check the URL and try again."
	SummaryAnalysisFailed    = "AI analysis failed. Please try again later."
	SummaryCredentialMissing = "No AI provider credential configured. Add your API key in account settings."
	SummaryGenerationFailed  = "Summary generation failed. Please try again later."
	SummaryEmpty             = "No summary available."
)

// Warnings attached to degraded bookmarks.
const (
	WarnFetchFailed       = "Content fetching failed. The bookmark was saved but without content analysis."
	WarnAnalysisFailed    = "AI analysis partially failed. The bookmark was saved with limited analysis."
	WarnCredentialMissing = "No AI provider API key provided. Please add your API key in account settings."
)

// Fallback tag sets stored when a pipeline stage failed. They pass through
// NormalizeTags unchanged.
var (
	FetchFailedTags    = []string{"error", "fetch-failed", "invalid-url"}
	AnalysisFailedTags = []string{"error", "analysis-failed", "retry"}
)

// Tag constraints.
const (
	MaxTagLength = 50
	MaxTags      = 5
)

// BannedTags are generic terms never stored as tags.
var BannedTags = []string{"other", "miscellaneous", "general", "misc", "various"}
