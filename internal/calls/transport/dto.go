// Package transport defines the calls module's request and response shapes.
package transport

// ListCallsQuery bounds call listing.
type ListCallsQuery struct {
	Limit int `form:"limit" validate:"omitempty,min=1,max=1000"`
}

// ScheduleSingleRequest schedules one outbound call. Timestamps are
// ISO-8601 strings; context values are forwarded to the assistant as
// template variables.
type ScheduleSingleRequest struct {
	AssistantID string         `json:"assistant_id" validate:"required"`
	Name        string         `json:"name"`
	Number      string         `json:"number" validate:"required"`
	EarliestAt  string         `json:"earliest_at" validate:"required"`
	LatestAt    string         `json:"latest_at"`
	Context     map[string]any `json:"context"`
}

// ArtifactsResponse reshapes a call's artifact for the frontend.
type ArtifactsResponse struct {
	Transcript         string `json:"transcript,omitempty"`
	RecordingURL       string `json:"recordingUrl,omitempty"`
	StereoRecordingURL string `json:"stereoRecordingUrl,omitempty"`
	VideoRecordingURL  string `json:"videoRecordingUrl,omitempty"`
	Recording          any    `json:"recording,omitempty"`
}
