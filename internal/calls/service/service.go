// Package service implements call listing and the batch scheduling
// pipeline: validated rows plus one schedule window become exactly one
// upstream batch-call submission.
package service

import (
	"context"
	"encoding/json"

	"callportal_backend/internal/calls/ingest"
	"callportal_backend/internal/calls/transport"
	"callportal_backend/platform/logger"
	"callportal_backend/platform/vapi"
)

const defaultListLimit = 100

// Upstream is the slice of the provider client the calls module uses.
// The concrete client is request-scoped and passed per call.
type Upstream interface {
	ListCalls(ctx context.Context, limit int) (json.RawMessage, error)
	GetCall(ctx context.Context, id string) (*vapi.Call, error)
	CreateCalls(ctx context.Context, req vapi.BatchCallRequest) (json.RawMessage, error)
}

// Service holds the calls module's behavior.
type Service struct {
	log *logger.Logger
}

// New creates the calls service.
func New(log *logger.Logger) *Service {
	return &Service{log: log}
}

// List returns up to limit call records, passed through from upstream.
func (s *Service) List(ctx context.Context, client Upstream, limit int) (json.RawMessage, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return client.ListCalls(ctx, limit)
}

// Get returns one call record, passed through from upstream.
func (s *Service) Get(ctx context.Context, client Upstream, id string) (json.RawMessage, error) {
	call, err := client.GetCall(ctx, id)
	if err != nil {
		return nil, err
	}
	return call.Raw, nil
}

// Artifacts returns the recording and transcript fields of a call.
func (s *Service) Artifacts(ctx context.Context, client Upstream, id string) (transport.ArtifactsResponse, error) {
	call, err := client.GetCall(ctx, id)
	if err != nil {
		return transport.ArtifactsResponse{}, err
	}

	if call.Artifact == nil {
		return transport.ArtifactsResponse{}, nil
	}
	return transport.ArtifactsResponse{
		Transcript:         call.Artifact.Transcript,
		RecordingURL:       call.Artifact.RecordingURL,
		StereoRecordingURL: call.Artifact.StereoRecordingURL,
		VideoRecordingURL:  call.Artifact.VideoRecordingURL,
		Recording:          call.Artifact.Recording,
	}, nil
}

// ScheduleUpload parses an uploaded workbook and submits the resulting
// batch to the upstream exactly once. Upstream failures propagate
// unwrapped; nothing is retried.
func (s *Service) ScheduleUpload(ctx context.Context, client Upstream, assistantID string, file []byte) (json.RawMessage, error) {
	upload, err := ingest.Parse(file)
	if err != nil {
		return nil, err
	}

	customers := make([]vapi.Customer, 0, len(upload.Rows))
	for _, row := range upload.Rows {
		customers = append(customers, vapi.Customer{Name: row.Name, Number: row.Number})
	}

	result, err := client.CreateCalls(ctx, vapi.BatchCallRequest{
		AssistantID:  assistantID,
		Customers:    customers,
		SchedulePlan: planFromWindow(upload.Window),
	})
	if err != nil {
		return nil, err
	}

	s.log.WithContext(ctx).Info("batch call scheduled",
		"assistant_id", assistantID,
		"customers", len(customers),
	)
	return result, nil
}

// ScheduleSingle schedules one call, sharing the window construction with
// the batch path for exactly one row.
func (s *Service) ScheduleSingle(ctx context.Context, client Upstream, req transport.ScheduleSingleRequest) (json.RawMessage, error) {
	window, err := ingest.ParseWindow(req.EarliestAt, req.LatestAt)
	if err != nil {
		return nil, err
	}

	batch := vapi.BatchCallRequest{
		AssistantID:  req.AssistantID,
		Customers:    []vapi.Customer{{Name: req.Name, Number: req.Number}},
		SchedulePlan: planFromWindow(window),
	}
	if len(req.Context) > 0 {
		batch.AssistantOverrides = &vapi.AssistantOverrides{VariableValues: req.Context}
	}

	result, err := client.CreateCalls(ctx, batch)
	if err != nil {
		return nil, err
	}

	s.log.WithContext(ctx).Info("single call scheduled",
		"assistant_id", req.AssistantID,
	)
	return result, nil
}

func planFromWindow(window ingest.Window) *vapi.SchedulePlan {
	return &vapi.SchedulePlan{
		EarliestAt: window.EarliestAt,
		LatestAt:   window.LatestAt,
	}
}
