package numbers

import (
	"context"
	"encoding/json"

	"callportal_backend/platform/logger"
	"callportal_backend/platform/phone"
	"callportal_backend/platform/vapi"
)

// Upstream is the slice of the provider client the numbers module uses.
type Upstream interface {
	ListPhoneNumbers(ctx context.Context) ([]vapi.PhoneNumber, error)
	UpdatePhoneNumber(ctx context.Context, id string, update vapi.PhoneNumberUpdate) (json.RawMessage, error)
}

// NumberSummary is the frontend view of a phone number record.
type NumberSummary struct {
	ID          string `json:"id"`
	PhoneNumber string `json:"phoneNumber"`
	AssistantID string `json:"assistantId,omitempty"`
}

// Service implements phone-number listing and assistant assignment.
type Service struct {
	log *logger.Logger
}

// NewService creates the numbers service.
func NewService(log *logger.Logger) *Service {
	return &Service{log: log}
}

// List returns the provisioned numbers. Display numbers are normalized to
// E.164 when they parse; unparseable values pass through untouched.
func (s *Service) List(ctx context.Context, client Upstream) ([]NumberSummary, error) {
	records, err := client.ListPhoneNumbers(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]NumberSummary, 0, len(records))
	for _, record := range records {
		display := record.Number
		if display == "" {
			display = record.ID
		}
		out = append(out, NumberSummary{
			ID:          record.ID,
			PhoneNumber: phone.NormalizeE164(display),
			AssistantID: record.ResolveAssistantID(),
		})
	}
	return out, nil
}

// AssignAssistant binds a number to an assistant; a nil assistant ID
// detaches the current one.
func (s *Service) AssignAssistant(ctx context.Context, client Upstream, numberID string, assistantID *string) (json.RawMessage, error) {
	result, err := client.UpdatePhoneNumber(ctx, numberID, vapi.PhoneNumberUpdate{AssistantID: assistantID})
	if err != nil {
		return nil, err
	}

	s.log.WithContext(ctx).Info("number assistant updated", "number_id", numberID)
	return result, nil
}
