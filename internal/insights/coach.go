package insights

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"

	"github.com/google/uuid"

	"callportal_backend/platform/ai/azureopenai"
	"callportal_backend/platform/apperr"
	"callportal_backend/platform/config"
	"callportal_backend/platform/logger"
)

const coachInstruction = "You are an expert call QA coach."

// Coach compares human and AI call responses using the ADK framework
// with an Azure OpenAI chat model behind it.
type Coach struct {
	agent          agent.Agent
	runner         *runner.Runner
	sessionService session.Service
	appName        string
	log            *logger.Logger
}

// NewCoach builds the QA coach agent. Returns nil when Azure OpenAI is
// not configured; callers answer 501 in that state.
func NewCoach(cfg config.InsightsConfig, log *logger.Logger) (*Coach, error) {
	if !cfg.IsInsightsEnabled() {
		return nil, nil
	}

	temperature := 0.2
	chatModel := azureopenai.NewModel(azureopenai.Config{
		Endpoint:    cfg.GetAzureOpenAIEndpoint(),
		APIKey:      cfg.GetAzureOpenAIAPIKey(),
		Deployment:  cfg.GetAzureOpenAIDeployment(),
		Temperature: &temperature,
	})

	coach := &Coach{
		appName: "call_qa_coach",
		log:     log,
	}

	adkAgent, err := llmagent.New(llmagent.Config{
		Name:        "CallQACoach",
		Model:       chatModel,
		Description: "Call quality coach that compares human and AI responses from voice calls and scores them.",
		Instruction: coachInstruction,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create coach agent: %w", err)
	}

	sessionService := session.InMemoryService()

	r, err := runner.New(runner.Config{
		AppName:        coach.appName,
		Agent:          adkAgent,
		SessionService: sessionService,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create coach runner: %w", err)
	}

	coach.agent = adkAgent
	coach.runner = r
	coach.sessionService = sessionService

	return coach, nil
}

// Compare scores responses from a call. Either a full transcript or a
// human/AI response pair may be supplied.
func (c *Coach) Compare(ctx context.Context, humanResponse, aiResponse, transcript string) (string, error) {
	prompt := buildComparePrompt(humanResponse, aiResponse, transcript)

	userID := "coach-" + uuid.New().String()
	sessionID := uuid.New().String()

	_, err := c.sessionService.Create(ctx, &session.CreateRequest{
		AppName:   c.appName,
		UserID:    userID,
		SessionID: sessionID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	defer func() {
		deleteReq := &session.DeleteRequest{
			AppName:   c.appName,
			UserID:    userID,
			SessionID: sessionID,
		}
		if deleteErr := c.sessionService.Delete(ctx, deleteReq); deleteErr != nil {
			c.log.WithContext(ctx).Warn("failed to delete coach session",
				"session_id", sessionID,
				"error", deleteErr,
			)
		}
	}()

	userMessage := &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			{Text: prompt},
		},
	}

	var output strings.Builder
	runConfig := agent.RunConfig{
		StreamingMode: agent.StreamingModeNone,
	}
	for event, err := range c.runner.Run(ctx, userID, sessionID, userMessage, runConfig) {
		if err != nil {
			return "", apperr.Wrap(apperr.KindUpstream, "analysis model call failed", err)
		}
		if event.Content != nil {
			for _, part := range event.Content.Parts {
				output.WriteString(part.Text)
			}
		}
	}

	return output.String(), nil
}

func buildComparePrompt(humanResponse, aiResponse, transcript string) string {
	if transcript != "" {
		return fmt.Sprintf("Transcript:\n%s\n\nExtract the human vs AI responses and produce a concise comparison with scores (helpfulness, clarity, tone, compliance) 0-10 each, and a short paragraph on improvement advice.", transcript)
	}
	return fmt.Sprintf("Human: %s\nAI: %s", humanResponse, aiResponse)
}
