package categorize

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	copilot "github.com/github/copilot-sdk/go"

	"github.com/spboyer/scorecard/internal/models"
)

const defaultCopilotTimeout = 60 * time.Second

// Copilot asks a Copilot SDK session to categorize metrics.
type Copilot struct {
	model   string
	timeout time.Duration
	client  copilotClient

	startOnce sync.Once
	startErr  error

	closeOnce sync.Once
	closeErr  error
	closed    atomic.Bool
}

var _ Categorizer = (*Copilot)(nil)

// NewCopilot creates a Copilot categorizer. newClient may be nil, in which
// case a real SDK client is used.
func NewCopilot(model string, newClient func(*copilot.ClientOptions) copilotClient) *Copilot {
	opts := &copilot.ClientOptions{
		LogLevel:  "error",
		AutoStart: copilot.Bool(false),
	}
	if newClient == nil {
		newClient = newCopilotClient
	}
	return &Copilot{
		model:   model,
		timeout: defaultCopilotTimeout,
		client:  newClient(opts),
	}
}

func (c *Copilot) Categorize(ctx context.Context, metrics []string) (map[string]models.Category, error) {
	if len(metrics) == 0 {
		return map[string]models.Category{}, nil
	}

	if c.closed.Load() {
		return nil, ErrClosed
	}
	c.startOnce.Do(func() {
		c.startErr = c.client.Start(ctx)
	})
	if c.startErr != nil {
		return nil, fmt.Errorf("copilot failed to start: %w", c.startErr)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	session, err := c.client.CreateSession(ctx, &copilot.SessionConfig{
		Model:               c.model,
		OnPermissionRequest: denyAllTools,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	var parts []string
	unsubscribe := session.On(func(event copilot.SessionEvent) {
		if event.Type == copilot.AssistantMessage && event.Data.Content != nil {
			parts = append(parts, *event.Data.Content)
		}
	})
	defer unsubscribe()
	unsubscribeLog := session.On(logSessionEvent)
	defer unsubscribeLog()

	reply, err := session.SendAndWait(ctx, copilot.MessageOptions{Prompt: buildPrompt(metrics)})
	if err != nil {
		return nil, fmt.Errorf("categorization request failed: %w", err)
	}

	text := strings.Join(parts, "")
	if text == "" && reply != nil && reply.Data.Content != nil {
		text = *reply.Data.Content
	}
	return parseCategories(metrics, text)
}

// Close stops the underlying client if it was started. Later calls to
// Categorize return ErrClosed.
func (c *Copilot) Close() error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		started := true
		c.startOnce.Do(func() {
			started = false
			c.startErr = ErrClosed
		})
		if started {
			c.closeErr = c.client.Stop()
		}
	})
	return c.closeErr
}

func buildPrompt(metrics []string) string {
	var b strings.Builder
	b.WriteString("Categorize each marketing metric below into exactly one of these categories:\n")
	b.WriteString("- Reach: how many people saw or heard about the campaign\n")
	b.WriteString("- Depth: how deeply the audience engaged with it\n")
	b.WriteString("- Action: conversions such as sign-ups, clicks or downloads\n\n")
	b.WriteString("Reply with a single JSON object mapping each metric name to its category and nothing else.\n\n")
	b.WriteString("Metrics:\n")
	for _, m := range metrics {
		b.WriteString("- ")
		b.WriteString(m)
		b.WriteString("\n")
	}
	return b.String()
}

// parseCategories pulls the first JSON object out of a model reply. Metrics
// the model skipped or labeled with an unknown category are Uncategorized.
func parseCategories(metrics []string, reply string) (map[string]models.Category, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end <= start {
		return nil, ErrEmptyResponse
	}

	var raw map[string]string
	if err := json.Unmarshal([]byte(reply[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("parsing categorizer reply: %w", err)
	}

	labels := make(map[string]models.Category, len(raw))
	for k, v := range raw {
		labels[k] = models.Category(v)
	}
	return Complete(metrics, labels), nil
}

func denyAllTools(_ copilot.PermissionRequest, _ copilot.PermissionInvocation) (copilot.PermissionRequestResult, error) {
	return copilot.PermissionRequestResult{Kind: "denied-by-rules"}, nil
}
