// Package warmup sends a trivial prompt to each configured model at startup
// to validate provider reachability. Purely an operational side effect: it
// runs detached, reports per model to the log, and never gates readiness.
package warmup

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rostrumlabs/rostrum/pkg/llm/provider"
)

// probePrompt is deliberately tiny so probes stay cheap.
const probePrompt = "hi"

const defaultProbeTimeout = 15 * time.Second

// ollamaProbeModels is the fixed probe set for the local daemon, which has
// no single configured model to speak of.
var ollamaProbeModels = []string{"llama3", "mistral"}

// Probe warms up the active provider's models.
type Probe struct {
	client   *provider.Client
	provider string
	models   []string
	timeout  time.Duration
	logger   *zap.Logger
}

// NewProbe builds a probe for the resolved provider and model. For the local
// daemon the probe covers its fixed model set; hosted providers get their
// single configured model.
func NewProbe(client *provider.Client, providerName, model string, timeout time.Duration, logger *zap.Logger) *Probe {
	if timeout == 0 {
		timeout = defaultProbeTimeout
	}

	models := []string{model}
	if provider.Normalize(providerName) == provider.Ollama {
		models = ollamaProbeModels
	}

	return &Probe{
		client:   client,
		provider: provider.Normalize(providerName),
		models:   models,
		timeout:  timeout,
		logger:   logger,
	}
}

// Start launches the probe in a detached goroutine and returns immediately.
// The returned channel closes when probing finishes, which only tests care
// about; request handling never waits on it.
func (p *Probe) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.run(ctx)
	}()
	return done
}

// run probes each model in turn. One model's failure never aborts the rest.
func (p *Probe) run(ctx context.Context) {
	for _, model := range p.models {
		p.probeModel(ctx, model)
	}
}

func (p *Probe) probeModel(ctx context.Context, model string) {
	p.logger.Info("warming up model",
		zap.String("provider", p.provider),
		zap.String("model", model),
	)

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	text, err := p.client.Call(callCtx, p.provider, model, probePrompt)
	if err != nil {
		p.logger.Warn("warm-up probe failed",
			zap.String("provider", p.provider),
			zap.String("model", model),
			zap.Error(err),
		)
		return
	}

	p.logger.Info("warm-up probe succeeded",
		zap.String("provider", p.provider),
		zap.String("model", model),
		zap.Int("reply_len", len(text)),
	)
}
