package notification

import (
	"context"
	"fmt"
	"sync"

	"github.com/advisor-site/lead-intake/internal/config"
	"github.com/advisor-site/lead-intake/internal/logging"
	"github.com/advisor-site/lead-intake/internal/models"
	"github.com/advisor-site/lead-intake/internal/observability"
	"github.com/advisor-site/lead-intake/internal/utils"
	"github.com/advisor-site/lead-intake/internal/utils/httpclient"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"go.uber.org/zap"
)

// Sender delivers one message or fails.
type Sender interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}

// SenderProvider returns the Sender for the current email settings.
type SenderProvider interface {
	SenderFor(ctx context.Context, settings config.EmailSettings) (Sender, error)
}

// ProviderRegistry builds senders from live settings. Resend senders are
// cheap and built per call; SES clients are cached per region.
type ProviderRegistry struct {
	resendEndpoint string
	pool           *httpclient.Pool
	newSESClient   func(ctx context.Context, region string) (SESAPI, error)

	mu         sync.Mutex
	sesClients map[string]SESAPI
}

// NewProviderRegistry creates a registry that talks to the real providers
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		pool:         httpclient.GetGlobalPool(),
		newSESClient: loadSESClient,
		sesClients:   make(map[string]SESAPI),
	}
}

func loadSESClient(ctx context.Context, region string) (SESAPI, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return ses.NewFromConfig(cfg), nil
}

// SenderFor implements SenderProvider
func (r *ProviderRegistry) SenderFor(ctx context.Context, settings config.EmailSettings) (Sender, error) {
	switch settings.Provider {
	case config.ProviderResend:
		return NewResendSender(settings.ResendAPIKey, r.resendEndpoint, r.pool), nil
	case config.ProviderSES:
		client, err := r.sesClient(ctx, settings.SESRegion)
		if err != nil {
			return nil, fmt.Errorf("failed to load SES client for region %s: %w", settings.SESRegion, err)
		}
		return NewSESSender(client), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", settings.Provider)
	}
}

func (r *ProviderRegistry) sesClient(ctx context.Context, region string) (SESAPI, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if client, ok := r.sesClients[region]; ok {
		return client, nil
	}
	client, err := r.newSESClient(ctx, region)
	if err != nil {
		return nil, err
	}
	r.sesClients[region] = client
	return client, nil
}

// Dispatcher addresses a message from the settings and hands it to the
// provider's sender. It never retries.
type Dispatcher struct {
	provider SenderProvider
	logger   *logging.SafeLogger
}

// NewDispatcher creates a dispatcher over provider
func NewDispatcher(provider SenderProvider, logger *logging.SafeLogger) *Dispatcher {
	return &Dispatcher{provider: provider, logger: logger}
}

// Dispatch sends msg from settings.From to settings.Inbox. Failures wrap
// models.ErrDispatchFailed.
func (d *Dispatcher) Dispatch(ctx context.Context, settings config.EmailSettings, msg Message) error {
	msg.From = settings.From
	msg.To = settings.Inbox

	sender, err := d.provider.SenderFor(ctx, settings)
	if err != nil {
		observability.EmailDispatch.WithLabelValues(settings.Provider, "error").Inc()
		d.logger.Error("failed to resolve email sender",
			zap.String("provider", settings.Provider),
			zap.Error(err))
		return fmt.Errorf("%w: %w", models.ErrDispatchFailed, err)
	}

	ctx, span := utils.TraceExternalService(ctx, sender.Name(), "send_email")
	defer span.End()

	if err := sender.Send(ctx, msg); err != nil {
		utils.RecordErrorInSpan(span, err, map[string]interface{}{
			"email.provider": sender.Name(),
		})
		observability.EmailDispatch.WithLabelValues(sender.Name(), "error").Inc()
		d.logger.Error("failed to send notification email",
			zap.String("provider", sender.Name()),
			zap.String("subject", msg.Subject),
			zap.String("reply_to", observability.MaskEmail(msg.ReplyTo)),
			zap.Error(err))
		return fmt.Errorf("%w: %w", models.ErrDispatchFailed, err)
	}

	observability.EmailDispatch.WithLabelValues(sender.Name(), "success").Inc()
	d.logger.Info("notification email sent",
		zap.String("provider", sender.Name()),
		zap.String("subject", msg.Subject))
	return nil
}
