package bootstrap

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"google.golang.org/api/option"

	appconfig "github.com/blckops/agency-site/internal/config"
	"github.com/blckops/agency-site/internal/leads"
	"github.com/blckops/agency-site/internal/notify"
	"github.com/blckops/agency-site/pkg/logging"
)

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(redisOptions)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available", "error", err)
		_ = client.Close()
		return nil
	}
	return client
}

// SinkDeps carries the optional clients a lead sink chain can use. Nil
// fields leave the matching sink out of the chain.
type SinkDeps struct {
	Postgres      leads.Execer
	Redis         redis.Cmdable
	S3            leads.S3API
	SQS           leads.SQSAPI
	SheetsOptions []option.ClientOption
}

// BuildLeadSinks assembles the delivery chain in cfg.LeadSinks order and
// appends local as the final fallback. Unknown names are an error so a typo
// in LEAD_SINKS fails at startup; known but unconfigured sinks are skipped.
func BuildLeadSinks(ctx context.Context, cfg *appconfig.Config, deps SinkDeps, local *leads.FileSink, logger *logging.Logger) ([]leads.Sink, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var sinks []leads.Sink
	seen := map[string]bool{}
	for _, raw := range cfg.LeadSinks {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		sink, err := buildSink(ctx, name, cfg, deps)
		if err != nil {
			return nil, err
		}
		if sink == nil {
			logger.Debug("lead sink not configured, skipping", "sink", name)
			continue
		}
		sinks = append(sinks, sink)
	}

	if local != nil {
		sinks = append(sinks, local)
	}
	if len(sinks) == 0 {
		return nil, fmt.Errorf("bootstrap: no lead sinks available")
	}
	return sinks, nil
}

func buildSink(ctx context.Context, name string, cfg *appconfig.Config, deps SinkDeps) (leads.Sink, error) {
	switch name {
	case "sheets":
		sheetsCfg := leads.SheetsConfig{
			ClientEmail:   cfg.GoogleClientEmail,
			PrivateKey:    cfg.GooglePrivateKey,
			SpreadsheetID: cfg.GoogleSheetID,
			Tab:           cfg.GoogleSheetTab,
		}
		if !sheetsCfg.Configured() {
			return nil, nil
		}
		sink, err := leads.NewSheetsSink(ctx, sheetsCfg, deps.SheetsOptions...)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: sheets sink: %w", err)
		}
		return sink, nil
	case "postgres":
		if deps.Postgres == nil {
			return nil, nil
		}
		return leads.NewPostgresSink(deps.Postgres), nil
	case "redis":
		if deps.Redis == nil {
			return nil, nil
		}
		return leads.NewRedisSink(deps.Redis, cfg.LeadsRedisKey), nil
	case "s3":
		if deps.S3 == nil || cfg.LeadsS3Bucket == "" {
			return nil, nil
		}
		return leads.NewS3Sink(deps.S3, cfg.LeadsS3Bucket), nil
	case "sqs":
		if deps.SQS == nil || cfg.LeadsSQSQueueURL == "" {
			return nil, nil
		}
		return leads.NewSQSSink(deps.SQS, cfg.LeadsSQSQueueURL), nil
	case "local":
		// Always appended last.
		return nil, nil
	default:
		return nil, fmt.Errorf("bootstrap: unknown lead sink %q", name)
	}
}

// BuildLeadNotifier picks an email transport for new-lead alerts. SendGrid
// wins over SES; development without either logs alerts instead.
// It returns nil when LEAD_ALERT_EMAIL is unset.
func BuildLeadNotifier(cfg *appconfig.Config, ses notify.SESAPI, logger *logging.Logger) leads.Notifier {
	recipients := strings.Split(cfg.LeadAlertEmail, ",")

	var sender notify.EmailSender
	if sg := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger); sg != nil {
		sender = sg
	} else if s := notify.NewSESSender(ses, cfg.SESFromEmail, cfg.SendGridFromName); s != nil {
		sender = s
	}
	if sender == nil && cfg.IsDevelopment() {
		sender = notify.NewLogSender(logger)
	}
	if sender == nil {
		return nil
	}

	alerter := notify.NewLeadAlerter(sender, recipients, logger)
	if alerter == nil {
		return nil
	}
	return alerter
}
