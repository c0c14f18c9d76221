package tkdpoller

import (
	"context"
	"fmt"

	"github.com/mjsigg/tkd-project-poller/bootstrap"
	"github.com/mjsigg/tkd-project-poller/config"
)

// PubSubMessage is the payload of a Pub/Sub event. The poller does not inspect it.
type PubSubMessage struct {
	Data []byte `json:"data"`
}

// PollDrive is the Cloud Functions entry point. The configuration is loaded and the poller
// wired on every invocation. A failed poll is returned so that the platform records it.
func PollDrive(ctx context.Context, m PubSubMessage) error {
	cfg, err := bootstrap.Load(config.ModeScheduled)
	if err != nil {
		return fmt.Errorf("configuration error (%w)", err)
	}

	logger := bootstrap.Logger(cfg, false)

	service, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		return err
	}

	defer service.Close()

	_, err = service.Run(ctx)

	return err
}
