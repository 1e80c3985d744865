package favorites

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/cairogo-gateway/internal/domain"
	"github.com/cairogo-gateway/internal/pkg/logger"
)

// Topic - watermill topic of ledger change notifications
const Topic = "favorites.updated"

const subscriberBuffer = 16

// Bus fans ledger changes out to in-process subscribers (open views, the
// terminal client). A nil *Bus drops every event.
type Bus struct {
	pubsub *gochannel.GoChannel
	logger *zap.Logger
}

func NewBus(log *zap.Logger) *Bus {
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer:            64,
			BlockPublishUntilSubscriberAck: true,
		}, logger.NewWatermill(log)),
		logger: log,
	}
}

// Publish sends evt to every current subscriber.
func (b *Bus) Publish(evt domain.FavoritesUpdated) error {
	if b == nil {
		return nil
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encode favorites event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("namespace", evt.Namespace)
	if err := b.pubsub.Publish(Topic, msg); err != nil {
		return fmt.Errorf("publish favorites event: %w", err)
	}
	return nil
}

// Subscribe streams decoded events until ctx is done. When namespace is not
// empty, events of other namespaces are skipped. A subscriber that falls more
// than subscriberBuffer events behind misses the overflow.
func (b *Bus) Subscribe(ctx context.Context, namespace string) (<-chan domain.FavoritesUpdated, error) {
	messages, err := b.pubsub.Subscribe(ctx, Topic)
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", Topic, err)
	}

	out := make(chan domain.FavoritesUpdated, subscriberBuffer)
	go func() {
		defer close(out)
		for msg := range messages {
			var evt domain.FavoritesUpdated
			if err := json.Unmarshal(msg.Payload, &evt); err != nil {
				b.logger.Warn("Dropping malformed favorites event", zap.String("uuid", msg.UUID), zap.Error(err))
				msg.Ack()
				continue
			}
			msg.Ack()
			if namespace != "" && evt.Namespace != namespace {
				continue
			}
			select {
			case out <- evt:
			default:
				b.logger.Warn("Favorites subscriber is behind, event dropped",
					zap.String("namespace", evt.Namespace),
					zap.String("op", string(evt.Op)),
				)
			}
		}
	}()
	return out, nil
}

func (b *Bus) Close() error {
	if b == nil {
		return nil
	}
	return b.pubsub.Close()
}
