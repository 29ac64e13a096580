// Package stream applies DynamoDB Streams change events to in-memory record
// views.
package stream

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/bunch/dynamo"
)

var (
	// ErrUnknownTable is returned for events from a table with no binding.
	ErrUnknownTable = errors.New("stream: no binding for table")

	// ErrUnknownEvent is returned for event names other than INSERT, MODIFY
	// and REMOVE.
	ErrUnknownEvent = errors.New("stream: unknown event name")

	// ErrMissingKey is returned when a key attribute is absent from an event.
	ErrMissingKey = errors.New("stream: missing key attribute")
)

// Handler folds DynamoDB stream events into the views of a Registry.
type Handler struct {
	registry *Registry
	config   Config
	logger   *slog.Logger
	now      func() time.Time
}

// NewHandler creates a new stream handler.
func NewHandler(registry *Registry, config Config, logger *slog.Logger) *Handler {
	if registry == nil {
		registry = NewRegistry()
	}
	if logger == nil {
		logger = slog.Default()
	}
	config.validate()
	return &Handler{
		registry: registry,
		config:   config,
		logger:   logger,
		now:      time.Now,
	}
}

// HandleEvent applies the records of event in order and stops at the first
// failure, leaving the records before it applied. Re-delivering the batch is
// safe: replaying an image already held replaces it with an equal one and
// removing a key twice is ignored.
// This function is designed to be used as an AWS Lambda handler.
func (h *Handler) HandleEvent(ctx context.Context, event events.DynamoDBEvent) error {
	for _, record := range event.Records {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := h.processRecord(record); err != nil {
			h.logger.Error("failed to process record",
				"eventID", record.EventID,
				"error", err,
			)
			return err
		}
	}
	return nil
}

// processRecord applies a single DynamoDB stream record.
func (h *Handler) processRecord(record events.DynamoDBEventRecord) error {
	table := TableName(record.EventSourceArn)
	binding, ok := h.registry.Lookup(table)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	key, err := h.viewKey(binding, record.Change.Keys)
	if err != nil {
		return err
	}

	switch record.EventName {
	case string(events.DynamoDBOperationTypeInsert), string(events.DynamoDBOperationTypeModify):
		image, err := ImageRecord(record.Change.NewImage)
		if err != nil {
			return fmt.Errorf("decode image %q: %w", key, err)
		}
		if h.config.DropExpired && dynamo.IsExpired(image, h.config.TTLAttribute, h.now()) {
			h.logger.Info("dropping expired item",
				"table", table,
				"key", key,
			)
			return h.remove(binding, key)
		}
		if err := binding.View.Set(key, image); err != nil {
			return fmt.Errorf("apply %s %q: %w", record.EventName, key, err)
		}
		h.logger.Debug("applied change",
			"table", table,
			"key", key,
			"event", record.EventName,
		)
		return nil
	case string(events.DynamoDBOperationTypeRemove):
		return h.remove(binding, key)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, record.EventName)
	}
}

// remove deletes key from the view. Keys the view does not hold are ignored.
func (h *Handler) remove(binding Binding, key string) error {
	if !binding.View.Has(key) {
		return nil
	}
	if err := binding.View.Delete(key); err != nil {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}

// viewKey joins the key attribute values of an event. Binary values are
// hex-encoded.
func (h *Handler) viewKey(binding Binding, keys map[string]events.DynamoDBAttributeValue) (string, error) {
	pk := ConvertStreamKey(keys)
	attrs := binding.KeyAttributes
	if len(attrs) == 0 {
		attrs = slices.Sorted(maps.Keys(keys))
	}
	if len(attrs) == 0 {
		return "", fmt.Errorf("%w: event has no keys", ErrMissingKey)
	}
	parts := make([]string, len(attrs))
	for i, attr := range attrs {
		switch v := pk[attr].(type) {
		case *types.AttributeValueMemberS:
			parts[i] = v.Value
		case *types.AttributeValueMemberN:
			parts[i] = v.Value
		case *types.AttributeValueMemberB:
			parts[i] = hex.EncodeToString(v.Value)
		default:
			if _, ok := keys[attr]; ok {
				return "", fmt.Errorf("%w: %q is not a scalar", ErrMissingKey, attr)
			}
			return "", fmt.Errorf("%w: %q", ErrMissingKey, attr)
		}
	}
	return strings.Join(parts, h.config.KeySeparator), nil
}

// TableName extracts the table name from a stream ARN of the form
// arn:aws:dynamodb:region:account:table/NAME/stream/LABEL. It returns "" for
// anything else.
func TableName(arn string) string {
	_, rest, ok := strings.Cut(arn, ":table/")
	if !ok {
		return ""
	}
	name, _, _ := strings.Cut(rest, "/")
	return name
}
