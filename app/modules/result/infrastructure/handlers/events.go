package resulthandlers

import (
	"context"
	"encoding/json"
	"fmt"

	resultservice "github.com/Black-And-White-Club/frolf-stats/app/modules/result/application"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/observability/attr"
)

// HandleResultsImported drops cached medians and standings of the session
// named in the event.
func (h *ResultHandlers) HandleResultsImported(ctx context.Context, payload []byte) error {
	var event resultservice.ImportedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("failed to unmarshal %s payload: %w", resultservice.TopicResultsImported, err)
	}

	h.logger.InfoContext(ctx, "Received results imported event",
		attr.ExtractCorrelationID(ctx),
		attr.Int("rows", event.Rows),
		attr.Any("divisions", event.Divisions),
	)

	if err := h.service.InvalidateSession(ctx, event.EventSessionID); err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}
	return nil
}
