package cache

import (
	"fmt"

	"github.com/collabohq/collabo/pkg/models"
	"github.com/google/uuid"
)

func LatestAnalysisKey(tenantID, contactID uuid.UUID, op models.Operation) string {
	return fmt.Sprintf("analysis:latest:%s:%s:%s", tenantID, contactID, op)
}

func RateLimitKey(keyPrefix string) string {
	return fmt.Sprintf("ratelimit:%s", keyPrefix)
}
