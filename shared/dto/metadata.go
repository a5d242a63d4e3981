package dto

import (
	"naturekids/shared/constant"
	"naturekids/shared/model"
	"naturekids/shared/timezone"
	"time"
)

// Metadata is the audit trail rendered on API responses.
type Metadata struct {
	CreatedAt  string `json:"created_at,omitempty"`
	CreatedBy  string `json:"created_by,omitempty"`
	ModifiedAt string `json:"modified_at,omitempty"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

func stamp(at time.Time) string {
	if at.IsZero() {
		return ""
	}

	return timezone.Format(at, constant.DateFormat)
}

func (m *Metadata) FromModel(src model.Metadata) {
	*m = Metadata{
		CreatedAt:  stamp(src.CreatedAt),
		CreatedBy:  src.CreatedBy,
		ModifiedAt: stamp(src.ModifiedAt),
		ModifiedBy: src.ModifiedBy,
	}
}
