package model

import (
	"time"

	"github.com/Proximyst/typewriters/pkg/domain/types"
)

// UpdateEvent is one detected transition, as reported to the caller of a poll cycle.
type UpdateEvent struct {
	ID         types.EventID    `json:"id"`
	Target     types.TargetName `json:"target"`
	Kind       types.TargetKind `json:"kind"`
	DetectedAt time.Time        `json:"detected_at"`

	Build       *BuildUpdate  `json:"build,omitempty"`
	BuildDetail *Build        `json:"build_detail,omitempty"`
	Commits     *CommitUpdate `json:"commits,omitempty"`
}
