package model

import (
	"time"

	"github.com/google/uuid"
)

type Member struct {
	ID        uuid.UUID  `json:"id"`
	BandID    uuid.UUID  `json:"band_id"`
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	IsCurrent bool       `json:"is_current"`
	AddedBy   string     `json:"added_by"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// Split partitions a line-up into current and past members, keeping order
func Split(members []Member) (current, past []Member) {
	current = make([]Member, 0, len(members))
	past = make([]Member, 0)
	for _, m := range members {
		if m.IsCurrent {
			current = append(current, m)
		} else {
			past = append(past, m)
		}
	}
	return current, past
}
