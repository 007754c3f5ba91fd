package controlpoint

import "fmt"

const (
	StatusInactive   = "INACTIVE"
	StatusControlled = "CONTROLLED"
)

// ControlPoint is a physical location on the playing field that a team can own.
// Status is Controlled exactly when OwnerTeamID is set.
type ControlPoint struct {
	ID          string
	GameID      string
	Name        string
	GridRow     int
	GridCol     int
	CaptureCode string
	Status      string
	OwnerTeamID *string
}

func (c ControlPoint) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("control point id is required")
	}
	if c.GameID == "" {
		return fmt.Errorf("control point game id is required")
	}
	switch c.Status {
	case StatusControlled:
		if c.OwnerTeamID == nil || *c.OwnerTeamID == "" {
			return fmt.Errorf("controlled point must have an owner team")
		}
	case StatusInactive:
		if c.OwnerTeamID != nil {
			return fmt.Errorf("inactive point must not have an owner team")
		}
	default:
		return fmt.Errorf("invalid control point status %q", c.Status)
	}

	return nil
}

// StatusForOwner returns the status implied by an owner value, keeping the
// owner/status invariant in one place.
func StatusForOwner(ownerTeamID *string) string {
	if ownerTeamID == nil || *ownerTeamID == "" {
		return StatusInactive
	}
	return StatusControlled
}
