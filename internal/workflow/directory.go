package workflow

import (
	"fmt"

	"github.com/Mzarifin59/letter-pln-sub001/internal/entity"
)

// FixedDirectory resolves escalation recipients from the configured fixed
// actor ids (the admin, the supervisor and the gardu induk operator).
type FixedDirectory struct {
	AdminID      string
	SupervisorID string
	GarduIndukID string
}

// EscalationRecipient returns the user id that must receive the email for
// a given kategori and hop.
func (d FixedDirectory) EscalationRecipient(kategori string, hop Hop) (string, error) {
	var id string
	switch hop {
	case HopSubmit:
		id = d.SupervisorID
	case HopEscalate:
		if kategori == entity.KategoriBongkaran {
			id = d.GarduIndukID
		} else {
			id = d.AdminID
		}
	default:
		return "", fmt.Errorf("unknown hop %q", hop)
	}
	if id == "" {
		return "", fmt.Errorf("no escalation recipient configured for kategori %s hop %s", kategori, hop)
	}
	return id, nil
}
