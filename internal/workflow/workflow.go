// Package workflow holds the pure decision logic of the letter approval
// lifecycle. Functions here map (kategori, role, action, current state,
// inputs) to a Decision describing every write the caller must perform;
// they never touch the database themselves.
package workflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Mzarifin59/letter-pln-sub001/internal/entity"
)

// Action names a dispatchable workflow operation.
type Action string

const (
	ActionPublish  Action = "publish"
	ActionApprove  Action = "approve"
	ActionReject   Action = "reject"
	ActionDelete   Action = "delete"
	ActionEdit     Action = "edit"
	ActionMarkRead Action = "mark_read"
	ActionBookmark Action = "bookmark"
)

var (
	// ErrValidation marks a missing or malformed input (empty rejection
	// message, absent signature). No writes may happen after it.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized marks an actor the policy table does not allow for
	// the requested action.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrState marks an action that is legal for the actor but not from
	// the document's current state.
	ErrState = errors.New("invalid document state")
)

// DocState is the slice of a document the engine decides on.
type DocState struct {
	Kategori    string
	StatusEntry string
	StatusSurat string

	// Bongkaran signature state. The two parties sign in either order;
	// the first approval already moves the document to approve, so the
	// second one is admitted by checking the actor's own side here.
	PenerimaSigned   bool
	MengetahuiSigned bool
}

// SignatureInput carries the two accepted signature forms. Whichever is
// non-empty is used; an uploaded object wins when both are present.
type SignatureInput struct {
	ObjectName string // already-stored upload
	DrawnData  string // data-URL from the signature canvas
}

// Empty reports whether neither form was provided.
func (s SignatureInput) Empty() bool {
	return strings.TrimSpace(s.ObjectName) == "" && strings.TrimSpace(s.DrawnData) == ""
}

// Signature party targets on the bongkaran detail row.
const (
	SignTargetPenerima   = "penerima"
	SignTargetMengetahui = "mengetahui"
)

// Hop identifies which escalation recipient the directory should resolve.
type Hop string

const (
	// HopSubmit is the first routing hop after publish.
	HopSubmit Hop = "submit"
	// HopEscalate is the follow-up hop created after a supervisor
	// approval on a bongkaran document.
	HopEscalate Hop = "escalate"
)

// Directory resolves the fixed escalation actors. Injected so the engine
// is testable without live configuration.
type Directory interface {
	EscalationRecipient(kategori string, hop Hop) (string, error)
}

// NewHop describes an Email (plus its unread status rows) the caller must
// create.
type NewHop struct {
	RecipientID string
	// ExtraStatusFor pre-seeds an additional unread status row for a
	// second watcher of the same hop (the gardu induk on bongkaran).
	ExtraStatusFor string
	// OnlyIfAbsent skips creation when an email to RecipientID already
	// exists for the document.
	OnlyIfAbsent bool
}

// PublishDecision is the outcome of submitting a document into an
// approval round.
type PublishDecision struct {
	StatusEntry string
	StatusSurat string
	Hop         NewHop
}

// Publish moves a draft (or a rejected document being resubmitted) into a
// new in-progress round and routes it to the supervisor.
func Publish(doc DocState, dir Directory) (PublishDecision, error) {
	if doc.StatusEntry == entity.StatusEntryPublished && doc.StatusSurat != entity.StatusSuratReject {
		return PublishDecision{}, fmt.Errorf("%w: document already published with status %s", ErrState, doc.StatusSurat)
	}

	recipient, err := dir.EscalationRecipient(doc.Kategori, HopSubmit)
	if err != nil {
		return PublishDecision{}, err
	}

	hop := NewHop{RecipientID: recipient}
	if doc.Kategori == entity.KategoriBongkaran {
		gi, err := dir.EscalationRecipient(doc.Kategori, HopEscalate)
		if err != nil {
			return PublishDecision{}, err
		}
		hop.ExtraStatusFor = gi
	}

	return PublishDecision{
		StatusEntry: entity.StatusEntryPublished,
		StatusSurat: entity.StatusSuratInProgress,
		Hop:         hop,
	}, nil
}

// ApproveDecision is the outcome of an approval. SignatureTarget is empty
// for categories that approve without signing. NextHop is nil when no
// follow-up email must be created.
type ApproveDecision struct {
	StatusSurat     string
	IsHaveStatus    bool
	SignatureTarget string
	FlipEmail       bool
	NextHop         *NewHop
}

// Approve decides an approval by role and kategori.
//
// Surat jalan approves in one straight terminal transition. Bongkaran
// approvals sign the detail row (supervisor signs penerima, gardu induk
// signs mengetahui), bounce the email back toward the submitter and, on
// the supervisor hop, route a fresh email to the gardu induk unless one
// already exists. Both bongkaran parties must sign, in either order:
// after the first approval the document already reads approve, and the
// second party's approval is still accepted as long as their own side of
// the detail row is unsigned.
func Approve(doc DocState, role string, sig SignatureInput, dir Directory) (ApproveDecision, error) {
	if !Allowed(ActionApprove, doc.Kategori, role) {
		return ApproveDecision{}, fmt.Errorf("%w: role %s cannot approve %s", ErrUnauthorized, role, doc.Kategori)
	}
	if doc.StatusEntry != entity.StatusEntryPublished {
		return ApproveDecision{}, fmt.Errorf("%w: document is not published", ErrState)
	}

	switch doc.Kategori {
	case entity.KategoriSuratJalan, entity.KategoriPemeriksaan:
		if doc.StatusSurat != entity.StatusSuratInProgress {
			return ApproveDecision{}, fmt.Errorf("%w: document is %s, not in progress", ErrState, doc.StatusSurat)
		}
		return ApproveDecision{
			StatusSurat:  entity.StatusSuratApprove,
			IsHaveStatus: true,
		}, nil

	case entity.KategoriBongkaran:
		if doc.StatusSurat != entity.StatusSuratInProgress && doc.StatusSurat != entity.StatusSuratApprove {
			return ApproveDecision{}, fmt.Errorf("%w: document is %s, not awaiting approval", ErrState, doc.StatusSurat)
		}
		if sig.Empty() {
			return ApproveDecision{}, fmt.Errorf("%w: signature is required, upload a file or draw one", ErrValidation)
		}

		d := ApproveDecision{
			StatusSurat:  entity.StatusSuratApprove,
			IsHaveStatus: true,
			FlipEmail:    true,
		}
		switch role {
		case entity.RoleSupervisor:
			if doc.PenerimaSigned {
				return ApproveDecision{}, fmt.Errorf("%w: penerima is already signed", ErrState)
			}
			d.SignatureTarget = SignTargetPenerima
			gi, err := dir.EscalationRecipient(doc.Kategori, HopEscalate)
			if err != nil {
				return ApproveDecision{}, err
			}
			d.NextHop = &NewHop{RecipientID: gi, OnlyIfAbsent: true}
		case entity.RoleGarduInduk:
			if doc.MengetahuiSigned {
				return ApproveDecision{}, fmt.Errorf("%w: mengetahui is already signed", ErrState)
			}
			d.SignatureTarget = SignTargetMengetahui
		}
		return d, nil

	default:
		return ApproveDecision{}, fmt.Errorf("%w: unknown kategori %s", ErrValidation, doc.Kategori)
	}
}

// RejectDecision is the outcome of a rejection: the document and its
// latest email both carry the message, the email direction flips, and the
// new recipient's status row goes back to unread so the bounce shows up.
type RejectDecision struct {
	StatusSurat  string
	IsHaveStatus bool
	Pesan        string
	FlipEmail    bool
	ResetUnread  bool
}

// Reject decides a rejection for any kategori. The message is mandatory
// and the state is always re-enterable: a rejected document flows through
// Publish again.
func Reject(doc DocState, role, pesan string) (RejectDecision, error) {
	if !Allowed(ActionReject, doc.Kategori, role) {
		return RejectDecision{}, fmt.Errorf("%w: role %s cannot reject %s", ErrUnauthorized, role, doc.Kategori)
	}
	if doc.StatusEntry != entity.StatusEntryPublished {
		return RejectDecision{}, fmt.Errorf("%w: document is not published", ErrState)
	}
	if doc.StatusSurat != entity.StatusSuratInProgress {
		return RejectDecision{}, fmt.Errorf("%w: document is %s, not in progress", ErrState, doc.StatusSurat)
	}
	if strings.TrimSpace(pesan) == "" {
		return RejectDecision{}, fmt.Errorf("%w: rejection message (pesan) is required", ErrValidation)
	}

	return RejectDecision{
		StatusSurat:  entity.StatusSuratReject,
		IsHaveStatus: true,
		Pesan:        pesan,
		FlipEmail:    true,
		ResetUnread:  true,
	}, nil
}
