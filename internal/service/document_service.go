package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Mzarifin59/letter-pln-sub001/internal/entity"
	"github.com/Mzarifin59/letter-pln-sub001/internal/repository"
	"github.com/Mzarifin59/letter-pln-sub001/internal/workflow"
)

// DocumentService is the role-gated dispatcher in front of the workflow
// engine: it loads state, consults the policy table, asks the engine for
// a decision and applies every resulting write inside one transaction.
type DocumentService struct {
	repos   *repository.Repositories
	db      *gorm.DB
	dir     workflow.Directory
	storage *StorageService
}

// NewDocumentService creates the document service.
func NewDocumentService(repos *repository.Repositories, dir workflow.Directory, storage *StorageService) *DocumentService {
	return &DocumentService{
		repos:   repos,
		db:      repos.DB(),
		dir:     dir,
		storage: storage,
	}
}

// CreateDocumentRequest creates a document, optionally publishing it in
// the same call. Exactly one detail payload should match the kategori.
type CreateDocumentRequest struct {
	Kategori          string                    `json:"kategori_surat" binding:"required"`
	Perihal           string                    `json:"perihal" binding:"required"`
	Publish           bool                      `json:"publish"`
	DetailSuratJalan  *entity.DetailSuratJalan  `json:"detail_surat_jalan"`
	DetailBongkaran   *entity.DetailBongkaran   `json:"detail_bongkaran"`
	DetailPemeriksaan *entity.DetailPemeriksaan `json:"detail_pemeriksaan"`
}

// UpdateDocumentRequest edits a draft.
type UpdateDocumentRequest struct {
	Perihal           string                    `json:"perihal"`
	DetailSuratJalan  *entity.DetailSuratJalan  `json:"detail_surat_jalan"`
	DetailBongkaran   *entity.DetailBongkaran   `json:"detail_bongkaran"`
	DetailPemeriksaan *entity.DetailPemeriksaan `json:"detail_pemeriksaan"`
}

// ApproveInput carries the optional signature in either accepted form.
type ApproveInput struct {
	SignatureFile     io.Reader
	SignatureFileName string
	SignatureFileSize int64
	SignatureFileType string
	SignatureDrawn    string
}

// DocumentListResult pages document listings.
type DocumentListResult struct {
	Items      []entity.SuratJalan `json:"items"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	TotalPages int                 `json:"total_pages"`
}

// List returns documents matching the filters.
func (s *DocumentService) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) (*DocumentListResult, error) {
	docs, total, err := s.repos.SuratJalan.List(ctx, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	for i := range docs {
		docs[i].Decorate()
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &DocumentListResult{
		Items:      docs,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Get loads one document.
func (s *DocumentService) Get(ctx context.Context, id string) (*entity.SuratJalan, error) {
	doc, err := s.repos.SuratJalan.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	doc.Decorate()
	return doc, nil
}

// Create stores a new document as a draft, then publishes it when asked.
func (s *DocumentService) Create(ctx context.Context, actorID string, req *CreateDocumentRequest) (*entity.SuratJalan, error) {
	actor, err := s.repos.User.FindByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("load actor: %w", err)
	}

	switch req.Kategori {
	case entity.KategoriSuratJalan, entity.KategoriBongkaran, entity.KategoriPemeriksaan:
	default:
		return nil, fmt.Errorf("%w: unknown kategori_surat %q", workflow.ErrValidation, req.Kategori)
	}
	if !workflow.Allowed(workflow.ActionEdit, req.Kategori, actor.Role) {
		return nil, fmt.Errorf("%w: role %s cannot create %s", workflow.ErrUnauthorized, actor.Role, req.Kategori)
	}

	nomor, err := s.repos.SuratJalan.GenerateNomor(ctx, req.Kategori)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	doc := &entity.SuratJalan{
		ID:          newID(),
		Nomor:       nomor,
		Kategori:    req.Kategori,
		Perihal:     req.Perihal,
		StatusEntry: entity.StatusEntryDraft,
		StatusSurat: entity.StatusSuratDraft,
		CreatedBy:   actor.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	switch req.Kategori {
	case entity.KategoriSuratJalan:
		detail := req.DetailSuratJalan
		if detail == nil {
			detail = &entity.DetailSuratJalan{}
		}
		detail.ID = newID()
		detail.SuratJalanID = doc.ID
		doc.DetailSuratJalan = detail
	case entity.KategoriBongkaran:
		detail := req.DetailBongkaran
		if detail == nil {
			detail = &entity.DetailBongkaran{}
		}
		detail.ID = newID()
		detail.SuratJalanID = doc.ID
		doc.DetailBongkaran = detail
	case entity.KategoriPemeriksaan:
		detail := req.DetailPemeriksaan
		if detail == nil {
			detail = &entity.DetailPemeriksaan{}
		}
		detail.ID = newID()
		detail.SuratJalanID = doc.ID
		doc.DetailPemeriksaan = detail
	}

	if err := s.repos.SuratJalan.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}

	if req.Publish {
		return s.Publish(ctx, doc.ID, actor.ID)
	}

	doc.Decorate()
	return doc, nil
}

// Update edits a draft in place. Published documents are immutable apart
// from workflow actions.
func (s *DocumentService) Update(ctx context.Context, id, actorID string, req *UpdateDocumentRequest) (*entity.SuratJalan, error) {
	actor, err := s.repos.User.FindByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("load actor: %w", err)
	}

	doc, err := s.repos.SuratJalan.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !workflow.Allowed(workflow.ActionEdit, doc.Kategori, actor.Role) {
		return nil, fmt.Errorf("%w: role %s cannot edit %s", workflow.ErrUnauthorized, actor.Role, doc.Kategori)
	}
	if doc.StatusEntry != entity.StatusEntryDraft {
		return nil, fmt.Errorf("%w: only drafts can be edited", workflow.ErrState)
	}

	if strings.TrimSpace(req.Perihal) != "" {
		doc.Perihal = req.Perihal
	}
	doc.UpdatedAt = time.Now()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.SuratJalan{}).Where("id = ?", doc.ID).Updates(map[string]interface{}{
			"perihal":    doc.Perihal,
			"updated_at": doc.UpdatedAt,
		}).Error; err != nil {
			return err
		}
		if req.DetailSuratJalan != nil && doc.Kategori == entity.KategoriSuratJalan {
			if err := tx.Model(&entity.DetailSuratJalan{}).Where("surat_jalan_id = ?", doc.ID).Updates(map[string]interface{}{
				"penerima":     req.DetailSuratJalan.Penerima,
				"pengirim":     req.DetailSuratJalan.Pengirim,
				"kendaraan":    req.DetailSuratJalan.Kendaraan,
				"nomor_polisi": req.DetailSuratJalan.NomorPolisi,
				"updated_at":   doc.UpdatedAt,
			}).Error; err != nil {
				return err
			}
		}
		if req.DetailBongkaran != nil && doc.Kategori == entity.KategoriBongkaran {
			if err := tx.Model(&entity.DetailBongkaran{}).Where("surat_jalan_id = ?", doc.ID).Updates(map[string]interface{}{
				"lokasi":     req.DetailBongkaran.Lokasi,
				"mengetahui": req.DetailBongkaran.Mengetahui,
				"penerima":   req.DetailBongkaran.Penerima,
				"updated_at": doc.UpdatedAt,
			}).Error; err != nil {
				return err
			}
		}
		if req.DetailPemeriksaan != nil && doc.Kategori == entity.KategoriPemeriksaan {
			if err := tx.Model(&entity.DetailPemeriksaan{}).Where("surat_jalan_id = ?", doc.ID).Updates(map[string]interface{}{
				"pemeriksa_barang":  req.DetailPemeriksaan.PemeriksaBarang,
				"penyedia_barang":   req.DetailPemeriksaan.PenyediaBarang,
				"hasil_pemeriksaan": req.DetailPemeriksaan.HasilPemeriksaan,
				"updated_at":        doc.UpdatedAt,
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update document: %w", err)
	}

	return s.Get(ctx, id)
}

// Publish submits a draft (or a rejected document) into a new approval
// round: the document goes in_progress and an email is routed to the
// supervisor, with the gardu induk pre-seeded as a watcher on bongkaran.
func (s *DocumentService) Publish(ctx context.Context, id, actorID string) (*entity.SuratJalan, error) {
	actor, err := s.repos.User.FindByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("load actor: %w", err)
	}

	doc, err := s.repos.SuratJalan.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !workflow.Allowed(workflow.ActionPublish, doc.Kategori, actor.Role) {
		return nil, fmt.Errorf("%w: role %s cannot publish %s", workflow.ErrUnauthorized, actor.Role, doc.Kategori)
	}

	decision, err := workflow.Publish(docState(doc), s.dir)
	if err != nil {
		return nil, err
	}

	recipient, err := s.repos.User.FindByID(ctx, decision.Hop.RecipientID)
	if err != nil {
		return nil, fmt.Errorf("resolve recipient: %w", err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		if err := tx.Model(&entity.SuratJalan{}).Where("id = ?", doc.ID).Updates(map[string]interface{}{
			"status_entry": decision.StatusEntry,
			"status_surat": decision.StatusSurat,
			"pesan":        "",
			"updated_at":   now,
		}).Error; err != nil {
			return err
		}

		return s.createHop(tx, doc, actor, recipient, decision.Hop)
	})
	if err != nil {
		return nil, fmt.Errorf("publish document: %w", err)
	}

	return s.Get(ctx, id)
}

// Approve runs the approval decision for the actor's role. For bongkaran
// the signature is validated before anything is stored, then uploaded,
// then every database write happens in one transaction.
func (s *DocumentService) Approve(ctx context.Context, id, actorID string, input ApproveInput) (*entity.SuratJalan, error) {
	actor, err := s.repos.User.FindByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("load actor: %w", err)
	}

	doc, err := s.repos.SuratJalan.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sig := workflow.SignatureInput{DrawnData: input.SignatureDrawn}
	if input.SignatureFile != nil {
		sig.ObjectName = input.SignatureFileName
	}

	decision, err := workflow.Approve(docState(doc), actor.Role, sig, s.dir)
	if err != nil {
		return nil, err
	}

	// Store the signature only after the decision validated it.
	var signatureObject string
	if decision.SignatureTarget != "" {
		if input.SignatureFile != nil {
			signatureObject, err = s.storage.Put(ctx, input.SignatureFile, input.SignatureFileSize, input.SignatureFileType, input.SignatureFileName)
		} else {
			signatureObject, err = s.storage.PutDataURL(ctx, input.SignatureDrawn)
		}
		if err != nil {
			return nil, fmt.Errorf("store signature: %w", err)
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		if err := tx.Model(&entity.SuratJalan{}).Where("id = ?", doc.ID).Updates(map[string]interface{}{
			"status_surat":   decision.StatusSurat,
			"is_have_status": decision.IsHaveStatus,
			"updated_at":     now,
		}).Error; err != nil {
			return err
		}

		if decision.SignatureTarget != "" {
			if err := s.mergeSignature(tx, doc.ID, decision.SignatureTarget, actor.Name, signatureObject, now); err != nil {
				return err
			}
		}

		var latest *entity.Email
		if decision.FlipEmail || decision.NextHop != nil {
			var err error
			latest, err = latestEmail(tx, doc.ID)
			if err != nil {
				return err
			}
		}

		if decision.FlipEmail && latest != nil {
			if err := flipEmail(tx, latest, now); err != nil {
				return err
			}
		}

		if decision.NextHop != nil {
			if err := s.createNextHop(tx, doc, actor, *decision.NextHop); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("approve document: %w", err)
	}

	return s.Get(ctx, id)
}

// Reject bounces the document back with a mandatory message: the email
// direction flips and the new recipient's status row goes unread again.
func (s *DocumentService) Reject(ctx context.Context, id, actorID, pesan string) (*entity.SuratJalan, error) {
	actor, err := s.repos.User.FindByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("load actor: %w", err)
	}

	doc, err := s.repos.SuratJalan.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	decision, err := workflow.Reject(docState(doc), actor.Role, pesan)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		if err := tx.Model(&entity.SuratJalan{}).Where("id = ?", doc.ID).Updates(map[string]interface{}{
			"status_surat":   decision.StatusSurat,
			"is_have_status": decision.IsHaveStatus,
			"pesan":          decision.Pesan,
			"updated_at":     now,
		}).Error; err != nil {
			return err
		}

		latest, err := latestEmail(tx, doc.ID)
		if err != nil {
			return err
		}
		if latest == nil {
			return nil
		}

		if err := tx.Model(&entity.Email{}).Where("id = ?", latest.ID).Update("pesan", decision.Pesan).Error; err != nil {
			return err
		}

		if decision.FlipEmail {
			if err := flipEmail(tx, latest, now); err != nil {
				return err
			}
		}

		if decision.ResetUnread {
			// After the flip the recipient is the original sender, who
			// must see the bounce as unread.
			if err := resetUnread(tx, latest.ID, latest.SenderID, now); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reject document: %w", err)
	}

	return s.Get(ctx, id)
}

// Delete cascades a document away: statuses, emails, details, document.
func (s *DocumentService) Delete(ctx context.Context, id, actorID string) error {
	actor, err := s.repos.User.FindByID(ctx, actorID)
	if err != nil {
		return fmt.Errorf("load actor: %w", err)
	}

	doc, err := s.repos.SuratJalan.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !workflow.Allowed(workflow.ActionDelete, doc.Kategori, actor.Role) {
		return fmt.Errorf("%w: role %s cannot delete %s", workflow.ErrUnauthorized, actor.Role, doc.Kategori)
	}
	return s.repos.SuratJalan.DeleteCascade(ctx, id)
}

func docState(doc *entity.SuratJalan) workflow.DocState {
	st := workflow.DocState{
		Kategori:    doc.Kategori,
		StatusEntry: doc.StatusEntry,
		StatusSurat: doc.StatusSurat,
	}
	if d := doc.DetailBongkaran; d != nil {
		st.PenerimaSigned = d.SignaturePenerima != ""
		st.MengetahuiSigned = d.SignatureMengetahui != ""
	}
	return st
}

// createHop inserts the email for a new routing hop plus its unread
// status rows.
func (s *DocumentService) createHop(tx *gorm.DB, doc *entity.SuratJalan, sender *entity.User, recipient *entity.User, hop workflow.NewHop) error {
	now := time.Now()
	email := &entity.Email{
		ID:             newID(),
		Subject:        doc.Perihal,
		FromDepartment: sender.Department,
		ToCompany:      recipient.Company,
		SenderID:       sender.ID,
		RecipientID:    recipient.ID,
		SuratJalanID:   doc.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := tx.Create(email).Error; err != nil {
		return err
	}

	watchers := []string{recipient.ID}
	if hop.ExtraStatusFor != "" && hop.ExtraStatusFor != recipient.ID {
		watchers = append(watchers, hop.ExtraStatusFor)
	}
	for _, userID := range watchers {
		status := &entity.EmailStatus{
			ID:        newID(),
			EmailID:   email.ID,
			UserID:    userID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Create(status).Error; err != nil {
			return err
		}
	}
	return nil
}

// createNextHop creates the follow-up email after a supervisor approval,
// unless the recipient already has one for this document.
func (s *DocumentService) createNextHop(tx *gorm.DB, doc *entity.SuratJalan, sender *entity.User, hop workflow.NewHop) error {
	if hop.OnlyIfAbsent {
		var count int64
		if err := tx.Model(&entity.Email{}).
			Where("surat_jalan_id = ? AND recipient_id = ?", doc.ID, hop.RecipientID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
	}

	var recipient entity.User
	if err := tx.Where("id = ?", hop.RecipientID).First(&recipient).Error; err != nil {
		return fmt.Errorf("resolve next hop recipient: %w", err)
	}

	return s.createHop(tx, doc, sender, &recipient, hop)
}

// mergeSignature writes one party's signature fields on the bongkaran
// detail row and nothing else, so the other party's signature survives.
func (s *DocumentService) mergeSignature(tx *gorm.DB, suratJalanID, target, signerName, objectName string, now time.Time) error {
	updates := map[string]interface{}{"updated_at": now}
	switch target {
	case workflow.SignTargetPenerima:
		updates["penerima"] = signerName
		updates["signature_penerima"] = objectName
		updates["tanggal_penerima"] = now
	case workflow.SignTargetMengetahui:
		updates["mengetahui"] = signerName
		updates["signature_mengetahui"] = objectName
		updates["tanggal_mengetahui"] = now
	default:
		return fmt.Errorf("unknown signature target %q", target)
	}

	result := tx.Model(&entity.DetailBongkaran{}).Where("surat_jalan_id = ?", suratJalanID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		detail := &entity.DetailBongkaran{
			ID:           newID(),
			SuratJalanID: suratJalanID,
			CreatedAt:    now,
		}
		if err := tx.Create(detail).Error; err != nil {
			return err
		}
		return tx.Model(detail).Updates(updates).Error
	}
	return nil
}

func latestEmail(tx *gorm.DB, suratJalanID string) (*entity.Email, error) {
	var email entity.Email
	err := tx.Where("surat_jalan_id = ?", suratJalanID).
		Order("created_at DESC").
		First(&email).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &email, nil
}

// flipEmail swaps sender and recipient, putting the ball back in the
// court of whoever must act next.
func flipEmail(tx *gorm.DB, email *entity.Email, now time.Time) error {
	return tx.Model(&entity.Email{}).Where("id = ?", email.ID).Updates(map[string]interface{}{
		"sender_id":      email.RecipientID,
		"recipient_id":   email.SenderID,
		"is_have_status": true,
		"updated_at":     now,
	}).Error
}

// resetUnread clears is_read for the given user on the email, creating
// the status row when the user never had one.
func resetUnread(tx *gorm.DB, emailID, userID string, now time.Time) error {
	result := tx.Model(&entity.EmailStatus{}).
		Where("email_id = ? AND user_id = ?", emailID, userID).
		Updates(map[string]interface{}{
			"is_read":    false,
			"read_at":    nil,
			"updated_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return tx.Create(&entity.EmailStatus{
			ID:        newID(),
			EmailID:   emailID,
			UserID:    userID,
			CreatedAt: now,
			UpdatedAt: now,
		}).Error
	}
	return nil
}

func newID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}
