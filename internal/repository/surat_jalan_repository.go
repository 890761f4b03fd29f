package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Mzarifin59/letter-pln-sub001/internal/entity"
)

// SuratJalanRepository persists workflow documents and their category
// detail rows.
type SuratJalanRepository struct {
	db *gorm.DB
}

// NewSuratJalanRepository creates the document repository.
func NewSuratJalanRepository(db *gorm.DB) *SuratJalanRepository {
	return &SuratJalanRepository{db: db}
}

// FindByID loads a document with its detail payload, creator and emails.
func (r *SuratJalanRepository) FindByID(ctx context.Context, id string) (*entity.SuratJalan, error) {
	var doc entity.SuratJalan
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Preload("DetailSuratJalan").
		Preload("DetailBongkaran").
		Preload("DetailPemeriksaan").
		Preload("Emails", func(db *gorm.DB) *gorm.DB {
			return db.Order("emails.created_at ASC")
		}).
		Preload("Emails.Statuses").
		Where("id = ? AND deleted_at IS NULL", id).
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// Create inserts a document together with its detail row.
func (r *SuratJalanRepository) Create(ctx context.Context, doc *entity.SuratJalan) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

// Update saves the full document record.
func (r *SuratJalanRepository) Update(ctx context.Context, doc *entity.SuratJalan) error {
	return r.db.WithContext(ctx).Save(doc).Error
}

// List returns documents filtered by status, kategori, creator and
// keyword, newest first.
func (r *SuratJalanRepository) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.SuratJalan, int64, error) {
	var docs []entity.SuratJalan
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.SuratJalan{}).Where("deleted_at IS NULL")

	if keyword, ok := filters["keyword"].(string); ok && keyword != "" {
		query = query.Where("perihal ILIKE ? OR nomor ILIKE ?", "%"+keyword+"%", "%"+keyword+"%")
	}
	if kategori, ok := filters["kategori"].(string); ok && kategori != "" {
		query = query.Where("kategori = ?", kategori)
	}
	if statusEntry, ok := filters["status_entry"].(string); ok && statusEntry != "" {
		query = query.Where("status_entry = ?", statusEntry)
	}
	if statusSurat, ok := filters["status_surat"].(string); ok && statusSurat != "" {
		query = query.Where("status_surat = ?", statusSurat)
	}
	if createdBy, ok := filters["created_by"].(string); ok && createdBy != "" {
		query = query.Where("created_by = ?", createdBy)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Creator").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&docs).Error
	if err != nil {
		return nil, 0, err
	}

	return docs, total, nil
}

// GenerateNomor produces the next document number for a kategori, e.g.
// SJ-2026-0042.
func (r *SuratJalanRepository) GenerateNomor(ctx context.Context, kategori string) (string, error) {
	var seq int64
	if err := r.db.WithContext(ctx).Raw("SELECT nextval('surat_jalan_nomor_seq')").Scan(&seq).Error; err != nil {
		return "", fmt.Errorf("next nomor: %w", err)
	}

	prefix := "SJ"
	switch kategori {
	case entity.KategoriBongkaran:
		prefix = "BAMB"
	case entity.KategoriPemeriksaan:
		prefix = "BAPTM"
	}

	return fmt.Sprintf("%s-%s-%04d", prefix, time.Now().Format("2006"), seq), nil
}

// DeleteCascade removes a document, its emails and every email status in
// one transaction: statuses first, then emails, then detail rows, then
// the document. A document without emails deletes cleanly as a no-op on
// the email side.
func (r *SuratJalanRepository) DeleteCascade(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var doc entity.SuratJalan
		if err := tx.Where("id = ? AND deleted_at IS NULL", id).First(&doc).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var emailIDs []string
		if err := tx.Model(&entity.Email{}).Where("surat_jalan_id = ?", id).Pluck("id", &emailIDs).Error; err != nil {
			return err
		}

		if len(emailIDs) > 0 {
			if err := tx.Where("email_id IN ?", emailIDs).Delete(&entity.EmailStatus{}).Error; err != nil {
				return err
			}
			if err := tx.Where("surat_jalan_id = ?", id).Delete(&entity.Email{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("surat_jalan_id = ?", id).Delete(&entity.DetailSuratJalan{}).Error; err != nil {
			return err
		}
		if err := tx.Where("surat_jalan_id = ?", id).Delete(&entity.DetailBongkaran{}).Error; err != nil {
			return err
		}
		if err := tx.Where("surat_jalan_id = ?", id).Delete(&entity.DetailPemeriksaan{}).Error; err != nil {
			return err
		}

		return tx.Delete(&entity.SuratJalan{}, "id = ?", id).Error
	})
}
