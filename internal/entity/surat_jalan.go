package entity

import (
	"time"
)

// SuratJalan is the workflow document. Kategori selects which detail table
// carries the category-specific payload (tagged union by relation).
//
// StatusSurat is only meaningful once StatusEntry is published; while the
// document is a draft the approval state is ignored and DisplayStatus
// reports "draft".
type SuratJalan struct {
	ID           string     `json:"id" gorm:"primaryKey;size:32"`
	Nomor        string     `json:"nomor" gorm:"size:64;not null;uniqueIndex"`
	Kategori     string     `json:"kategori_surat" gorm:"size:32;not null"`
	Perihal      string     `json:"perihal" gorm:"size:256;not null"`
	StatusEntry  string     `json:"status_entry" gorm:"size:16;not null;default:draft"`
	StatusSurat  string     `json:"status_surat" gorm:"size:16;not null;default:draft"`
	IsHaveStatus bool       `json:"is_have_status" gorm:"not null;default:false"`
	Pesan        string     `json:"pesan" gorm:"type:text"`
	CreatedBy    string     `json:"created_by" gorm:"size:32;not null"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" gorm:"index"`

	DisplayStatus string `json:"display_status" gorm:"-"`

	Creator           *User              `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
	DetailSuratJalan  *DetailSuratJalan  `json:"detail_surat_jalan,omitempty" gorm:"foreignKey:SuratJalanID"`
	DetailBongkaran   *DetailBongkaran   `json:"detail_bongkaran,omitempty" gorm:"foreignKey:SuratJalanID"`
	DetailPemeriksaan *DetailPemeriksaan `json:"detail_pemeriksaan,omitempty" gorm:"foreignKey:SuratJalanID"`
	Emails            []Email            `json:"emails,omitempty" gorm:"foreignKey:SuratJalanID"`
}

func (SuratJalan) TableName() string {
	return "surat_jalan"
}

// Decorate fills the derived DisplayStatus field. A draft entry always
// reports "draft" regardless of its approval state.
func (s *SuratJalan) Decorate() {
	if s.StatusEntry == StatusEntryDraft {
		s.DisplayStatus = StatusSuratDraft
		return
	}
	s.DisplayStatus = s.StatusSurat
}

// DetailSuratJalan is the payload for kategori surat_jalan.
type DetailSuratJalan struct {
	ID           string    `json:"id" gorm:"primaryKey;size:32"`
	SuratJalanID string    `json:"surat_jalan_id" gorm:"size:32;not null;uniqueIndex"`
	Penerima     string    `json:"penerima" gorm:"size:128"`
	Pengirim     string    `json:"pengirim" gorm:"size:128"`
	Kendaraan    string    `json:"kendaraan" gorm:"size:64"`
	NomorPolisi  string    `json:"nomor_polisi" gorm:"size:32"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (DetailSuratJalan) TableName() string {
	return "detail_surat_jalan"
}

// DetailBongkaran is the payload for kategori ba_material_bongkaran.
// Mengetahui and Penerima are independent parties signing the same row at
// different hops, so updates to one side must never clobber the other.
type DetailBongkaran struct {
	ID                  string     `json:"id" gorm:"primaryKey;size:32"`
	SuratJalanID        string     `json:"surat_jalan_id" gorm:"size:32;not null;uniqueIndex"`
	Lokasi              string     `json:"lokasi" gorm:"size:256"`
	Mengetahui          string     `json:"mengetahui" gorm:"size:128"`
	SignatureMengetahui string     `json:"signature_mengetahui" gorm:"size:512"`
	TanggalMengetahui   *time.Time `json:"tanggal_mengetahui"`
	Penerima            string     `json:"penerima" gorm:"size:128"`
	SignaturePenerima   string     `json:"signature_penerima" gorm:"size:512"`
	TanggalPenerima     *time.Time `json:"tanggal_penerima"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

func (DetailBongkaran) TableName() string {
	return "detail_bongkaran"
}

// DetailPemeriksaan is the payload for kategori ba_pemeriksaan_tim_mutu.
type DetailPemeriksaan struct {
	ID               string    `json:"id" gorm:"primaryKey;size:32"`
	SuratJalanID     string    `json:"surat_jalan_id" gorm:"size:32;not null;uniqueIndex"`
	PemeriksaBarang  string    `json:"pemeriksa_barang" gorm:"size:128"`
	PenyediaBarang   string    `json:"penyedia_barang" gorm:"size:128"`
	HasilPemeriksaan string    `json:"hasil_pemeriksaan" gorm:"type:text"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (DetailPemeriksaan) TableName() string {
	return "detail_pemeriksaan"
}

// Kategori surat
const (
	KategoriSuratJalan  = "surat_jalan"
	KategoriBongkaran   = "ba_material_bongkaran"
	KategoriPemeriksaan = "ba_pemeriksaan_tim_mutu"
)

// Entry lifecycle
const (
	StatusEntryDraft     = "draft"
	StatusEntryPublished = "published"
)

// Approval lifecycle, meaningful only while published
const (
	StatusSuratDraft      = "draft"
	StatusSuratInProgress = "in_progress"
	StatusSuratApprove    = "approve"
	StatusSuratReject     = "reject"
)
