package entity

import (
	"time"
)

// Email is one routing hop of a SuratJalan: exactly one sender and one
// recipient. Approve/reject flip the direction so the document lands back
// in the court of whoever must act next. A document accumulates one Email
// per hop over its lifetime and they are deleted with it.
type Email struct {
	ID             string    `json:"id" gorm:"primaryKey;size:32"`
	Subject        string    `json:"subject" gorm:"size:256;not null"`
	FromDepartment string    `json:"from_department" gorm:"size:128"`
	ToCompany      string    `json:"to_company" gorm:"size:128"`
	SenderID       string    `json:"sender_id" gorm:"size:32;not null"`
	RecipientID    string    `json:"recipient_id" gorm:"size:32;not null"`
	SuratJalanID   string    `json:"surat_jalan_id" gorm:"size:32;not null;index"`
	IsHaveStatus   bool      `json:"is_have_status" gorm:"not null;default:false"`
	Pesan          string    `json:"pesan" gorm:"type:text"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Sender     *User         `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
	Recipient  *User         `json:"recipient,omitempty" gorm:"foreignKey:RecipientID"`
	SuratJalan *SuratJalan   `json:"surat_jalan,omitempty" gorm:"foreignKey:SuratJalanID"`
	Statuses   []EmailStatus `json:"statuses,omitempty" gorm:"foreignKey:EmailID"`
}

func (Email) TableName() string {
	return "emails"
}

// EmailStatus is the per-(email, user) read/bookmark/visibility row.
// The composite unique index makes the one-row-per-pair assumption a real
// constraint instead of a first-match convention; a duplicate insert is a
// data-integrity error.
type EmailStatus struct {
	ID           string     `json:"id" gorm:"primaryKey;size:32"`
	EmailID      string     `json:"email_id" gorm:"size:32;not null;uniqueIndex:idx_email_statuses_email_user"`
	UserID       string     `json:"user_id" gorm:"size:32;not null;uniqueIndex:idx_email_statuses_email_user"`
	IsRead       bool       `json:"is_read" gorm:"not null;default:false"`
	IsBookmarked bool       `json:"is_bookmarked" gorm:"not null;default:false"`
	ReadAt       *time.Time `json:"read_at"`
	BookmarkedAt *time.Time `json:"bookmarked_at"`
	IsDeleted    bool       `json:"is_deleted" gorm:"not null;default:false"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	User  *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Email *Email `json:"email,omitempty" gorm:"foreignKey:EmailID"`
}

func (EmailStatus) TableName() string {
	return "email_statuses"
}
