package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/Mzarifin59/letter-pln-sub001/internal/entity"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when an insert violates a unique
	// constraint, notably the (email_id, user_id) composite key on
	// email_statuses.
	ErrDuplicate = errors.New("duplicate record")
)

// isUniqueViolation reports whether the error is a postgres 23505.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Repositories bundles all repositories over one database handle.
type Repositories struct {
	User       *UserRepository
	SuratJalan *SuratJalanRepository
	Email      *EmailRepository

	db *gorm.DB
}

// NewRepositories creates the repository set.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:       NewUserRepository(db),
		SuratJalan: NewSuratJalanRepository(db),
		Email:      NewEmailRepository(db),
		db:         db,
	}
}

// DB exposes the handle for transactional multi-step writes in services.
func (r *Repositories) DB() *gorm.DB {
	return r.db
}

// Migrate creates all tables and the document number sequence.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&entity.User{},
		&entity.SuratJalan{},
		&entity.DetailSuratJalan{},
		&entity.DetailBongkaran{},
		&entity.DetailPemeriksaan{},
		&entity.Email{},
		&entity.EmailStatus{},
	); err != nil {
		return err
	}
	return db.Exec("CREATE SEQUENCE IF NOT EXISTS surat_jalan_nomor_seq START 1").Error
}
