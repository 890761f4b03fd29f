package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"

	"github.com/Mzarifin59/letter-pln-sub001/internal/config"
	"github.com/Mzarifin59/letter-pln-sub001/internal/repository"
	"github.com/Mzarifin59/letter-pln-sub001/internal/workflow"
)

// Services bundles all application services.
type Services struct {
	Auth     *AuthService
	Document *DocumentService
	Mailbox  *MailboxService
	Export   *ExportService
	Storage  *StorageService
}

// NewServices wires the service set: minio for signature storage, redis
// for refresh tokens, and the fixed routing directory from config.
func NewServices(repos *repository.Repositories, rdb *redis.Client, cfg *config.Config) *Services {
	var minioClient *minio.Client
	if cfg.MinIO.Endpoint != "" {
		var err error
		minioClient, err = minio.New(cfg.MinIO.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
			Secure: cfg.MinIO.UseSSL,
		})
		if err != nil {
			// Run without object storage rather than refuse to boot.
			minioClient = nil
		}
	}

	storage := NewStorageService(minioClient, cfg.MinIO.Bucket)

	dir := workflow.FixedDirectory{
		AdminID:      cfg.Workflow.AdminID,
		SupervisorID: cfg.Workflow.SupervisorID,
		GarduIndukID: cfg.Workflow.GarduIndukID,
	}

	return &Services{
		Auth:     NewAuthService(repos.User, rdb, cfg),
		Document: NewDocumentService(repos, dir, storage),
		Mailbox:  NewMailboxService(repos.Email),
		Export:   NewExportService(repos.SuratJalan),
		Storage:  storage,
	}
}
