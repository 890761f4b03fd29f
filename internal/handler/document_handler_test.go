package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Mzarifin59/letter-pln-sub001/internal/entity"
	"github.com/Mzarifin59/letter-pln-sub001/internal/repository"
	"github.com/Mzarifin59/letter-pln-sub001/internal/service"
	"github.com/Mzarifin59/letter-pln-sub001/internal/testutil"
	"github.com/Mzarifin59/letter-pln-sub001/internal/workflow"
)

const testSignature = "data:image/png;base64,aVNpZ25hdHVyZQ=="

type workflowEnv struct {
	db     *gorm.DB
	router *gin.Engine
	repos  *repository.Repositories

	vendorToken     string
	supervisorToken string
	garduToken      string
	adminToken      string
}

func setupWorkflowTest(t *testing.T) *workflowEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	testutil.SeedTestUser(t, db, "user-vendor", "Vendor Satu", entity.RoleVendor)
	testutil.SeedTestUser(t, db, "user-spv", "Supervisor Satu", entity.RoleSupervisor)
	testutil.SeedTestUser(t, db, "user-gi", "Gardu Induk Satu", entity.RoleGarduInduk)
	testutil.SeedTestUser(t, db, "user-admin", "Admin Satu", entity.RoleAdmin)

	repos := repository.NewRepositories(db)
	dir := workflow.FixedDirectory{
		AdminID:      "user-admin",
		SupervisorID: "user-spv",
		GarduIndukID: "user-gi",
	}
	storage := service.NewStorageService(nil, "test-bucket")

	docSvc := service.NewDocumentService(repos, dir, storage)
	mailSvc := service.NewMailboxService(repos.Email)
	exportSvc := service.NewExportService(repos.SuratJalan)

	docHandler := NewDocumentHandler(docSvc, exportSvc)
	mailHandler := NewMailboxHandler(mailSvc)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")

	docs := api.Group("/surat-jalan")
	docs.GET("", docHandler.List)
	docs.GET("/export", docHandler.Export)
	docs.GET("/:id", docHandler.Get)
	docs.POST("", docHandler.Create)
	docs.PUT("/:id", docHandler.Update)
	docs.DELETE("/:id", docHandler.Delete)
	docs.POST("/:id/publish", docHandler.Publish)
	docs.POST("/:id/approve", docHandler.Approve)
	docs.POST("/:id/reject", docHandler.Reject)

	emails := api.Group("/emails")
	emails.GET("/inbox", mailHandler.Inbox)
	emails.GET("/sent", mailHandler.Sent)
	emails.GET("/unread-count", mailHandler.UnreadCount)
	emails.POST("/:id/read", mailHandler.MarkRead)
	emails.POST("/:id/bookmark", mailHandler.Bookmark)
	emails.DELETE("/:id", mailHandler.Dismiss)
	emails.DELETE("/:id/purge", mailHandler.Remove)

	return &workflowEnv{
		db:              db,
		router:          router,
		repos:           repos,
		vendorToken:     testutil.GenerateTestToken("user-vendor", "Vendor Satu", entity.RoleVendor),
		supervisorToken: testutil.GenerateTestToken("user-spv", "Supervisor Satu", entity.RoleSupervisor),
		garduToken:      testutil.GenerateTestToken("user-gi", "Gardu Induk Satu", entity.RoleGarduInduk),
		adminToken:      testutil.GenerateTestToken("user-admin", "Admin Satu", entity.RoleAdmin),
	}
}

func createSurat(t *testing.T, env *workflowEnv, token, kategori string, publish bool) map[string]interface{} {
	t.Helper()
	body := map[string]interface{}{
		"kategori_surat": kategori,
		"perihal":        "Pengiriman material trafo",
		"publish":        publish,
	}
	w := testutil.DoRequest(env.router, "POST", "/api/v1/surat-jalan", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	return resp["data"].(map[string]interface{})
}

func TestCreateDraft(t *testing.T) {
	env := setupWorkflowTest(t)

	doc := createSurat(t, env, env.vendorToken, entity.KategoriSuratJalan, false)

	if doc["status_entry"] != "draft" {
		t.Errorf("Expected status_entry draft, got %v", doc["status_entry"])
	}
	if doc["display_status"] != "draft" {
		t.Errorf("Expected display_status draft, got %v", doc["display_status"])
	}
	nomor, _ := doc["nomor"].(string)
	if !strings.HasPrefix(nomor, "SJ-") {
		t.Errorf("Expected nomor with SJ- prefix, got %v", doc["nomor"])
	}
}

func TestCreateUnknownKategori(t *testing.T) {
	env := setupWorkflowTest(t)

	body := map[string]interface{}{
		"kategori_surat": "nota_dinas",
		"perihal":        "Salah kategori",
	}
	w := testutil.DoRequest(env.router, "POST", "/api/v1/surat-jalan", body, env.vendorToken)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPublishRoutesToSupervisor(t *testing.T) {
	env := setupWorkflowTest(t)

	doc := createSurat(t, env, env.vendorToken, entity.KategoriSuratJalan, true)

	if doc["status_entry"] != "published" {
		t.Errorf("Expected status_entry published, got %v", doc["status_entry"])
	}
	if doc["display_status"] != "in_progress" {
		t.Errorf("Expected display_status in_progress, got %v", doc["display_status"])
	}

	w := testutil.DoRequest(env.router, "GET", "/api/v1/emails/inbox", nil, env.supervisorToken)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	inbox := resp["data"].([]interface{})
	if len(inbox) != 1 {
		t.Fatalf("Expected 1 inbox email for supervisor, got %d", len(inbox))
	}
	email := inbox[0].(map[string]interface{})
	if email["sender_id"] != "user-vendor" {
		t.Errorf("Expected sender user-vendor, got %v", email["sender_id"])
	}
}

func TestApproveSuratJalan(t *testing.T) {
	env := setupWorkflowTest(t)

	doc := createSurat(t, env, env.vendorToken, entity.KategoriSuratJalan, true)
	id := doc["id"].(string)

	// Vendor holds no approval rights
	w := testutil.DoRequest(env.router, "POST", "/api/v1/surat-jalan/"+id+"/approve", nil, env.vendorToken)
	if w.Code != http.StatusForbidden {
		t.Fatalf("Expected 403 for vendor approve, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.router, "POST", "/api/v1/surat-jalan/"+id+"/approve", nil, env.supervisorToken)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["display_status"] != "approve" {
		t.Errorf("Expected display_status approve, got %v", data["display_status"])
	}
	if data["is_have_status"] != true {
		t.Errorf("Expected is_have_status true, got %v", data["is_have_status"])
	}

	// A second approval is blocked by the state guard
	w = testutil.DoRequest(env.router, "POST", "/api/v1/surat-jalan/"+id+"/approve", nil, env.supervisorToken)
	if w.Code != http.StatusConflict {
		t.Fatalf("Expected 409 for double approve, got %d: %s", w.Code, w.Body.String())
	}
}

func TestApproveBongkaranRequiresSignature(t *testing.T) {
	env := setupWorkflowTest(t)

	doc := createSurat(t, env, env.vendorToken, entity.KategoriBongkaran, true)
	id := doc["id"].(string)

	w := testutil.DoRequest(env.router, "POST", "/api/v1/surat-jalan/"+id+"/approve", nil, env.supervisorToken)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 without signature, got %d: %s", w.Code, w.Body.String())
	}
}

func TestApproveBongkaranSupervisorSignsPenerima(t *testing.T) {
	env := setupWorkflowTest(t)

	doc := createSurat(t, env, env.vendorToken, entity.KategoriBongkaran, true)
	id := doc["id"].(string)

	body := map[string]interface{}{"signature_drawn": testSignature}
	w := testutil.DoRequest(env.router, "POST", "/api/v1/surat-jalan/"+id+"/approve", body, env.supervisorToken)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var detail entity.DetailBongkaran
	if err := env.db.Where("surat_jalan_id = ?", id).First(&detail).Error; err != nil {
		t.Fatalf("Load detail: %v", err)
	}
	if detail.Penerima != "Supervisor Satu" {
		t.Errorf("Expected penerima Supervisor Satu, got %q", detail.Penerima)
	}
	if detail.SignaturePenerima == "" {
		t.Error("Expected signature_penerima to be stored")
	}
	if detail.TanggalPenerima == nil {
		t.Error("Expected tanggal_penerima to be stamped")
	}
	if detail.Mengetahui != "" || detail.SignatureMengetahui != "" {
		t.Errorf("Mengetahui side must stay untouched, got %q / %q", detail.Mengetahui, detail.SignatureMengetahui)
	}
}

func TestApproveBongkaranGarduIndukSignsMengetahui(t *testing.T) {
	env := setupWorkflowTest(t)

	doc := createSurat(t, env, env.vendorToken, entity.KategoriBongkaran, true)
	id := doc["id"].(string)

	body := map[string]interface{}{"signature_drawn": testSignature}
	w := testutil.DoRequest(env.router, "POST", "/api/v1/surat-jalan/"+id+"/approve", body, env.garduToken)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var detail entity.DetailBongkaran
	if err := env.db.Where("surat_jalan_id = ?", id).First(&detail).Error; err != nil {
		t.Fatalf("Load detail: %v", err)
	}
	if detail.Mengetahui != "Gardu Induk Satu" {
		t.Errorf("Expected mengetahui Gardu Induk Satu, got %q", detail.Mengetahui)
	}
	if detail.SignatureMengetahui == "" {
		t.Error("Expected signature_mengetahui to be stored")
	}
	if detail.Penerima != "" || detail.SignaturePenerima != "" {
		t.Errorf("Penerima side must stay untouched, got %q / %q", detail.Penerima, detail.SignaturePenerima)
	}
}

func TestApproveBongkaranBothPartiesSign(t *testing.T) {
	env := setupWorkflowTest(t)

	doc := createSurat(t, env, env.vendorToken, entity.KategoriBongkaran, true)
	id := doc["id"].(string)

	body := map[string]interface{}{"signature_drawn": testSignature}
	w := testutil.DoRequest(env.router, "POST", "/api/v1/surat-jalan/"+id+"/approve", body, env.supervisorToken)
	if w.Code != http.StatusOK {
		t.Fatalf("Supervisor approve: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// The document already reads approve, the gardu induk still signs.
	w = testutil.DoRequest(env.router, "POST", "/api/v1/surat-jalan/"+id+"/approve", body, env.garduToken)
	if w.Code != http.StatusOK {
		t.Fatalf("Gardu induk approve: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var detail entity.DetailBongkaran
	if err := env.db.Where("surat_jalan_id = ?", id).First(&detail).Error; err != nil {
		t.Fatalf("Load detail: %v", err)
	}
	if detail.Penerima != "Supervisor Satu" || detail.SignaturePenerima == "" {
		t.Errorf("Penerima side lost, got %q / %q", detail.Penerima, detail.SignaturePenerima)
	}
	if detail.Mengetahui != "Gardu Induk Satu" || detail.SignatureMengetahui == "" {
		t.Errorf("Mengetahui side missing, got %q / %q", detail.Mengetahui, detail.SignatureMengetahui)
	}

	// Each side signs once
	w = testutil.DoRequest(env.router, "POST", "/api/v1/surat-jalan/"+id+"/approve", body, env.garduToken)
	if w.Code != http.StatusConflict {
		t.Fatalf("Expected 409 for repeated gardu induk approve, got %d: %s", w.Code, w.Body.String())
	}
	w = testutil.DoRequest(env.router, "POST", "/api/v1/surat-jalan/"+id+"/approve", body, env.supervisorToken)
	if w.Code != http.StatusConflict {
		t.Fatalf("Expected 409 for repeated supervisor approve, got %d: %s", w.Code, w.Body.String())
	}
}

func TestApproveMalformedDrawnSignature(t *testing.T) {
	env := setupWorkflowTest(t)

	doc := createSurat(t, env, env.vendorToken, entity.KategoriBongkaran, true)
	id := doc["id"].(string)

	for _, drawn := range []string{"not-a-data-url", "data:image/png;base64,%%%"} {
		body := map[string]interface{}{"signature_drawn": drawn}
		w := testutil.DoRequest(env.router, "POST", "/api/v1/surat-jalan/"+id+"/approve", body, env.supervisorToken)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Signature %q: expected 400, got %d: %s", drawn, w.Code, w.Body.String())
		}
	}
}

func TestGarduIndukSeesBongkaranOnPublish(t *testing.T) {
	env := setupWorkflowTest(t)

	createSurat(t, env, env.vendorToken, entity.KategoriBongkaran, true)

	// The gardu induk is seeded as a watcher and sees the document
	// before the supervisor has acted on it.
	w := testutil.DoRequest(env.router, "GET", "/api/v1/emails/inbox", nil, env.garduToken)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	inbox := resp["data"].([]interface{})
	if len(inbox) != 1 {
		t.Fatalf("Expected 1 inbox email for gardu induk, got %d", len(inbox))
	}

	w = testutil.DoRequest(env.router, "GET", "/api/v1/emails/unread-count", nil, env.garduToken)
	resp = testutil.ParseResponse(w)
	count := resp["data"].(map[string]interface{})["unread"].(float64)
	if count != 1 {
		t.Errorf("Expected 1 unread for gardu induk, got %v", count)
	}
}

func TestPublishBongkaranSeedsGarduIndukStatus(t *testing.T) {
	env := setupWorkflowTest(t)

	doc := createSurat(t, env, env.vendorToken, entity.KategoriBongkaran, true)
	id := doc["id"].(string)

	email, err := env.repos.Email.FindLatestBySurat(context.Background(), id)
	if err != nil {
		t.Fatalf("Load email: %v", err)
	}
	if email.RecipientID != "user-spv" {
		t.Errorf("Expected recipient user-spv, got %s", email.RecipientID)
	}
	if len(email.Statuses) != 2 {
		t.Fatalf("Expected status rows for supervisor and gardu induk, got %d", len(email.Statuses))
	}
	users := map[string]bool{}
	for _, st := range email.Statuses {
		users[st.UserID] = true
	}
	if !users["user-spv"] || !users["user-gi"] {
		t.Errorf("Expected status rows for user-spv and user-gi, got %v", users)
	}
}

func TestRejectFlipsEmailAndResetsUnread(t *testing.T) {
	env := setupWorkflowTest(t)

	doc := createSurat(t, env, env.vendorToken, entity.KategoriBongkaran, true)
	id := doc["id"].(string)

	body := map[string]interface{}{"pesan": "dokumen tidak lengkap"}
	w := testutil.DoRequest(env.router, "POST", "/api/v1/surat-jalan/"+id+"/reject", body, env.supervisorToken)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["display_status"] != "reject" {
		t.Errorf("Expected display_status reject, got %v", data["display_status"])
	}
	if data["pesan"] != "dokumen tidak lengkap" {
		t.Errorf("Expected pesan on document, got %v", data["pesan"])
	}

	email, err := env.repos.Email.FindLatestBySurat(context.Background(), id)
	if err != nil {
		t.Fatalf("Load email: %v", err)
	}
	if email.RecipientID != "user-vendor" {
		t.Errorf("Expected flipped recipient user-vendor, got %s", email.RecipientID)
	}
	if email.Pesan != "dokumen tidak lengkap" {
		t.Errorf("Expected pesan on email, got %q", email.Pesan)
	}

	// The bounce must land as unread in the vendor's mailbox
	w = testutil.DoRequest(env.router, "GET", "/api/v1/emails/unread-count", nil, env.vendorToken)
	resp = testutil.ParseResponse(w)
	count := resp["data"].(map[string]interface{})["unread"].(float64)
	if count != 1 {
		t.Errorf("Expected 1 unread for vendor, got %v", count)
	}
}

func TestRejectRequiresPesan(t *testing.T) {
	env := setupWorkflowTest(t)

	doc := createSurat(t, env, env.vendorToken, entity.KategoriSuratJalan, true)
	id := doc["id"].(string)

	w := testutil.DoRequest(env.router, "POST", "/api/v1/surat-jalan/"+id+"/reject", nil, env.supervisorToken)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 without pesan, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRepublishAfterReject(t *testing.T) {
	env := setupWorkflowTest(t)

	doc := createSurat(t, env, env.vendorToken, entity.KategoriSuratJalan, true)
	id := doc["id"].(string)

	body := map[string]interface{}{"pesan": "perihal salah"}
	w := testutil.DoRequest(env.router, "POST", "/api/v1/surat-jalan/"+id+"/reject", body, env.supervisorToken)
	if w.Code != http.StatusOK {
		t.Fatalf("Reject: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.router, "POST", "/api/v1/surat-jalan/"+id+"/publish", nil, env.vendorToken)
	if w.Code != http.StatusOK {
		t.Fatalf("Republish: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["display_status"] != "in_progress" {
		t.Errorf("Expected display_status in_progress after republish, got %v", data["display_status"])
	}
	if data["pesan"] != "" {
		t.Errorf("Expected pesan cleared on republish, got %v", data["pesan"])
	}

	// Each round appends a fresh email
	var emails int64
	env.db.Model(&entity.Email{}).Where("surat_jalan_id = ?", id).Count(&emails)
	if emails != 2 {
		t.Errorf("Expected 2 emails after two rounds, got %d", emails)
	}
}

func TestPublishTwiceBlocked(t *testing.T) {
	env := setupWorkflowTest(t)

	doc := createSurat(t, env, env.vendorToken, entity.KategoriSuratJalan, true)
	id := doc["id"].(string)

	w := testutil.DoRequest(env.router, "POST", "/api/v1/surat-jalan/"+id+"/publish", nil, env.vendorToken)
	if w.Code != http.StatusConflict {
		t.Fatalf("Expected 409 for double publish, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateDraftOnly(t *testing.T) {
	env := setupWorkflowTest(t)

	doc := createSurat(t, env, env.vendorToken, entity.KategoriSuratJalan, false)
	id := doc["id"].(string)

	body := map[string]interface{}{
		"perihal": "Perihal baru",
		"detail_surat_jalan": map[string]interface{}{
			"penerima":     "Gudang Timur",
			"pengirim":     "PT Test",
			"kendaraan":    "Truk",
			"nomor_polisi": "B 1234 XY",
		},
	}
	w := testutil.DoRequest(env.router, "PUT", "/api/v1/surat-jalan/"+id, body, env.vendorToken)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["perihal"] != "Perihal baru" {
		t.Errorf("Expected updated perihal, got %v", data["perihal"])
	}
	detail := data["detail_surat_jalan"].(map[string]interface{})
	if detail["penerima"] != "Gudang Timur" {
		t.Errorf("Expected updated detail penerima, got %v", detail["penerima"])
	}

	// Published documents are immutable outside workflow actions
	w = testutil.DoRequest(env.router, "POST", "/api/v1/surat-jalan/"+id+"/publish", nil, env.vendorToken)
	if w.Code != http.StatusOK {
		t.Fatalf("Publish: expected 200, got %d", w.Code)
	}
	w = testutil.DoRequest(env.router, "PUT", "/api/v1/surat-jalan/"+id, body, env.vendorToken)
	if w.Code != http.StatusConflict {
		t.Fatalf("Expected 409 editing published document, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDeleteCascade(t *testing.T) {
	env := setupWorkflowTest(t)

	doc := createSurat(t, env, env.vendorToken, entity.KategoriBongkaran, true)
	id := doc["id"].(string)

	// Vendor may not delete
	w := testutil.DoRequest(env.router, "DELETE", "/api/v1/surat-jalan/"+id, nil, env.vendorToken)
	if w.Code != http.StatusForbidden {
		t.Fatalf("Expected 403 for vendor delete, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.router, "DELETE", "/api/v1/surat-jalan/"+id, nil, env.adminToken)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.router, "GET", "/api/v1/surat-jalan/"+id, nil, env.adminToken)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 after delete, got %d", w.Code)
	}

	var emails, statuses, details int64
	env.db.Model(&entity.Email{}).Where("surat_jalan_id = ?", id).Count(&emails)
	env.db.Model(&entity.EmailStatus{}).
		Joins("JOIN emails ON emails.id = email_statuses.email_id").
		Where("emails.surat_jalan_id = ?", id).
		Count(&statuses)
	env.db.Model(&entity.DetailBongkaran{}).Where("surat_jalan_id = ?", id).Count(&details)
	if emails != 0 || statuses != 0 || details != 0 {
		t.Errorf("Expected full cascade, got emails=%d statuses=%d details=%d", emails, statuses, details)
	}
}

func TestDeleteDraftWithoutEmails(t *testing.T) {
	env := setupWorkflowTest(t)

	doc := createSurat(t, env, env.vendorToken, entity.KategoriSuratJalan, false)
	id := doc["id"].(string)

	w := testutil.DoRequest(env.router, "DELETE", "/api/v1/surat-jalan/"+id, nil, env.adminToken)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 deleting email-less draft, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.router, "DELETE", "/api/v1/surat-jalan/"+id, nil, env.adminToken)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 deleting twice, got %d", w.Code)
	}
}

func TestListFilters(t *testing.T) {
	env := setupWorkflowTest(t)

	createSurat(t, env, env.vendorToken, entity.KategoriSuratJalan, false)
	createSurat(t, env, env.vendorToken, entity.KategoriBongkaran, true)

	w := testutil.DoRequest(env.router, "GET", "/api/v1/surat-jalan?status_entry=published", nil, env.adminToken)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["total"].(float64) != 1 {
		t.Errorf("Expected 1 published document, got %v", data["total"])
	}

	w = testutil.DoRequest(env.router, "GET", "/api/v1/surat-jalan?kategori="+entity.KategoriBongkaran, nil, env.adminToken)
	resp = testutil.ParseResponse(w)
	data = resp["data"].(map[string]interface{})
	if data["total"].(float64) != 1 {
		t.Errorf("Expected 1 bongkaran document, got %v", data["total"])
	}
}

func TestExportRegister(t *testing.T) {
	env := setupWorkflowTest(t)

	createSurat(t, env, env.vendorToken, entity.KategoriSuratJalan, true)

	w := testutil.DoRequest(env.router, "GET", "/api/v1/surat-jalan/export", nil, env.adminToken)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("Expected xlsx content type, got %q", ct)
	}
	if w.Body.Len() == 0 {
		t.Error("Expected non-empty workbook body")
	}
}
