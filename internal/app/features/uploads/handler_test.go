package uploads_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"testing"
	"time"

	"github.com/dalemusser/dossierhub/internal/app/catalog"
	"github.com/dalemusser/dossierhub/internal/app/features/uploads"
	"github.com/dalemusser/dossierhub/internal/app/status"
	"github.com/dalemusser/dossierhub/internal/app/system/auth"
	"github.com/dalemusser/dossierhub/internal/app/system/storage"
	"github.com/dalemusser/dossierhub/internal/domain/models"
	"go.uber.org/zap"
)

type memStore struct {
	docs   []models.TypedDocument
	nextID int
}

func (m *memStore) Save(_ context.Context, doc models.TypedDocument) (models.TypedDocument, error) {
	m.nextID++
	doc.ID = strconv.Itoa(m.nextID)
	m.docs = append(m.docs, doc)
	return doc, nil
}

func (m *memStore) LatestPerType(_ context.Context, userID string) ([]models.TypedDocument, error) {
	latest := map[string]models.TypedDocument{}
	for _, d := range m.docs {
		if d.UserID != userID {
			continue
		}
		cur, ok := latest[d.Type]
		if !ok || d.UploadDate.After(cur.UploadDate) || (d.UploadDate.Equal(cur.UploadDate) && d.ID > cur.ID) {
			latest[d.Type] = d
		}
	}
	out := make([]models.TypedDocument, 0, len(latest))
	for _, d := range latest {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadDate.After(out[j].UploadDate) })
	return out, nil
}

func (m *memStore) AllByUser(_ context.Context, userID string) ([]models.TypedDocument, error) {
	var out []models.TypedDocument
	for _, d := range m.docs {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadDate.After(out[j].UploadDate) })
	return out, nil
}

func (m *memStore) DeleteByTypeExact(_ context.Context, userID, docType string) (int64, error) {
	var kept []models.TypedDocument
	var n int64
	for _, d := range m.docs {
		if d.UserID == userID && d.Type == docType {
			n++
			continue
		}
		kept = append(kept, d)
	}
	m.docs = kept
	return n, nil
}

func (m *memStore) Relational() bool { return false }

type memDirectory map[string]string

func (m memDirectory) DisplayName(_ context.Context, id string) (string, error) {
	return m[id], nil
}

type memInventory struct {
	created []models.FileMeta
}

func (m *memInventory) Create(_ context.Context, f models.FileMeta) (models.FileMeta, error) {
	m.created = append(m.created, f)
	return f, nil
}

type fixture struct {
	router    http.Handler
	store     *memStore
	inventory *memInventory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := &memStore{}
	inv := &memInventory{}
	local, err := storage.NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	cat := catalog.Default()
	agg := status.New(st, cat, memDirectory{"u1": "Marie Dupont"}, zap.NewNop())
	h := uploads.NewHandler(agg, cat, inv, local, zap.NewNop())
	return &fixture{router: uploads.Routes(h), store: st, inventory: inv}
}

func do(t *testing.T, router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "u1", Name: "Marie Dupont", Role: "member"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	fw.Write([]byte(content))
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestUpload(t *testing.T) {
	fx := newFixture(t)

	body, ctype := multipartBody(t, "file", "cni.pdf", "pdf bytes")
	req := httptest.NewRequest("POST", "/upload/CNI", body)
	req.Header.Set("Content-Type", ctype)

	rec := do(t, fx.router, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success  bool                 `json:"success"`
		Document models.TypedDocument `json:"document"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if !resp.Success {
		t.Error("expected success envelope")
	}
	if resp.Document.Category != "Documents d'identité" {
		t.Errorf("Category = %q, want resolved from catalog", resp.Document.Category)
	}
	if resp.Document.FileName != "cni.pdf" {
		t.Errorf("FileName = %q", resp.Document.FileName)
	}

	if len(fx.inventory.created) != 1 {
		t.Fatalf("file inventory has %d records, want 1", len(fx.inventory.created))
	}
	if fx.inventory.created[0].UserID != "u1" {
		t.Errorf("inventory UserID = %q", fx.inventory.created[0].UserID)
	}
}

func TestUpload_EncodedType(t *testing.T) {
	fx := newFixture(t)

	body, ctype := multipartBody(t, "file", "bilan.pdf", "pdf bytes")
	req := httptest.NewRequest("POST", "/upload/Bilan%20%2F%20Liasse%20fiscale%202026", body)
	req.Header.Set("Content-Type", ctype)

	rec := do(t, fx.router, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	if len(fx.store.docs) != 1 {
		t.Fatalf("store has %d records, want 1", len(fx.store.docs))
	}
	doc := fx.store.docs[0]
	if doc.Type != "Bilan / Liasse fiscale 2026" {
		t.Errorf("Type = %q, want decoded type name", doc.Type)
	}
	// The expanded annual name is not a catalog item itself; the decoded
	// form still falls through to the default category, but clearing and
	// latest-status now match what the catalog listing serves.
	rec = do(t, fx.router, httptest.NewRequest("DELETE", "/typed-documents?type=Bilan+%2F+Liasse+fiscale+2026", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("clear status = %d", rec.Code)
	}
	var resp struct {
		Deleted int64 `json:"deleted"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Deleted != 1 {
		t.Errorf("deleted = %d, want 1", resp.Deleted)
	}
}

func TestUpload_BaseTypeWithSlashResolvesCategory(t *testing.T) {
	fx := newFixture(t)

	body, ctype := multipartBody(t, "file", "bilan.pdf", "pdf bytes")
	req := httptest.NewRequest("POST", "/upload/Bilan%20%2F%20Liasse%20fiscale", body)
	req.Header.Set("Content-Type", ctype)

	rec := do(t, fx.router, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Document models.TypedDocument `json:"document"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp.Document.Type != "Bilan / Liasse fiscale" {
		t.Errorf("Type = %q, want decoded type name", resp.Document.Type)
	}
	if resp.Document.Category != "Déclarations / Attestations" {
		t.Errorf("Category = %q, want resolved from catalog", resp.Document.Category)
	}
}

func TestUpload_NoFile(t *testing.T) {
	fx := newFixture(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("note", "no file here")
	mw.Close()

	req := httptest.NewRequest("POST", "/upload/CNI", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := do(t, fx.router, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("Aucun fichier reçu.")) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestUpload_DisallowedExtension(t *testing.T) {
	fx := newFixture(t)

	body, ctype := multipartBody(t, "file", "malware.exe", "MZ")
	req := httptest.NewRequest("POST", "/upload/CNI", body)
	req.Header.Set("Content-Type", ctype)

	rec := do(t, fx.router, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if len(fx.store.docs) != 0 {
		t.Error("rejected upload must not create a record")
	}
}

func TestCatalogList(t *testing.T) {
	fx := newFixture(t)

	rec := do(t, fx.router, httptest.NewRequest("GET", "/documents/catalog", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Success bool                   `json:"success"`
		Items   []catalog.RequiredType `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if len(resp.Items) == 0 {
		t.Fatal("expected expanded catalog items")
	}
	for _, it := range resp.Items {
		if it.Category == "Livrables" {
			t.Fatalf("catalog contains excluded category entry %+v", it)
		}
	}
}

func TestMyLatestAndHistory(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	fx.store.Save(ctx, models.TypedDocument{UserID: "u1", Type: "CNI", Category: "Documents d'identité", FileName: "old.pdf", UploadDate: base})
	fx.store.Save(ctx, models.TypedDocument{UserID: "u1", Type: "CNI", Category: "Documents d'identité", FileName: "new.pdf", UploadDate: base.Add(time.Hour)})

	rec := do(t, fx.router, httptest.NewRequest("GET", "/documents/my-latest", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var latest struct {
		Items []models.TypedDocument `json:"items"`
	}
	json.Unmarshal(rec.Body.Bytes(), &latest)
	if len(latest.Items) != 1 || latest.Items[0].FileName != "new.pdf" {
		t.Errorf("my-latest = %+v", latest.Items)
	}

	rec = do(t, fx.router, httptest.NewRequest("GET", "/documents/my-history", nil))
	var history struct {
		Items []map[string]any `json:"items"`
	}
	json.Unmarshal(rec.Body.Bytes(), &history)
	if len(history.Items) != 1 {
		t.Fatalf("my-history = %+v", history.Items)
	}
	if _, has := history.Items[0]["filePath"]; has {
		t.Error("my-history must not expose storage paths")
	}
	if history.Items[0]["fileName"] != "new.pdf" {
		t.Errorf("my-history fileName = %v", history.Items[0]["fileName"])
	}
}

func TestMyUploads_AnnotatesUserName(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	fx.store.Save(ctx, models.TypedDocument{UserID: "u1", Type: "CNI", UploadDate: time.Now().UTC()})

	rec := do(t, fx.router, httptest.NewRequest("GET", "/documents/my-uploads", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Items []models.TypedDocument `json:"items"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if len(resp.Items) != 1 || resp.Items[0].UserName != "Marie Dupont" {
		t.Errorf("my-uploads = %+v, want userName annotation", resp.Items)
	}
}

func TestClear(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	when := time.Now().UTC()
	fx.store.Save(ctx, models.TypedDocument{UserID: "u1", Type: "CNI", UploadDate: when})
	fx.store.Save(ctx, models.TypedDocument{UserID: "u1", Type: "CNI", UploadDate: when})

	rec := do(t, fx.router, httptest.NewRequest("DELETE", "/typed-documents?type=CNI", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Deleted int64 `json:"deleted"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Deleted != 2 {
		t.Errorf("deleted = %d, want 2", resp.Deleted)
	}
}

func TestClear_MissingTypeParam(t *testing.T) {
	fx := newFixture(t)

	rec := do(t, fx.router, httptest.NewRequest("DELETE", "/typed-documents", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte(`Paramètre \"type\" manquant.`)) {
		t.Errorf("body = %s", rec.Body.String())
	}
}
