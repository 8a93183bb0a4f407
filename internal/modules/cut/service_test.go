package cut

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"recortes/internal/domain"
	"recortes/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Mock repositories

type MockCutRepository struct {
	mock.Mock
}

func (m *MockCutRepository) Create(ctx context.Context, cut *domain.Cut) error {
	args := m.Called(ctx, cut)
	if cut != nil {
		cut.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockCutRepository) GetByIDForUser(ctx context.Context, id, userID int64) (*domain.Cut, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cut), args.Error(1)
}

func (m *MockCutRepository) List(ctx context.Context, f repository.CutFilter) ([]domain.Cut, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Cut), args.Get(1).(int64), args.Error(2)
}

func (m *MockCutRepository) Update(ctx context.Context, cut *domain.Cut) error {
	args := m.Called(ctx, cut)
	return args.Error(0)
}

func (m *MockCutRepository) Delete(ctx context.Context, id, userID int64) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Upload(ctx context.Context, objectName string, data []byte, contentType string) error {
	args := m.Called(ctx, objectName, data, contentType)
	return args.Error(0)
}

func (m *MockStore) PublicURL(objectName string) string {
	args := m.Called(objectName)
	return args.String(0)
}

func (m *MockStore) Remove(ctx context.Context, objectName string) error {
	args := m.Called(ctx, objectName)
	return args.Error(0)
}

func (m *MockStore) ExtractObjectName(publicURL string) string {
	args := m.Called(publicURL)
	return args.String(0)
}

// fileHeader builds a *multipart.FileHeader the way gin would hand it to
// the handler.
func fileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, filename))
	hdr.Set("Content-Type", contentType)
	part, err := w.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["image"][0]
}

func validCreateRequest() CreateCutRequest {
	return CreateCutRequest{
		SKU:           "SKU123",
		ModelName:     "Modelo A",
		CutType:       "Frente Copa",
		Position:      "frente",
		ProductType:   "Boné Americano",
		Material:      "Linho Premium",
		MaterialColor: "Azul Marinho",
		DisplayOrder:  "1",
	}
}

var alice = domain.Identity{ID: 1, Email: "alice@example.com"}

func TestService_Create_RequiresImage(t *testing.T) {
	cuts := new(MockCutRepository)
	store := new(MockStore)
	svc := NewService(cuts, store)

	_, err := svc.Create(context.Background(), alice, validCreateRequest(), nil)

	assert.ErrorIs(t, err, ErrImageRequired)
	store.AssertNotCalled(t, "Upload")
	cuts.AssertNotCalled(t, "Create")
}

func TestService_Create_Success(t *testing.T) {
	cuts := new(MockCutRepository)
	store := new(MockStore)
	svc := NewService(cuts, store)

	wantName := "bone-americano_frente-copa_linho-premium_azul-marinho.png"
	wantURL := "https://cdn.example.com/recortes/" + wantName

	store.On("Upload", mock.Anything, wantName, []byte("png-bytes"), "image/png").Return(nil)
	store.On("PublicURL", wantName).Return(wantURL)
	cuts.On("Create", mock.Anything, mock.AnythingOfType("*domain.Cut")).Return(nil)

	file := fileHeader(t, "photo.png", "image/png", []byte("png-bytes"))
	created, err := svc.Create(context.Background(), alice, validCreateRequest(), file)

	require.NoError(t, err)
	assert.Equal(t, int64(999), created.ID)
	assert.Equal(t, wantURL, created.ImageURL)
	assert.Equal(t, alice.ID, created.UserID)
	assert.Equal(t, 1, created.DisplayOrder)
	store.AssertExpectations(t)
	cuts.AssertExpectations(t)
}

func TestService_Create_InvalidDisplayOrder(t *testing.T) {
	cuts := new(MockCutRepository)
	store := new(MockStore)
	svc := NewService(cuts, store)
	file := fileHeader(t, "photo.png", "image/png", []byte("x"))

	for _, bad := range []string{"abc", "0", "-3", "1.5"} {
		req := validCreateRequest()
		req.DisplayOrder = bad
		_, err := svc.Create(context.Background(), alice, req, file)
		assert.ErrorIs(t, err, ErrInvalidDisplayOrder, "displayOrder=%q", bad)
	}
	store.AssertNotCalled(t, "Upload")
	cuts.AssertNotCalled(t, "Create")
}

func TestService_Create_RejectsNonImage(t *testing.T) {
	cuts := new(MockCutRepository)
	store := new(MockStore)
	svc := NewService(cuts, store)

	file := fileHeader(t, "notes.txt", "text/plain", []byte("hello"))
	_, err := svc.Create(context.Background(), alice, validCreateRequest(), file)

	assert.ErrorIs(t, err, ErrNotAnImage)
	store.AssertNotCalled(t, "Upload")
	cuts.AssertNotCalled(t, "Create")
}

func TestService_Create_StorageFailureAbortsBeforePersist(t *testing.T) {
	cuts := new(MockCutRepository)
	store := new(MockStore)
	svc := NewService(cuts, store)

	store.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("bucket unavailable"))

	file := fileHeader(t, "photo.png", "image/png", []byte("x"))
	_, err := svc.Create(context.Background(), alice, validCreateRequest(), file)

	assert.Error(t, err)
	cuts.AssertNotCalled(t, "Create")
}

func TestService_List_MetaMath(t *testing.T) {
	cases := []struct {
		name           string
		total          int64
		perPage        int
		wantTotalPages int
	}{
		{"zero total", 0, 10, 0},
		{"exact pages", 20, 10, 2},
		{"partial last page", 25, 10, 3},
		{"single row", 1, 10, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cuts := new(MockCutRepository)
			store := new(MockStore)
			svc := NewService(cuts, store)

			cuts.On("List", mock.Anything, mock.Anything).Return([]domain.Cut{}, tc.total, nil)

			res, err := svc.List(context.Background(), alice, ListCutsQuery{Page: 1, PerPage: tc.perPage})
			require.NoError(t, err)
			assert.Equal(t, tc.wantTotalPages, res.Meta.TotalPages)
			assert.Equal(t, tc.total, res.Meta.Total)
		})
	}
}

func TestService_List_CoercesEdgePagination(t *testing.T) {
	cuts := new(MockCutRepository)
	store := new(MockStore)
	svc := NewService(cuts, store)

	cuts.On("List", mock.Anything, mock.MatchedBy(func(f repository.CutFilter) bool {
		return f.Page == 1 && f.PerPage == 10 && f.UserID == alice.ID && f.SortBy == "displayOrder"
	})).Return([]domain.Cut{}, int64(0), nil)

	// page 0 and a negative limit must not reach the repository as-is
	res, err := svc.List(context.Background(), alice, ListCutsQuery{Page: 0, PerPage: -5})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Meta.Page)
	assert.Equal(t, 10, res.Meta.PerPage)
	assert.Equal(t, 0, res.Meta.TotalPages)
	cuts.AssertExpectations(t)
}

func TestService_List_PassesFilters(t *testing.T) {
	cuts := new(MockCutRepository)
	store := new(MockStore)
	svc := NewService(cuts, store)

	cuts.On("List", mock.Anything, mock.MatchedBy(func(f repository.CutFilter) bool {
		return f.SKU == "SKU123" && f.CutType == "frente" && f.Status == "ACTIVE" && f.SortBy == "sku"
	})).Return([]domain.Cut{}, int64(0), nil)

	_, err := svc.List(context.Background(), alice, ListCutsQuery{
		Page: 1, PerPage: 10, SKU: "SKU123", CutType: "frente", Status: "ACTIVE", SortBy: "sku",
	})
	require.NoError(t, err)
	cuts.AssertExpectations(t)
}

func TestService_GetByID_OtherUserReadsAsNotFound(t *testing.T) {
	cuts := new(MockCutRepository)
	store := new(MockStore)
	svc := NewService(cuts, store)

	cuts.On("GetByIDForUser", mock.Anything, int64(7), alice.ID).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetByID(context.Background(), alice, 7)
	assert.ErrorIs(t, err, ErrNotFound)
}

func existingCut() *domain.Cut {
	return &domain.Cut{
		ID:            7,
		SKU:           "SKU123",
		ModelName:     "Modelo A",
		CutType:       "frente",
		Position:      "frente",
		ProductType:   "boné",
		Material:      "linho",
		MaterialColor: "preto",
		DisplayOrder:  1,
		Status:        domain.CutStatusActive,
		ImageURL:      "https://cdn.example.com/recortes/bone_frente_linho_preto.png",
		UserID:        alice.ID,
	}
}

func strptr(s string) *string { return &s }

func TestService_Update_PresenceBasedPatch(t *testing.T) {
	cuts := new(MockCutRepository)
	store := new(MockStore)
	svc := NewService(cuts, store)

	cuts.On("GetByIDForUser", mock.Anything, int64(7), alice.ID).Return(existingCut(), nil)
	cuts.On("Update", mock.Anything, mock.AnythingOfType("*domain.Cut")).Return(nil)

	req := UpdateCutRequest{
		SKU:      strptr(""), // present but empty: applied, not ignored
		Position: strptr("traseira"),
		Status:   strptr("EXPIRED"),
	}

	updated, err := svc.Update(context.Background(), alice, 7, req, nil)
	require.NoError(t, err)

	assert.Equal(t, "", updated.SKU)
	assert.Equal(t, "traseira", updated.Position)
	assert.Equal(t, domain.CutStatusExpired, updated.Status)
	// absent fields untouched
	assert.Equal(t, "Modelo A", updated.ModelName)
	assert.Equal(t, 1, updated.DisplayOrder)
	assert.Equal(t, existingCut().ImageURL, updated.ImageURL)
}

func TestService_Update_NotFoundForOtherUser(t *testing.T) {
	cuts := new(MockCutRepository)
	store := new(MockStore)
	svc := NewService(cuts, store)

	cuts.On("GetByIDForUser", mock.Anything, int64(7), alice.ID).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Update(context.Background(), alice, 7, UpdateCutRequest{}, nil)
	assert.ErrorIs(t, err, ErrNotFound)
	cuts.AssertNotCalled(t, "Update")
}

func TestService_Update_InvalidStatus(t *testing.T) {
	cuts := new(MockCutRepository)
	store := new(MockStore)
	svc := NewService(cuts, store)

	cuts.On("GetByIDForUser", mock.Anything, int64(7), alice.ID).Return(existingCut(), nil)

	_, err := svc.Update(context.Background(), alice, 7, UpdateCutRequest{Status: strptr("DELETED")}, nil)
	assert.ErrorIs(t, err, ErrInvalidStatus)
	cuts.AssertNotCalled(t, "Update")
}

func TestService_Update_ReplacesImageWithMergedMetadata(t *testing.T) {
	cuts := new(MockCutRepository)
	store := new(MockStore)
	svc := NewService(cuts, store)

	cuts.On("GetByIDForUser", mock.Anything, int64(7), alice.ID).Return(existingCut(), nil)
	cuts.On("Update", mock.Anything, mock.AnythingOfType("*domain.Cut")).Return(nil)

	// material changed in the same request: the new key must use it
	wantName := "bone_frente_couro_preto.jpg"
	wantURL := "https://cdn.example.com/recortes/" + wantName
	store.On("Upload", mock.Anything, wantName, mock.Anything, "image/jpeg").Return(nil)
	store.On("PublicURL", wantName).Return(wantURL)

	file := fileHeader(t, "new.jpg", "image/jpeg", []byte("jpg"))
	updated, err := svc.Update(context.Background(), alice, 7, UpdateCutRequest{Material: strptr("couro")}, file)

	require.NoError(t, err)
	assert.Equal(t, wantURL, updated.ImageURL)
	// the prior blob is intentionally left in place
	store.AssertNotCalled(t, "Remove")
	store.AssertExpectations(t)
}

func TestService_Remove_BlobFailureStillDeletesRow(t *testing.T) {
	cuts := new(MockCutRepository)
	store := new(MockStore)
	svc := NewService(cuts, store)

	c := existingCut()
	cuts.On("GetByIDForUser", mock.Anything, int64(7), alice.ID).Return(c, nil)
	store.On("ExtractObjectName", c.ImageURL).Return("bone_frente_linho_preto.png")
	store.On("Remove", mock.Anything, "bone_frente_linho_preto.png").Return(errors.New("storage down"))
	cuts.On("Delete", mock.Anything, int64(7), alice.ID).Return(nil)

	err := svc.Remove(context.Background(), alice, 7)

	assert.NoError(t, err)
	cuts.AssertCalled(t, "Delete", mock.Anything, int64(7), alice.ID)
}

func TestService_Remove_UnextractableURLSkipsBlobDelete(t *testing.T) {
	cuts := new(MockCutRepository)
	store := new(MockStore)
	svc := NewService(cuts, store)

	c := existingCut()
	c.ImageURL = "https://elsewhere.example.com/no-bucket-here.png"
	cuts.On("GetByIDForUser", mock.Anything, int64(7), alice.ID).Return(c, nil)
	store.On("ExtractObjectName", c.ImageURL).Return("")
	cuts.On("Delete", mock.Anything, int64(7), alice.ID).Return(nil)

	err := svc.Remove(context.Background(), alice, 7)

	assert.NoError(t, err)
	store.AssertNotCalled(t, "Remove")
	cuts.AssertCalled(t, "Delete", mock.Anything, int64(7), alice.ID)
}

func TestService_Remove_NotFoundForOtherUser(t *testing.T) {
	cuts := new(MockCutRepository)
	store := new(MockStore)
	svc := NewService(cuts, store)

	cuts.On("GetByIDForUser", mock.Anything, int64(7), alice.ID).Return(nil, gorm.ErrRecordNotFound)

	err := svc.Remove(context.Background(), alice, 7)
	assert.ErrorIs(t, err, ErrNotFound)
	cuts.AssertNotCalled(t, "Delete")
}
