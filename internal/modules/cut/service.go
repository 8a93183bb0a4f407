package cut

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"

	"recortes/internal/domain"
	"recortes/internal/pkg/slug"
	"recortes/internal/repository"
	"recortes/internal/storage"

	"gorm.io/gorm"
)

const (
	defaultPage    = 1
	defaultPerPage = 10
	defaultSortBy  = "displayOrder"
)

// Service orchestrates the cut lifecycle: image upload, persistence and
// best-effort blob cleanup, always scoped to the calling identity.
type Service struct {
	cuts  CutRepository
	store storage.Store
}

func NewService(cuts CutRepository, store storage.Store) *Service {
	return &Service{cuts: cuts, store: store}
}

// Create uploads the image under a metadata-derived key and persists the
// new cut owned by the caller. The image check runs before any upload
// attempt; a storage failure aborts the request before any row is
// written.
func (s *Service) Create(ctx context.Context, identity domain.Identity, req CreateCutRequest, file *multipart.FileHeader) (*domain.Cut, error) {
	if file == nil {
		return nil, ErrImageRequired
	}

	order, err := parseDisplayOrder(req.DisplayOrder)
	if err != nil {
		return nil, err
	}
	if req.Status != "" && !domain.CutStatus(req.Status).Valid() {
		return nil, ErrInvalidStatus
	}

	imageURL, err := s.uploadImage(ctx, file, slug.KeyFields{
		ProductType:   req.ProductType,
		CutType:       req.CutType,
		Material:      req.Material,
		MaterialColor: req.MaterialColor,
	})
	if err != nil {
		return nil, err
	}

	cut := &domain.Cut{
		SKU:           req.SKU,
		ModelName:     req.ModelName,
		CutType:       req.CutType,
		Position:      req.Position,
		ProductType:   req.ProductType,
		Material:      req.Material,
		MaterialColor: req.MaterialColor,
		DisplayOrder:  order,
		Status:        domain.CutStatus(req.Status),
		ImageURL:      imageURL,
		UserID:        identity.ID,
	}

	if err := s.cuts.Create(ctx, cut); err != nil {
		return nil, err
	}
	return cut, nil
}

// List returns one page of the caller's cuts. Page values below 1 are
// coerced to 1 and per-page values below 1 to the default of 10, so the
// total-pages math never divides by zero.
func (s *Service) List(ctx context.Context, identity domain.Identity, q ListCutsQuery) (*ListCutsResponse, error) {
	page := q.Page
	if page < 1 {
		page = defaultPage
	}
	perPage := q.PerPage
	if perPage < 1 {
		perPage = defaultPerPage
	}
	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = defaultSortBy
	}

	rows, total, err := s.cuts.List(ctx, repository.CutFilter{
		UserID:  identity.ID,
		SKU:     q.SKU,
		CutType: q.CutType,
		Status:  q.Status,
		SortBy:  sortBy,
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		return nil, err
	}

	totalPages := 0
	if total > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(perPage)))
	}

	if rows == nil {
		rows = []domain.Cut{}
	}

	return &ListCutsResponse{
		Data: rows,
		Meta: ListMeta{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages},
	}, nil
}

// GetByID fetches a cut scoped by {id, userId}. A cut owned by another
// user reads as not found.
func (s *Service) GetByID(ctx context.Context, identity domain.Identity, id int64) (*domain.Cut, error) {
	cut, err := s.cuts.GetByIDForUser(ctx, id, identity.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return cut, nil
}

// Update applies the fields present in the request to the caller's cut.
// When a new image is attached the upload path re-runs with the merged
// metadata and replaces imageUrl; the prior blob is left in place.
func (s *Service) Update(ctx context.Context, identity domain.Identity, id int64, req UpdateCutRequest, file *multipart.FileHeader) (*domain.Cut, error) {
	existing, err := s.GetByID(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	if req.SKU != nil {
		existing.SKU = *req.SKU
	}
	if req.ModelName != nil {
		existing.ModelName = *req.ModelName
	}
	if req.CutType != nil {
		existing.CutType = *req.CutType
	}
	if req.Position != nil {
		existing.Position = *req.Position
	}
	if req.ProductType != nil {
		existing.ProductType = *req.ProductType
	}
	if req.Material != nil {
		existing.Material = *req.Material
	}
	if req.MaterialColor != nil {
		existing.MaterialColor = *req.MaterialColor
	}
	if req.DisplayOrder != nil {
		order, err := parseDisplayOrder(*req.DisplayOrder)
		if err != nil {
			return nil, err
		}
		existing.DisplayOrder = order
	}
	if req.Status != nil {
		if !domain.CutStatus(*req.Status).Valid() {
			return nil, ErrInvalidStatus
		}
		existing.Status = domain.CutStatus(*req.Status)
	}

	if file != nil {
		imageURL, err := s.uploadImage(ctx, file, slug.KeyFields{
			ProductType:   existing.ProductType,
			CutType:       existing.CutType,
			Material:      existing.Material,
			MaterialColor: existing.MaterialColor,
		})
		if err != nil {
			return nil, err
		}
		existing.ImageURL = imageURL
	}

	if err := s.cuts.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Remove deletes the caller's cut. The image blob is removed best
// effort: an unextractable object name or a storage failure is logged
// as a warning and the row deletion proceeds regardless.
func (s *Service) Remove(ctx context.Context, identity domain.Identity, id int64) error {
	existing, err := s.GetByID(ctx, identity, id)
	if err != nil {
		return err
	}

	objectName := s.store.ExtractObjectName(existing.ImageURL)
	if objectName == "" {
		log.Printf("warn: could not extract object name from image url %q", existing.ImageURL)
	} else if err := s.store.Remove(ctx, objectName); err != nil {
		log.Printf("warn: failed to remove image %s from storage: %v", objectName, err)
	}

	if err := s.cuts.Delete(ctx, id, identity.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// uploadImage validates the file is an image, derives the object name
// from the sanitized metadata plus the original extension and uploads
// it. Identical metadata overwrites the prior object.
func (s *Service) uploadImage(ctx context.Context, file *multipart.FileHeader, fields slug.KeyFields) (string, error) {
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotAnImage
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("failed to read uploaded file: %w", err)
	}

	objectName := slug.MakeKey(fields) + filepath.Ext(file.Filename)
	if err := s.store.Upload(ctx, objectName, data, contentType); err != nil {
		return "", err
	}
	return s.store.PublicURL(objectName), nil
}

func parseDisplayOrder(value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		return 0, ErrInvalidDisplayOrder
	}
	return n, nil
}
