package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/google/uuid"
)

type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepositoryFacade
	txnRepo      portsrepo.TransactionReader
}

// NewCategoryService creates the category service.
func NewCategoryService(repo portsrepo.CategoryRepositoryFacade, txnRepo portsrepo.TransactionReader, options ...ServiceOption) portssvc.CategorySvcFacade {
	svc := &categoryService{categoryRepo: repo, txnRepo: txnRepo}
	svc.apply(options)
	return svc
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func validCategoryType(t domain.CategoryType) bool {
	return t == domain.CategoryTypeIncome || t == domain.CategoryTypeExpense || t == domain.CategoryTypeBoth
}

func (s *categoryService) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx, userID)
	if err != nil {
		return nil, apperrors.Persistence("list categories", err)
	}
	return categories, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name", "is required")
	}
	if !validCategoryType(req.Type) {
		return nil, apperrors.NewValidationError("type", "must be income, expense or both")
	}
	if req.Color == "" {
		return nil, apperrors.NewValidationError("color", "is required")
	}

	now := s.Now()
	category := domain.Category{
		CategoryID: uuid.NewString(),
		UserID:     userID,
		Name:       name,
		Type:       req.Type,
		Color:      req.Color,
		Icon:       req.Icon,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		err = apperrors.Persistence("save category", err)
		s.Report(ctx, "category.create", userID, err, nil)
		return nil, err
	}
	s.Invalidate(userID)
	s.LogInfo(ctx, "Category created", slog.String("category_id", category.CategoryID))
	return &category, nil
}

// findOwned loads a category and refuses default ones, which are shared and read-only.
func (s *categoryService) findOwned(ctx context.Context, userID, categoryID, action string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, userID, categoryID)
	if err != nil {
		return nil, apperrors.Persistence("find category", err)
	}
	if category.IsDefault {
		return nil, fmt.Errorf("%w: default category %s cannot be %s", apperrors.ErrReferentialIntegrity, categoryID, action)
	}
	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, userID string, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	category, err := s.findOwned(ctx, userID, categoryID, "modified")
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("name", "must not be empty")
		}
		category.Name = name
	}
	if req.Type != nil {
		if !validCategoryType(*req.Type) {
			return nil, apperrors.NewValidationError("type", "must be income, expense or both")
		}
		category.Type = *req.Type
	}
	if req.Color != nil {
		if *req.Color == "" {
			return nil, apperrors.NewValidationError("color", "must not be empty")
		}
		category.Color = *req.Color
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	category.LastUpdatedAt = s.Now()
	category.LastUpdatedBy = userID

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		err = apperrors.Persistence("update category", err)
		s.Report(ctx, "category.update", userID, err, map[string]any{"category_id": categoryID})
		return nil, err
	}
	s.Invalidate(userID)
	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, userID string, categoryID string) error {
	if _, err := s.findOwned(ctx, userID, categoryID, "deleted"); err != nil {
		s.Report(ctx, "category.delete", userID, err, map[string]any{"category_id": categoryID})
		return err
	}
	if err := s.ensureUnreferenced(ctx, s.txnRepo, portsrepo.RefCategory, categoryID, "category"); err != nil {
		s.Report(ctx, "category.delete", userID, err, map[string]any{"category_id": categoryID})
		return err
	}
	if err := s.categoryRepo.DeleteCategory(ctx, userID, categoryID); err != nil {
		err = apperrors.Persistence("delete category", err)
		s.Report(ctx, "category.delete", userID, err, map[string]any{"category_id": categoryID})
		return err
	}
	s.Invalidate(userID)
	return nil
}
