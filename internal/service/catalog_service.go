package service

import (
	"database/sql"
	"time"

	"github.com/pasarlink/pasar-api/internal/models"
	"github.com/pasarlink/pasar-api/internal/pricing"
	"github.com/pasarlink/pasar-api/internal/repository"
	"github.com/pasarlink/pasar-api/internal/utils"
)

// CatalogService serves the public product catalog and the admin product and
// category management operations.
type CatalogService struct {
	productRepo  *repository.ProductRepository
	categoryRepo *repository.CategoryRepository
	settingsRepo *repository.SettingsRepository
}

// NewCatalogService constructs a new CatalogService.
func NewCatalogService(
	productRepo *repository.ProductRepository,
	categoryRepo *repository.CategoryRepository,
	settingsRepo *repository.SettingsRepository,
) *CatalogService {
	return &CatalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		settingsRepo: settingsRepo,
	}
}

// ProductView is a catalog product decorated with the viewer's resolved price
// and the product's current promotion state.
type ProductView struct {
	models.Product
	PromotionStatus pricing.PromotionStatus `json:"promotionStatus"`
	Pricing         pricing.ResolvedPrice   `json:"pricing"`
	MemberPricing   pricing.ResolvedPrice   `json:"memberPricing"`
	Qualifies       bool                    `json:"qualifiesForMembership"`
}

// decorate computes the viewer-dependent pricing fields for one product.
func (s *CatalogService) decorate(p models.Product, isMember bool, cfg pricing.MembershipConfig, now time.Time) ProductView {
	snap := p.Snapshot()
	status := pricing.PromotionStatusAt(snap, now)
	return ProductView{
		Product:         p,
		PromotionStatus: status,
		Pricing:         pricing.Resolve(snap, isMember, status),
		MemberPricing:   pricing.Resolve(snap, true, status),
		Qualifies:       pricing.Qualifies(snap, status, cfg),
	}
}

// ListProducts returns active products with viewer pricing applied.
func (s *CatalogService) ListProducts(category, search string, page, limit int, isMember bool) ([]ProductView, int, error) {
	products, total, err := s.productRepo.GetAllPaged(category, search, page, limit)
	if err != nil {
		return nil, 0, err
	}
	cfg, err := s.settingsRepo.GetMembershipConfig()
	if err != nil {
		return nil, 0, err
	}

	now := time.Now()
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, s.decorate(p, isMember, cfg, now))
	}
	return views, total, nil
}

// GetProduct returns one active product by slug with viewer pricing applied.
func (s *CatalogService) GetProduct(slug string, isMember bool) (*ProductView, error) {
	p, err := s.productRepo.GetBySlug(slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}
	if !p.IsActive {
		return nil, utils.ErrProductNotFound
	}
	cfg, err := s.settingsRepo.GetMembershipConfig()
	if err != nil {
		return nil, err
	}
	view := s.decorate(*p, isMember, cfg, time.Now())
	return &view, nil
}

// ListCategories returns active categories for the storefront.
func (s *CatalogService) ListCategories() ([]models.Category, error) {
	return s.categoryRepo.ListActive()
}

// validateProduct enforces price sanity before save. The pricing resolver
// assumes promotional < regular and member <= regular hold.
func validateProduct(p *models.Product) error {
	if !p.RegularPrice.IsPositive() {
		return utils.ErrInvalidPrice
	}
	if p.MemberPrice.IsNegative() || p.MemberPrice.GreaterThan(p.RegularPrice) {
		return utils.ErrInvalidPrice
	}
	if p.IsPromotional && p.PromotionalPrice != nil {
		if p.PromotionalPrice.IsNegative() || p.PromotionalPrice.GreaterThanOrEqual(p.RegularPrice) {
			return utils.ErrInvalidPrice
		}
	}
	if p.PromotionStartsAt != nil && p.PromotionEndsAt != nil &&
		p.PromotionEndsAt.Before(*p.PromotionStartsAt) {
		return utils.ErrInvalidPrice
	}
	return nil
}

// CreateProduct creates a product, denormalizing the category's qualifying flag.
func (s *CatalogService) CreateProduct(p *models.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	category, err := s.categoryRepo.GetByID(p.CategoryID)
	if err != nil {
		if err == sql.ErrNoRows {
			return utils.ErrCategoryNotFound
		}
		return err
	}
	p.IsQualifying = category.IsQualifying
	return s.productRepo.Create(p)
}

// UpdateProduct updates a product, re-syncing the qualifying flag from its
// (possibly new) category.
func (s *CatalogService) UpdateProduct(p *models.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	category, err := s.categoryRepo.GetByID(p.CategoryID)
	if err != nil {
		if err == sql.ErrNoRows {
			return utils.ErrCategoryNotFound
		}
		return err
	}
	p.IsQualifying = category.IsQualifying
	if err := s.productRepo.Update(p); err != nil {
		if err == sql.ErrNoRows {
			return utils.ErrProductNotFound
		}
		return err
	}
	return nil
}

// SetProductStatus toggles a product's active flag.
func (s *CatalogService) SetProductStatus(id int, isActive bool) error {
	return s.productRepo.UpdateStatus(id, isActive)
}

// DeleteProduct removes a product.
func (s *CatalogService) DeleteProduct(id int) error {
	return s.productRepo.Delete(id)
}

// GetAdminProducts returns products for the admin panel.
func (s *CatalogService) GetAdminProducts(filter *repository.AdminProductFilter) (*repository.AdminProductResult, error) {
	return s.productRepo.GetAllAdmin(filter)
}

// GetAdminProduct returns one product for the admin panel, inactive included.
func (s *CatalogService) GetAdminProduct(id int) (*models.Product, error) {
	p, err := s.productRepo.GetByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

// ListAllCategories returns every category for the admin panel.
func (s *CatalogService) ListAllCategories() ([]models.Category, error) {
	return s.categoryRepo.ListAll()
}

// CreateCategory creates a category.
func (s *CatalogService) CreateCategory(c *models.Category) error {
	return s.categoryRepo.Create(c)
}

// UpdateCategory updates a category. When its qualifying flag changes, the
// denormalized flag on all its products is rewritten; orders already placed
// keep their own snapshots.
func (s *CatalogService) UpdateCategory(c *models.Category) (int64, error) {
	existing, err := s.categoryRepo.GetByID(c.ID)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, utils.ErrCategoryNotFound
		}
		return 0, err
	}
	if err := s.categoryRepo.Update(c); err != nil {
		return 0, err
	}
	if existing.IsQualifying != c.IsQualifying {
		return s.productRepo.SyncQualifyingByCategory(c.ID, c.IsQualifying)
	}
	return 0, nil
}

// DeleteCategory removes a category.
func (s *CatalogService) DeleteCategory(id int) error {
	return s.categoryRepo.Delete(id)
}
