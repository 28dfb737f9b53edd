package service

import (
	"database/sql"

	"github.com/pasarlink/pasar-api/internal/models"
	"github.com/pasarlink/pasar-api/internal/repository"
	"github.com/pasarlink/pasar-api/internal/utils"
)

// CMSService serves admin-managed content: landing/click pages and FAQs.
type CMSService struct {
	pageRepo *repository.PageRepository
	faqRepo  *repository.FAQRepository
}

// NewCMSService constructs a new CMSService.
func NewCMSService(pageRepo *repository.PageRepository, faqRepo *repository.FAQRepository) *CMSService {
	return &CMSService{pageRepo: pageRepo, faqRepo: faqRepo}
}

// GetPage returns a published page for the storefront.
func (s *CMSService) GetPage(slug string) (*models.Page, error) {
	page, err := s.pageRepo.GetPublishedBySlug(slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.ErrPageNotFound
		}
		return nil, err
	}
	return page, nil
}

// ListFAQs returns published FAQs for the storefront.
func (s *CMSService) ListFAQs() ([]models.FAQ, error) {
	return s.faqRepo.ListPublished()
}

// ListAdminPages returns pages for the admin panel, optionally by kind.
func (s *CMSService) ListAdminPages(kind string) ([]models.Page, error) {
	return s.pageRepo.ListAll(kind)
}

// GetAdminPage returns one page for editing, published or not.
func (s *CMSService) GetAdminPage(id int) (*models.Page, error) {
	page, err := s.pageRepo.GetByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.ErrPageNotFound
		}
		return nil, err
	}
	return page, nil
}

// CreatePage creates a page.
func (s *CMSService) CreatePage(page *models.Page) error {
	if page.Kind != models.PageLanding && page.Kind != models.PageClick {
		page.Kind = models.PageLanding
	}
	return s.pageRepo.Create(page)
}

// UpdatePage updates a page.
func (s *CMSService) UpdatePage(page *models.Page) error {
	if err := s.pageRepo.Update(page); err != nil {
		if err == sql.ErrNoRows {
			return utils.ErrPageNotFound
		}
		return err
	}
	return nil
}

// DeletePage removes a page.
func (s *CMSService) DeletePage(id int) error {
	return s.pageRepo.Delete(id)
}

// ListAdminFAQs returns all FAQs for the admin panel.
func (s *CMSService) ListAdminFAQs() ([]models.FAQ, error) {
	return s.faqRepo.ListAll()
}

// CreateFAQ creates a FAQ entry.
func (s *CMSService) CreateFAQ(faq *models.FAQ) error {
	return s.faqRepo.Create(faq)
}

// UpdateFAQ updates a FAQ entry.
func (s *CMSService) UpdateFAQ(faq *models.FAQ) error {
	return s.faqRepo.Update(faq)
}

// DeleteFAQ removes a FAQ entry.
func (s *CMSService) DeleteFAQ(id int) error {
	return s.faqRepo.Delete(id)
}
