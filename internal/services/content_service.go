package services

import (
	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/pkg/uploader"

	"github.com/google/uuid"
)

// BannerInput is the payload for creating or updating a banner.
type BannerInput struct {
	Title     string `json:"title" form:"title"`
	Subtitle  string `json:"subtitle" form:"subtitle"`
	LinkURL   string `json:"link_url" form:"link_url"`
	SortOrder *int   `json:"sort_order,omitempty" form:"sort_order"`
	IsActive  *bool  `json:"is_active,omitempty" form:"is_active"`
	Image     []byte `json:"-"`
}

// HeroSectionInput is the payload for creating or updating a hero section.
type HeroSectionInput struct {
	Heading    string `json:"heading" form:"heading"`
	Subheading string `json:"subheading" form:"subheading"`
	CTAText    string `json:"cta_text" form:"cta_text"`
	CTALink    string `json:"cta_link" form:"cta_link"`
	SortOrder  *int   `json:"sort_order,omitempty" form:"sort_order"`
	IsActive   *bool  `json:"is_active,omitempty" form:"is_active"`
	Image      []byte `json:"-"`
}

// ClientInput is the payload for creating or updating a client testimonial.
type ClientInput struct {
	Name      string `json:"name" form:"name"`
	Company   string `json:"company" form:"company"`
	Quote     string `json:"quote" form:"quote"`
	SortOrder *int   `json:"sort_order,omitempty" form:"sort_order"`
	IsActive  *bool  `json:"is_active,omitempty" form:"is_active"`
	Image     []byte `json:"-"`
}

// PolicyInput is the payload for creating or updating a policy version.
type PolicyInput struct {
	Kind  string `json:"kind"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// ContentService handles the landing-page content resources: banners, hero
// sections, client testimonials and policies.
type ContentService struct {
	bannerRepo repositories.BannerRepository
	heroRepo   repositories.HeroSectionRepository
	clientRepo repositories.ClientRepository
	policyRepo repositories.PolicyRepository
	uploads    uploader.Uploader
}

// NewContentService creates a new ContentService.
func NewContentService(
	bannerRepo repositories.BannerRepository,
	heroRepo repositories.HeroSectionRepository,
	clientRepo repositories.ClientRepository,
	policyRepo repositories.PolicyRepository,
	uploads uploader.Uploader,
) *ContentService {
	return &ContentService{
		bannerRepo: bannerRepo,
		heroRepo:   heroRepo,
		clientRepo: clientRepo,
		policyRepo: policyRepo,
		uploads:    uploads,
	}
}

func (s *ContentService) uploadImage(data []byte, folder string) (string, error) {
	url, err := s.uploads.Upload(data, folder)
	if err != nil {
		return "", apperrors.Internal("image upload failed", err)
	}
	return url, nil
}

// --- Banners ---

// ListBanners returns one page of banners with pagination meta.
func (s *ContentService) ListBanners(q models.ListQuery) ([]models.Banner, models.ListMeta, error) {
	q.Normalize()
	rows, total, err := s.bannerRepo.List(q)
	if err != nil {
		return nil, models.ListMeta{}, err
	}
	return rows, models.NewListMeta(q, total), nil
}

// GetBanner retrieves a banner by id.
func (s *ContentService) GetBanner(id string) (*models.Banner, error) {
	return s.bannerRepo.GetByID(id)
}

// CreateBanner persists a banner, uploading its image when supplied.
func (s *ContentService) CreateBanner(in BannerInput) (*models.Banner, error) {
	if in.Title == "" {
		return nil, apperrors.BadRequest("title is required")
	}
	banner := &models.Banner{
		ID:       uuid.New().String(),
		Title:    in.Title,
		Subtitle: in.Subtitle,
		LinkURL:  in.LinkURL,
		IsActive: true,
	}
	if in.SortOrder != nil {
		banner.SortOrder = *in.SortOrder
	}
	if in.IsActive != nil {
		banner.IsActive = *in.IsActive
	}
	if in.Image != nil {
		var err error
		if banner.ImageURL, err = s.uploadImage(in.Image, "banners"); err != nil {
			return nil, err
		}
	}
	if err := s.bannerRepo.Create(banner); err != nil {
		return nil, err
	}
	return banner, nil
}

// UpdateBanner applies a partial update, re-uploading only when a new image
// is supplied.
func (s *ContentService) UpdateBanner(id string, in BannerInput) (*models.Banner, error) {
	banner, err := s.bannerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.Title != "" {
		banner.Title = in.Title
	}
	if in.Subtitle != "" {
		banner.Subtitle = in.Subtitle
	}
	if in.LinkURL != "" {
		banner.LinkURL = in.LinkURL
	}
	if in.SortOrder != nil {
		banner.SortOrder = *in.SortOrder
	}
	if in.IsActive != nil {
		banner.IsActive = *in.IsActive
	}
	if in.Image != nil {
		if banner.ImageURL, err = s.uploadImage(in.Image, "banners"); err != nil {
			return nil, err
		}
	}
	if err := s.bannerRepo.Update(banner); err != nil {
		return nil, err
	}
	return banner, nil
}

// DeleteBanner removes a banner and returns its prior state.
func (s *ContentService) DeleteBanner(id string) (*models.Banner, error) {
	return s.bannerRepo.Delete(id)
}

// --- Hero sections ---

// ListHeroSections returns one page of hero sections with pagination meta.
func (s *ContentService) ListHeroSections(q models.ListQuery) ([]models.HeroSection, models.ListMeta, error) {
	q.Normalize()
	rows, total, err := s.heroRepo.List(q)
	if err != nil {
		return nil, models.ListMeta{}, err
	}
	return rows, models.NewListMeta(q, total), nil
}

// GetHeroSection retrieves a hero section by id.
func (s *ContentService) GetHeroSection(id string) (*models.HeroSection, error) {
	return s.heroRepo.GetByID(id)
}

// CreateHeroSection persists a hero section.
func (s *ContentService) CreateHeroSection(in HeroSectionInput) (*models.HeroSection, error) {
	if in.Heading == "" {
		return nil, apperrors.BadRequest("heading is required")
	}
	hero := &models.HeroSection{
		ID:         uuid.New().String(),
		Heading:    in.Heading,
		Subheading: in.Subheading,
		CTAText:    in.CTAText,
		CTALink:    in.CTALink,
		IsActive:   true,
	}
	if in.SortOrder != nil {
		hero.SortOrder = *in.SortOrder
	}
	if in.IsActive != nil {
		hero.IsActive = *in.IsActive
	}
	if in.Image != nil {
		var err error
		if hero.ImageURL, err = s.uploadImage(in.Image, "hero"); err != nil {
			return nil, err
		}
	}
	if err := s.heroRepo.Create(hero); err != nil {
		return nil, err
	}
	return hero, nil
}

// UpdateHeroSection applies a partial update.
func (s *ContentService) UpdateHeroSection(id string, in HeroSectionInput) (*models.HeroSection, error) {
	hero, err := s.heroRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.Heading != "" {
		hero.Heading = in.Heading
	}
	if in.Subheading != "" {
		hero.Subheading = in.Subheading
	}
	if in.CTAText != "" {
		hero.CTAText = in.CTAText
	}
	if in.CTALink != "" {
		hero.CTALink = in.CTALink
	}
	if in.SortOrder != nil {
		hero.SortOrder = *in.SortOrder
	}
	if in.IsActive != nil {
		hero.IsActive = *in.IsActive
	}
	if in.Image != nil {
		if hero.ImageURL, err = s.uploadImage(in.Image, "hero"); err != nil {
			return nil, err
		}
	}
	if err := s.heroRepo.Update(hero); err != nil {
		return nil, err
	}
	return hero, nil
}

// DeleteHeroSection removes a hero section and returns its prior state.
func (s *ContentService) DeleteHeroSection(id string) (*models.HeroSection, error) {
	return s.heroRepo.Delete(id)
}

// --- Clients ---

// ListClients returns one page of client testimonials with pagination meta.
func (s *ContentService) ListClients(q models.ListQuery) ([]models.Client, models.ListMeta, error) {
	q.Normalize()
	rows, total, err := s.clientRepo.List(q)
	if err != nil {
		return nil, models.ListMeta{}, err
	}
	return rows, models.NewListMeta(q, total), nil
}

// GetClient retrieves a client testimonial by id.
func (s *ContentService) GetClient(id string) (*models.Client, error) {
	return s.clientRepo.GetByID(id)
}

// CreateClient persists a client testimonial.
func (s *ContentService) CreateClient(in ClientInput) (*models.Client, error) {
	if in.Name == "" {
		return nil, apperrors.BadRequest("name is required")
	}
	client := &models.Client{
		ID:       uuid.New().String(),
		Name:     in.Name,
		Company:  in.Company,
		Quote:    in.Quote,
		IsActive: true,
	}
	if in.SortOrder != nil {
		client.SortOrder = *in.SortOrder
	}
	if in.IsActive != nil {
		client.IsActive = *in.IsActive
	}
	if in.Image != nil {
		var err error
		if client.ImageURL, err = s.uploadImage(in.Image, "clients"); err != nil {
			return nil, err
		}
	}
	if err := s.clientRepo.Create(client); err != nil {
		return nil, err
	}
	return client, nil
}

// UpdateClient applies a partial update.
func (s *ContentService) UpdateClient(id string, in ClientInput) (*models.Client, error) {
	client, err := s.clientRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		client.Name = in.Name
	}
	if in.Company != "" {
		client.Company = in.Company
	}
	if in.Quote != "" {
		client.Quote = in.Quote
	}
	if in.SortOrder != nil {
		client.SortOrder = *in.SortOrder
	}
	if in.IsActive != nil {
		client.IsActive = *in.IsActive
	}
	if in.Image != nil {
		if client.ImageURL, err = s.uploadImage(in.Image, "clients"); err != nil {
			return nil, err
		}
	}
	if err := s.clientRepo.Update(client); err != nil {
		return nil, err
	}
	return client, nil
}

// DeleteClient removes a client testimonial and returns its prior state.
func (s *ContentService) DeleteClient(id string) (*models.Client, error) {
	return s.clientRepo.Delete(id)
}

// --- Policies ---

// ListPolicies returns every version of a policy kind.
func (s *ContentService) ListPolicies(kind string) ([]models.Policy, error) {
	if kind != models.PolicyKindPrivacy && kind != models.PolicyKindWarranty {
		return nil, apperrors.BadRequest("unknown policy kind: " + kind)
	}
	return s.policyRepo.ListByKind(kind)
}

// GetActivePolicy returns the single active version of a policy kind.
func (s *ContentService) GetActivePolicy(kind string) (*models.Policy, error) {
	if kind != models.PolicyKindPrivacy && kind != models.PolicyKindWarranty {
		return nil, apperrors.BadRequest("unknown policy kind: " + kind)
	}
	return s.policyRepo.GetActive(kind)
}

// CreatePolicy persists a new inactive policy version.
func (s *ContentService) CreatePolicy(in PolicyInput) (*models.Policy, error) {
	if in.Kind != models.PolicyKindPrivacy && in.Kind != models.PolicyKindWarranty {
		return nil, apperrors.BadRequest("unknown policy kind: " + in.Kind)
	}
	if in.Title == "" || in.Body == "" {
		return nil, apperrors.BadRequest("title and body are required")
	}
	policy := &models.Policy{
		ID:    uuid.New().String(),
		Kind:  in.Kind,
		Title: in.Title,
		Body:  in.Body,
	}
	if err := s.policyRepo.Create(policy); err != nil {
		return nil, err
	}
	return policy, nil
}

// UpdatePolicy applies a partial update to a policy version.
func (s *ContentService) UpdatePolicy(id string, in PolicyInput) (*models.Policy, error) {
	policy, err := s.policyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.Title != "" {
		policy.Title = in.Title
	}
	if in.Body != "" {
		policy.Body = in.Body
	}
	if err := s.policyRepo.Update(policy); err != nil {
		return nil, err
	}
	return policy, nil
}

// ActivatePolicy makes the version active, deactivating its siblings.
func (s *ContentService) ActivatePolicy(id string) (*models.Policy, error) {
	return s.policyRepo.Activate(id)
}

// DeletePolicy removes a policy version and returns its prior state.
func (s *ContentService) DeletePolicy(id string) (*models.Policy, error) {
	return s.policyRepo.Delete(id)
}
