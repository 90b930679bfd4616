// Package jsonld builds schema.org ProductGroup documents from product rows.
package jsonld

import (
	"fmt"

	"schemagen/internal/config"
	"schemagen/internal/models"
	"schemagen/pkg/utils"
)

// Builder assembles ProductGroup documents according to the configured policies.
type Builder struct {
	cfg *config.Config
}

// NewBuilder creates a builder. cfg must already be validated.
func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{cfg: cfg}
}

// Build assembles the document for one row. Required fields are not checked
// here; see Validator.
func (b *Builder) Build(row *models.ProductRow) (*models.ProductGroup, error) {
	name := row.Name.String()

	doc := &models.ProductGroup{
		Context:        models.SchemaContext,
		Type:           models.TypeProductGroup,
		ProductGroupID: name + b.cfg.Schema.GroupIDSuffix,
		Name:           name,
		Description:    row.Description.String(),
		Brand: models.Brand{
			Type: models.TypeBrand,
			Name: row.Brand.String(),
			Logo: row.BrandLogo.String(),
		},
		SKU:      row.SKU.String(),
		MPN:      row.MPN.String(),
		GTIN13:   row.GTIN13.String(),
		Category: row.Category.String(),
		AdditionalProperty: []models.PropertyValue{
			property(models.PropertyIngredients, row.Ingredients),
			property(models.PropertyNetQuantity, row.NetQuantity),
		},
		HasVariant:      make([]models.Variant, 0, models.VariantSlots),
		CountryOfOrigin: b.cfg.Schema.CountryOfOrigin,
	}

	if ff := b.cfg.Schema.IsFamilyFriendly; ff != nil {
		familyFriendly := *ff
		doc.IsFamilyFriendly = &familyFriendly
	}

	if row.ImageURL.Present() {
		image := row.ImageURL.String()
		if b.cfg.Images.Mode == config.ImageList {
			doc.Image = []string{image}
		} else {
			doc.Image = image
		}

		if b.cfg.Schema.Thumbnail {
			doc.ThumbnailURL = image
		}
	}

	if row.Certifications.Present() {
		doc.AdditionalProperty = append(doc.AdditionalProperty, property(models.PropertyCertifications, row.Certifications))
	}

	if row.KeyBenefits.Present() {
		doc.AdditionalProperty = append(doc.AdditionalProperty, property(models.PropertyKeyBenefits, row.KeyBenefits))
	}

	if row.Award.Present() {
		doc.Award = utils.SplitList(row.Award.String())
	}

	if b.cfg.DiscountOnGroup() && row.Discount.Present() {
		doc.Discount = row.Discount.String()
	}

	if row.ManufacturerName.Present() {
		doc.Manufacturer = &models.Organization{
			Type: models.TypeOrganization,
			Name: row.ManufacturerName.String(),
			Logo: row.ManufacturerLogo.String(),
		}
	}

	if row.SuitableFor.Present() {
		doc.Audience = &models.PeopleAudience{
			Type:            models.TypePeopleAudience,
			SuggestedAgeMin: b.cfg.Schema.AudienceMinAge,
			SuggestedGender: row.SuitableFor.String(),
		}
	}

	if row.ProductionDate.Present() {
		doc.ProductionDate = b.date(row.ProductionDate.String())
	}

	if row.ExpirationDate.Present() {
		doc.ExpirationDate = b.date(row.ExpirationDate.String())
	}

	if pageURL := b.productURL(row); pageURL != "" {
		doc.URL = pageURL
		doc.MainEntityOfPage = &models.WebPage{
			Type:       models.TypeWebPage,
			ID:         pageURL,
			InLanguage: b.cfg.Schema.Language,
		}
	}

	for slot := 1; slot <= models.VariantSlots; slot++ {
		variant, ok, err := b.BuildVariant(row, slot, row.Discount)
		if err != nil {
			return nil, fmt.Errorf("variant %d: %w", slot, err)
		}

		if ok {
			doc.HasVariant = append(doc.HasVariant, variant)
		}
	}

	return doc, nil
}

// productURL is the row's product_url, falling back to the configured site URL.
func (b *Builder) productURL(row *models.ProductRow) string {
	if row.ProductURL.Present() {
		return row.ProductURL.String()
	}

	return b.cfg.Schema.SiteURL
}

func (b *Builder) date(s string) string {
	if !b.cfg.Dates.Normalize {
		return s
	}

	return NormalizeDate(s)
}

func property(name string, value models.Value) models.PropertyValue {
	return models.PropertyValue{
		Type:  models.TypePropertyValue,
		Name:  name,
		Value: value.String(),
	}
}
