package jsonld

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"schemagen/internal/config"
	"schemagen/internal/models"
)

// ErrInvalidReturnDays is returned when a complete return policy has a
// returnDays value that is not a day count.
var ErrInvalidReturnDays = errors.New("returnDays is not a valid number of days")

// maxReturnDays bounds merchantReturnDays to a 32-bit integer.
const maxReturnDays = math.MaxInt32

// BuildVariant builds the hasVariant entry for slot (1-based). ok is false
// when the slot holds no variant under the configured presence policy.
func (b *Builder) BuildVariant(row *models.ProductRow, slot int, discount models.Value) (models.Variant, bool, error) {
	v := row.Slot(slot)
	if v == nil || !v.Name.Present() {
		return models.Variant{}, false, nil
	}

	url := b.variantURL(row, v)

	if b.cfg.Variants.Presence == config.PresenceStrict {
		if !v.SKU.Present() || !v.GTIN13.Present() || !v.Image.Present() || !v.Price.Present() || url == "" {
			return models.Variant{}, false, nil
		}
	}

	offer := models.Offer{
		Type:             models.TypeOffer,
		PriceCurrency:    b.cfg.Offer.Currency,
		Price:            v.Price.String(),
		PriceValidUntil:  b.cfg.Offer.PriceValidUntil,
		Availability:     models.AvailabilityInStock,
		ItemCondition:    models.ConditionNew,
		URL:              url,
		AvailabilityEnds: b.availabilityEnds(row),
	}

	if v.ActualPrice.Present() {
		offer.PriceSpecification = &models.UnitPriceSpecification{
			Type:          models.TypeUnitPriceSpecification,
			PriceCurrency: b.cfg.Offer.Currency,
			Price:         v.ActualPrice.String(),
			PriceType:     models.PriceTypeRecommended,
		}
	}

	if b.cfg.DiscountOnVariants() && discount.Present() {
		offer.Discount = discount.String()
	}

	if allPresent(v.ShippingCountry, v.ShippingCurrency, v.ShippingValue) {
		offer.ShippingDetails = &models.OfferShippingDetails{
			Type: models.TypeOfferShippingDetails,
			ShippingDestination: models.DefinedRegion{
				Type:           models.TypeDefinedRegion,
				AddressCountry: v.ShippingCountry.String(),
			},
			ShippingRate: models.MonetaryAmount{
				Type:     models.TypeMonetaryAmount,
				Value:    v.ShippingValue.String(),
				Currency: v.ShippingCurrency.String(),
			},
		}
	}

	if allPresent(v.ReturnCountry, v.ReturnDays, v.ReturnMethod, v.ReturnFees, v.RefundType) {
		days, err := parseReturnDays(v.ReturnDays.String())
		if err != nil {
			return models.Variant{}, false, err
		}

		offer.HasMerchantReturnPolicy = &models.MerchantReturnPolicy{
			Type:                 models.TypeMerchantReturnPolicy,
			ApplicableCountry:    v.ReturnCountry.String(),
			ReturnPolicyCategory: models.ReturnWindowFinite,
			MerchantReturnDays:   days,
			ReturnMethod:         models.SchemaPrefix + v.ReturnMethod.String(),
			ReturnFees:           models.SchemaPrefix + v.ReturnFees.String(),
			RefundType:           models.SchemaPrefix + v.RefundType.String(),
		}
	}

	if v.AcceptedPaymentMethod.Present() {
		offer.AcceptedPaymentMethod = PaymentMethods(v.AcceptedPaymentMethod.String())
	}

	return models.Variant{
		Type:   models.TypeProduct,
		Name:   v.Name.String(),
		SKU:    v.SKU.String(),
		GTIN13: v.GTIN13.String(),
		Image:  v.Image.String(),
		Offers: offer,
	}, true, nil
}

// variantURL resolves the offer URL under the configured URL source.
func (b *Builder) variantURL(row *models.ProductRow, v *models.VariantSlot) string {
	if b.cfg.Variants.URLSource == config.URLSourceVariant && v.URL.Present() {
		return v.URL.String()
	}

	return b.productURL(row)
}

func (b *Builder) availabilityEnds(row *models.ProductRow) string {
	if row.OfferEndDate.Present() {
		return b.date(row.OfferEndDate.String())
	}

	return b.date(b.cfg.Offer.AvailabilityEnds)
}

// parseReturnDays accepts integral and decimal spellings ("30", "30.0") and
// truncates toward zero. Negative and out-of-range counts are rejected.
func parseReturnDays(s string) (int, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidReturnDays, s)
	}

	if f < 0 || f > maxReturnDays {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidReturnDays, s)
	}

	return int(f), nil
}

func allPresent(values ...models.Value) bool {
	for _, v := range values {
		if !v.Present() {
			return false
		}
	}

	return true
}
