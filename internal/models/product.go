package models

// schema.org vocabulary tags and enumeration URIs.
const (
	SchemaContext = "https://schema.org/"
	SchemaPrefix  = "https://schema.org/"

	TypeProductGroup           = "ProductGroup"
	TypeProduct                = "Product"
	TypeOffer                  = "Offer"
	TypeBrand                  = "Brand"
	TypeOrganization           = "Organization"
	TypePeopleAudience         = "PeopleAudience"
	TypePropertyValue          = "PropertyValue"
	TypeWebPage                = "WebPage"
	TypeUnitPriceSpecification = "UnitPriceSpecification"
	TypeOfferShippingDetails   = "OfferShippingDetails"
	TypeDefinedRegion          = "DefinedRegion"
	TypeMonetaryAmount         = "MonetaryAmount"
	TypeMerchantReturnPolicy   = "MerchantReturnPolicy"

	AvailabilityInStock    = "https://schema.org/InStock"
	ConditionNew           = "https://schema.org/NewCondition"
	ReturnWindowFinite     = "https://schema.org/MerchantReturnFiniteReturnWindow"
	PriceTypeRecommended   = "RRP"
	PropertyIngredients    = "Ingredients"
	PropertyNetQuantity    = "Net Quantity"
	PropertyCertifications = "Certifications"
	PropertyKeyBenefits    = "Key Benefits"
)

// ProductGroup is the JSON-LD document emitted for one row.
// Field order is the serialized key order.
type ProductGroup struct {
	Context        string `json:"@context"`
	Type           string `json:"@type"`
	ProductGroupID string `json:"productGroupID"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`

	// Image is a string or a []string depending on the image mode.
	Image              any             `json:"image,omitempty"`
	ThumbnailURL       string          `json:"thumbnailUrl,omitempty"`
	Brand              Brand           `json:"brand"`
	SKU                string          `json:"sku"`
	MPN                string          `json:"mpn"`
	GTIN13             string          `json:"gtin13"`
	Category           string          `json:"category"`
	AdditionalProperty []PropertyValue `json:"additionalProperty"`
	HasVariant         []Variant       `json:"hasVariant"`
	URL                string          `json:"url,omitempty"`
	IsFamilyFriendly   *bool           `json:"isFamilyFriendly,omitempty"`
	CountryOfOrigin    string          `json:"countryOfOrigin,omitempty"`
	Award              []string        `json:"award,omitempty"`
	Discount           string          `json:"discount,omitempty"`
	Manufacturer       *Organization   `json:"manufacturer,omitempty"`
	Audience           *PeopleAudience `json:"audience,omitempty"`
	ProductionDate     string          `json:"productionDate,omitempty"`
	ExpirationDate     string          `json:"expirationDate,omitempty"`
	MainEntityOfPage   *WebPage        `json:"mainEntityOfPage,omitempty"`
}

// Brand is a schema.org Brand.
type Brand struct {
	Type string `json:"@type"`
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}

// Organization is a schema.org Organization used for the manufacturer.
type Organization struct {
	Type string `json:"@type"`
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}

// PeopleAudience is a schema.org PeopleAudience.
type PeopleAudience struct {
	Type            string `json:"@type"`
	SuggestedAgeMin int    `json:"suggestedAgeMin"`
	SuggestedGender string `json:"suggestedGender"`
}

// PropertyValue is a schema.org PropertyValue.
type PropertyValue struct {
	Type  string `json:"@type"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// WebPage is the mainEntityOfPage block.
type WebPage struct {
	Type       string `json:"@type"`
	ID         string `json:"@id"`
	InLanguage string `json:"inLanguage,omitempty"`
}

// Variant is one hasVariant entry.
type Variant struct {
	Type   string `json:"@type"`
	Name   string `json:"name"`
	SKU    string `json:"sku,omitempty"`
	GTIN13 string `json:"gtin13,omitempty"`
	Image  string `json:"image,omitempty"`
	Offers Offer  `json:"offers"`
}

// Offer is the schema.org Offer attached to a variant.
type Offer struct {
	Type                    string                  `json:"@type"`
	PriceCurrency           string                  `json:"priceCurrency"`
	Price                   string                  `json:"price,omitempty"`
	PriceValidUntil         string                  `json:"priceValidUntil"`
	Availability            string                  `json:"availability"`
	ItemCondition           string                  `json:"itemCondition"`
	URL                     string                  `json:"url,omitempty"`
	PriceSpecification      *UnitPriceSpecification `json:"priceSpecification,omitempty"`
	AvailabilityEnds        string                  `json:"availabilityEnds,omitempty"`
	Discount                string                  `json:"discount,omitempty"`
	ShippingDetails         *OfferShippingDetails   `json:"shippingDetails,omitempty"`
	HasMerchantReturnPolicy *MerchantReturnPolicy   `json:"hasMerchantReturnPolicy,omitempty"`
	AcceptedPaymentMethod   []string                `json:"acceptedPaymentMethod,omitempty"`
}

// UnitPriceSpecification carries the recommended (MRP) price.
type UnitPriceSpecification struct {
	Type          string `json:"@type"`
	PriceCurrency string `json:"priceCurrency"`
	Price         string `json:"price"`
	PriceType     string `json:"priceType"`
}

// OfferShippingDetails is a schema.org OfferShippingDetails.
type OfferShippingDetails struct {
	Type                string         `json:"@type"`
	ShippingDestination DefinedRegion  `json:"shippingDestination"`
	ShippingRate        MonetaryAmount `json:"shippingRate"`
}

// DefinedRegion is a schema.org DefinedRegion.
type DefinedRegion struct {
	Type           string `json:"@type"`
	AddressCountry string `json:"addressCountry"`
}

// MonetaryAmount is a schema.org MonetaryAmount.
type MonetaryAmount struct {
	Type     string `json:"@type"`
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

// MerchantReturnPolicy is a schema.org MerchantReturnPolicy.
type MerchantReturnPolicy struct {
	Type                 string `json:"@type"`
	ApplicableCountry    string `json:"applicableCountry"`
	ReturnPolicyCategory string `json:"returnPolicyCategory"`
	MerchantReturnDays   int    `json:"merchantReturnDays"`
	ReturnMethod         string `json:"returnMethod"`
	ReturnFees           string `json:"returnFees"`
	RefundType           string `json:"refundType"`
}
