package jsonld

import (
	"strings"

	"schemagen/internal/models"
	"schemagen/pkg/utils"
)

// knownPaymentMethods are the payment brands with a schema.org identifier.
var knownPaymentMethods = map[string]struct{}{
	"visa":            {},
	"mastercard":      {},
	"americanexpress": {},
	"discover":        {},
	"paypal":          {},
	"creditcard":      {},
}

// PaymentMethods splits a comma-separated list and maps known brands,
// matched case-insensitively, to their schema.org URI. Other tokens pass
// through verbatim; empty tokens are dropped.
func PaymentMethods(s string) []string {
	var methods []string

	for _, token := range utils.SplitList(s) {
		key := strings.ToLower(token)
		if _, ok := knownPaymentMethods[key]; ok {
			methods = append(methods, models.SchemaPrefix+key)
			continue
		}

		methods = append(methods, token)
	}

	return methods
}
