package validation

// Brand identifies the card network a number belongs to.
type Brand string

const (
	AmericanExpress Brand = "American Express"
	Discover        Brand = "Discover"
	JCB             Brand = "JCB"
	DinersClub      Brand = "Diners Club"
	Visa            Brand = "Visa"
	MasterCard      Brand = "MasterCard"
	Unknown         Brand = "Unknown"
)

const (
	cvcLengthAmericanExpress = 4
	cvcLengthCommon          = 3

	lengthStandard        = 16
	lengthAmericanExpress = 15
	lengthDinersClub      = 14
)

// Issuer identification number prefixes, checked in a fixed priority order.
// See http://en.wikipedia.org/wiki/Bank_card_number
var (
	prefixesAmericanExpress = []string{"34", "37"}
	prefixesDiscover        = []string{"60", "62", "64", "65"}
	prefixesJCB             = []string{"35"}
	prefixesDinersClub      = []string{"30", "36", "38", "39"}
	prefixesVisa            = []string{"4"}
	prefixesMasterCard      = []string{"5"}
)

// DetectBrand classifies a card number by its leading digits. A partial
// number is enough: two digits classify every supported network, so live
// input can be classified as it is typed, and appending further digits never
// changes the result. The number is expected to be normalized (no spaces or
// hyphens) but need not be complete or Luhn-valid.
func DetectBrand(number string) Brand {
	switch {
	case number == "":
		return Unknown
	case HasAnyPrefix(number, prefixesAmericanExpress...):
		return AmericanExpress
	case HasAnyPrefix(number, prefixesDiscover...):
		return Discover
	case HasAnyPrefix(number, prefixesJCB...):
		return JCB
	case HasAnyPrefix(number, prefixesDinersClub...):
		return DinersClub
	case HasAnyPrefix(number, prefixesVisa...):
		return Visa
	case HasAnyPrefix(number, prefixesMasterCard...):
		return MasterCard
	default:
		return Unknown
	}
}

// Length returns the canonical number length for a brand. Unknown has no
// fixed length and returns 0, so a length check against it always fails.
func Length(brand Brand) int {
	switch brand {
	case AmericanExpress:
		return lengthAmericanExpress
	case DinersClub:
		return lengthDinersClub
	case Unknown:
		return 0
	default:
		return lengthStandard
	}
}

// CVCLength returns the exact CVC length a brand requires. American Express
// uses 4 digits, every other brand 3. Callers validating a CVC without a
// known brand accept either length; see ValidateCVC.
func CVCLength(brand Brand) int {
	if brand == AmericanExpress {
		return cvcLengthAmericanExpress
	}
	return cvcLengthCommon
}
