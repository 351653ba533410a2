package match

import "strings"

type variation struct {
	canonical string
	variants  []string
}

// variations lists common spellings of business field words. Order
// matters: a variant listed under several canonical words resolves to the
// last one.
var variations = []variation{
	{"address", []string{"adresse", "addr", "adr"}},
	{"street", []string{"strasse", "straße", "str"}},
	{"city", []string{"stadt", "ort", "place"}},
	{"zip", []string{"zipcode", "postal", "postcode", "plz", "postleitzahl", "zip_code", "postal_code"}},
	{"plz", []string{"zip", "zipcode", "postal", "postcode", "postleitzahl", "zip_code", "postal_code"}},
	{"name", []string{"nom", "namen"}},
	{"first", []string{"vorname", "firstname", "first_name", "given"}},
	{"last", []string{"nachname", "lastname", "last_name", "surname", "family"}},
	{"phone", []string{"telefon", "tel", "telephone", "mobile", "cell"}},
	{"email", []string{"e-mail", "mail", "e_mail"}},
	{"country", []string{"land", "pays", "nation"}},
	{"state", []string{"bundesland", "province", "region"}},
	{"company", []string{"firma", "organization", "organisation", "business"}},
	{"date", []string{"datum", "day", "tag"}},
	{"number", []string{"nummer", "no", "num", "nr"}},
	{"price", []string{"preis", "cost", "prix"}},
	{"amount", []string{"betrag", "sum", "quantity", "menge"}},
}

// specialCases maps a lower-cased target to source headers accepted
// verbatim (case-sensitive).
var specialCases = map[string][]string{
	"zip_code": {"PLZ", "ZIP", "PostalCode"},
	"address":  {"Adresse", "Anschrift", "ADRESSE"},
	"city":     {"Stadt", "Ort", "CITY"},
	"country":  {"Land", "COUNTRY"},
	"phone":    {"Telefon", "Tel", "PHONE"},
	"email":    {"Email", "E-Mail", "EMAIL"},
}

var (
	// variationLookup maps every lower-cased word to its canonical word.
	variationLookup map[string]string
	// variantsOf maps a canonical word to its lower-cased variants.
	variantsOf map[string][]string
)

func init() {
	variationLookup = make(map[string]string)
	variantsOf = make(map[string][]string, len(variations))

	for _, v := range variations {
		lowered := make([]string, len(v.variants))

		for i, variant := range v.variants {
			lowered[i] = strings.ToLower(variant)
			variationLookup[lowered[i]] = v.canonical
		}

		variationLookup[v.canonical] = v.canonical
		variantsOf[v.canonical] = lowered
	}
}
