package redaction

import "regexp"

// Rule is one ordered substitution in the PII table. Lower priority runs
// first. Composite duplicated-header patterns ("Label Label : : value", an
// artifact of the source document layout) must carry a lower priority than
// their generic single-label counterpart: if the generic rule ran first it
// would only partially consume the match and leave a PII fragment behind.
type Rule struct {
	Category    string
	Pattern     *regexp.Regexp
	Replacement string
	Priority    int
}

const (
	CategoryName        = "name"
	CategoryPhone       = "phone"
	CategoryEmail       = "email"
	CategoryAddress     = "address"
	CategoryAge         = "age"
	CategoryGender      = "gender"
	CategoryID          = "id"
	CategoryLocation    = "location"
	CategoryPincode     = "pincode"
	CategoryRelation    = "relation"
	CategoryDoctor      = "doctor"
	CategoryDate        = "date"
	CategoryPhysical    = "physical"
	CategoryLabLocation = "lab-location"
	CategoryPageRef     = "page-ref"
	CategoryCustomer    = "customer"
)

// defaultRules returns the full ordered table. Priorities are spaced by ten
// so individual rules can be re-slotted without renumbering the table.
func defaultRules() []Rule {
	return []Rule{
		// 1. Person names.
		{CategoryName, regexp.MustCompile(`Beneficiary\s*Name\s*Beneficiary\s*[A-Z]+`), "[NAME-REDACTED]", 10},
		{CategoryName, regexp.MustCompile(`(?i)(patient\s*name|beneficiary\s*name|register\s*worker\s*name)[^:\n]*:[^:\n]*:\s*[^\n]+`), "[NAME-REDACTED]", 11},
		{CategoryName, regexp.MustCompile(`(?i)name\s*:\s*[A-Z]{3,}[A-Z\s]+`), "[NAME-REDACTED]", 12},

		// 2. Phone numbers. Composite duplicated-header first.
		{CategoryPhone, regexp.MustCompile(`(?i)contact\s*no\s*contact\s*no[^:\n]*:[^:\n]*:\s*\d{10,15}`), "[PHONE-REDACTED]", 20},
		{CategoryPhone, regexp.MustCompile(`(?i)(contact|phone|mobile)\s*(?:no\.?|number)?[^:\n]*:[^:\n]*:\s*\d{10,15}`), "[PHONE-REDACTED]", 21},
		{CategoryPhone, regexp.MustCompile(`\b\d{10}\b`), "[PHONE-REDACTED]", 22},
		{CategoryPhone, regexp.MustCompile(`[+]?\d{10,15}`), "[PHONE-REDACTED]", 23},

		// 3. Email addresses.
		{CategoryEmail, regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), "[EMAIL-REDACTED]", 30},

		// 4. Postal addresses.
		{CategoryAddress, regexp.MustCompile(`(?i)address\s*address[^:\n]*:[^:\n]*:\s*House[^\n]+`), "[ADDRESS-REDACTED]", 40},
		{CategoryAddress, regexp.MustCompile(`(?i)address[^:\n]*:[^:\n]*:\s*[^\n]+\d{6}`), "[ADDRESS-REDACTED]", 41},
		{CategoryAddress, regexp.MustCompile(`House\s*No\.?[^,\n]+,[^,\n]+,\d{6}`), "[ADDRESS-REDACTED]", 42},

		// 5. Age.
		{CategoryAge, regexp.MustCompile(`(?i)age\s*\([^)]+\)\s*age\s*\([^)]+\)[^:\n]*:[^:\n]*:\s*\d+`), "[AGE-REDACTED]", 50},
		{CategoryAge, regexp.MustCompile(`(?i)age[^:\n]*:[^:\n]*:\s*\d+`), "[AGE-REDACTED]", 51},
		{CategoryAge, regexp.MustCompile(`\d{2}Y/(?:MALE|FEMALE)`), "[AGE-REDACTED]", 52},
		{CategoryAge, regexp.MustCompile(`Age/Gender\s*:[^:\n]*:\s*\d+Y/[A-Z]+`), "[AGE-REDACTED]", 53},

		// 6. Gender.
		{CategoryGender, regexp.MustCompile(`(?i)gender\s*gender[^:\n]*:[^:\n]*:\s*(?:Male|Female)`), "[GENDER-REDACTED]", 60},
		{CategoryGender, regexp.MustCompile(`(?i)gender[^:\n]*:[^:\n]*:\s*(?:Male|Female)`), "[GENDER-REDACTED]", 61},

		// 7. Registration and patient identifiers.
		{CategoryID, regexp.MustCompile(`(?i)registration\s*number\s*registration\s*number[^:\n]*:[^:\n]*:\s*[A-Z0-9]+`), "[ID-REDACTED]", 70},
		{CategoryID, regexp.MustCompile(`(?i)(registration\s*number|patient\s*id)[^:\n]*:[^:\n]*:\s*[A-Z0-9]{8,}`), "[ID-REDACTED]", 71},
		{CategoryID, regexp.MustCompile(`(?i)patient\s+id\s*:\s*CWH\d+`), "[PATIENT-ID-REDACTED]", 72},
		{CategoryID, regexp.MustCompile(`\b[A-Z]{3}\d{11,15}\b`), "[REPORT-ID-REDACTED]", 73},
		{CategoryID, regexp.MustCompile(`CWH\d+`), "[REPORT-ID-REDACTED]", 74},

		// 8. Place names (district, region, country).
		{CategoryLocation, regexp.MustCompile(`(?i)district\s*district[^:\n]*:[^:\n]*:\s*[^\n]+`), "[LOCATION-REDACTED]", 80},
		{CategoryLocation, regexp.MustCompile(`(?i)taluka\s*taluka[^:\n]*:[^:\n]*:\s*[^\n]+`), "[LOCATION-REDACTED]", 81},
		{CategoryLocation, regexp.MustCompile(`(?i)(district|taluka)[^:\n]*:[^:\n]*:\s*[^\n]+`), "[LOCATION-REDACTED]", 82},
		{CategoryLocation, regexp.MustCompile(`Maharashtra\s+India`), "[LOCATION-REDACTED]", 83},
		{CategoryLocation, regexp.MustCompile(`\bMaharashtra\b`), "[LOCATION-REDACTED]", 84},
		{CategoryLocation, regexp.MustCompile(`\bIndia\b`), "[LOCATION-REDACTED]", 85},

		// 9. Postal codes.
		{CategoryPincode, regexp.MustCompile(`(?i)pincode\s*pincode[^:\n]*:[^:\n]*:\s*\d{6}`), "[PINCODE-REDACTED]", 90},
		{CategoryPincode, regexp.MustCompile(`(?i)pincode[^:\n]*:[^:\n]*:\s*\d{6}`), "[PINCODE-REDACTED]", 91},
		{CategoryPincode, regexp.MustCompile(`\b\d{6}\b`), "[PINCODE-REDACTED]", 92},

		// 10. Relationship labels.
		{CategoryRelation, regexp.MustCompile(`(?i)relation\s*with[^:\n]*:[^:\n]*:\s*[^\n]+`), "[RELATION-REDACTED]", 100},

		// 11. Professional names and titles.
		{CategoryDoctor, regexp.MustCompile(`Dr\.\s*Dr\s+[A-Z][a-z]+\s+[A-Z][a-z]+\s+[A-Z][a-z]+`), "[DOCTOR-REDACTED]", 110},
		{CategoryDoctor, regexp.MustCompile(`Dr\.\s*[A-Z][a-z]+\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?`), "[DOCTOR-REDACTED]", 111},
		{CategoryDoctor, regexp.MustCompile(`\bDr\s+[A-Z][a-z]+\s+[A-Z][a-z]+`), "[DOCTOR-REDACTED]", 112},
		{CategoryDoctor, regexp.MustCompile(`(?i)registration\s*no\s*:\s*\d{10}`), "[DOCTOR-REG-REDACTED]", 113},
		{CategoryDoctor, regexp.MustCompile(`MD\s+Pathology`), "[TITLE-REDACTED]", 114},

		// 12. Dates.
		{CategoryDate, regexp.MustCompile(`(?i)date\s*of\s*screening\s*date\s*of\s*screening[^:\n]*:[^:\n]*:\s*\d{2}/\d{2}/\d{4}`), "[DATE-REDACTED]", 120},
		{CategoryDate, regexp.MustCompile(`(?i)(registered\s*on|reported\s*on)[^:\n]*:[^:\n]*:\s*\d{2}/\d{2}/\d{4}\s*\d{2}:\d{2}\s*[ap]m`), "[DATETIME-REDACTED]", 121},
		{CategoryDate, regexp.MustCompile(`\d{2}/\d{2}/\d{4}`), "[DATE-REDACTED]", 122},

		// 13. Physical measurements. The duplicated-header form covers the
		// height/height, weight/weight and mixed-label variants.
		{CategoryPhysical, regexp.MustCompile(`(?i)(?:height|weight)\s*\([^)]+\)\s*(?:height|weight)\s*\([^)]+\)[^:\n]*:[^:\n]*:\s*\d+`), "[PHYSICAL-DATA-REDACTED]", 130},
		{CategoryPhysical, regexp.MustCompile(`(?i)(?:height|weight)[^:\n]*:[^:\n]*:\s*\d+`), "[PHYSICAL-DATA-REDACTED]", 131},

		// 14. Facility and lab location strings.
		{CategoryLabLocation, regexp.MustCompile(`(?i)processed\s*at\s*:[^\n]+MIDC[^\n]+`), "[LAB-LOCATION-REDACTED]", 140},
		{CategoryLabLocation, regexp.MustCompile(`PLOT\s*NO\s*[^\n,]+,[^\n]+`), "[LAB-LOCATION-REDACTED]", 141},
		{CategoryLabLocation, regexp.MustCompile(`(?i)processed\s*at\s*:[^\n]+`), "[LAB-LOCATION-REDACTED]", 142},

		// 15. Page and batch references are dropped outright.
		{CategoryPageRef, regexp.MustCompile(`Page\s*No\s*-\s*\d+`), "", 150},
		{CategoryPageRef, regexp.MustCompile(`D2D\s*Camp\s*/\s*\d+\s*/[^\n]+`), "", 151},

		// 16. Customer names.
		{CategoryCustomer, regexp.MustCompile(`(?i)customer\s*name[^:\n]*:[^:\n]*:\s*[^\n]+`), "[CUSTOMER-REDACTED]", 160},
	}
}
