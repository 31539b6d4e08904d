package extract

import "strings"

// CategoryOther is returned when no keyword matches in any category.
const CategoryOther = "Other"

// categoryRule owns the keywords for one spending category.
type categoryRule struct {
	label    string
	keywords []string
}

// categoryRules is evaluated in declaration order and the first rule with a
// matching keyword wins. First-match is the tie-break policy: when a text
// carries keywords from two categories, declaration order decides, so the
// order here is load-bearing.
var categoryRules = []categoryRule{
	{"Food & Dining", []string{
		"restaurant", "cafe", "coffee", "starbucks", "pizza", "burger",
		"mcdonald", "kfc", "domino", "swiggy", "zomato", "dining", "bakery",
		"food",
	}},
	{"Shopping", []string{
		"amazon", "flipkart", "myntra", "mall", "clothing", "fashion",
		"apparel", "footwear", "shopping",
	}},
	{"Groceries", []string{
		"grocery", "supermarket", "bigbasket", "dmart", "kirana", "mart",
		"vegetable", "fruit", "provision",
	}},
	{"Transportation", []string{
		"uber", "ola", "taxi", "cab", "petrol", "diesel", "fuel", "metro",
		"parking", "toll", "irctc", "railway",
	}},
	{"Entertainment", []string{
		"movie", "cinema", "pvr", "inox", "netflix", "spotify", "theatre",
		"bookmyshow", "gaming",
	}},
	{"Healthcare", []string{
		"pharmacy", "chemist", "hospital", "clinic", "medical", "medicine",
		"apollo", "diagnostic", "pathology", "dental",
	}},
	{"Utilities", []string{
		"electricity", "broadband", "internet", "recharge", "postpaid",
		"prepaid", "dth", "water bill", "gas cylinder",
	}},
	{"Education", []string{
		"school", "college", "tuition", "coaching", "udemy", "coursera",
		"stationery", "bookstore",
	}},
}

// Category picks the first category whose keyword appears anywhere in the
// merchant name or document text, case-insensitively.
func Category(merchant, text string) string {
	haystack := strings.ToLower(merchant + "\n" + text)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(haystack, kw) {
				return rule.label
			}
		}
	}
	return CategoryOther
}
