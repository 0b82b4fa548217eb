package suggestion

// BuiltinRules returns the default category ruleset. Keywords target common
// Indian merchants and payment descriptors; amounts are in rupees.
func BuiltinRules() []Rule {
	return []Rule{
		{
			Category:       "Food & Dining",
			Keywords:       []string{"swiggy", "zomato", "restaurant", "cafe", "food", "dining", "pizza", "burger", "dominos", "mcdonald", "kfc", "biryani", "dhaba", "eatery"},
			Patterns:       []string{"*swiggy*", "*zomato*", "*food*order*"},
			BaseConfidence: 0.9,
			Priority:       10,
			Amount:         &AmountHeuristic{Min: 50, Max: 2000, Boost: 0.15},
		},
		{
			Category:       "Groceries",
			Keywords:       []string{"bigbasket", "blinkit", "zepto", "grofers", "dmart", "grocery", "groceries", "supermarket", "kirana", "vegetables", "instamart"},
			Patterns:       []string{"*bigbasket*", "*blinkit*", "*mart*"},
			BaseConfidence: 0.9,
			Priority:       10,
			Amount:         &AmountHeuristic{Min: 100, Max: 5000, Boost: 0.1},
		},
		{
			Category:       "Transportation",
			Keywords:       []string{"uber", "ola", "rapido", "metro", "petrol", "diesel", "fuel", "parking", "toll", "fastag", "auto", "cab", "taxi", "irctc", "train"},
			Patterns:       []string{"*uber*", "*ola*ride*", "*fuel*"},
			BaseConfidence: 0.85,
			Priority:       10,
			Amount:         &AmountHeuristic{Min: 20, Max: 3000, Boost: 0.1},
		},
		{
			Category:       "Shopping",
			Keywords:       []string{"amazon", "flipkart", "myntra", "ajio", "nykaa", "meesho", "shopping", "mall", "store", "clothing", "footwear"},
			Patterns:       []string{"*amazon*", "*flipkart*", "*order*"},
			BaseConfidence: 0.8,
			Priority:       20,
		},
		{
			Category:       "Entertainment",
			Keywords:       []string{"netflix", "spotify", "prime video", "hotstar", "bookmyshow", "movie", "cinema", "pvr", "inox", "gaming", "subscription"},
			Patterns:       []string{"*netflix*", "*bookmyshow*", "*subscription*"},
			BaseConfidence: 0.85,
			Priority:       20,
			Amount:         &AmountHeuristic{Min: 99, Max: 1500, Boost: 0.1},
		},
		{
			Category:       "Bills & Utilities",
			Keywords:       []string{"electricity", "water bill", "gas", "broadband", "wifi", "airtel", "jio", "vodafone", "recharge", "postpaid", "prepaid", "bill payment", "bescom", "tneb"},
			Patterns:       []string{"*bill*", "*recharge*", "*utility*"},
			BaseConfidence: 0.9,
			Priority:       10,
		},
		{
			Category:       "Healthcare",
			Keywords:       []string{"pharmacy", "apollo", "medplus", "hospital", "clinic", "doctor", "medical", "medicine", "1mg", "pharmeasy", "netmeds", "lab test"},
			Patterns:       []string{"*pharma*", "*hospital*", "*clinic*"},
			BaseConfidence: 0.9,
			Priority:       10,
		},
		{
			Category:       "Salary",
			Keywords:       []string{"salary", "payroll", "sal credit", "monthly pay", "wages", "stipend"},
			Patterns:       []string{"*salary*", "*sal *credit*", "*payroll*"},
			BaseConfidence: 0.9,
			Priority:       5,
			Amount:         &AmountHeuristic{Min: 15000, Boost: 0.25},
			Date:           &DateHeuristic{EarlyDay: 5, LateDay: 25, Boost: 0.15},
		},
		{
			Category:       "Rent",
			Keywords:       []string{"rent", "landlord", "lease", "tenant", "nobroker", "housing"},
			Patterns:       []string{"*rent*"},
			BaseConfidence: 0.9,
			Priority:       10,
			Amount:         &AmountHeuristic{Min: 5000, Boost: 0.15},
			Date:           &DateHeuristic{EarlyDay: 7, Boost: 0.1},
		},
		{
			Category:       "Education",
			Keywords:       []string{"course", "udemy", "coursera", "tuition", "school fee", "college", "exam fee", "books", "byjus", "unacademy"},
			Patterns:       []string{"*course*", "*tuition*", "*fee*"},
			BaseConfidence: 0.8,
			Priority:       20,
		},
		{
			Category:       "Travel",
			Keywords:       []string{"makemytrip", "goibibo", "cleartrip", "flight", "hotel", "airbnb", "oyo", "booking.com", "indigo", "vistara", "holiday"},
			Patterns:       []string{"*flight*", "*hotel*", "*trip*"},
			BaseConfidence: 0.85,
			Priority:       20,
			Amount:         &AmountHeuristic{Min: 1000, Boost: 0.1},
		},
		{
			Category:       "Investment",
			Keywords:       []string{"zerodha", "groww", "upstox", "mutual fund", "sip", "nps", "ppf", "fd", "fixed deposit", "stocks", "etf"},
			Patterns:       []string{"*sip*", "*mutual*fund*", "*zerodha*"},
			BaseConfidence: 0.9,
			Priority:       10,
		},
		{
			Category:       "Insurance",
			Keywords:       []string{"insurance", "lic", "premium", "policy", "policybazaar", "term plan", "health cover"},
			Patterns:       []string{"*insurance*", "*premium*", "*policy*"},
			BaseConfidence: 0.85,
			Priority:       20,
		},
		{
			Category:       "Personal Care",
			Keywords:       []string{"salon", "spa", "haircut", "gym", "fitness", "cult.fit", "grooming"},
			Patterns:       []string{"*salon*", "*gym*", "*fitness*"},
			BaseConfidence: 0.8,
			Priority:       30,
		},
		{
			Category:       "Transfers",
			Keywords:       []string{"upi transfer", "neft", "imps", "rtgs", "transfer to", "sent to", "paytm transfer"},
			Patterns:       []string{"*transfer*", "*neft*", "*imps*"},
			BaseConfidence: 0.7,
			Priority:       40,
		},
	}
}
