package extract

// Size scale, ordered from smallest to largest. Similarity scoring treats
// adjacent entries as a partial match.
var SizeScale = []string{"micro", "small", "medium", "large", "enterprise"}

// SizeIndex returns the position of a size category on the ordered scale,
// or -1 when unknown.
func SizeIndex(category string) int {
	for i, s := range SizeScale {
		if s == category {
			return i
		}
	}
	return -1
}

// EmployeeCategory buckets an employee count.
func EmployeeCategory(employees *int) string {
	if employees == nil {
		return ""
	}
	switch n := *employees; {
	case n < 50:
		return "small"
	case n < 250:
		return "medium"
	case n < 1000:
		return "large"
	default:
		return "enterprise"
	}
}

// RevenueCategory buckets revenue in millions of euros.
func RevenueCategory(millions *float64) string {
	if millions == nil {
		return ""
	}
	switch r := *millions; {
	case r < 10:
		return "small"
	case r < 50:
		return "medium"
	case r < 500:
		return "large"
	default:
		return "enterprise"
	}
}

// SizeCategory derives the overall size class, preferring employee count
// and falling back to revenue.
func SizeCategory(employees *int, revenueMillions *float64) string {
	if employees != nil {
		switch n := *employees; {
		case n < 10:
			return "micro"
		case n < 50:
			return "small"
		case n < 250:
			return "medium"
		case n < 1000:
			return "large"
		default:
			return "enterprise"
		}
	}
	if revenueMillions != nil {
		switch r := *revenueMillions; {
		case r < 2:
			return "micro"
		case r < 10:
			return "small"
		case r < 50:
			return "medium"
		case r < 500:
			return "large"
		default:
			return "enterprise"
		}
	}
	return ""
}
