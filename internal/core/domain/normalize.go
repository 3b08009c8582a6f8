package domain

// ExtractDigits выжимает все цифры из сырой строки источника и собирает
// из них число: "120,000 km" -> 120000, "$15.500" -> 15500.
// Возвращает ok=false, если цифр в строке нет вовсе ("Договорная", "").
func ExtractDigits(raw string) (int64, bool) {
	var n int64
	found := false
	for _, r := range raw {
		if r < '0' || r > '9' {
			continue
		}
		n = n*10 + int64(r-'0')
		found = true
	}
	return n, found
}

// NormalizeNumeric - указатель-вариант ExtractDigits для опциональных полей.
func NormalizeNumeric(raw *string) *int64 {
	if raw == nil {
		return nil
	}
	n, ok := ExtractDigits(*raw)
	if !ok {
		return nil
	}
	return &n
}
