package config

// AliasConfig holds the static lookup tables injected into the normalizer
// and the aggregator: country-name aliases and the Israeli city table used
// by the Airtable backend.
type AliasConfig struct {
	// Countries maps a lowercase location name to its ISO country code.
	Countries map[string]string
	// Cities maps a lowercase Israeli city name to its Airtable select-option IDs.
	Cities map[string][]string
}

// DefaultCountries returns the built-in location-name → ISO-code table.
func DefaultCountries() map[string]string {
	return map[string]string{
		"united states": "us", "usa": "us", "us": "us", "america": "us",
		"united kingdom": "gb", "uk": "gb", "great britain": "gb", "england": "gb", "britain": "gb",
		"australia": "au", "au": "au",
		"austria": "at", "at": "at",
		"belgium": "be", "be": "be",
		"brazil": "br", "br": "br", "brasil": "br",
		"canada": "ca", "ca": "ca",
		"france": "fr", "fr": "fr",
		"germany": "de", "de": "de", "deutschland": "de",
		"india": "in", "in": "in",
		"italy": "it", "it": "it", "italia": "it",
		"mexico": "mx", "mx": "mx", "méxico": "mx",
		"netherlands": "nl", "nl": "nl", "holland": "nl",
		"new zealand": "nz", "nz": "nz",
		"poland": "pl", "pl": "pl", "polska": "pl",
		"south africa": "za", "za": "za",
		"spain": "es", "es": "es", "españa": "es",
		"switzerland": "ch", "ch": "ch", "schweiz": "ch",
	}
}

// DefaultCities returns the built-in Israeli-city → Airtable-ID table.
func DefaultCities() map[string][]string {
	return map[string][]string{
		"airport city":     {"selv8I5XnhAmg8Wy4"},
		"ashdod":           {"selpRdUllK6Ardz2x"},
		"ashkelon":         {"selKT8gWZL6nbCdbL"},
		"beer sheva":       {"sel6iPNei78rcdNNq"},
		"beit haemek":      {"el9hEVL0xLnulE0R"},
		"beit yannai":      {"selZSPsG3ouh61hRS"},
		"binyamina":        {"selCTy2k39e9Ae0qw"},
		"bnei brak":        {"selugunpolndT3W8A"},
		"caesarea":         {"seliz5TkwObwaNBun"},
		"givatayim":        {"selsx44AlHaXzc4rr"},
		"haifa":            {"sel4tuz1iIKQlCuET", "seltGxZP4wSvszcGx"},
		"herzliya":         {"selk1UMxQtJUnu7ZB"},
		"hod hasharon":     {"selZRGfMgtharKouc"},
		"holon":            {"selKKJonXQJsCCxQh"},
		"yiftah":           {"selogvHiZkN5UnHR9"},
		"israel - central": {"selDqPZe70uXQnaYY", "sel0Klfcj1N11kaGi", "self85GfymLj0ZPrG"},
		"israel - north":   {"selliTzBB01LNe9SF"},
		"israel - remote":  {"selLOMlwNCzC3iY48"},
		"jerusalem":        {"selcNDUysXHclXKhC"},
		"karmiel":          {"selfMUyRq9x5qUawQ"},
		"kfar saba":        {"selk5KbQBLw1jSf15"},
		"kiryat gat":       {"sel2Ufkbod09h0kqP"},
		"kiryat ono":       {"selUjlaekJWPPCci9"},
		"lod":              {"selwALjRNTGXxhyIP"},
		"magal":            {"selLBC2pkbfroRBfB"},
		"migdal haemek":    {"selJNXzmuhfZFEglQ"},
		"modi'in":          {"selWuuYSWPetAeEaU"},
		"ness ziona":       {"selBja6yl09FuBF34"},
		"netanya":          {"selzEafnLfkG24XSX"},
		"or yehuda":        {"selZ2FIWdhLFRSqHT"},
		"petach tikva":     {"selCClpz2B5VWMweT"},
		"ra'anana":         {"selovb23uxpfDK2Mw"},
		"ramat gan":        {"selNqSmIKl4jB4FdT"},
		"ramat hasharon":   {"selMM5CqIL7sPD7aS"},
		"rehovot":          {"seltglDY90udBpCO4"},
		"rishon lezion":    {"selSBGAD2FvxeVaFq"},
		"rosh haayin":      {"selaQ4hxxYSlf7tk1"},
		"shoham":           {"selIP1CLsbvY9y16X"},
		"tel aviv":         {"selEVE30mDzRv5jFN", "selXkSXbXUjNNJUgt"},
		"tel hai":          {"selllM0fP6KIQmLAJ"},
		"yavne":            {"selGwaf1r7pVKjqo1"},
		"yokne'am":         {"selmgV10E0kALV9ev"},
	}
}
