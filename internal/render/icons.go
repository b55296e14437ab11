package render

// icons is keyed by the weather service icon index.
var icons = map[int]string{
	1:  "\u26ed",                               // Sunny
	2:  "\u26ed\u2601",                         // Mostly Sunny
	3:  "\u263c\u2601",                         // Partly Sunny
	4:  "\u26c5",                               // Intermittent Clouds
	5:  "\u26c5\u2601",                         // Hazy Sunshine
	6:  "\u2601\u26c5",                         // Mostly Cloudy
	7:  "\u2601",                               // Cloudy
	8:  "@\u2601",                              // Dreary (Overcast)
	11: "\U0001f32b",                           // Fog
	12: "\u2602\u26c6\ufe0e",                   // Showers
	13: "\u2601\u26c5\u26c6\u2602\ufe0e",       // Mostly Cloudy w/ Showers
	14: "\u26c5\u2601\u26c6\u2602",             // Partly Sunny w/ Showers
	15: "\u2601\u26a1\u26c8\u26c6\u2602",       // T-Storms
	16: "\u2601\u26c5\u26a1\u26c8\u26c6\u2602", // Mostly Cloudy w/ T-Storms
	17: "\u26c5\u2601\u26a1\u26c8\u26c6\u2602", // Partly Sunny w/ T-Storms
	18: "\u2601\u26c6\u2602",                   // Rain
}

// Icon returns the glyph for index followed by a space, or "" for an index
// without a glyph.
func Icon(index int) string {
	glyph, ok := icons[index]
	if !ok {
		return ""
	}
	return glyph + " "
}
