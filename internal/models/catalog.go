package models

// AvailableGames is the fixed catalog players pick from. Filters and game
// lists only ever operate on these titles; anything else is dropped at the
// edge.
var AvailableGames = []string{
	"World of Warcraft",
	"Cyberpunk 2077",
	"Dota 2",
	"Counter-Strike 2",
	"Baldur's Gate 3",
	"Minecraft",
	"Apex Legends",
	"Genshin Impact",
	"Rocket League",
}

// KnownTitle reports whether title is part of the catalog. Comparison is
// exact: the UI only ever submits catalog values verbatim.
func KnownTitle(title string) bool {
	for _, t := range AvailableGames {
		if t == title {
			return true
		}
	}
	return false
}

// FilterKnown returns titles restricted to the catalog, with duplicates
// removed and input order preserved.
func FilterKnown(titles []string) []string {
	seen := make(map[string]bool, len(titles))
	out := make([]string, 0, len(titles))
	for _, t := range titles {
		if !KnownTitle(t) || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
