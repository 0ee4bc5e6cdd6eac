package domain

// DocumentDiff is the result of reconciling an auction's stored document
// titles against a freshly extracted set.
type DocumentDiff struct {
	ToAdd    []string
	ToRemove []string
}

// DiffDocumentTitles computes the set difference between the titles
// currently linked to an auction and the titles extracted on the latest
// scrape. Titles present in both sets are left untouched. Input order is
// preserved in the output.
func DiffDocumentTitles(existing, extracted []string) DocumentDiff {
	existingSet := make(map[string]struct{}, len(existing))
	for _, t := range existing {
		existingSet[t] = struct{}{}
	}
	extractedSet := make(map[string]struct{}, len(extracted))
	for _, t := range extracted {
		extractedSet[t] = struct{}{}
	}

	var diff DocumentDiff
	for _, t := range extracted {
		if _, ok := existingSet[t]; !ok {
			diff.ToAdd = append(diff.ToAdd, t)
		}
	}
	for _, t := range existing {
		if _, ok := extractedSet[t]; !ok {
			diff.ToRemove = append(diff.ToRemove, t)
		}
	}
	return diff
}
