package services

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// ChoiceFieldPrefix marks the exam form fields that carry choice ids
const ChoiceFieldPrefix = "choice_"

// ExtractAnswers collects the choice ids from every "choice_" field of the
// form. Keys are visited in sorted order and duplicate ids are dropped.
// Integers below 1 can never name a choice and are dropped like unknown ids;
// a value that is not an integer at all rejects the whole form.
func ExtractAnswers(form url.Values) ([]uint, error) {
	keys := make([]string, 0, len(form))
	for key := range form {
		if strings.HasPrefix(key, ChoiceFieldPrefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var (
		ids  []uint
		seen = make(map[uint]struct{})
		errs ValidationErrors
	)
	for _, key := range keys {
		for _, raw := range form[key] {
			parsed, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
			if err != nil {
				errs = append(errs, ValidationError{
					Field:   key,
					Message: "must be an integer choice id",
					Value:   raw,
					Rule:    "choice_id",
				})
				continue
			}
			if parsed <= 0 {
				continue
			}
			id := uint(parsed)
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return ids, nil
}

// dedupeIDs keeps the first occurrence of each id
func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
