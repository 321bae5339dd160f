package utils

import (
	"regexp"
	"sort"
	"strings"
)

// NormalizedServiceName contains all normalized output
type NormalizedServiceName struct {
	DisplayName    string
	NormalizedTags []string
	OriginalName   string
}

// ServiceNameNormalizer canonicalizes massage/spa service names so that
// differently-spelled provider entries ("Hot Stones", "hot-stone therapy")
// land on the same searchable tags.
type ServiceNameNormalizer struct {
	aliases map[string]string
	typos   map[string]string
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9 ]+`)
var multiSpace = regexp.MustCompile(`\s+`)

// NewServiceNameNormalizer creates a normalizer seeded with the service
// vocabulary used across therapist and place listings.
func NewServiceNameNormalizer() *ServiceNameNormalizer {
	return &ServiceNameNormalizer{
		aliases: map[string]string{
			"hot stones":         "hot stone",
			"hot stone therapy":  "hot stone",
			"stone massage":      "hot stone",
			"aromatherapy":       "aroma",
			"aroma therapy":      "aroma",
			"body scrub":         "scrub",
			"javanese scrub":     "scrub",
			"lulur":              "scrub",
			"coin rub":           "coin",
			"kerokan":            "coin",
			"deep pressure":      "deep tissue",
			"deep tissue":        "deep tissue",
			"reflexology":        "reflexology",
			"foot reflexology":   "reflexology",
			"facial treatment":   "facial",
			"facial":             "facial",
			"traditional":        "traditional",
			"balinese":           "balinese",
			"javanese":           "javanese",
			"shiatsu":            "shiatsu",
			"thai massage":       "thai",
			"swedish massage":    "swedish",
			"prenatal massage":   "prenatal",
			"sports massage":     "sports",
			"cupping":            "cupping",
			"home service":       "home service",
		},
		typos: map[string]string{
			"masage":       "massage",
			"massge":       "massage",
			"aromatheraphy": "aromatherapy",
			"refleksologi": "reflexology",
			"fasial":       "facial",
		},
	}
}

// Normalize performs all normalization steps on a service name
func (sn *ServiceNameNormalizer) Normalize(originalName string) *NormalizedServiceName {
	if strings.TrimSpace(originalName) == "" {
		return &NormalizedServiceName{OriginalName: originalName}
	}

	cleaned := strings.ToLower(strings.TrimSpace(originalName))
	cleaned = nonAlnum.ReplaceAllString(cleaned, " ")
	cleaned = multiSpace.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)

	words := strings.Split(cleaned, " ")
	for i, w := range words {
		if fixed, ok := sn.typos[w]; ok {
			words[i] = fixed
		}
	}
	cleaned = strings.Join(words, " ")

	tags := map[string]struct{}{}
	for alias, tag := range sn.aliases {
		if strings.Contains(cleaned, alias) {
			tags[tag] = struct{}{}
		}
	}
	// The full cleaned name is always a tag of its own.
	tags[cleaned] = struct{}{}

	normalized := make([]string, 0, len(tags))
	for tag := range tags {
		normalized = append(normalized, tag)
	}
	sort.Strings(normalized)

	return &NormalizedServiceName{
		DisplayName:    titleCase(cleaned),
		NormalizedTags: normalized,
		OriginalName:   originalName,
	}
}

// NormalizeAll normalizes a list of service names and returns the union of
// their tags, deduplicated and sorted.
func (sn *ServiceNameNormalizer) NormalizeAll(names []string) []string {
	set := map[string]struct{}{}
	for _, name := range names {
		for _, tag := range sn.Normalize(name).NormalizedTags {
			if tag != "" {
				set[tag] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(set))
	for tag := range set {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

func titleCase(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
