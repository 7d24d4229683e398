package entity

import (
	"regexp"
	"strings"
)

// SiteCode is a normalized facility identifier such as "RDU1" or "MCO3".
type SiteCode string

// String returns the code as a plain string.
func (c SiteCode) String() string {
	return string(c)
}

var (
	// leadingSiteCode matches the site code at the start of a location string.
	leadingSiteCode = regexp.MustCompile(`^[A-Z]{3,4}[0-9A-Z]{0,2}`)

	// siteCodeToken matches site-code-like words anywhere in free text.
	siteCodeToken = regexp.MustCompile(`\b[A-Z]{3,4}[0-9]{1,2}\b`)
)

// NormalizeSiteCode trims and upper-cases a raw code.
func NormalizeSiteCode(raw string) SiteCode {
	return SiteCode(strings.ToUpper(strings.TrimSpace(raw)))
}

// ExtractSiteCode returns the leading site code of a location string such as
// "RDU1 - PS552 (ParkingSlip)". Text that does not start with an upper-case
// code yields false.
func ExtractSiteCode(text string) (SiteCode, bool) {
	match := leadingSiteCode.FindString(strings.TrimSpace(text))
	if match == "" {
		return "", false
	}
	return NormalizeSiteCode(match), true
}

// RuleSet holds the urgent site configuration for one detection run.
// Entries are normalized once at construction and never mutated afterwards.
type RuleSet struct {
	exact    map[SiteCode]struct{}
	prefixes []string
}

// NewRuleSet builds a RuleSet from raw exact codes and prefixes.
// Entries are trimmed and upper-cased; blanks and duplicates are dropped.
func NewRuleSet(exactCodes, prefixes []string) *RuleSet {
	rs := &RuleSet{
		exact:    make(map[SiteCode]struct{}, len(exactCodes)),
		prefixes: make([]string, 0, len(prefixes)),
	}

	for _, code := range exactCodes {
		normalized := NormalizeSiteCode(code)
		if normalized == "" {
			continue
		}
		rs.exact[normalized] = struct{}{}
	}

	seen := make(map[string]struct{}, len(prefixes))
	for _, prefix := range prefixes {
		normalized := string(NormalizeSiteCode(prefix))
		if normalized == "" {
			continue
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		rs.prefixes = append(rs.prefixes, normalized)
	}

	return rs
}

// IsUrgent reports whether code is listed exactly or starts with a configured prefix.
func (rs *RuleSet) IsUrgent(code SiteCode) bool {
	if rs == nil {
		return false
	}

	normalized := NormalizeSiteCode(string(code))
	if normalized == "" {
		return false
	}

	if _, ok := rs.exact[normalized]; ok {
		return true
	}

	for _, prefix := range rs.prefixes {
		if strings.HasPrefix(string(normalized), prefix) {
			return true
		}
	}
	return false
}

// ExactCodes returns the normalized exact codes in no particular order.
func (rs *RuleSet) ExactCodes() []SiteCode {
	if rs == nil {
		return nil
	}
	codes := make([]SiteCode, 0, len(rs.exact))
	for code := range rs.exact {
		codes = append(codes, code)
	}
	return codes
}

// Prefixes returns the normalized prefixes in configuration order.
func (rs *RuleSet) Prefixes() []string {
	if rs == nil {
		return nil
	}
	out := make([]string, len(rs.prefixes))
	copy(out, rs.prefixes)
	return out
}

// ScanSiteCodes returns every site-code-like token in text, in order of
// appearance and without duplicates. Unlike ExtractSiteCode it looks past
// the start of the text, which makes it useful for whole-page diagnostics.
func ScanSiteCodes(text string) []SiteCode {
	matches := siteCodeToken.FindAllString(text, -1)
	codes := make([]SiteCode, 0, len(matches))
	seen := make(map[SiteCode]struct{}, len(matches))
	for _, m := range matches {
		code := NormalizeSiteCode(m)
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	return codes
}

// FirstUrgent returns the first urgent code found anywhere in text.
// Prefix words such as "MCO" count even without trailing digits.
func (rs *RuleSet) FirstUrgent(text string) (SiteCode, bool) {
	for _, code := range ScanSiteCodes(text) {
		if rs.IsUrgent(code) {
			return code, true
		}
	}

	if rs == nil {
		return "", false
	}
	for _, field := range strings.FieldsFunc(text, isCodeSeparator) {
		code := SiteCode(field)
		for _, prefix := range rs.prefixes {
			if strings.HasPrefix(field, prefix) && leadingSiteCode.MatchString(field) {
				return code, true
			}
		}
	}
	return "", false
}

func isCodeSeparator(r rune) bool {
	return (r < 'A' || r > 'Z') && (r < '0' || r > '9')
}
