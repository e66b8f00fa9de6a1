package contributors

import (
	"errors"
	"fmt"
	"strings"
)

const (
	identifierURLPrefixConstant         = "https://orcid.org/"
	familyNamesFieldNameConstant        = "family-names"
	givenNamesFieldNameConstant         = "given-names"
	affiliationFieldNameConstant        = "affiliation"
	missingFieldTemplateConstant        = "%w: %s"
	combinedNameTemplateConstant        = "%s %s"
	missingRequiredFieldMessageConstant = "required contributor field is missing"
)

// ErrMissingRequiredField indicates a citation record lacks one of the
// mandatory fields (family names, given names, or affiliation).
var ErrMissingRequiredField = errors.New(missingRequiredFieldMessageConstant)

// Contributor represents one person entry from a citation-format record.
type Contributor struct {
	FamilyNames string
	GivenNames  string
	Affiliation string
	// Identifier carries the persistent researcher identifier exactly as
	// recorded, typically an ORCID URL. Empty when absent.
	Identifier string
}

// citationEntry mirrors the on-disk citation file format sub-schema.
// Pointer fields distinguish absent keys from empty values.
type citationEntry struct {
	FamilyNames *string `yaml:"family-names"`
	GivenNames  *string `yaml:"given-names"`
	Affiliation *string `yaml:"affiliation"`
	Identifier  string  `yaml:"orcid"`
}

func newContributorFromCitationEntry(entry citationEntry) (Contributor, error) {
	if entry.FamilyNames == nil {
		return Contributor{}, fmt.Errorf(missingFieldTemplateConstant, ErrMissingRequiredField, familyNamesFieldNameConstant)
	}
	if entry.GivenNames == nil {
		return Contributor{}, fmt.Errorf(missingFieldTemplateConstant, ErrMissingRequiredField, givenNamesFieldNameConstant)
	}
	if entry.Affiliation == nil {
		return Contributor{}, fmt.Errorf(missingFieldTemplateConstant, ErrMissingRequiredField, affiliationFieldNameConstant)
	}

	return Contributor{
		FamilyNames: *entry.FamilyNames,
		GivenNames:  *entry.GivenNames,
		Affiliation: *entry.Affiliation,
		Identifier:  entry.Identifier,
	}, nil
}

// MetadataEntry is the flat deposition representation of a contributor.
// Fields stay in alphabetical order so serialized keys come out sorted.
type MetadataEntry struct {
	Affiliation string `json:"affiliation"`
	Name        string `json:"name"`
	Identifier  string `json:"orcid,omitempty"`
}

// MetadataEntry converts the contributor into its deposition representation,
// combining given and family names and normalizing the identifier.
func (contributor Contributor) MetadataEntry() MetadataEntry {
	entry := MetadataEntry{
		Affiliation: contributor.Affiliation,
		Name:        fmt.Sprintf(combinedNameTemplateConstant, contributor.GivenNames, contributor.FamilyNames),
	}
	if len(contributor.Identifier) > 0 {
		entry.Identifier = NormalizeIdentifier(contributor.Identifier)
	}
	return entry
}

// NormalizeIdentifier strips the ORCID URL prefix from an identifier. The
// operation is idempotent: an already-stripped identifier passes through
// unchanged.
func NormalizeIdentifier(identifier string) string {
	return strings.TrimPrefix(identifier, identifierURLPrefixConstant)
}
