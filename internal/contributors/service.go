package contributors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

const (
	missingInputFileMessageConstant      = "input file does not exist"
	malformedRecordMessageConstant       = "malformed metadata record"
	fileSystemMissingMessageConstant     = "file system not configured"
	authorsFilePathRequiredMessage       = "authors file path must be provided"
	contributorsFilePathRequiredMessage  = "contributors file path must be provided"
	metadataFilePathRequiredMessage      = "metadata file path must be provided"
	missingInputFileTemplateConstant     = "%w: %s"
	readFailureTemplateConstant          = "unable to read %s: %w"
	malformedRecordTemplateConstant      = "%w: %s: %v"
	missingListFieldTemplateConstant     = "%w: %s has no %q list"
	serializationFailureTemplate         = "unable to serialize merged metadata: %w"
	writeFailureTemplateConstant         = "unable to write %s: %w"
	creatorsFieldNameConstant            = "creators"
	contributorsFieldNameConstant        = "contributors"
	authorsListFieldNameConstant         = "authors"
	contributorsListFieldNameConstant    = "contributors"
	serializedDocumentIndentConstant     = "    "
	serializedDocumentNewlineConstant    = "\n"
	metadataFilePermissionsMode          = fs.FileMode(0o644)
)

// ErrMissingInputFile indicates one of the three metadata sources is absent.
var ErrMissingInputFile = errors.New(missingInputFileMessageConstant)

// ErrMalformedRecord indicates a source could not be parsed as a structured record.
var ErrMalformedRecord = errors.New(malformedRecordMessageConstant)

// ErrFileSystemNotConfigured indicates the file system dependency was missing.
var ErrFileSystemNotConfigured = errors.New(fileSystemMissingMessageConstant)

// ErrAuthorsFilePathRequired indicates the authors file path option was empty.
var ErrAuthorsFilePathRequired = errors.New(authorsFilePathRequiredMessage)

// ErrContributorsFilePathRequired indicates the contributors file path option was empty.
var ErrContributorsFilePathRequired = errors.New(contributorsFilePathRequiredMessage)

// ErrMetadataFilePathRequired indicates the metadata file path option was empty.
var ErrMetadataFilePathRequired = errors.New(metadataFilePathRequiredMessage)

// ServiceDependencies enumerates collaborators required by the service.
type ServiceDependencies struct {
	FileSystem FileSystem
}

// Options configure a metadata synchronization run.
type Options struct {
	AuthorsFilePath      string
	ContributorsFilePath string
	MetadataFilePath     string
	WriteInPlace         bool
}

// Result captures the outcome of a metadata synchronization run.
type Result struct {
	// Document is the merged metadata record serialized deterministically:
	// keys sorted, four-space indentation, trailing newline.
	Document                 []byte
	CreatorCount             int
	ContributorCount         int
	ExcludedContributorCount int
	WrittenInPlace           bool
}

// Service merges author and contributor citation records into a deposition
// metadata document.
type Service struct {
	fileSystem FileSystem
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.FileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	return &Service{fileSystem: dependencies.FileSystem}, nil
}

type authorsDocument struct {
	Authors []citationEntry `yaml:"authors"`
}

type contributorsDocument struct {
	Contributors []citationEntry `yaml:"contributors"`
}

// Synchronize loads the three metadata sources, merges them, and either
// writes the merged record back to the metadata file or returns it for
// emission.
//
// Creators preserve author order; contributors preserve input order minus
// entries field-wise equal to an author. Errors surface immediately and are
// never recovered locally.
func (service *Service) Synchronize(executionContext context.Context, options Options) (Result, error) {
	if validationError := validateOptions(options); validationError != nil {
		return Result{}, validationError
	}

	authors, authorsError := service.loadAuthors(options.AuthorsFilePath)
	if authorsError != nil {
		return Result{}, authorsError
	}

	if contextError := executionContext.Err(); contextError != nil {
		return Result{}, contextError
	}

	contributorEntries, contributorsError := service.loadContributors(options.ContributorsFilePath)
	if contributorsError != nil {
		return Result{}, contributorsError
	}

	metadataDocument, metadataError := service.loadMetadataDocument(options.MetadataFilePath)
	if metadataError != nil {
		return Result{}, metadataError
	}

	creators := make([]MetadataEntry, 0, len(authors))
	for _, author := range authors {
		creators = append(creators, author.MetadataEntry())
	}

	mergedContributors := make([]MetadataEntry, 0, len(contributorEntries))
	excludedContributorCount := 0
	for _, contributor := range contributorEntries {
		if containsContributor(authors, contributor) {
			excludedContributorCount++
			continue
		}
		mergedContributors = append(mergedContributors, contributor.MetadataEntry())
	}

	metadataDocument[creatorsFieldNameConstant] = creators
	metadataDocument[contributorsFieldNameConstant] = mergedContributors

	serializedDocument, serializationError := json.MarshalIndent(metadataDocument, "", serializedDocumentIndentConstant)
	if serializationError != nil {
		return Result{}, fmt.Errorf(serializationFailureTemplate, serializationError)
	}
	serializedDocument = append(serializedDocument, serializedDocumentNewlineConstant...)

	result := Result{
		Document:                 serializedDocument,
		CreatorCount:             len(creators),
		ContributorCount:         len(mergedContributors),
		ExcludedContributorCount: excludedContributorCount,
	}

	if options.WriteInPlace {
		writeError := service.fileSystem.WriteFile(options.MetadataFilePath, serializedDocument, metadataFilePermissionsMode)
		if writeError != nil {
			return Result{}, fmt.Errorf(writeFailureTemplateConstant, options.MetadataFilePath, writeError)
		}
		result.WrittenInPlace = true
	}

	return result, nil
}

func validateOptions(options Options) error {
	if len(options.AuthorsFilePath) == 0 {
		return ErrAuthorsFilePathRequired
	}
	if len(options.ContributorsFilePath) == 0 {
		return ErrContributorsFilePathRequired
	}
	if len(options.MetadataFilePath) == 0 {
		return ErrMetadataFilePathRequired
	}
	return nil
}

func (service *Service) loadAuthors(authorsFilePath string) ([]Contributor, error) {
	fileContents, readError := service.readRecordFile(authorsFilePath)
	if readError != nil {
		return nil, readError
	}

	document := authorsDocument{}
	if unmarshalError := yaml.Unmarshal(fileContents, &document); unmarshalError != nil {
		return nil, fmt.Errorf(malformedRecordTemplateConstant, ErrMalformedRecord, authorsFilePath, unmarshalError)
	}
	if document.Authors == nil {
		return nil, fmt.Errorf(missingListFieldTemplateConstant, ErrMalformedRecord, authorsFilePath, authorsListFieldNameConstant)
	}

	return parseCitationEntries(document.Authors)
}

func (service *Service) loadContributors(contributorsFilePath string) ([]Contributor, error) {
	fileContents, readError := service.readRecordFile(contributorsFilePath)
	if readError != nil {
		return nil, readError
	}

	document := contributorsDocument{}
	if unmarshalError := yaml.Unmarshal(fileContents, &document); unmarshalError != nil {
		return nil, fmt.Errorf(malformedRecordTemplateConstant, ErrMalformedRecord, contributorsFilePath, unmarshalError)
	}
	if document.Contributors == nil {
		return nil, fmt.Errorf(missingListFieldTemplateConstant, ErrMalformedRecord, contributorsFilePath, contributorsListFieldNameConstant)
	}

	return parseCitationEntries(document.Contributors)
}

func (service *Service) loadMetadataDocument(metadataFilePath string) (map[string]any, error) {
	fileContents, readError := service.readRecordFile(metadataFilePath)
	if readError != nil {
		return nil, readError
	}

	metadataDocument := map[string]any{}
	if unmarshalError := json.Unmarshal(fileContents, &metadataDocument); unmarshalError != nil {
		return nil, fmt.Errorf(malformedRecordTemplateConstant, ErrMalformedRecord, metadataFilePath, unmarshalError)
	}

	return metadataDocument, nil
}

func (service *Service) readRecordFile(recordFilePath string) ([]byte, error) {
	fileContents, readError := service.fileSystem.ReadFile(recordFilePath)
	if readError != nil {
		if errors.Is(readError, fs.ErrNotExist) {
			return nil, fmt.Errorf(missingInputFileTemplateConstant, ErrMissingInputFile, recordFilePath)
		}
		return nil, fmt.Errorf(readFailureTemplateConstant, recordFilePath, readError)
	}
	return fileContents, nil
}

func parseCitationEntries(entries []citationEntry) ([]Contributor, error) {
	parsedContributors := make([]Contributor, 0, len(entries))
	for _, entry := range entries {
		parsedContributor, parseError := newContributorFromCitationEntry(entry)
		if parseError != nil {
			return nil, parseError
		}
		parsedContributors = append(parsedContributors, parsedContributor)
	}
	return parsedContributors, nil
}

// containsContributor reports whether candidate equals any author by full
// field equality, raw identifier included.
func containsContributor(authors []Contributor, candidate Contributor) bool {
	for _, author := range authors {
		if author == candidate {
			return true
		}
	}
	return false
}
