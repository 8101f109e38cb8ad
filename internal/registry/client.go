package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	retry "github.com/appleboy/go-httpretry"
)

const (
	// DefaultMetadataURL is the public npm registry metadata endpoint.
	DefaultMetadataURL = "https://registry.npmjs.org"

	acceptHeaderConstant                = "Accept"
	jsonMediaTypeConstant               = "application/json"
	latestDistTagConstant               = "latest"
	urlPathSeparatorConstant            = "/"
	buildRequestErrorTemplateConstant   = "failed to build metadata request for %s: %w"
	requestErrorTemplateConstant        = "metadata request for %s failed: %w"
	readResponseErrorTemplateConstant   = "failed to read metadata for %s: %w"
	decodeResponseErrorTemplateConstant = "failed to decode metadata for %s: %w"
	createRetryClientTemplateConstant   = "failed to create registry http client: %w"
	emptyPackageNameMessageConstant     = "package name required"
)

// ErrEmptyPackageName is returned when FetchPackageMetadata receives a blank name.
var ErrEmptyPackageName = errors.New(emptyPackageNameMessageConstant)

// RepositoryDescriptor is the object form of a manifest repository field.
type RepositoryDescriptor struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// PackageMetadata holds the registry fields the page resolver consumes.
type PackageMetadata struct {
	Name       string
	Version    string
	Repository *RepositoryDescriptor
}

type packageDocument struct {
	Name       string                     `json:"name"`
	DistTags   map[string]string          `json:"dist-tags"`
	Versions   map[string]versionDocument `json:"versions"`
	Repository json.RawMessage            `json:"repository"`
}

type versionDocument struct {
	Version    string          `json:"version"`
	Repository json.RawMessage `json:"repository"`
}

// Logger receives the retry client's request lifecycle records as key/value pairs.
type Logger interface {
	Debug(message string, keysAndValues ...any)
	Info(message string, keysAndValues ...any)
	Warn(message string, keysAndValues ...any)
	Error(message string, keysAndValues ...any)
}

// Client retrieves package documents over HTTP with retries.
type Client struct {
	baseURL    string
	httpClient *retry.Client
}

// NewClient constructs a Client. Empty baseURL selects DefaultMetadataURL; nil httpClient selects http.DefaultClient.
// A nil logger silences the retry client.
func NewClient(baseURL string, httpClient *http.Client, maxRetries int, logger Logger) (*Client, error) {
	trimmedBaseURL := strings.TrimSuffix(strings.TrimSpace(baseURL), urlPathSeparatorConstant)
	if len(trimmedBaseURL) == 0 {
		trimmedBaseURL = DefaultMetadataURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if maxRetries < 0 {
		maxRetries = 0
	}

	loggingOption := retry.WithNoLogging()
	if logger != nil {
		loggingOption = retry.WithLogger(logger)
	}

	retryClient, retryClientError := retry.NewClient(
		retry.WithHTTPClient(httpClient),
		retry.WithMaxRetries(maxRetries),
		loggingOption,
	)
	if retryClientError != nil {
		return nil, fmt.Errorf(createRetryClientTemplateConstant, retryClientError)
	}

	return &Client{baseURL: trimmedBaseURL, httpClient: retryClient}, nil
}

// MetadataURL returns the endpoint queried for packageName. Scoped names keep the @ and escape the slash.
func (client *Client) MetadataURL(packageName string) string {
	return client.baseURL + urlPathSeparatorConstant + url.PathEscape(packageName)
}

// FetchPackageMetadata downloads the package document and extracts the latest version's repository.
func (client *Client) FetchPackageMetadata(executionContext context.Context, packageName string) (PackageMetadata, error) {
	trimmedPackageName := strings.TrimSpace(packageName)
	if len(trimmedPackageName) == 0 {
		return PackageMetadata{}, ErrEmptyPackageName
	}

	request, requestError := http.NewRequestWithContext(executionContext, http.MethodGet, client.MetadataURL(trimmedPackageName), nil)
	if requestError != nil {
		return PackageMetadata{}, fmt.Errorf(buildRequestErrorTemplateConstant, trimmedPackageName, requestError)
	}
	request.Header.Set(acceptHeaderConstant, jsonMediaTypeConstant)

	response, responseError := client.httpClient.DoWithContext(executionContext, request)
	if response != nil {
		defer response.Body.Close()
	}
	if responseError != nil {
		// Exhausted retries on a retryable status still carry the final response.
		var retryError *retry.RetryError
		if errors.As(responseError, &retryError) && retryError.LastErr == nil && retryError.LastStatus != 0 {
			return PackageMetadata{}, HTTPStatusError{PackageName: trimmedPackageName, StatusCode: retryError.LastStatus}
		}
		return PackageMetadata{}, fmt.Errorf(requestErrorTemplateConstant, trimmedPackageName, responseError)
	}

	if response.StatusCode == http.StatusNotFound {
		return PackageMetadata{}, PackageNotFoundError{PackageName: trimmedPackageName}
	}
	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return PackageMetadata{}, HTTPStatusError{PackageName: trimmedPackageName, StatusCode: response.StatusCode}
	}

	body, readError := io.ReadAll(response.Body)
	if readError != nil {
		return PackageMetadata{}, fmt.Errorf(readResponseErrorTemplateConstant, trimmedPackageName, readError)
	}

	var document packageDocument
	if decodeError := json.Unmarshal(body, &document); decodeError != nil {
		return PackageMetadata{}, fmt.Errorf(decodeResponseErrorTemplateConstant, trimmedPackageName, decodeError)
	}

	return document.metadata(trimmedPackageName), nil
}

func (document packageDocument) metadata(requestedName string) PackageMetadata {
	metadata := PackageMetadata{Name: document.Name}
	if len(metadata.Name) == 0 {
		metadata.Name = requestedName
	}

	latestVersion := document.DistTags[latestDistTagConstant]
	if latestDocument, found := document.Versions[latestVersion]; found && len(latestVersion) > 0 {
		metadata.Version = latestVersion
		metadata.Repository = decodeRepository(latestDocument.Repository)
	}
	if metadata.Repository == nil {
		metadata.Repository = decodeRepository(document.Repository)
	}

	return metadata
}

// decodeRepository accepts only the object form; a bare string carries no url field.
func decodeRepository(rawRepository json.RawMessage) *RepositoryDescriptor {
	if len(rawRepository) == 0 {
		return nil
	}

	var descriptor RepositoryDescriptor
	if decodeError := json.Unmarshal(rawRepository, &descriptor); decodeError != nil {
		return nil
	}
	descriptor.URL = strings.TrimSpace(descriptor.URL)
	if len(descriptor.URL) == 0 {
		return nil
	}

	return &descriptor
}
