package constants

import "time"

// REST base paths per subsystem. TeamForge versions its resource families
// independently; the tracker artifact endpoints live under v2 while the
// rest are v1.
const (
	FoundationBase  = "/ctfrest/foundation/v1"
	TrackerBase     = "/ctfrest/tracker/v1"
	TrackerV2Base   = "/ctfrest/tracker/v2"
	FRSBase         = "/ctfrest/frs/v1"
	DocmanBase      = "/ctfrest/docman/v1"
	ScmBase         = "/ctfrest/scm/v1"
	FileStorageBase = "/ctfrest/filestorage/v1"

	// TokenPath is the OAuth-style token endpoint relative to the server
	// URL.
	TokenPath = "/oauth/auth/token"
)

// Grant types accepted by the token endpoint.
const (
	GrantTypePassword     = "password"
	GrantTypeOneTimeToken = "one_time_token"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits.
const (
	// DefaultRetryMax is the default maximum number of retries for
	// idempotent requests when retries are enabled.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the minimum wait between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// MultipartFileField is the form field name the file storage endpoint
// expects for uploads.
const MultipartFileField = "file"
