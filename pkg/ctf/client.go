package ctf

import (
	"context"
	"time"
)

// SessionClient exposes the session lifecycle.
type SessionClient interface {
	// Login exchanges the configured credentials for a session token. It is
	// optional; the first authenticated request logs in lazily.
	Login(ctx context.Context) error
	// Logout discards the session token. Further operations fail with
	// ErrNotAuthenticated until Login is called again. Calling Logout with
	// no active session is an error.
	Logout() error
	// SessionID returns the current session token, or "" when logged out.
	SessionID() string
	ServerURL() string
	CurrentUsername() string
}

// ProjectsClient operates on projects.
type ProjectsClient interface {
	Get(ctx context.Context, id string) (*Project, error)
	GetByTitle(ctx context.Context, title string) (*Project, error)
	List(ctx context.Context, params *QueryParams) (*TitledCollection[Project], error)
	Create(ctx context.Context, request *ProjectCreateRequest) (*Project, error)
}

// UsersClient operates on user accounts.
type UsersClient interface {
	Get(ctx context.Context, username string) (*User, error)
	List(ctx context.Context, params *QueryParams) (*TitledCollection[User], error)
	Create(ctx context.Context, request *UserCreateRequest) (*User, error)
}

// GroupsClient operates on site-wide groups and their membership.
type GroupsClient interface {
	List(ctx context.Context, params *QueryParams) (*TitledCollection[Group], error)
	Create(ctx context.Context, request *GroupCreateRequest) (*Group, error)
	Members(ctx context.Context, groupID string) (*TitledCollection[User], error)
	AddMember(ctx context.Context, groupID, username string) error
	RemoveMember(ctx context.Context, groupID, username string) error
}

// RolesClient operates on project roles and their membership.
type RolesClient interface {
	ListForProject(ctx context.Context, projectID string) (*TitledCollection[Role], error)
	Create(ctx context.Context, projectID string, request *RoleCreateRequest) (*Role, error)
	Members(ctx context.Context, roleID string) (*TitledCollection[User], error)
	Grant(ctx context.Context, roleID, username string) error
}

// TrackersClient operates on issue trackers.
type TrackersClient interface {
	Get(ctx context.Context, id string) (*Tracker, error)
	ListForProject(ctx context.Context, projectID string) (*TitledCollection[Tracker], error)
	Create(ctx context.Context, projectID string, request *TrackerCreateRequest) (*Tracker, error)
}

// ArtifactsClient operates on tracker artifacts. Get returns a refilled
// artifact; List and FindByTitle return summaries that must be passed
// through Refill before Update.
type ArtifactsClient interface {
	Get(ctx context.Context, id string) (*Artifact, error)
	List(ctx context.Context, trackerID string, params *QueryParams) (*TitledCollection[Artifact], error)
	FindByTitle(ctx context.Context, trackerID, title string) (*TitledCollection[Artifact], error)
	Create(ctx context.Context, trackerID string, request *ArtifactCreateRequest) (*Artifact, error)
	Refill(ctx context.Context, artifact *Artifact) error
	Update(ctx context.Context, artifact *Artifact, request *ArtifactUpdateRequest) (*Artifact, error)
}

// PackagesClient operates on FRS packages.
type PackagesClient interface {
	Get(ctx context.Context, id string) (*Package, error)
	ListForProject(ctx context.Context, projectID string) (*TitledCollection[Package], error)
	Create(ctx context.Context, projectID string, request *PackageCreateRequest) (*Package, error)
	Delete(ctx context.Context, id string) error
}

// ReleasesClient operates on FRS releases and their files.
type ReleasesClient interface {
	Get(ctx context.Context, id string) (*Release, error)
	ListForPackage(ctx context.Context, packageID string) (*TitledCollection[Release], error)
	Create(ctx context.Context, packageID string, request *ReleaseCreateRequest) (*Release, error)
	Delete(ctx context.Context, id string) error
	Files(ctx context.Context, releaseID string) (*TitledCollection[ReleaseFile], error)
	AttachFile(ctx context.Context, releaseID string, request *ReleaseFileRequest) (*ReleaseFile, error)
	DeleteFile(ctx context.Context, fileID string) error
}

// DocumentsClient operates on document folders and documents, including
// slash-separated folder path resolution.
type DocumentsClient interface {
	RootFolder(ctx context.Context, projectID string) (*DocumentFolder, error)
	ChildFolders(ctx context.Context, folderID string) (*TitledCollection[DocumentFolder], error)
	CreateFolder(ctx context.Context, parentFolderID, title, description string) (*DocumentFolder, error)
	ListDocuments(ctx context.Context, folderID string) (*TitledCollection[Document], error)
	CreateDocument(ctx context.Context, folderID string, request *DocumentCreateRequest) (*Document, error)
	UpdateDocument(ctx context.Context, documentID string, request *DocumentUpdateRequest) (*Document, error)
	// GetOrCreatePath walks the slash-separated path from the project root,
	// creating every missing segment. Repeated calls with a fully existing
	// path create nothing.
	GetOrCreatePath(ctx context.Context, projectID, path string) (*DocumentFolder, error)
	// VerifyPath walks the path and fails at the first missing segment,
	// naming it in the wrapped ErrPathSegmentNotFound.
	VerifyPath(ctx context.Context, projectID, path string) (*DocumentFolder, error)
}

// ScmClient operates on source repositories.
type ScmClient interface {
	Get(ctx context.Context, id string) (*ScmRepository, error)
	ListForProject(ctx context.Context, projectID string) (*TitledCollection[ScmRepository], error)
	Refill(ctx context.Context, repository *ScmRepository) error
}

// FilesClient uploads and downloads binary blobs through file storage.
type FilesClient interface {
	Upload(ctx context.Context, fileName string, content []byte) (*StoredFile, error)
	UploadPath(ctx context.Context, path string) (*StoredFile, error)
	Download(ctx context.Context, guid string) ([]byte, error)
}

// Client is the session-scoped TeamForge API client.
type Client interface {
	SessionClient

	Projects() ProjectsClient
	Users() UsersClient
	Groups() GroupsClient
	Roles() RolesClient
	Trackers() TrackersClient
	Artifacts() ArtifactsClient
	Packages() PackagesClient
	Releases() ReleasesClient
	Documents() DocumentsClient
	Scm() ScmClient
	Files() FilesClient
}

// Config represents client configuration for building a ctf.Client.
//
// Authentication precedence:
//  1. AccessToken: used directly as a static Bearer token; Login is a no-op
//     and Logout is rejected.
//  2. OneTimeToken: exchanged once at the token endpoint; the resulting
//     session token is not renewable.
//  3. Username/Password: the OAuth-style password grant against
//     <ServerURL>/oauth/auth/token.
//  4. No credentials: every authenticated operation fails with
//     ErrNotAuthenticated before any network call.
//
// A Client is safe for concurrent reads once logged in; concurrent
// Login/Logout on the same Client is the caller's responsibility to
// serialize.
type Config struct {
	// ServerURL is the base URL of the TeamForge server.
	ServerURL string

	// Username and Password drive the password grant.
	Username string
	Password string
	// OneTimeToken is a pre-obtained SSO token exchanged for a session.
	OneTimeToken string
	// AccessToken is a pre-obtained session token used as-is.
	AccessToken string

	// HTTPTimeout bounds each request. Zero applies the default (30s).
	HTTPTimeout time.Duration
	// RetryMax enables retries of idempotent GETs on transient failures.
	RetryMax int
	// RetryWaitMin and RetryWaitMax bound the retry backoff.
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// Debug enables request/response logging when a Logger is set.
	Debug bool
	// Logger is the structured logging sink used by the transport and the
	// lenient list decoder. Nil disables logging.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string
}
