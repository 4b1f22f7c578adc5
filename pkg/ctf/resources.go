package ctf

// FolderResource is the shape shared by hierarchical containers: document
// folders, FRS packages and releases, trackers, and SCM repositories.
type FolderResource struct {
	Resource

	ProjectID      string `json:"projectId,omitempty"      yaml:"projectId,omitempty"`
	ParentFolderID string `json:"parentFolderId,omitempty" yaml:"parentFolderId,omitempty"`
	Path           string `json:"path,omitempty"           yaml:"path,omitempty"`
	Description    string `json:"description,omitempty"    yaml:"description,omitempty"`
}

// ItemResource is the shape shared by leaf resources owned by a folder.
type ItemResource struct {
	Resource

	Path     string `json:"path,omitempty"     yaml:"path,omitempty"`
	FolderID string `json:"folderId,omitempty" yaml:"folderId,omitempty"`
}

// Project represents a TeamForge project.
type Project struct {
	Resource

	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Category    string `json:"category,omitempty"    yaml:"category,omitempty"`
	Status      string `json:"status,omitempty"      yaml:"status,omitempty"`
}

// ProjectCreateRequest represents a request to create a project.
type ProjectCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
}

// Tracker represents an issue tracker scoped to a project.
type Tracker struct {
	FolderResource

	Unit     string `json:"unit,omitempty"     yaml:"unit,omitempty"`
	IconName string `json:"icon,omitempty"     yaml:"icon,omitempty"`
}

// TrackerCreateRequest represents a request to create a tracker.
type TrackerCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	IconName    string `json:"icon,omitempty"`
	Unit        string `json:"unit,omitempty"`
}

// Artifact status classes the server is known to emit. Unknown values pass
// through unchanged.
const (
	StatusClassOpen   = "Open"
	StatusClassClosed = "Close"
)

// FlexFields carries a tracker's custom fields as the parallel name/value
// arrays the server uses.
type FlexFields struct {
	Names  []string      `json:"names,omitempty"  yaml:"names,omitempty"`
	Values []interface{} `json:"values,omitempty" yaml:"values,omitempty"`
	Types  []string      `json:"types,omitempty"  yaml:"types,omitempty"`
}

// Artifact represents a tracker work item.
//
// Artifacts decoded from list and filter responses carry only summary
// fields; ArtifactsClient.Refill fetches the complete record and sets
// Refilled. Update refuses to run against an artifact that has not been
// refilled, so a partial snapshot can never clobber server state.
type Artifact struct {
	ItemResource

	Description     string     `json:"description,omitempty"      yaml:"description,omitempty"`
	TrackerID       string     `json:"trackerId,omitempty"        yaml:"trackerId,omitempty"`
	Status          string     `json:"status,omitempty"           yaml:"status,omitempty"`
	StatusClass     string     `json:"statusClass,omitempty"      yaml:"statusClass,omitempty"`
	Priority        IntString  `json:"priority,omitempty"         yaml:"priority,omitempty"`
	AssignedTo      string     `json:"assignedTo,omitempty"       yaml:"assignedTo,omitempty"`
	EstimatedEffort IntString  `json:"estimatedEffort,omitempty"  yaml:"estimatedEffort,omitempty"`
	RemainingEffort IntString  `json:"remainingEffort,omitempty"  yaml:"remainingEffort,omitempty"`
	ActualEffort    IntString  `json:"actualEffort,omitempty"     yaml:"actualEffort,omitempty"`
	PlanningFolder  string     `json:"planningFolderId,omitempty" yaml:"planningFolderId,omitempty"`
	FlexFields      FlexFields `json:"flexFields,omitempty"       yaml:"flexFields,omitempty"`

	// Refilled reports whether the full record has been fetched. It is set
	// by Get and Refill and never by list or filter decoding.
	Refilled bool `json:"-" yaml:"-"`
}

// ArtifactCreateRequest represents a request to create an artifact. FileID
// optionally attaches a previously uploaded file.
type ArtifactCreateRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	Status          string `json:"status,omitempty"`
	Priority        int    `json:"priority,omitempty"`
	AssignedTo      string `json:"assignedTo,omitempty"`
	EstimatedEffort int    `json:"estimatedEffort,omitempty"`
	FileID          string `json:"fileId,omitempty"`
	FileName        string `json:"fileName,omitempty"`
	MimeType        string `json:"mimeType,omitempty"`
}

// ArtifactUpdateRequest represents a partial artifact update. Zero-valued
// fields are omitted from the PATCH body.
type ArtifactUpdateRequest struct {
	Title           string `json:"title,omitempty"`
	Description     string `json:"description,omitempty"`
	Status          string `json:"status,omitempty"`
	Priority        int    `json:"priority,omitempty"`
	AssignedTo      string `json:"assignedTo,omitempty"`
	RemainingEffort int    `json:"remainingEffort,omitempty"`
	ActualEffort    int    `json:"actualEffort,omitempty"`
	Comment         string `json:"comment,omitempty"`
}

// ArtifactFilterRequest is the body of the title-filtered artifact search.
type ArtifactFilterRequest struct {
	Title string `json:"title"`
}

// Package represents an FRS package, the top container of the file release
// hierarchy.
type Package struct {
	FolderResource
}

// PackageCreateRequest represents a request to create an FRS package.
type PackageCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Release represents an FRS release inside a package.
type Release struct {
	FolderResource

	Status   string `json:"status,omitempty"   yaml:"status,omitempty"`
	Maturity string `json:"maturity,omitempty" yaml:"maturity,omitempty"`
}

// ReleaseCreateRequest represents a request to create a release.
type ReleaseCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
	Maturity    string `json:"maturity,omitempty"`
}

// ReleaseFile represents a file attached to a release. Release files are
// immutable once created; they can only be listed and deleted.
type ReleaseFile struct {
	ItemResource

	ReleaseID string    `json:"releaseId,omitempty" yaml:"releaseId,omitempty"`
	FileName  string    `json:"fileName,omitempty"  yaml:"fileName,omitempty"`
	MimeType  string    `json:"mimeType,omitempty"  yaml:"mimeType,omitempty"`
	Size      IntString `json:"size,omitempty"      yaml:"size,omitempty"`
}

// ReleaseFileRequest attaches a previously uploaded file to a release.
type ReleaseFileRequest struct {
	FileID   string `json:"fileId"`
	FileName string `json:"fileName"`
	MimeType string `json:"mimeType,omitempty"`
}

// DocumentFolder represents a folder in the document manager.
type DocumentFolder struct {
	FolderResource
}

// Document represents a document in a document folder. Re-uploading via
// update produces a new version.
type Document struct {
	ItemResource

	Description    string    `json:"description,omitempty"    yaml:"description,omitempty"`
	FileName       string    `json:"fileName,omitempty"       yaml:"fileName,omitempty"`
	MimeType       string    `json:"mimeType,omitempty"       yaml:"mimeType,omitempty"`
	Size           IntString `json:"size,omitempty"           yaml:"size,omitempty"`
	CurrentVersion IntString `json:"currentVersion,omitempty" yaml:"currentVersion,omitempty"`
}

// DocumentCreateRequest represents a request to create a document from an
// uploaded file.
type DocumentCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	FileID      string `json:"fileId"`
	FileName    string `json:"fileName"`
	MimeType    string `json:"mimeType,omitempty"`
}

// DocumentUpdateRequest represents a document update. Supplying a FileID
// uploads a new version.
type DocumentUpdateRequest struct {
	Description string `json:"description,omitempty"`
	FileID      string `json:"fileId,omitempty"`
	FileName    string `json:"fileName,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

// User represents a TeamForge user account. Its collection title is the
// username.
type User struct {
	ID         string     `json:"id"                   yaml:"id"`
	Username   string     `json:"username"             yaml:"username"`
	FullName   string     `json:"fullName,omitempty"   yaml:"fullName,omitempty"`
	Email      string     `json:"email,omitempty"      yaml:"email,omitempty"`
	Status     string     `json:"status,omitempty"     yaml:"status,omitempty"`
	SuperUser  BoolString `json:"superUser,omitempty"  yaml:"superUser,omitempty"`
	Restricted BoolString `json:"restrictedUser,omitempty" yaml:"restrictedUser,omitempty"`
}

// GetID returns the user id.
func (u User) GetID() string { return u.ID }

// GetTitle returns the username.
func (u User) GetTitle() string { return u.Username }

// UserCreateRequest represents a request to create a user.
type UserCreateRequest struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	FullName   string `json:"fullName,omitempty"`
	Password   string `json:"password,omitempty"`
	SuperUser  bool   `json:"superUser,omitempty"`
	Restricted bool   `json:"restrictedUser,omitempty"`
}

// Group represents a site-wide user group.
type Group struct {
	Resource

	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// GroupCreateRequest represents a request to create a group.
type GroupCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Role represents a project role.
type Role struct {
	Resource

	ProjectID   string `json:"projectId,omitempty"   yaml:"projectId,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// RoleCreateRequest represents a request to create a project role.
type RoleCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// ScmRepository represents a source repository. List responses carry only
// the folder-shaped summary; Refill fetches the extra fields below.
type ScmRepository struct {
	FolderResource

	SystemID           string     `json:"systemId,omitempty"           yaml:"systemId,omitempty"`
	ViewerURL          string     `json:"scmViewerUrl,omitempty"       yaml:"scmViewerUrl,omitempty"`
	AdapterName        string     `json:"scmAdapterName,omitempty"     yaml:"scmAdapterName,omitempty"`
	IDRequiredOnCommit BoolString `json:"idRequiredOnCommit,omitempty" yaml:"idRequiredOnCommit,omitempty"`
	OnManagedServer    BoolString `json:"isOnManagedScmServer,omitempty" yaml:"isOnManagedScmServer,omitempty"`

	// Refilled reports whether the detail fields above have been fetched.
	Refilled bool `json:"-" yaml:"-"`
}

// StoredFile represents an uploaded binary blob. The guid is only
// resolvable by the session that uploaded it; StoredFile values must not be
// shared across clients.
type StoredFile struct {
	GUID     string    `json:"guid"               yaml:"guid"`
	FileName string    `json:"fileName,omitempty" yaml:"fileName,omitempty"`
	MimeType string    `json:"mimeType,omitempty" yaml:"mimeType,omitempty"`
	Size     IntString `json:"size,omitempty"     yaml:"size,omitempty"`
}
