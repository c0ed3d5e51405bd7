package policy

// Resource identifies a protected row kind.
type Resource string

const (
	ResourcePost     Resource = "post"
	ResourceProfile  Resource = "profile"
	ResourceComment  Resource = "comment"
	ResourceLike     Resource = "like"
	ResourceRetweet  Resource = "retweet"
	ResourceAdminKey Resource = "admin_key"
)

// Action identifies an operation on a row.
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Row is the projection of a candidate row that rules evaluate. The engine
// never sees full entities; callers fill in the fields their resource carries
// and leave the rest zero.
type Row struct {
	// ID of the row itself. Informational, no rule depends on it.
	ID string

	// UserID is the owning user.
	UserID string

	// Status is the moderation status, posts only.
	Status string

	// PostID is the parent post, comments and reactions only.
	PostID string

	// IsUsed is the consumption flag, admin keys only.
	IsUsed bool
}
