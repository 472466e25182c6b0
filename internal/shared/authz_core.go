package shared

// Core platform resources and actions guarded by the authorization resolver.
const (
	ResourceRoles    = "roles"
	ResourceProjects = "projects"

	ActionView   = "view"
	ActionEdit   = "edit"
	ActionAssign = "assign"
)
