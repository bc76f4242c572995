package users_enums

type ProjectRole string

const (
	ProjectRoleOwner  ProjectRole = "owner"
	ProjectRoleAdmin  ProjectRole = "admin"
	ProjectRoleMember ProjectRole = "member"
)

// IsValid validates the ProjectRole
func (r ProjectRole) IsValid() bool {
	switch r {
	case ProjectRoleOwner, ProjectRoleAdmin, ProjectRoleMember:
		return true
	default:
		return false
	}
}

// CanManageProject reports whether the role may edit the project and its members.
func (r ProjectRole) CanManageProject() bool {
	return r == ProjectRoleOwner || r == ProjectRoleAdmin
}
