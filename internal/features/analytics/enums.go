package analytics

const (
	EventProjectCreated   = "project_created"
	EventProjectUpdated   = "project_updated"
	EventProjectCompleted = "project_completed"
	EventProjectDeleted   = "project_deleted"
	EventAssetUploaded    = "asset_uploaded"
	EventMemberAdded      = "member_added"
	EventMemberRemoved    = "member_removed"
	EventUserRoleChanged  = "user_role_changed"
	EventUserDeleted      = "user_deleted"
	EventContactSubmitted = "contact_submitted"
)

// TimelineRanges are the accepted values of the timeline "days" parameter.
var TimelineRanges = []int{30, 90, 365}

func IsValidTimelineRange(days int) bool {
	for _, value := range TimelineRanges {
		if value == days {
			return true
		}
	}

	return false
}
