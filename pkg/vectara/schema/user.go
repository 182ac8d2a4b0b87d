package schema

import "github.com/hashicorp-forge/vectara-examples/pkg/vectara"

// User actions accepted by ManageUser.
const (
	UserActionAdd     = "USER_ACTION_TYPE__ADD"
	UserActionDelete  = "USER_ACTION_TYPE__DELETE"
	UserActionEnable  = "USER_ACTION_TYPE__ENABLE"
	UserActionDisable = "USER_ACTION_TYPE__DISABLE"

	UserTypeUser = "USER_TYPE__USER"
	RoleAdmin    = "CustomerRole_Admin"
	ListUsersAll = "LIST_USERS_TYPE__ALL"
)

type User struct {
	ID         Int64    `json:"id,omitempty" yaml:"id"`
	Handle     string   `json:"handle,omitempty" yaml:"handle"`
	Email      string   `json:"email,omitempty" yaml:"email,omitempty"`
	Type       string   `json:"type,omitempty" yaml:"type,omitempty"`
	Role       []string `json:"role,omitempty" yaml:"role,omitempty"`
	Comment    string   `json:"comment,omitempty" yaml:"comment,omitempty"`
	UserStatus string   `json:"userStatus,omitempty" yaml:"status,omitempty"`
}

type ManageUserRequest struct {
	UserAction []UserAction `json:"userAction"`
}

type UserAction struct {
	User           User   `json:"user"`
	UserActionType string `json:"userActionType"`
}

func (r ManageUserRequest) ItemCount() int { return len(r.UserAction) }

type ManageUserResponse struct {
	Response []struct {
		User   User           `json:"user"`
		Status vectara.Status `json:"status"`
	} `json:"response"`
}

type ListUsersRequest struct {
	ListUsersType string `json:"listUsersType"`
	NumResults    int    `json:"numResults,omitempty"`
	PageKey       string `json:"pageKey,omitempty"`
}

type ListUsersResponse struct {
	User    []User `json:"user"`
	PageKey string `json:"pageKey,omitempty"`
}
