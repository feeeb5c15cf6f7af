package users

// UpdateMeRequest represents the fields a user may change on their profile
type UpdateMeRequest struct {
	DisplayName *string `json:"displayName,omitempty"`
	Username    *string `json:"username,omitempty"`
}

// SetMaxSpaceRequest represents an admin request to change a user's quota
type SetMaxSpaceRequest struct {
	MaxSpace int64 `json:"maxSpace" binding:"required,gt=0"`
}
