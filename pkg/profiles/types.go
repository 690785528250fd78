package profiles

// Profile is the per-identity display record, provisioned lazily on first
// authenticated access. profile id == identity id, always.
type Profile struct {
	ID        string  `json:"id"`
	Username  *string `json:"username"`
	Email     string  `json:"email"`
	Location  *string `json:"location"`
	Social    *string `json:"social"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
}

// UpdateProfileRequest is the PUT /api/avatar/profile body. Omitted fields
// are left untouched.
type UpdateProfileRequest struct {
	Username *string `json:"username"`
	Location *string `json:"location"`
	Social   *string `json:"social"`
	Bio      *string `json:"bio"`
}

// Patch converts the request into a column patch of only the supplied fields
func (r *UpdateProfileRequest) Patch() map[string]interface{} {
	patch := map[string]interface{}{}
	if r.Username != nil {
		patch["username"] = *r.Username
	}
	if r.Location != nil {
		patch["location"] = *r.Location
	}
	if r.Social != nil {
		patch["social"] = *r.Social
	}
	if r.Bio != nil {
		patch["bio"] = *r.Bio
	}
	return patch
}
