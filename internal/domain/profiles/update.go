package profiles

// ProfileUpdate carries the user-editable fields only. Approval and admin
// flags cannot travel through this type; they are set by dedicated store
// methods reachable only from the admission controller.
type ProfileUpdate struct {
	FullName        *string `json:"full_name"`
	PhoneNumber     *string `json:"phone_number"`
	Bio             *string `json:"bio"`
	ProfileImageURL *string `json:"profile_image_url"`
}

// Fields returns the column map for a partial update, skipping unset fields.
func (u ProfileUpdate) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if u.FullName != nil {
		fields["full_name"] = *u.FullName
	}
	if u.PhoneNumber != nil {
		fields["phone_number"] = *u.PhoneNumber
	}
	if u.Bio != nil {
		fields["bio"] = *u.Bio
	}
	if u.ProfileImageURL != nil {
		fields["profile_image_url"] = *u.ProfileImageURL
	}
	return fields
}
