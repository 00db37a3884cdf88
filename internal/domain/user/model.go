package user

import "time"

type Gender string

const (
	GenderUnset  Gender = ""
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// User is a bot user keyed by Telegram user ID. FirstName and Username are a
// snapshot taken on first contact; the rest is collected by the dialogs.
type User struct {
	ID                       int64     `bson:"_id" json:"telegramId"`
	FirstName                string    `bson:"firstName,omitempty" json:"firstName,omitempty"`
	Username                 string    `bson:"username,omitempty" json:"username,omitempty"`
	Name                     string    `bson:"name,omitempty" json:"name,omitempty"`
	Age                      int       `bson:"age,omitempty" json:"age,omitempty"`
	Gender                   Gender    `bson:"gender,omitempty" json:"gender,omitempty"`
	Province                 string    `bson:"province,omitempty" json:"province,omitempty"`
	City                     string    `bson:"city,omitempty" json:"city,omitempty"`
	School                   string    `bson:"school,omitempty" json:"school,omitempty"`
	PhoneNumber              string    `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	Coins                    int       `bson:"coins" json:"coins"`
	ProfileCompletionAwarded bool      `bson:"profileCompletionAwarded" json:"profileCompletionAwarded"`
	CreatedAt                time.Time `bson:"createdAt" json:"createdAt"`
}

// InitialRegistrationComplete reports whether gender, province and city are set.
func (u *User) InitialRegistrationComplete() bool {
	return u.Gender != GenderUnset && u.Province != "" && u.City != ""
}

// ProfileComplete reports whether every field needed for the completion
// award is set.
func (u *User) ProfileComplete() bool {
	return u.Name != "" && u.Age > 0 && u.School != "" && u.PhoneNumber != ""
}

// EligibleForAward is true while the profile is complete and the award was
// never granted.
func (u *User) EligibleForAward() bool {
	return u.ProfileComplete() && !u.ProfileCompletionAwarded
}

// Patch is a partial write. Nil fields are left untouched by a merge upsert.
type Patch struct {
	FirstName                *string
	Username                 *string
	Name                     *string
	Age                      *int
	Gender                   *Gender
	Province                 *string
	City                     *string
	School                   *string
	PhoneNumber              *string
	Coins                    *int
	ProfileCompletionAwarded *bool
	CreatedAt                *time.Time
}

// Apply copies the set fields of p onto u.
func (p Patch) Apply(u *User) {
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Age != nil {
		u.Age = *p.Age
	}
	if p.Gender != nil {
		u.Gender = *p.Gender
	}
	if p.Province != nil {
		u.Province = *p.Province
	}
	if p.City != nil {
		u.City = *p.City
	}
	if p.School != nil {
		u.School = *p.School
	}
	if p.PhoneNumber != nil {
		u.PhoneNumber = *p.PhoneNumber
	}
	if p.Coins != nil {
		u.Coins = *p.Coins
	}
	if p.ProfileCompletionAwarded != nil {
		u.ProfileCompletionAwarded = *p.ProfileCompletionAwarded
	}
	if p.CreatedAt != nil {
		u.CreatedAt = *p.CreatedAt
	}
}

// Fields returns the set fields keyed by their document names.
func (p Patch) Fields() map[string]interface{} {
	f := make(map[string]interface{})
	if p.FirstName != nil {
		f["firstName"] = *p.FirstName
	}
	if p.Username != nil {
		f["username"] = *p.Username
	}
	if p.Name != nil {
		f["name"] = *p.Name
	}
	if p.Age != nil {
		f["age"] = *p.Age
	}
	if p.Gender != nil {
		f["gender"] = string(*p.Gender)
	}
	if p.Province != nil {
		f["province"] = *p.Province
	}
	if p.City != nil {
		f["city"] = *p.City
	}
	if p.School != nil {
		f["school"] = *p.School
	}
	if p.PhoneNumber != nil {
		f["phoneNumber"] = *p.PhoneNumber
	}
	if p.Coins != nil {
		f["coins"] = *p.Coins
	}
	if p.ProfileCompletionAwarded != nil {
		f["profileCompletionAwarded"] = *p.ProfileCompletionAwarded
	}
	if p.CreatedAt != nil {
		f["createdAt"] = *p.CreatedAt
	}
	return f
}

// Ptr is a helper for building patches.
func Ptr[T any](v T) *T {
	return &v
}
