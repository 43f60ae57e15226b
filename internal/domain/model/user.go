package model

// ProfileBaseURL prefixes a login to form a GitHub profile link.
const ProfileBaseURL = "https://github.com/"

// User is a GitHub account as referenced by pull requests and commits.
type User struct {
	Login      string
	ProfileURL string
}

// NewUser validates login and profile URL. record names the enclosing record
// and prefix the JSON path of the user object, for SchemaError reporting.
func NewUser(record, prefix, login, profileURL string) (User, error) {
	if login == "" {
		return User{}, missingField(record, prefix+".login")
	}
	if profileURL == "" {
		return User{}, missingField(record, prefix+".html_url")
	}
	return User{Login: login, ProfileURL: profileURL}, nil
}

// ProfileURLFor returns the profile link for a bare login.
func ProfileURLFor(login string) string {
	return ProfileBaseURL + login
}
