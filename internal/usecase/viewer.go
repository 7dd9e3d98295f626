package usecase

// Viewer is the identity attached to a request: either anonymous or a
// resolved user. It is derived once by the auth middleware and threaded
// through every call instead of being re-decoded from the token ad hoc.
type Viewer struct {
	UserID string
}

// Anonymous is the zero Viewer: no token was supplied.
var Anonymous = Viewer{}

func IdentifiedViewer(userID string) Viewer {
	return Viewer{UserID: userID}
}

func (v Viewer) Identified() bool {
	return v.UserID != ""
}
