package model

// Mode is the finite application mode driving the presentation layer.
type Mode int

const (
	ModeWelcome Mode = iota
	ModePreferences
	ModeLoading
	ModeContent
	ModeError
	ModeProfile
	ModeExplaining
	ModeUploading
)

func (m Mode) String() string {
	switch m {
	case ModeWelcome:
		return "welcome"
	case ModePreferences:
		return "preferences"
	case ModeLoading:
		return "loading"
	case ModeContent:
		return "content"
	case ModeError:
		return "error"
	case ModeProfile:
		return "profile"
	case ModeExplaining:
		return "explaining"
	case ModeUploading:
		return "uploading"
	default:
		return "unknown"
	}
}
