package domain

// Default sentinel titles
const (
	DefaultIntroTitle = "Introduction"
	DefaultOutroTitle = "Outro"
)

// PlaylistOptions configures NewPlaylist
type PlaylistOptions struct {
	IntroTitle       string
	OutroTitle       string
	WithoutSentinels bool // No section is exempt from user operations
}

// NewPlaylist creates an empty session: [Introduction(locked), Outro(locked)]
func NewPlaylist(ids IDGenerator, opts PlaylistOptions) Playlist {
	if opts.WithoutSentinels {
		return Playlist{Sections: []Section{}}
	}
	intro := opts.IntroTitle
	if intro == "" {
		intro = DefaultIntroTitle
	}
	outro := opts.OutroTitle
	if outro == "" {
		outro = DefaultOutroTitle
	}
	return Playlist{Sections: []Section{
		{ID: ids.NewID(), Title: intro, Locked: true, Items: []Item{}},
		{ID: ids.NewID(), Title: outro, Locked: true, Items: []Item{}},
	}}
}
