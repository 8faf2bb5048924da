package content

type Screenshot struct {
	Title         string
	ThumbnailPath string
	ImagePath     string
	URL           string

	GalleryName string
	GalleryURL  string

	// Position is the index of the screenshot inside its gallery.
	Position int
	// Siblings is every screenshot of the same gallery in gallery order,
	// including this one. The entries themselves carry no siblings.
	Siblings []Screenshot
}

type Gallery struct {
	Name        string
	URL         string
	Screenshots []Screenshot
}

func (s Screenshot) IsFirst() bool { return s.Position == 0 }

func (s Screenshot) IsLast() bool { return s.Position == len(s.Siblings)-1 }

// Previous returns the screenshot before s in its gallery, or nil.
func (s Screenshot) Previous() *Screenshot {
	if s.Position <= 0 || s.Position > len(s.Siblings) {
		return nil
	}
	return &s.Siblings[s.Position-1]
}

// Next returns the screenshot after s in its gallery, or nil.
func (s Screenshot) Next() *Screenshot {
	if s.Position < 0 || s.Position+1 >= len(s.Siblings) {
		return nil
	}
	return &s.Siblings[s.Position+1]
}
