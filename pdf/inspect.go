package pdf

// Info is a lightweight structural report of a parsed document.
type Info struct {
	Pages     int     `json:"pages"`
	Size      int     `json:"size"`
	Version   string  `json:"version,omitempty"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Title     string  `json:"title,omitempty"`
	Author    string  `json:"author,omitempty"`
	Subject   string  `json:"subject,omitempty"`
	Keywords  string  `json:"keywords,omitempty"`
	Producer  string  `json:"producer,omitempty"`
	Creator   string  `json:"creator,omitempty"`
	Annotated bool    `json:"annotated"`
}

// Inspect parses a document and reports its structure without modifying it.
func Inspect(b []byte) (*Info, error) {
	ctx, err := parseDocument(b, defaultConfiguration())
	if err != nil {
		return nil, &ParseError{Input: -1, Err: err}
	}

	info := &Info{Pages: ctx.PageCount, Size: len(b)}
	if ctx.HeaderVersion != nil {
		info.Version = ctx.HeaderVersion.String()
	}

	if ctx.PageCount > 0 {
		if _, _, inh, err := ctx.PageDict(1, false); err == nil && inh != nil && inh.MediaBox != nil {
			info.Width = inh.MediaBox.Width()
			info.Height = inh.MediaBox.Height()
		}
	}

	if ctx.Info != nil {
		if d, err := ctx.DereferenceDict(*ctx.Info); err == nil && d != nil {
			get := func(key string) string {
				if s := d.StringEntry(key); s != nil {
					return *s
				}
				return ""
			}
			info.Title = get("Title")
			info.Author = get("Author")
			info.Subject = get("Subject")
			info.Keywords = get("Keywords")
			info.Producer = get("Producer")
			info.Creator = get("Creator")
		}
	}

	for pageNr := 1; pageNr <= ctx.PageCount && !info.Annotated; pageNr++ {
		pageDict, _, _, err := ctx.PageDict(pageNr, false)
		if err != nil || pageDict == nil {
			continue
		}
		if _, found := pageDict.Find("Annots"); found {
			info.Annotated = true
		}
	}

	return info, nil
}
