package navtree

// Options names the well-known keys and slugs the builder and pager rely on.
// Zero values fall back to the defaults.
type Options struct {
	// DocsRoot is the slug of the welcome page.
	DocsRoot     string
	WelcomeKey   string
	WelcomeTitle string
	// ReferenceRoot and SpecificationGroup locate the versioned
	// specification group whose href is pointed at the latest stable version.
	ReferenceRoot      string
	SpecificationGroup string
}

// DefaultOptions returns the options used by the docs site.
func DefaultOptions() Options {
	return Options{
		DocsRoot:           "/docs",
		WelcomeKey:         "welcome",
		WelcomeTitle:       "Welcome",
		ReferenceRoot:      "reference",
		SpecificationGroup: "specification",
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.DocsRoot == "" {
		o.DocsRoot = d.DocsRoot
	}
	if o.WelcomeKey == "" {
		o.WelcomeKey = d.WelcomeKey
	}
	if o.WelcomeTitle == "" {
		o.WelcomeTitle = d.WelcomeTitle
	}
	if o.ReferenceRoot == "" {
		o.ReferenceRoot = d.ReferenceRoot
	}
	if o.SpecificationGroup == "" {
		o.SpecificationGroup = d.SpecificationGroup
	}
	return o
}
