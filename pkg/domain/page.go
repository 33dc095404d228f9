package domain

// PageContent is the metadata extracted from a rendered page. It is produced
// outside the analysis core and consumed by the content and protocol detectors.
type PageContent struct {
	Title             string   `json:"title"`
	MetaDescription   string   `json:"metaDescription"`
	Favicon           string   `json:"favicon"`
	TextContent       string   `json:"textContent"`
	Forms             []Form   `json:"forms"`
	ExternalResources []string `json:"externalResources"`
}

// Form is a single HTML form found on a page.
type Form struct {
	Action string      `json:"action"`
	Method string      `json:"method"`
	Inputs []FormInput `json:"inputs"`
}

// FormInput is a single input element of a form.
type FormInput struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	ID          string `json:"id"`
	Placeholder string `json:"placeholder"`
}

// Empty reports whether the page carries nothing a detector could use.
func (p *PageContent) Empty() bool {
	return p == nil || (p.Title == "" && p.TextContent == "" && len(p.Forms) == 0 &&
		len(p.ExternalResources) == 0 && p.MetaDescription == "" && p.Favicon == "")
}
