package models

// AboutContent is the editable "about us" copy.
type AboutContent struct {
	Mission string `json:"mission"`
	Vision  string `json:"vision"`
	Values  string `json:"values"`
}

// ContactContent is the editable contact block.
type ContactContent struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// SiteContent holds the admin-editable public site copy. It is a local-only
// entity persisted in the state store.
type SiteContent struct {
	About   AboutContent   `json:"about"`
	Contact ContactContent `json:"contact"`
	Privacy string         `json:"privacy"`
	Terms   string         `json:"terms"`
}

// DefaultSiteContent returns the baked-in site copy used until an admin
// edits it.
func DefaultSiteContent() SiteContent {
	return SiteContent{
		About: AboutContent{
			Mission: "To empower every citizen with the legal resources and support they need to navigate the complexities of the judicial system with confidence and ease.",
			Vision:  "To create a digitally-integrated legal ecosystem in Bangladesh where finding legal help is as simple, transparent, and reliable as any modern digital service.",
			Values:  "Integrity, Accessibility, and Innovation. We believe in a justice system that is fair, open, and accessible to everyone, regardless of their background or financial status.",
		},
		Contact: ContactContent{
			Email:   "support@cla-bangladesh.com",
			Phone:   "+880 1234 567 890",
			Address: "123 Justice Avenue, Dhaka, Bangladesh",
		},
	}
}
