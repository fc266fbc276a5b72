package models

// Fixed company identity printed on every document. The FROM block and
// footer are static by design; only the client side varies.
const (
	CompanyName      = "JH Bridge Translation Services"
	CompanyShortName = "JH Bridge Translation"
	CompanyAddress   = "500 Grossman Dr, Braintree, MA 02184, United States"
	CompanyPhone     = "Phone: +1 (774) 223 8771"
	CompanyEmail     = "Email: jhbridgetranslation@gmail.com"
	CompanyWebsite   = "Website: jhbridgetranslation.com"

	SloganLine1 = "Breaking Language Barriers"
	SloganLine2 = "for Global Success"

	FooterThanks = "Thank you for choosing JH Bridge Translation!"
	FooterSlogan = "Breaking Language Barriers for Global Success"
)
