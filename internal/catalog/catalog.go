// Package catalog holds the static service and city catalogs the assistant
// answers and validates against. Both are read-only at runtime.
package catalog

// Services lists every canonical GharFix service name, in presentation order.
var Services = []string{
	"Tailoring Services",
	"Massage Services",
	"NRI Services",
	"Ghar Bazaar",
	"Plumbing Services",
	"Financing Services",
	"MacBook Repair Services",
	"Elderly Care",
	"Ghar Chef",
	"Bridal Makeup & Mehendi",
	"Digital Signage & Banner Services",
	"RO (Water Purifier) Services",
	"Rituals Online",
	"Electrical Services",
	"Housekeeping Services",
	"Water Tank Cleaning",
	"GharMaid Services",
	"Monthly Society Maintenance",
	"Professional Driver Services",
}

// Cities lists the serviceable cities with canonical casing.
var Cities = []string{
	"Mumbai",
	"Navi Mumbai",
	"Lucknow",
	"Bangalore",
	"Chennai",
	"Delhi",
	"Hyderabad",
}

// ContactPhone is the human support line quoted for bookings, pricing and
// anything the assistant cannot answer.
const ContactPhone = "+91 75068 55407"

// WhatsAppNumber is the digits-only form of ContactPhone used for wa.me links.
const WhatsAppNumber = "917506855407"
